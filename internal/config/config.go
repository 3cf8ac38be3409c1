package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type Config struct {
	TelegramBotToken string `env:"TG_TOKEN,required"`
	AdminUserID      int64  `env:"ADMIN_USER_ID" envDefault:"0"`

	// LLM settings
	LLMProvider      LLMProvider   `env:"LLM_PROVIDER" envDefault:"openai"`
	AIAPIKey         string        `env:"AI_API_KEY"`
	AIBaseURL        string        `env:"AI_API_URL" envDefault:"https://api.intelligence.io.solutions/api/v1"`
	AIModel          string        `env:"AI_MODEL" envDefault:"deepseek-ai/DeepSeek-R1-0528"`
	AITimeout        time.Duration `env:"AI_TIMEOUT" envDefault:"90s"`
	YandexOAuthToken string        `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string        `env:"YANDEX_FOLDER_ID"`

	DB Postgres

	// Pipeline
	StoreName      string `env:"STORE_NAME" envDefault:"YoriShop"`
	MaxResults     int    `env:"MAX_RESULTS" envDefault:"5"`
	MaxAnswerRunes int    `env:"MAX_ANSWER_RUNES" envDefault:"4000"`
	MaxConcurrent  int    `env:"MAX_CONCURRENT" envDefault:"16"`

	// Storage
	SpoolFilePath string `env:"SPOOL_FILE_PATH" envDefault:"data/spool.jsonl"`

	// Reporting
	ReportCron  string `env:"REPORT_CRON" envDefault:"0 21 * * *"`
	MetricsAddr string `env:"METRICS_ADDR"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

type Postgres struct {
	Host     string `env:"DB_HOST" envDefault:"127.0.0.1"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	Name     string `env:"DB_NAME"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASS"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpen  int    `env:"DB_MAX_OPEN" envDefault:"10"`
	MaxIdle  int    `env:"DB_MAX_IDLE" envDefault:"5"`
}

// DSN returns the lib/pq key/value connection string.
func (p Postgres) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Name, p.SSLMode,
	)
}

// Load parses the process environment. A missing credential is reported as an error
// and must stop the process before it starts serving.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.TelegramBotToken == "" {
		return errors.New("TG_TOKEN is required")
	}
	switch c.LLMProvider {
	case ProviderOpenAI:
		if c.AIAPIKey == "" {
			return errors.New("AI_API_KEY is required for the openai provider")
		}
	case ProviderYandex:
		if c.YandexOAuthToken == "" || c.YandexFolderID == "" {
			return errors.New("YANDEX_OAUTH_TOKEN and YANDEX_FOLDER_ID are required for the yandex provider")
		}
	default:
		return fmt.Errorf("unknown llm provider: %s", c.LLMProvider)
	}
	if c.DB.Name == "" || c.DB.User == "" {
		return errors.New("DB_NAME and DB_USER are required")
	}
	if c.MaxResults <= 0 {
		c.MaxResults = 5
	}
	if c.MaxAnswerRunes <= 0 {
		c.MaxAnswerRunes = 4000
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = 1
	}
	return nil
}
