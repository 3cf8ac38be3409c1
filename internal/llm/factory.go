package llm

import (
	"fmt"
	"net/http"

	"shop-consultant/internal/config"
)

// New creates the completion backend selected by cfg.LLMProvider.
func New(cfg *config.Config, httpClient *http.Client) (Client, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel, httpClient), nil
	case config.ProviderYandex:
		return NewYandex(cfg.YandexOAuthToken, cfg.YandexFolderID)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}
