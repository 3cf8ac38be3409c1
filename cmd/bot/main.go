package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"shop-consultant/internal/analytics"
	"shop-consultant/internal/assistant"
	"shop-consultant/internal/catalog"
	"shop-consultant/internal/config"
	"shop-consultant/internal/database"
	"shop-consultant/internal/llm"
	"shop-consultant/internal/logger"
	"shop-consultant/internal/metrics"
	"shop-consultant/internal/prompt"
	"shop-consultant/internal/recommend"
	"shop-consultant/internal/scheduler"
	"shop-consultant/internal/storage"
	"shop-consultant/internal/telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DB)
	if err != nil {
		lg.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()
	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		lg.Warn("database is not reachable yet, searches will return nothing until it is", zap.Error(err))
	}
	cancelPing()

	backend, err := llm.New(cfg, &http.Client{})
	if err != nil {
		lg.Fatal("failed to create llm client", zap.Error(err))
	}

	pgRecorder := storage.NewPostgresRecorder(db)
	var (
		recorder storage.Recorder = pgRecorder
		reader   storage.Reader   = pgRecorder
	)
	if cfg.SpoolFilePath != "" {
		spool, err := storage.NewFileRecorder(cfg.SpoolFilePath)
		if err != nil {
			lg.Warn("failed to init spool file, records are lost while the database is down", zap.Error(err))
		} else {
			recorder = storage.NewSpoolingRecorder(pgRecorder, spool, lg)
			reader = storage.NewMergedReader(pgRecorder, spool)
		}
	}

	handler := assistant.New(
		catalog.NewStore(db),
		prompt.NewBuilder(cfg.StoreName),
		recommend.New(backend, cfg.AITimeout, lg),
		recorder,
		assistant.Options{MaxResults: cfg.MaxResults, MaxAnswerRunes: cfg.MaxAnswerRunes},
		lg,
	)

	bot, err := telegram.New(cfg.TelegramBotToken, handler, cfg.AdminUserID, cfg.MaxConcurrent, lg)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}

	report := func(ctx context.Context) (string, error) {
		return analytics.Report(ctx, reader, time.Now().UTC())
	}
	bot.SetReporter(report)

	if cfg.AdminUserID != 0 && cfg.ReportCron != "" {
		sched := scheduler.New(cfg.ReportCron, lg)
		sched.SetReportFunction(func(ctx context.Context) error {
			text, err := report(ctx)
			if err != nil {
				return err
			}
			bot.NotifyAdmin(text)
			return nil
		})
		if err := sched.Start(); err != nil {
			lg.Error("failed to start scheduler", zap.Error(err))
		} else {
			defer sched.Stop()
		}
	}

	if cfg.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr); err != nil {
				lg.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	lg.Info("starting bot...", zap.String("provider", string(cfg.LLMProvider)), zap.String("model", cfg.AIModel))
	bot.Start(ctx)
}
