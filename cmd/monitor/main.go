package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/erkineren/homework-monitor/internal/bot"
	"github.com/erkineren/homework-monitor/internal/config"
	"github.com/erkineren/homework-monitor/internal/monitor"
	"github.com/erkineren/homework-monitor/internal/review"
	"github.com/erkineren/homework-monitor/internal/store"
	"github.com/erkineren/homework-monitor/internal/store/postgres"
	"github.com/erkineren/homework-monitor/internal/store/sqlite"
)

func main() {
	log := newLogger(os.Stdout, "info", "console")
	log.Info().Msg("Starting homework review monitor...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log = newLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Dur("poll_interval", cfg.PollInterval).
		Dur("request_timeout", cfg.RequestTimeout).
		Str("store", cfg.StoreDriver).
		Msg("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("dsn", maskDatabaseURL(cfg.StoreDSN)).Msg("Failed to initialize store")
	}
	defer st.Close()

	telegramBot, err := bot.New(cfg.BotToken, cfg.ChatID, cfg.RequestTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}
	log.Info().Str("bot", telegramBot.UserName()).Msg("Telegram bot initialized successfully")

	client := review.NewClient(cfg.APIEndpoint, cfg.APIToken, cfg.RequestTimeout)

	m := monitor.New(client, telegramBot, st, log, monitor.Options{
		Interval:       cfg.PollInterval,
		RequestTimeout: cfg.RequestTimeout,
		StartFrom:      cfg.StartFrom,
		ReportErrors:   cfg.ReportErrors,
	})
	if err := m.Restore(ctx); err != nil {
		log.Error().Err(err).Msg("Starting without stored state")
	}

	if err := m.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Monitor stopped with error")
	}
	log.Info().Msg("Application shutdown complete")
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		return sqlite.New(ctx, cfg.StoreDSN, cfg.ChatID)
	case config.StorePostgres:
		return postgres.New(ctx, cfg.StoreDSN, cfg.ChatID)
	case config.StoreMemory:
		return store.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func newLogger(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

func maskDatabaseURL(url string) string {
	return regexp.MustCompile(`://[^:]+:[^@]+@`).ReplaceAllString(url, "://*****:*****@")
}
