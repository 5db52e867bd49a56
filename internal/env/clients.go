package environment

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"numbers-bot/internal/config"
	"numbers-bot/internal/infra/smsactivate"
	"numbers-bot/internal/infra/sqlite3"
	"numbers-bot/internal/infra/telegram"
)

type Clients struct {
	SQLiteDB    *sqlite3.DB
	TelegramBot *telegram.Client
	SMSActivate *smsactivate.Client
}

func newClients(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Clients, error) {
	sqliteDB, err := provideSQLiteDB(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "sqlite")
	}

	telegramBot, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.RPS, cfg.Telegram.Timeout, logger)
	if err != nil {
		_ = sqliteDB.Close()
		return nil, errors.Wrap(err, "telegram")
	}

	priceAPI, err := provideSMSActivate(cfg, logger)
	if err != nil {
		_ = sqliteDB.Close()
		return nil, errors.Wrap(err, "smsactivate")
	}

	return &Clients{
		SQLiteDB:    sqliteDB,
		TelegramBot: telegramBot,
		SMSActivate: priceAPI,
	}, nil
}

func provideSQLiteDB(ctx context.Context, cfg config.Config) (*sqlite3.DB, error) {
	maxLifetime, err := time.ParseDuration(cfg.DB.MaxLifetime)
	if err != nil {
		return nil, errors.Wrap(err, "parse DB_MAX_LIFETIME")
	}

	return sqlite3.New(ctx,
		sqlite3.WithPath(cfg.DB.Path),
		sqlite3.WithMaxOpenConns(cfg.DB.MaxOpenConns),
		sqlite3.WithMaxIdleConns(cfg.DB.MaxIdleConns),
		sqlite3.WithConnMaxLifetime(maxLifetime),
	)
}

func provideSMSActivate(cfg config.Config, logger *slog.Logger) (*smsactivate.Client, error) {
	metrics, err := smsactivate.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return nil, errors.Wrap(err, "register metrics")
	}

	return smsactivate.NewClient(
		cfg.SMSActivate.BaseURL,
		cfg.SMSActivate.APIKey,
		logger.With("component", "smsactivate"),
		smsactivate.WithTimeout(cfg.SMSActivate.Timeout),
		smsactivate.WithRateLimit(cfg.SMSActivate.RateLimit.RPS, cfg.SMSActivate.RateLimit.Burst),
		smsactivate.WithMetrics(metrics),
	)
}

func (c *Clients) close() {
	if c.TelegramBot != nil {
		c.TelegramBot.Stop()
	}
	if c.SQLiteDB != nil {
		_ = c.SQLiteDB.Close()
	}
}
