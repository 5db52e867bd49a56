package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// ConfigurationError означает, что процесс не может стартовать с текущим окружением.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

var (
	ErrEmptyBotToken = errors.New("TELEGRAM_BOT_TOKEN is empty")
	ErrEmptyAPIKey   = errors.New("SMSACTIVATE_API_KEY is empty")
)

// Load читает конфигурацию через lookuper. nil означает переменные окружения процесса.
func Load(ctx context.Context, lookuper envconfig.Lookuper) (Config, error) {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}

	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return Config{}, &ConfigurationError{Err: err}
	}

	if err := cfg.validate(); err != nil {
		return Config{}, &ConfigurationError{Err: err}
	}

	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Telegram.BotToken) == "" {
		return ErrEmptyBotToken
	}
	if strings.TrimSpace(c.SMSActivate.APIKey) == "" {
		return ErrEmptyAPIKey
	}
	if c.SMSActivate.Timeout <= 0 {
		return fmt.Errorf("SMSACTIVATE_TIMEOUT must be positive, got %s", c.SMSActivate.Timeout)
	}

	switch c.Catalog.Sort {
	case "catalog", "price", "name":
	default:
		return fmt.Errorf("CATALOG_SORT must be one of catalog, price, name; got %q", c.Catalog.Sort)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.Session.TTL)
	}

	return nil
}
