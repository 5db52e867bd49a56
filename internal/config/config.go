package config

import (
	"fmt"
	"time"
)

type Config struct {
	Env              string                  `env:"ENV,default=local"`
	Logger           LoggerConfig            `env:",prefix=LOGGER_"`
	Observability    ObservabilityHTTPConfig `env:",prefix=OBSERVABILITY_"`
	ShutdownDuration time.Duration           `env:"SHUTDOWN_DURATION,default=30s"`
	DB               SQLiteConfig            `env:",prefix=DB_"`
	Telegram         TelegramConfig          `env:",prefix=TELEGRAM_"`
	SMSActivate      SMSActivateConfig       `env:",prefix=SMSACTIVATE_"`
	Catalog          CatalogConfig           `env:",prefix=CATALOG_"`
	Session          SessionConfig           `env:",prefix=SESSION_"`
}

type TelegramConfig struct {
	BotToken string        `env:"BOT_TOKEN,required"`
	Timeout  time.Duration `env:"TIMEOUT,default=30s"`
	AdminIDs []int64       `env:"ADMIN_IDS"`
	RPS      float64       `env:"RPS,default=30"`
}

// SMSActivateConfig описывает подключение к API цен на номера.
type SMSActivateConfig struct {
	APIKey    string        `env:"API_KEY,required"`
	BaseURL   string        `env:"BASE_URL,default=https://api.sms-activate.ae/stubs/handler_api.php"`
	Timeout   time.Duration `env:"TIMEOUT,default=20s"`
	RateLimit struct {
		Burst int     `env:"BURST,default=1"`
		RPS   float64 `env:"RPS,default=5.0"`
	} `env:",prefix=RATE_LIMIT_"`
}

type CatalogConfig struct {
	AllowListEnabled bool     `env:"ALLOWLIST_ENABLED,default=true"`
	AllowedIDs       []string `env:"ALLOWED_IDS"`
	Sort             string   `env:"SORT,default=catalog"`
}

type SessionConfig struct {
	TTL           time.Duration `env:"TTL,default=30m"`
	SweepSchedule string        `env:"SWEEP_SCHEDULE,default=@every 1m"`
}

type LoggerConfig struct {
	Level string `env:"LEVEL,default=debug"`
}

type ObservabilityHTTPConfig struct {
	Host         string        `env:"HOST,default=127.0.0.1"`
	Port         uint16        `env:"PORT,default=8383"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=30s"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT,default=1m"`
}

func (a ObservabilityHTTPConfig) ADDR() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

type SQLiteConfig struct {
	Path         string `env:"PATH,default=./data/numbers.db"`
	MaxOpenConns int    `env:"MAX_OPEN_CONNS,default=25"`
	MaxIdleConns int    `env:"MAX_IDLE_CONNS,default=5"`
	MaxLifetime  string `env:"MAX_LIFETIME,default=5m"`
}
