package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// Client обёртка над Bot API: long polling и общий лимит исходящих запросов.
type Client struct {
	api     *tgbotapi.BotAPI
	logger  *slog.Logger
	limiter *rate.Limiter
	timeout time.Duration
	updates tgbotapi.UpdatesChannel
	ctx     context.Context
	cancel  context.CancelFunc
	stop    sync.Once
}

func NewClient(token string, rps float64, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("создание telegram бота: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		api:     bot,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Start начинает получение обновлений (long polling)
func (c *Client) Start() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = int(c.timeout.Seconds())

	c.updates = c.api.GetUpdatesChan(u)

	c.logger.Info("Telegram бот запущен", slog.String("username", c.api.Self.UserName))
	return c.updates
}

// Stop останавливает получение обновлений и отменяет ожидание лимитера
func (c *Client) Stop() {
	c.stop.Do(func() {
		c.cancel()
		if c.updates != nil {
			c.api.StopReceivingUpdates()
		}
		c.logger.Info("Telegram бот остановлен")
	})
}

// Send отправляет любое сообщение с rate limiting (для интерфейса botApi)
func (c *Client) Send(chattable tgbotapi.Chattable) (tgbotapi.Message, error) {
	if err := c.limiter.Wait(c.ctx); err != nil {
		return tgbotapi.Message{}, fmt.Errorf("rate limiting: %w", err)
	}

	message, err := c.api.Send(chattable)
	if err != nil {
		c.logger.Error("ошибка отправки", slog.Any("error", err))
		return tgbotapi.Message{}, fmt.Errorf("отправка: %w", err)
	}

	return message, nil
}

// Request отправляет запрос к API (для интерфейса botApi)
func (c *Client) Request(chattable tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	if err := c.limiter.Wait(c.ctx); err != nil {
		return nil, fmt.Errorf("rate limiting: %w", err)
	}

	resp, err := c.api.Request(chattable)
	if err != nil {
		c.logger.Error("ошибка запроса к API", slog.Any("error", err))
		return nil, fmt.Errorf("запрос к API: %w", err)
	}

	return resp, nil
}
