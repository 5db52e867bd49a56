package telegram

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type HandleFunc func(ctx context.Context, update *tgbotapi.Update) error

// Dispatcher читает канал обновлений и обрабатывает каждое в своей горутине,
// чтобы медленный API цен у одного пользователя не задерживал остальных.
type Dispatcher struct {
	handle   HandleFunc
	logger   *slog.Logger
	inflight sync.WaitGroup
}

func NewDispatcher(handle HandleFunc, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		handle: handle,
		logger: logger,
	}
}

// Run блокируется до отмены ctx или закрытия канала. Запущенные обработчики
// не ждёт, для этого есть Wait.
func (d *Dispatcher) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			d.inflight.Add(1)
			go func() {
				defer d.inflight.Done()
				d.dispatch(ctx, update)
			}()
		}
	}
}

// Wait ждёт завершения всех запущенных обработчиков.
func (d *Dispatcher) Wait() {
	d.inflight.Wait()
}

func (d *Dispatcher) dispatch(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Panic while handling update",
				slog.Int("update_id", update.UpdateID),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	if update.Message != nil && update.Message.From != nil {
		d.logger.Debug("Получено сообщение",
			slog.Int64("chat_id", update.Message.Chat.ID),
			slog.Int64("user_id", update.Message.From.ID),
			slog.String("text", update.Message.Text))
	} else if update.CallbackQuery != nil && update.CallbackQuery.From != nil {
		d.logger.Debug("Получен callback",
			slog.Int64("user_id", update.CallbackQuery.From.ID),
			slog.String("data", update.CallbackQuery.Data))
	}

	if err := d.handle(ctx, &update); err != nil {
		d.logger.Error("Ошибка обработки обновления", slog.Any("error", err))
	}
}
