package buynumber

import (
	"context"
	"errors"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"numbers-bot/internal/infra/smsactivate"
	"numbers-bot/internal/stories/catalog"
	"numbers-bot/internal/telegram/callbacks"
	"numbers-bot/internal/telegram/flows"
	"numbers-bot/internal/telegram/presenter"
	"numbers-bot/internal/telegram/states"
)

type Handler struct {
	bot          botApi
	stateManager stateManager
	catalog      catalogService
	presenter    catalogPresenter
	lookups      lookupRecorder
	l10n         localizer
	logger       *slog.Logger
}

func NewHandler(
	bot botApi,
	sm stateManager,
	cs catalogService,
	cp catalogPresenter,
	lr lookupRecorder,
	l10n localizer,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		bot:          bot,
		stateManager: sm,
		catalog:      cs,
		presenter:    cp,
		lookups:      lr,
		l10n:         l10n,
		logger:       logger,
	}
}

// Start показывает выбор сервиса и запоминает сообщение с клавиатурой.
func (h *Handler) Start(userID, chatID int64, lang string) error {
	msg := tgbotapi.NewMessage(chatID, h.l10n.Get(lang, "buy.choose_service", nil))
	msg.ReplyMarkup = presenter.ToInlineKeyboard(presenter.ServiceKeyboard())

	sent, err := h.bot.Send(msg)
	if err != nil {
		return err
	}

	h.stateManager.SetState(userID, states.UserBuyNumberWaitService, &flows.BuyNumberFlowData{
		MessageID: lo.ToPtr(sent.MessageID),
		Language:  lang,
	})
	return nil
}

// HandleService загружает каталог выбранного сервиса и заменяет клавиатуру
// сервисов на клавиатуру стран. Ошибка API цен превращается в сообщение
// пользователю, наружу не уходит.
func (h *Handler) HandleService(ctx context.Context, query *tgbotapi.CallbackQuery, action callbacks.Action, lang string) error {
	h.answer(query.ID, "", false)

	if query.Message == nil {
		return nil
	}
	userID := query.From.ID
	chatID := query.Message.Chat.ID
	messageID := query.Message.MessageID
	service := action.Service

	h.edit(chatID, messageID, h.l10n.Get(lang, "buy.loading", nil), nil)

	snapshot, err := h.catalog.LoadCatalog(ctx, service)
	if err != nil {
		var upstreamErr *smsactivate.UpstreamError
		if errors.As(err, &upstreamErr) {
			h.logger.Warn("Price API unavailable",
				"user_id", userID,
				"service", service,
				"action", upstreamErr.Action,
				"status", upstreamErr.StatusCode,
				"error", err)
		} else {
			h.logger.Error("Failed to load catalog", "user_id", userID, "service", service, "error", err)
		}
		h.record(ctx, userID, service, 0, true)

		h.stateManager.SetState(userID, states.StateNone, nil)
		h.edit(chatID, messageID, h.l10n.Get(lang, "buy.no_countries", nil), nil)
		return nil
	}

	grid := h.presenter.
		BuildCatalogKeyboard(snapshot.Countries, snapshot.Prices, service).
		WithDisabledLabel(h.l10n.Get(lang, "buy.button_disabled", nil))
	shown := len(grid.Buttons()) - 1
	h.record(ctx, userID, service, shown, false)

	text := h.l10n.Get(lang, "buy.choose_country", map[string]interface{}{"service": serviceTitle(service)})
	if shown == 0 {
		text = h.l10n.Get(lang, "buy.no_countries", nil)
	}
	keyboard := presenter.ToInlineKeyboard(grid)
	h.edit(chatID, messageID, text, &keyboard)

	h.stateManager.SetState(userID, states.UserBuyNumberCatalogShown, &flows.BuyNumberFlowData{
		Service:   service,
		MessageID: lo.ToPtr(messageID),
		Language:  lang,
	})
	return nil
}

// HandleDisabled отвечает на кнопки стран и покупки. Ответ всегда одинаковый,
// состояние пользователя не трогается.
func (h *Handler) HandleDisabled(query *tgbotapi.CallbackQuery, lang string) error {
	h.answer(query.ID, presenter.DemoAck(h.l10n, lang), true)

	if query.From == nil {
		return nil
	}
	// Сессия нужна только чтобы понять, для какого сервиса хотели купить номер
	data, err := h.stateManager.GetBuyNumberData(query.From.ID)
	if err != nil {
		h.logger.Debug("Demo purchase attempt without session", "user_id", query.From.ID, "data", query.Data)
		return nil
	}
	h.logger.Info("Demo purchase attempt",
		"user_id", query.From.ID,
		"service", data.Service,
		"data", query.Data)
	return nil
}

func (h *Handler) answer(callbackID, text string, alert bool) {
	callback := tgbotapi.NewCallback(callbackID, text)
	callback.ShowAlert = alert
	if _, err := h.bot.Request(callback); err != nil {
		h.logger.Warn("Failed to answer callback", "error", err)
	}
}

func (h *Handler) edit(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	var edit tgbotapi.EditMessageTextConfig
	if keyboard != nil {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *keyboard)
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, messageID, text)
	}
	if _, err := h.bot.Send(edit); err != nil {
		h.logger.Warn("Failed to edit message", "chat_id", chatID, "message_id", messageID, "error", err)
	}
}

func (h *Handler) record(ctx context.Context, userID int64, service catalog.ServiceCode, shown int, failed bool) {
	if h.lookups == nil {
		return
	}
	if err := h.lookups.Record(ctx, userID, service, shown, failed); err != nil {
		h.logger.Warn("Failed to record lookup", "user_id", userID, "error", err)
	}
}

func serviceTitle(code catalog.ServiceCode) string {
	for _, s := range catalog.Services() {
		if s.Code == code {
			return s.Title
		}
	}
	return string(code)
}
