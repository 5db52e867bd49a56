package telegram

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"numbers-bot/internal/localization"
	"numbers-bot/internal/stories/users"
	"numbers-bot/internal/telegram/callbacks"
)

type Router struct {
	bot          botApi
	stateManager stateManager
	userService  userService
	adminChecker adminChecker
	l10n         localizer
	logger       *slog.Logger

	// Handlers
	buyNumberHandler buyNumberHandler
	statsCommand     statsCommand
}

type botApi interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type stateManager interface {
	Clear(userID int64)
}

type userService interface {
	GetOrCreateUserByTelegramID(ctx context.Context, telegramID int64, language string) (*users.User, error)
}

type adminChecker interface {
	IsAdmin(telegramID int64) bool
}

type localizer interface {
	Get(lang, key string, params map[string]interface{}) string
	Normalize(code string) string
}

type buyNumberHandler interface {
	Start(userID, chatID int64, lang string) error
	HandleService(ctx context.Context, query *tgbotapi.CallbackQuery, action callbacks.Action, lang string) error
	HandleDisabled(query *tgbotapi.CallbackQuery, lang string) error
}

type statsCommand interface {
	Execute(ctx context.Context, chatID int64, lang string) error
	Refresh(ctx context.Context, chatID int64, messageID int, lang string) error
}

// NewRouter создает новый роутер с зависимостями
func NewRouter(
	bot botApi,
	stateManager stateManager,
	userService userService,
	adminChecker adminChecker,
	l10n localizer,
	buyNumberHandler buyNumberHandler,
	statsCommand statsCommand,
	logger *slog.Logger,
) *Router {
	return &Router{
		bot:              bot,
		stateManager:     stateManager,
		userService:      userService,
		adminChecker:     adminChecker,
		l10n:             l10n,
		buyNumberHandler: buyNumberHandler,
		statsCommand:     statsCommand,
		logger:           logger,
	}
}

// Route обрабатывает один update. Безопасен для параллельного вызова
// из отдельных горутин.
func (r *Router) Route(ctx context.Context, update *tgbotapi.Update) error {
	telegramID := extractUserID(update)
	if telegramID == 0 {
		return nil // Некорректный update
	}

	user, err := r.userService.GetOrCreateUserByTelegramID(
		ctx,
		telegramID,
		r.l10n.Normalize(extractLanguageCode(update)),
	)
	if err != nil {
		_ = r.sendError(extractChatID(update), r.l10n.Normalize(extractLanguageCode(update)))
		return err
	}
	lang := r.l10n.Normalize(user.Language)

	// Команды отменяют любой флоу
	if update.Message != nil && update.Message.IsCommand() {
		r.stateManager.Clear(telegramID)
		return r.handleCommand(ctx, update.Message, user, lang)
	}

	if update.CallbackQuery != nil {
		return r.handleCallback(ctx, update.CallbackQuery, user, lang)
	}

	// Если нет активного флоу - обычное сообщение
	return r.sendHelp(extractChatID(update), telegramID, lang)
}

func (r *Router) handleCommand(ctx context.Context, message *tgbotapi.Message, user *users.User, lang string) error {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		r.setupCommands(chatID, user.TelegramID, lang)
		return r.sendWelcome(chatID, lang)
	case "buy":
		return r.buyNumberHandler.Start(user.TelegramID, chatID, lang)
	case "stats":
		if !r.adminChecker.IsAdmin(user.TelegramID) {
			_, _ = r.bot.Send(tgbotapi.NewMessage(chatID, r.l10n.Get(lang, "errors.no_rights", nil)))
			return r.sendHelp(chatID, user.TelegramID, lang)
		}
		return r.statsCommand.Execute(ctx, chatID, lang)
	default:
		return r.sendHelp(chatID, user.TelegramID, lang)
	}
}

func (r *Router) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery, user *users.User, lang string) error {
	action := callbacks.Parse(query.Data)

	switch action.Kind {
	case callbacks.KindService:
		return r.buyNumberHandler.HandleService(ctx, query, action, lang)
	case callbacks.KindCountry, callbacks.KindDisabled:
		return r.buyNumberHandler.HandleDisabled(query, lang)
	case callbacks.KindStatsRefresh:
		if !r.adminChecker.IsAdmin(user.TelegramID) {
			_, _ = r.bot.Request(tgbotapi.NewCallback(query.ID, r.l10n.Get(lang, "errors.no_rights", nil)))
			return nil
		}
		_, _ = r.bot.Request(tgbotapi.NewCallback(query.ID, r.l10n.Get(lang, "stats.refreshed", nil)))
		if query.Message == nil {
			return nil
		}
		return r.statsCommand.Refresh(ctx, query.Message.Chat.ID, query.Message.MessageID, lang)
	default:
		// Кнопки от старых клавиатур: просто гасим часики
		r.logger.Debug("Unknown callback", "user_id", user.TelegramID, "data", query.Data)
		_, _ = r.bot.Request(tgbotapi.NewCallback(query.ID, ""))
		return nil
	}
}

func (r *Router) sendWelcome(chatID int64, lang string) error {
	msg := tgbotapi.NewMessage(chatID, r.l10n.Get(lang, "welcome.text", nil))
	_, err := r.bot.Send(msg)
	return err
}

func (r *Router) sendHelp(chatID, telegramID int64, lang string) error {
	if chatID == 0 {
		return nil // Не можем отправить сообщение
	}
	text := r.l10n.Get(lang, "help.text", nil)
	if r.adminChecker.IsAdmin(telegramID) {
		text += "\n" + r.l10n.Get(lang, "help.admin", nil)
	}
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (r *Router) sendError(chatID int64, lang string) error {
	if chatID == 0 {
		return nil
	}
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, r.l10n.Get(lang, "errors.generic", nil)))
	return err
}

// SetupBotCommands устанавливает меню команд по умолчанию для всех чатов
func (r *Router) SetupBotCommands() error {
	setCommandsConfig := tgbotapi.NewSetMyCommands(r.userCommands(localization.DefaultLanguage)...)
	_, err := r.bot.Request(setCommandsConfig)
	return err
}

func (r *Router) userCommands(lang string) []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: r.l10n.Get(lang, "commands.start", nil)},
		{Command: "buy", Description: r.l10n.Get(lang, "commands.buy", nil)},
		{Command: "help", Description: r.l10n.Get(lang, "commands.help", nil)},
	}
}

// setupCommands устанавливает меню команд для чата. Админам добавляется /stats.
func (r *Router) setupCommands(chatID, telegramID int64, lang string) {
	commands := r.userCommands(lang)
	if r.adminChecker.IsAdmin(telegramID) {
		commands = append(commands, tgbotapi.BotCommand{
			Command:     "stats",
			Description: r.l10n.Get(lang, "commands.stats", nil),
		})
	}

	scope := tgbotapi.NewBotCommandScopeChat(chatID)
	setCommandsConfig := tgbotapi.SetMyCommandsConfig{
		Commands: commands,
		Scope:    &scope,
	}

	// Игнорируем ошибку, чтобы не блокировать основной поток
	_, _ = r.bot.Request(setCommandsConfig)
}

func extractUserID(update *tgbotapi.Update) int64 {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.From != nil {
		return update.CallbackQuery.From.ID
	}
	return 0
}

func extractChatID(update *tgbotapi.Update) int64 {
	if update.Message != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}

func extractLanguageCode(update *tgbotapi.Update) string {
	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.LanguageCode
	}
	if update.CallbackQuery != nil && update.CallbackQuery.From != nil {
		return update.CallbackQuery.From.LanguageCode
	}
	return ""
}
