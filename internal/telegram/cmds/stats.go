package cmds

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"numbers-bot/internal/stories/lookups"
	"numbers-bot/internal/telegram/callbacks"
)

const statsWindow = 24 * time.Hour

type (
	botApi interface {
		Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	}

	lookupStats interface {
		StatsSince(ctx context.Context, window time.Duration) ([]lookups.ServiceStats, error)
		TotalStats(ctx context.Context) ([]lookups.ServiceStats, error)
	}

	userCounter interface {
		CountUsers(ctx context.Context) (int64, error)
	}

	localizer interface {
		Get(lang, key string, params map[string]interface{}) string
	}
)

type StatsCommand struct {
	bot     botApi
	lookups lookupStats
	users   userCounter
	l10n    localizer
}

func NewStatsCommand(bot botApi, lookups lookupStats, users userCounter, l10n localizer) *StatsCommand {
	return &StatsCommand{
		bot:     bot,
		lookups: lookups,
		users:   users,
		l10n:    l10n,
	}
}

func (c *StatsCommand) Execute(ctx context.Context, chatID int64, lang string) error {
	text, err := c.render(ctx, lang)
	if err != nil {
		_, _ = c.bot.Send(tgbotapi.NewMessage(chatID, c.l10n.Get(lang, "errors.generic", nil)))
		return err
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = c.keyboard(lang)
	_, err = c.bot.Send(msg)
	return err
}

func (c *StatsCommand) Refresh(ctx context.Context, chatID int64, messageID int, lang string) error {
	text, err := c.render(ctx, lang)
	if err != nil {
		return err
	}

	keyboard := c.keyboard(lang)
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, keyboard)
	_, err = c.bot.Send(edit)
	if err != nil && strings.Contains(err.Error(), "message is not modified") {
		return nil
	}
	return err
}

func (c *StatsCommand) keyboard(lang string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c.l10n.Get(lang, "stats.refresh", nil), callbacks.StatsRefresh().Token()),
		),
	)
}

func (c *StatsCommand) render(ctx context.Context, lang string) (string, error) {
	day, err := c.lookups.StatsSince(ctx, statsWindow)
	if err != nil {
		return "", fmt.Errorf("get daily stats: %w", err)
	}
	total, err := c.lookups.TotalStats(ctx)
	if err != nil {
		return "", fmt.Errorf("get total stats: %w", err)
	}
	usersCount, err := c.users.CountUsers(ctx)
	if err != nil {
		return "", fmt.Errorf("count users: %w", err)
	}

	var text strings.Builder
	text.WriteString(c.l10n.Get(lang, "stats.title", nil))
	text.WriteString("\n\n")
	c.writePeriod(&text, lang, "stats.period_day", day)
	text.WriteString("\n")
	c.writePeriod(&text, lang, "stats.period_total", total)
	text.WriteString("\n")
	text.WriteString(c.l10n.Get(lang, "stats.users", map[string]interface{}{"count": usersCount}))

	return text.String(), nil
}

func (c *StatsCommand) writePeriod(text *strings.Builder, lang, titleKey string, stats []lookups.ServiceStats) {
	text.WriteString(c.l10n.Get(lang, titleKey, nil))
	text.WriteString(":\n")

	if len(stats) == 0 {
		text.WriteString(c.l10n.Get(lang, "stats.empty", nil))
		text.WriteString("\n")
		return
	}

	for _, s := range stats {
		text.WriteString(c.l10n.Get(lang, "stats.line", map[string]interface{}{
			"service": s.Service,
			"lookups": s.Lookups,
			"failed":  s.Failed,
		}))
		text.WriteString("\n")
	}
}
