package presenter

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"numbers-bot/internal/telegram/callbacks"
)

type Button struct {
	Label  string
	Action callbacks.Action
}

// ButtonGrid ряды кнопок сверху вниз, кнопки в ряду слева направо.
type ButtonGrid [][]Button

// WithDisabledLabel возвращает копию сетки с другой подписью кнопки покупки.
func (g ButtonGrid) WithDisabledLabel(label string) ButtonGrid {
	out := make(ButtonGrid, len(g))
	for i, row := range g {
		out[i] = make([]Button, len(row))
		for j, btn := range row {
			if btn.Action.Kind == callbacks.KindDisabled {
				btn.Label = label
			}
			out[i][j] = btn
		}
	}
	return out
}

// Buttons все кнопки подряд.
func (g ButtonGrid) Buttons() []Button {
	var out []Button
	for _, row := range g {
		out = append(out, row...)
	}
	return out
}

func ToInlineKeyboard(g ButtonGrid) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(g))
	for _, row := range g {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Action.Token()))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
