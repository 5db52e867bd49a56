package telegram

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"numbers-bot/internal/stories/users"
	"numbers-bot/internal/telegram/callbacks"
)

type mockBot struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (m *mockBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.sent = append(m.sent, c)
	return tgbotapi.Message{MessageID: len(m.sent)}, nil
}

func (m *mockBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.requests = append(m.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

type mockStates struct{ cleared []int64 }

func (m *mockStates) Clear(userID int64) { m.cleared = append(m.cleared, userID) }

type mockUsers struct{ err error }

func (m *mockUsers) GetOrCreateUserByTelegramID(_ context.Context, telegramID int64, language string) (*users.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &users.User{ID: 1, TelegramID: telegramID, Language: language}, nil
}

type mockAdmins struct{ admins map[int64]bool }

func (m mockAdmins) IsAdmin(telegramID int64) bool { return m.admins[telegramID] }

type mockL10n struct{}

func (mockL10n) Get(_, key string, _ map[string]interface{}) string { return key }
func (mockL10n) Normalize(code string) string {
	if code == "" {
		return "en"
	}
	return code
}

type mockBuyNumber struct {
	started  int
	services []callbacks.Action
	disabled int
}

func (m *mockBuyNumber) Start(_, _ int64, _ string) error {
	m.started++
	return nil
}

func (m *mockBuyNumber) HandleService(_ context.Context, _ *tgbotapi.CallbackQuery, action callbacks.Action, _ string) error {
	m.services = append(m.services, action)
	return nil
}

func (m *mockBuyNumber) HandleDisabled(_ *tgbotapi.CallbackQuery, _ string) error {
	m.disabled++
	return nil
}

type mockStats struct{ executed, refreshed int }

func (m *mockStats) Execute(context.Context, int64, string) error {
	m.executed++
	return nil
}

func (m *mockStats) Refresh(context.Context, int64, int, string) error {
	m.refreshed++
	return nil
}

type routerFixture struct {
	bot    *mockBot
	states *mockStates
	users  *mockUsers
	buy    *mockBuyNumber
	stats  *mockStats
	router *Router
}

func newRouterFixture(admins ...int64) *routerFixture {
	f := &routerFixture{
		bot:    &mockBot{},
		states: &mockStates{},
		users:  &mockUsers{},
		buy:    &mockBuyNumber{},
		stats:  &mockStats{},
	}
	adminSet := make(map[int64]bool)
	for _, id := range admins {
		adminSet[id] = true
	}
	f.router = NewRouter(
		f.bot,
		f.states,
		f.users,
		mockAdmins{admins: adminSet},
		mockL10n{},
		f.buy,
		f.stats,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return f
}

func commandUpdate(userID int64, command string) *tgbotapi.Update {
	text := "/" + command
	return &tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID, LanguageCode: "en"},
		Chat: &tgbotapi.Chat{ID: userID},
		Text: text,
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len(text)},
		},
	}}
}

func callbackUpdate(userID int64, data string) *tgbotapi.Update {
	return &tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "cb",
		From: &tgbotapi.User{ID: userID},
		Message: &tgbotapi.Message{
			MessageID: 5,
			Chat:      &tgbotapi.Chat{ID: userID},
		},
		Data: data,
	}}
}

func TestRoute_Commands(t *testing.T) {
	f := newRouterFixture()

	if err := f.router.Route(context.Background(), commandUpdate(10, "buy")); err != nil {
		t.Fatalf("Route(/buy) error = %v", err)
	}
	if f.buy.started != 1 {
		t.Errorf("buy started %d times, want 1", f.buy.started)
	}
	if len(f.states.cleared) != 1 || f.states.cleared[0] != 10 {
		t.Errorf("cleared = %v, want [10]", f.states.cleared)
	}
}

func TestRoute_StatsRequiresAdmin(t *testing.T) {
	f := newRouterFixture(1)

	_ = f.router.Route(context.Background(), commandUpdate(2, "stats"))
	if f.stats.executed != 0 {
		t.Error("stats executed for non-admin")
	}
	msg := f.bot.sent[0].(tgbotapi.MessageConfig)
	if msg.Text != "errors.no_rights" {
		t.Errorf("text = %q, want errors.no_rights", msg.Text)
	}

	_ = f.router.Route(context.Background(), commandUpdate(1, "stats"))
	if f.stats.executed != 1 {
		t.Errorf("stats executed %d times, want 1", f.stats.executed)
	}
}

func TestRoute_Callbacks(t *testing.T) {
	tests := []struct {
		name         string
		data         string
		wantServices int
		wantDisabled int
		wantRequests int
	}{
		{name: "service", data: "svc_wa", wantServices: 1},
		{name: "country", data: "country_1", wantDisabled: 1},
		{name: "disabled", data: "buy_disabled", wantDisabled: 1},
		{name: "unknown is answered and ignored", data: "pay_check_5", wantRequests: 1},
		{name: "unsupported service is ignored", data: "svc_vk", wantRequests: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture()

			if err := f.router.Route(context.Background(), callbackUpdate(10, tt.data)); err != nil {
				t.Fatalf("Route() error = %v", err)
			}
			if len(f.buy.services) != tt.wantServices {
				t.Errorf("services = %d, want %d", len(f.buy.services), tt.wantServices)
			}
			if f.buy.disabled != tt.wantDisabled {
				t.Errorf("disabled = %d, want %d", f.buy.disabled, tt.wantDisabled)
			}
			if len(f.bot.requests) != tt.wantRequests {
				t.Errorf("requests = %d, want %d", len(f.bot.requests), tt.wantRequests)
			}
			if len(f.bot.sent) != 0 {
				t.Errorf("sent %d messages, want none", len(f.bot.sent))
			}
			if len(f.states.cleared) != 0 {
				t.Errorf("callback cleared session")
			}
		})
	}
}

func TestRoute_UserServiceError(t *testing.T) {
	f := newRouterFixture()
	f.users.err = errors.New("db is down")

	err := f.router.Route(context.Background(), commandUpdate(10, "buy"))
	if err == nil {
		t.Fatal("Route() error = nil, want error")
	}
	if f.buy.started != 0 {
		t.Error("flow started despite user error")
	}
	msg := f.bot.sent[0].(tgbotapi.MessageConfig)
	if msg.Text != "errors.generic" {
		t.Errorf("text = %q, want errors.generic", msg.Text)
	}
}
