package buynumber

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"numbers-bot/internal/stories/catalog"
	"numbers-bot/internal/telegram/flows"
	"numbers-bot/internal/telegram/states"
)

// MockBotApi - мок Telegram Bot API
type MockBotApi struct {
	SentMessages []tgbotapi.Chattable
	Requests     []tgbotapi.Chattable
}

func (m *MockBotApi) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.SentMessages = append(m.SentMessages, c)
	return tgbotapi.Message{MessageID: len(m.SentMessages)}, nil
}

func (m *MockBotApi) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	m.Requests = append(m.Requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// MockStateManager - мок менеджера состояний, запоминает каждый SetState
type MockStateManager struct {
	mu    sync.Mutex
	Calls []StateCall
	Data  map[int64]*flows.BuyNumberFlowData
	Reads int
}

type StateCall struct {
	UserID int64
	State  states.State
	Data   any
}

func (m *MockStateManager) SetState(userID int64, state states.State, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, StateCall{UserID: userID, State: state, Data: data})
}

func (m *MockStateManager) GetBuyNumberData(userID int64) (*flows.BuyNumberFlowData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++

	data, ok := m.Data[userID]
	if !ok {
		return nil, fmt.Errorf("no data for user %d", userID)
	}
	cp := *data
	return &cp, nil
}

// MockCatalogService - мок сервиса каталога
type MockCatalogService struct {
	Snapshot *catalog.Snapshot
	Err      error
}

func (m *MockCatalogService) LoadCatalog(_ context.Context, service catalog.ServiceCode) (*catalog.Snapshot, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	snapshot := *m.Snapshot
	snapshot.Service = service
	return &snapshot, nil
}

// MockLookupRecorder - мок журнала просмотров
type MockLookupRecorder struct {
	Records []RecordCall
}

type RecordCall struct {
	TelegramID     int64
	Service        catalog.ServiceCode
	CountriesShown int
	Failed         bool
}

func (m *MockLookupRecorder) Record(_ context.Context, telegramID int64, service catalog.ServiceCode, countriesShown int, failed bool) error {
	m.Records = append(m.Records, RecordCall{
		TelegramID:     telegramID,
		Service:        service,
		CountriesShown: countriesShown,
		Failed:         failed,
	})
	return nil
}

// MockLocalizer возвращает ключ перевода вместо текста
type MockLocalizer struct{}

func (MockLocalizer) Get(_, key string, _ map[string]interface{}) string {
	return key
}
