package states

import (
	"fmt"
	"sync"
	"time"

	"numbers-bot/internal/telegram/flows"
)

var _ StateManager = (*Manager)(nil)

type session struct {
	state     State
	data      any
	touchedAt time.Time
}

// Manager хранит состояние флоу пользователей в памяти.
// Сессия живёт ttl с последнего SetState, после этого читается как пустая.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*session
	ttl      time.Duration
	now      func() time.Time
}

// NewManager создает новый менеджер состояний
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[int64]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *Manager) alive(s *session) bool {
	return m.now().Sub(s.touchedAt) < m.ttl
}

// GetState получает текущее состояние пользователя
func (m *Manager) GetState(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, exists := m.sessions[userID]
	if !exists || !m.alive(s) {
		return StateNone
	}
	return s.state
}

// GetData получает данные пользователя
func (m *Manager) GetData(userID int64) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, exists := m.sessions[userID]
	if !exists || !m.alive(s) || s.data == nil {
		return nil, false
	}
	return s.data, true
}

// SetState устанавливает состояние пользователя. nil data сохраняет прежние данные.
func (m *Manager) SetState(userID int64, state State, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, exists := m.sessions[userID]
	if !exists || !m.alive(s) {
		s = &session{}
		m.sessions[userID] = s
	}

	s.state = state
	s.touchedAt = m.now()
	if data != nil {
		s.data = data
	}
}

// Clear очищает состояние пользователя
func (m *Manager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
}

// Sweep удаляет истекшие сессии и возвращает их количество.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for userID, s := range m.sessions {
		if !m.alive(s) {
			delete(m.sessions, userID)
			removed++
		}
	}
	return removed
}

// Len количество хранимых сессий, включая ещё не вычищенные.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// GetBuyNumberData получает копию данных флоу просмотра номеров
func (m *Manager) GetBuyNumberData(userID int64) (*flows.BuyNumberFlowData, error) {
	data, ok := m.GetData(userID)
	if !ok {
		return nil, fmt.Errorf("no data for user %d", userID)
	}

	flowData, ok := data.(*flows.BuyNumberFlowData)
	if !ok {
		return nil, fmt.Errorf("invalid data type for user %d", userID)
	}

	cp := *flowData
	return &cp, nil
}
