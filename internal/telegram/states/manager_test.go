package states

import (
	"sync"
	"testing"
	"time"

	"numbers-bot/internal/stories/catalog"
	"numbers-bot/internal/telegram/flows"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestManager(ttl time.Duration) (*Manager, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	m := NewManager(ttl)
	m.now = clock.Now
	return m, clock
}

func TestManagerUsersAreIsolated(t *testing.T) {
	m, _ := newTestManager(time.Minute)

	m.SetState(1, UserBuyNumberCatalogShown, &flows.BuyNumberFlowData{Service: catalog.ServiceWhatsApp})
	m.SetState(2, UserBuyNumberCatalogShown, &flows.BuyNumberFlowData{Service: catalog.ServiceTelegram})

	first, err := m.GetBuyNumberData(1)
	if err != nil {
		t.Fatalf("GetBuyNumberData(1) error = %v", err)
	}
	second, err := m.GetBuyNumberData(2)
	if err != nil {
		t.Fatalf("GetBuyNumberData(2) error = %v", err)
	}

	if first.Service != catalog.ServiceWhatsApp || second.Service != catalog.ServiceTelegram {
		t.Errorf("services = %q, %q", first.Service, second.Service)
	}

	m.Clear(1)
	if got := m.GetState(1); got != StateNone {
		t.Errorf("GetState(1) after Clear = %q, want %q", got, StateNone)
	}
	if got := m.GetState(2); got != UserBuyNumberCatalogShown {
		t.Errorf("GetState(2) = %q, want %q", got, UserBuyNumberCatalogShown)
	}
}

func TestManagerSelectionOverwritten(t *testing.T) {
	m, _ := newTestManager(time.Minute)

	m.SetState(1, UserBuyNumberCatalogShown, &flows.BuyNumberFlowData{Service: catalog.ServiceWhatsApp})
	m.SetState(1, UserBuyNumberCatalogShown, &flows.BuyNumberFlowData{Service: catalog.ServiceTelegram})

	data, err := m.GetBuyNumberData(1)
	if err != nil {
		t.Fatalf("GetBuyNumberData() error = %v", err)
	}
	if data.Service != catalog.ServiceTelegram {
		t.Errorf("Service = %q, want %q", data.Service, catalog.ServiceTelegram)
	}
}

func TestManagerSetStateNilDataKeepsData(t *testing.T) {
	m, _ := newTestManager(time.Minute)

	m.SetState(1, UserBuyNumberWaitService, &flows.BuyNumberFlowData{Language: "en"})
	m.SetState(1, UserBuyNumberCatalogShown, nil)

	data, err := m.GetBuyNumberData(1)
	if err != nil {
		t.Fatalf("GetBuyNumberData() error = %v", err)
	}
	if data.Language != "en" {
		t.Errorf("Language = %q, want en", data.Language)
	}
}

func TestManagerReturnsCopy(t *testing.T) {
	m, _ := newTestManager(time.Minute)
	m.SetState(1, UserBuyNumberWaitService, &flows.BuyNumberFlowData{Service: catalog.ServiceWhatsApp})

	data, _ := m.GetBuyNumberData(1)
	data.Service = catalog.ServiceTelegram

	again, _ := m.GetBuyNumberData(1)
	if again.Service != catalog.ServiceWhatsApp {
		t.Errorf("stored data mutated through returned pointer: %q", again.Service)
	}
}

func TestManagerExpiry(t *testing.T) {
	m, clock := newTestManager(10 * time.Minute)

	m.SetState(1, UserBuyNumberCatalogShown, &flows.BuyNumberFlowData{Service: catalog.ServiceWhatsApp})
	m.SetState(2, UserBuyNumberWaitService, &flows.BuyNumberFlowData{})

	clock.Advance(9 * time.Minute)
	m.SetState(2, UserBuyNumberWaitService, nil)
	clock.Advance(2 * time.Minute)

	if got := m.GetState(1); got != StateNone {
		t.Errorf("expired GetState(1) = %q, want %q", got, StateNone)
	}
	if _, err := m.GetBuyNumberData(1); err == nil {
		t.Error("GetBuyNumberData(1) on expired session error = nil")
	}
	if got := m.GetState(2); got != UserBuyNumberWaitService {
		t.Errorf("GetState(2) = %q, want %q", got, UserBuyNumberWaitService)
	}

	if removed := m.Sweep(); removed != 1 {
		t.Errorf("Sweep() removed %d, want 1", removed)
	}
	if got := m.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestManagerExpiredSessionStartsClean(t *testing.T) {
	m, clock := newTestManager(time.Minute)

	m.SetState(1, UserBuyNumberCatalogShown, &flows.BuyNumberFlowData{Service: catalog.ServiceWhatsApp})
	clock.Advance(2 * time.Minute)
	m.SetState(1, UserBuyNumberWaitService, nil)

	if _, err := m.GetBuyNumberData(1); err == nil {
		t.Error("data from expired session survived")
	}
}
