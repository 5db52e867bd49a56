package storage

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"numbers-bot/internal/stories/catalog"
	"numbers-bot/internal/stories/lookups"
	"numbers-bot/internal/stories/users"
)

func newTestStorage(t *testing.T) (*storageImpl, *time.Time) {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("sqlx.Open() error = %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := New(db)
	s.now = func() time.Time { return now }

	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return s, &now
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStorage(t)

	created, err := s.CreateUser(ctx, users.User{TelegramID: 100, Language: "ar"})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if created.ID == 0 || created.TelegramID != 100 || created.Language != "ar" {
		t.Errorf("CreateUser() = %+v", created)
	}

	telegramID := int64(100)
	got, err := s.GetUser(ctx, users.GetCriteria{TelegramID: &telegramID})
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("GetUser() = %+v, want id %d", got, created.ID)
	}

	missing := int64(999)
	got, err = s.GetUser(ctx, users.GetCriteria{TelegramID: &missing})
	if err != nil || got != nil {
		t.Errorf("GetUser(missing) = %+v, %v; want nil, nil", got, err)
	}

	lang := "en"
	updated, err := s.UpdateUser(ctx, users.GetCriteria{ID: &created.ID}, users.UpdateParams{Language: &lang})
	if err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	if updated.Language != "en" {
		t.Errorf("UpdateUser().Language = %q, want en", updated.Language)
	}

	count, err := s.CountUsers(ctx)
	if err != nil || count != 1 {
		t.Errorf("CountUsers() = %d, %v; want 1, nil", count, err)
	}
}

func TestLookupStats(t *testing.T) {
	ctx := context.Background()
	s, now := newTestStorage(t)

	*now = now.Add(-48 * time.Hour)
	mustCreateLookup(t, s, lookups.Lookup{TelegramID: 1, Service: catalog.ServiceWhatsApp, CountriesShown: 3})

	*now = now.Add(47 * time.Hour)
	mustCreateLookup(t, s, lookups.Lookup{TelegramID: 1, Service: catalog.ServiceWhatsApp, CountriesShown: 4})
	mustCreateLookup(t, s, lookups.Lookup{TelegramID: 2, Service: catalog.ServiceWhatsApp, Failed: true})
	mustCreateLookup(t, s, lookups.Lookup{TelegramID: 2, Service: catalog.ServiceTelegram, CountriesShown: 1})

	total, err := s.GetLookupStats(ctx, lookups.StatsCriteria{})
	if err != nil {
		t.Fatalf("GetLookupStats() error = %v", err)
	}
	want := []lookups.ServiceStats{
		{Service: catalog.ServiceTelegram, Lookups: 1, Failed: 0},
		{Service: catalog.ServiceWhatsApp, Lookups: 3, Failed: 1},
	}
	assertStats(t, total, want)

	since := now.Add(-2 * time.Hour)
	recent, err := s.GetLookupStats(ctx, lookups.StatsCriteria{Since: &since})
	if err != nil {
		t.Fatalf("GetLookupStats(since) error = %v", err)
	}
	want = []lookups.ServiceStats{
		{Service: catalog.ServiceTelegram, Lookups: 1, Failed: 0},
		{Service: catalog.ServiceWhatsApp, Lookups: 2, Failed: 1},
	}
	assertStats(t, recent, want)
}

func mustCreateLookup(t *testing.T, s *storageImpl, l lookups.Lookup) {
	t.Helper()
	if err := s.CreateLookup(context.Background(), l); err != nil {
		t.Fatalf("CreateLookup() error = %v", err)
	}
}

func assertStats(t *testing.T, got, want []lookups.ServiceStats) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("stats = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stats[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
