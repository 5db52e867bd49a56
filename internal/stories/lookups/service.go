package lookups

import (
	"context"
	"time"

	"github.com/samber/lo"

	"numbers-bot/internal/stories/catalog"
)

// Service records catalog lookups for the admin statistics.
type Service struct {
	storage Storage
	now     func() time.Time
}

func NewService(storage Storage, now func() time.Time) *Service {
	return &Service{
		storage: storage,
		now:     now,
	}
}

func (s *Service) Record(ctx context.Context, telegramID int64, service catalog.ServiceCode, countriesShown int, failed bool) error {
	return s.storage.CreateLookup(ctx, Lookup{
		TelegramID:     telegramID,
		Service:        service,
		CountriesShown: countriesShown,
		Failed:         failed,
	})
}

// StatsSince returns per-service stats for the window ending now.
func (s *Service) StatsSince(ctx context.Context, window time.Duration) ([]ServiceStats, error) {
	return s.storage.GetLookupStats(ctx, StatsCriteria{
		Since: lo.ToPtr(s.now().Add(-window)),
	})
}

func (s *Service) TotalStats(ctx context.Context) ([]ServiceStats, error) {
	return s.storage.GetLookupStats(ctx, StatsCriteria{})
}
