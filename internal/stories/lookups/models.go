package lookups

import (
	"time"

	"numbers-bot/internal/stories/catalog"
)

// Lookup одна попытка показать каталог цен пользователю.
type Lookup struct {
	ID             int64
	TelegramID     int64
	Service        catalog.ServiceCode
	CountriesShown int
	Failed         bool
	CreatedAt      time.Time
}

// ServiceStats агрегат по сервису за период.
type ServiceStats struct {
	Service catalog.ServiceCode
	Lookups int64
	Failed  int64
}

type StatsCriteria struct {
	Since *time.Time
}
