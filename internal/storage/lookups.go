package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"numbers-bot/internal/stories/catalog"
	"numbers-bot/internal/stories/lookups"
)

const lookupsTable = "price_lookups"

type lookupStatsRow struct {
	Service string `db:"service"`
	Lookups int64  `db:"lookups"`
	Failed  int64  `db:"failed"`
}

func (s *storageImpl) CreateLookup(ctx context.Context, lookup lookups.Lookup) error {
	params := map[string]interface{}{
		"telegram_id":     lookup.TelegramID,
		"service":         string(lookup.Service),
		"countries_shown": lookup.CountriesShown,
		"failed":          lookup.Failed,
		"created_at":      s.now(),
	}

	q, args, err := s.stmpBuilder().
		Insert(lookupsTable).
		SetMap(params).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sql query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("db.ExecContext: %w", err)
	}

	return nil
}

func (s *storageImpl) GetLookupStats(ctx context.Context, criteria lookups.StatsCriteria) ([]lookups.ServiceStats, error) {
	query := s.stmpBuilder().
		Select(
			"service",
			"COUNT(*) AS lookups",
			"COALESCE(SUM(CASE WHEN failed THEN 1 ELSE 0 END), 0) AS failed",
		).
		From(lookupsTable).
		GroupBy("service").
		OrderBy("service")

	if criteria.Since != nil {
		query = query.Where(sq.GtOrEq{"created_at": criteria.Since.UTC()})
	}

	q, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql query: %w", err)
	}

	var rows []lookupStatsRow
	if err := s.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext: %w", err)
	}

	result := make([]lookups.ServiceStats, 0, len(rows))
	for _, r := range rows {
		result = append(result, lookups.ServiceStats{
			Service: catalog.ServiceCode(r.Service),
			Lookups: r.Lookups,
			Failed:  r.Failed,
		})
	}

	return result, nil
}
