package lookups

import "context"

type (
	Storage interface {
		CreateLookup(ctx context.Context, lookup Lookup) error
		GetLookupStats(ctx context.Context, criteria StatsCriteria) ([]ServiceStats, error)
	}
)
