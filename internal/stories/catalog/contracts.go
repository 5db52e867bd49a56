package catalog

import "context"

type (
	Fetcher interface {
		FetchCountries(ctx context.Context) ([]Country, error)
		FetchPrices(ctx context.Context, service ServiceCode) (PriceList, error)
	}
)
