package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Service provides catalog lookups on top of the upstream price API.
type Service struct {
	fetcher Fetcher
}

// NewService creates a new catalog service
func NewService(fetcher Fetcher) *Service {
	return &Service{
		fetcher: fetcher,
	}
}

// LoadCatalog fetches the country catalog and the price list for the service
// concurrently. Nothing is cached: every call hits the upstream API.
func (s *Service) LoadCatalog(ctx context.Context, service ServiceCode) (*Snapshot, error) {
	var (
		countries []Country
		prices    PriceList
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		countries, err = s.fetcher.FetchCountries(gctx)
		if err != nil {
			return fmt.Errorf("fetch countries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		prices, err = s.fetcher.FetchPrices(gctx, service)
		if err != nil {
			return fmt.Errorf("fetch prices: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Snapshot{
		Service:   service,
		Countries: countries,
		Prices:    prices,
	}, nil
}
