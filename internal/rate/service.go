package rate

import (
	"context"
	"fmt"
	"slices"

	"cbrbot/internal/adapters"
	"cbrbot/internal/domain"

	"github.com/shopspring/decimal"
)

// Service answers queries from whatever the cache holds right now; it keeps no state of its own.
type Service struct {
	store adapters.RateStore
}

// Convert converts amount of from into to through the RUB pivot.
func (s *Service) Convert(ctx context.Context, from, to string, amount decimal.Decimal) (decimal.Decimal, error) {
	switch {
	case from == domain.PivotCurrency:
		toRate, err := s.rate(ctx, to)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return amount.Div(toRate), nil
	case to == domain.PivotCurrency:
		fromRate, err := s.rate(ctx, from)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return amount.Mul(fromRate), nil
	default:
		fromRate, err := s.rate(ctx, from)
		if err != nil {
			return decimal.Decimal{}, err
		}
		toRate, err := s.rate(ctx, to)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return amount.Mul(fromRate).Div(toRate), nil
	}
}

// ListRates reads every cached code except LAST_UPDATE, sorted by code.
func (s *Service) ListRates(ctx context.Context) (domain.RateListing, error) {
	date, found, err := s.store.Get(ctx, domain.LastUpdateKey)
	if err != nil {
		return domain.RateListing{}, err
	}
	if !found {
		return domain.RateListing{}, fmt.Errorf("%w: %s is not set", domain.ErrRateNotFound, domain.LastUpdateKey)
	}

	keys, err := s.store.Keys(ctx)
	if err != nil {
		return domain.RateListing{}, err
	}
	slices.Sort(keys)

	listing := domain.RateListing{Date: date, Rates: make([]domain.CodeRate, 0, len(keys))}
	for _, code := range keys {
		if code == domain.LastUpdateKey {
			continue
		}
		value, found, err := s.store.Get(ctx, code)
		if err != nil {
			return domain.RateListing{}, err
		}
		if !found {
			return domain.RateListing{}, fmt.Errorf("%w: %s vanished while listing", domain.ErrRateNotFound, code)
		}
		listing.Rates = append(listing.Rates, domain.CodeRate{Code: code, Value: value})
	}
	return listing, nil
}

func (s *Service) rate(ctx context.Context, code string) (decimal.Decimal, error) {
	raw, found, err := s.store.Get(ctx, code)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if !found {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", domain.ErrRateNotFound, code)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("cached rate %s=%q is not a number: %w", code, raw, err)
	}
	if !value.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("cached rate %s=%q is not positive", code, raw)
	}
	return value, nil
}

func NewService(store adapters.RateStore) *Service {
	return &Service{store: store}
}
