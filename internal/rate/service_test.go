package rate

import (
	"context"
	"fmt"
	"testing"

	"cbrbot/internal/adapters/memory"
	"cbrbot/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seededService() *Service {
	return NewService(memory.NewStoreWith(map[string]string{
		"USD":                "90",
		"EUR":                "100",
		"JPY":                "0.6485",
		domain.LastUpdateKey: "01.01.2024",
	}))
}

func TestService_Convert(t *testing.T) {
	cases := []struct {
		name     string
		from, to string
		amount   string
		want     string
	}{
		{name: "from pivot", from: "RUB", to: "USD", amount: "10", want: "0.11111"},
		{name: "to pivot", from: "USD", to: "RUB", amount: "10", want: "900.00000"},
		{name: "cross rate", from: "USD", to: "EUR", amount: "10", want: "9.00000"},
		{name: "same currency", from: "USD", to: "USD", amount: "2.5", want: "2.50000"},
		{name: "fractional rate", from: "JPY", to: "RUB", amount: "1000", want: "648.50000"},
		{name: "zero amount", from: "EUR", to: "USD", amount: "0", want: "0.00000"},
		{name: "negative amount", from: "RUB", to: "EUR", amount: "-50", want: "-0.50000"},
	}

	s := seededService()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Convert(context.Background(), tc.from, tc.to, decimal.RequireFromString(tc.amount))
			require.NoError(t, err)
			require.Equal(t, tc.want, got.StringFixed(5))
		})
	}
}

func TestService_Convert_MissingRate(t *testing.T) {
	s := seededService()

	_, err := s.Convert(context.Background(), "USD", "GBP", decimal.NewFromInt(1))
	require.ErrorIs(t, err, domain.ErrRateNotFound)

	_, err = s.Convert(context.Background(), "GBP", "RUB", decimal.NewFromInt(1))
	require.ErrorIs(t, err, domain.ErrRateNotFound)

	// the pivot itself is never cached
	_, err = s.Convert(context.Background(), "RUB", "RUB", decimal.NewFromInt(1))
	require.ErrorIs(t, err, domain.ErrRateNotFound)
}

func TestService_Convert_BadCachedValue(t *testing.T) {
	s := NewService(memory.NewStoreWith(map[string]string{"USD": "abc", "EUR": "0"}))

	_, err := s.Convert(context.Background(), "USD", "RUB", decimal.NewFromInt(1))
	require.ErrorContains(t, err, "is not a number")

	_, err = s.Convert(context.Background(), "RUB", "EUR", decimal.NewFromInt(1))
	require.ErrorContains(t, err, "is not positive")
}

func TestService_Convert_StoreError(t *testing.T) {
	store := new(MockRateStore)
	storeErr := fmt.Errorf("%w: dial tcp: connection refused", domain.ErrCacheUnavailable)
	store.On("Get", mock.Anything, "USD").Return("", false, storeErr).Once()

	_, err := NewService(store).Convert(context.Background(), "USD", "RUB", decimal.NewFromInt(1))

	require.ErrorIs(t, err, domain.ErrCacheUnavailable)
	store.AssertExpectations(t)
}

func TestService_ListRates(t *testing.T) {
	listing, err := seededService().ListRates(context.Background())

	require.NoError(t, err)
	require.Equal(t, domain.RateListing{
		Date: "01.01.2024",
		Rates: []domain.CodeRate{
			{Code: "EUR", Value: "100"},
			{Code: "JPY", Value: "0.6485"},
			{Code: "USD", Value: "90"},
		},
	}, listing)
}

func TestService_ListRates_MissingLastUpdate(t *testing.T) {
	s := NewService(memory.NewStoreWith(map[string]string{"USD": "90"}))

	_, err := s.ListRates(context.Background())

	require.ErrorIs(t, err, domain.ErrRateNotFound)
	require.ErrorContains(t, err, domain.LastUpdateKey)
}

func TestService_ListRates_OnlyDate(t *testing.T) {
	s := NewService(memory.NewStoreWith(map[string]string{domain.LastUpdateKey: "01.01.2024"}))

	listing, err := s.ListRates(context.Background())

	require.NoError(t, err)
	require.Equal(t, "01.01.2024", listing.Date)
	require.Empty(t, listing.Rates)
}

func TestService_ListRates_KeyVanished(t *testing.T) {
	store := new(MockRateStore)
	store.On("Get", mock.Anything, domain.LastUpdateKey).Return("01.01.2024", true, nil).Once()
	store.On("Keys", mock.Anything).Return([]string{"USD", domain.LastUpdateKey}, nil).Once()
	store.On("Get", mock.Anything, "USD").Return("", false, nil).Once()

	_, err := NewService(store).ListRates(context.Background())

	require.ErrorIs(t, err, domain.ErrRateNotFound)
	require.ErrorContains(t, err, "vanished while listing")
	store.AssertExpectations(t)
}

func TestService_ListRates_KeysError(t *testing.T) {
	store := new(MockRateStore)
	store.On("Get", mock.Anything, domain.LastUpdateKey).Return("01.01.2024", true, nil).Once()
	store.On("Keys", mock.Anything).Return(nil, domain.ErrCacheUnavailable).Once()

	_, err := NewService(store).ListRates(context.Background())

	require.ErrorIs(t, err, domain.ErrCacheUnavailable)
	store.AssertExpectations(t)
}
