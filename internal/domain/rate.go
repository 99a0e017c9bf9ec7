package domain

import (
	"maps"
	"slices"
	"time"
)

const (
	// PivotCurrency is the currency every cached rate is quoted against.
	PivotCurrency = "RUB"
	// LastUpdateKey holds the publication date of the cached snapshot.
	LastUpdateKey = "LAST_UPDATE"
)

// RateSnapshot is one publication of the feed: RUB per one unit of each currency.
type RateSnapshot struct {
	Date  string
	Rates map[string]float64
}

// Codes returns the snapshot currency codes in lexicographic order.
func (s RateSnapshot) Codes() []string {
	codes := slices.Collect(maps.Keys(s.Rates))
	slices.Sort(codes)
	return codes
}

type CodeRate struct {
	Code  string
	Value string
}

// RateListing is what the cache currently holds, ordered by code.
type RateListing struct {
	Date  string
	Rates []CodeRate
}

type RatesUpdatedEvent struct {
	ExecID     string    `json:"exec_id"`
	Date       string    `json:"date"`
	Currencies int       `json:"currencies"`
	SyncedAt   time.Time `json:"synced_at"`
}
