package adapters

import (
	"context"

	"cbrbot/internal/domain"
)

type FeedClient interface {
	FetchDocument(ctx context.Context) ([]byte, error)
}

// RateStore is the flat key→string cache shared by the sync job and the command handlers.
// Get reports found == false for a missing key without an error.
type RateStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
	Keys(ctx context.Context) ([]string, error)
}

type EventPublisher interface {
	PublishRatesUpdated(ctx context.Context, event domain.RatesUpdatedEvent) error
}
