package rate

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cbrbot/internal/adapters"
	"cbrbot/internal/domain"
	"cbrbot/internal/metrics"

	"github.com/sirupsen/logrus"
)

// Syncer refreshes the cache from the upstream feed.
type Syncer struct {
	feedClient adapters.FeedClient
	store      adapters.RateStore
	publisher  adapters.EventPublisher // optional
	now        func() time.Time
}

// Sync runs fetch -> parse -> store once. Nothing is written unless the document parsed completely.
// Writes are not atomic: a store failure mid-way leaves a mix of old and new values.
func (s *Syncer) Sync(ctx context.Context, execID string) error {
	err := s.sync(ctx, execID)
	metrics.ObserveSync(err, s.now())
	return err
}

func (s *Syncer) sync(ctx context.Context, execID string) error {
	// STEP 1: fetching the feed document
	doc, err := s.feedClient.FetchDocument(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch rates feed: %w", err)
	}

	// STEP 2: parsing it into a snapshot
	snapshot, err := ParseDocument(doc)
	if err != nil {
		return fmt.Errorf("failed to parse rates feed: %w", err)
	}

	// STEP 3: writing every code, then the date. LAST_UPDATE goes last so a new
	// date is only visible once all codes of that date are in place
	if err = storeSnapshot(ctx, s.store, snapshot); err != nil {
		return err
	}
	logrus.Infof("Rates updated for date %s, %d currencies; execID: %s", snapshot.Date, len(snapshot.Rates), execID)

	// STEP 4: announcing the update, a failure here doesn't undo the sync
	if s.publisher != nil {
		event := domain.RatesUpdatedEvent{
			ExecID:     execID,
			Date:       snapshot.Date,
			Currencies: len(snapshot.Rates),
			SyncedAt:   s.now().UTC(),
		}
		if pubErr := s.publisher.PublishRatesUpdated(ctx, event); pubErr != nil {
			logrus.WithError(pubErr).Warnf("Rates updated event wasn't published; execID: %s", execID)
		}
	}
	return nil
}

func storeSnapshot(ctx context.Context, store adapters.RateStore, snapshot domain.RateSnapshot) error {
	for _, code := range snapshot.Codes() {
		if err := store.Set(ctx, code, FormatRate(snapshot.Rates[code])); err != nil {
			return fmt.Errorf("failed to store rate %s: %w", code, err)
		}
	}
	if err := store.Set(ctx, domain.LastUpdateKey, snapshot.Date); err != nil {
		return fmt.Errorf("failed to store last update date: %w", err)
	}
	return nil
}

// FormatRate renders a rate with the shortest representation that parses back to the same value,
// always with a fractional part: 90 is stored as "90.0".
func FormatRate(v float64) string {
	return WithFraction(strconv.FormatFloat(v, 'f', -1, 64))
}

// WithFraction appends ".0" to a plain integer literal.
func WithFraction(number string) string {
	if strings.Contains(number, ".") {
		return number
	}
	return number + ".0"
}

func NewSyncer(feedClient adapters.FeedClient, store adapters.RateStore, publisher adapters.EventPublisher) *Syncer {
	return &Syncer{feedClient: feedClient, store: store, publisher: publisher, now: time.Now}
}
