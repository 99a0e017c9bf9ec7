package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"cbrbot/internal/domain"
)

// maxDocumentSize bounds the feed body; a daily document is a few kilobytes.
const maxDocumentSize = 4 << 20

type CBRFeedClient struct {
	http    *http.Client
	feedURL string
}

// FetchDocument performs a single GET of the feed. Anything but HTTP 200 is a transport error.
func (c *CBRFeedClient) FetchDocument(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request for %q: %w", domain.ErrTransport, c.feedURL, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request for %q: %w", domain.ErrTransport, c.feedURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d from %q", domain.ErrTransport, resp.StatusCode, c.feedURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response from %q: %w", domain.ErrTransport, c.feedURL, err)
	}
	return body, nil
}

func NewCBRFeedClient(httpClient *http.Client, feedURL string) *CBRFeedClient {
	return &CBRFeedClient{http: httpClient, feedURL: feedURL}
}
