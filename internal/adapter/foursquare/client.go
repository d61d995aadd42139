package foursquare

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/couchcryptid/venue-watch/internal/buffer"
	"github.com/couchcryptid/venue-watch/internal/domain"
	"github.com/couchcryptid/venue-watch/internal/observability"
)

const defaultBaseURL = "https://api.foursquare.com/v2/venues/search"

// Client queries the Foursquare v2 venue-search endpoint.
type Client struct {
	httpClient       *http.Client
	baseURL          string
	maxResponseBytes int
	metrics          *observability.Metrics
	logger           *slog.Logger
}

// NewClient creates a venue-search client. maxResponseBytes bounds the
// buffered body; zero or less leaves it unbounded.
func NewClient(timeout time.Duration, maxResponseBytes int, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:          defaultBaseURL,
		maxResponseBytes: maxResponseBytes,
		metrics:          metrics,
		logger:           logger,
	}
}

// FetchVenues searches for venues with the fixed query and the given
// credentials, calling emit for each venue as it is validated.
func (c *Client) FetchVenues(ctx context.Context, creds domain.Credentials, emit func(domain.Venue)) error {
	u, err := BuildURL(c.baseURL, DefaultQuery(creds))
	if err != nil {
		return err
	}

	buf := buffer.New(c.maxResponseBytes)
	defer buf.Release()

	if err := c.fetch(ctx, u, buf); err != nil {
		return err
	}
	c.metrics.ResponseBytes.Observe(float64(buf.Len()))

	if buf.Len() == 0 {
		return domain.ErrEmptyResponse
	}
	return domain.Extract(buf.Bytes(), emit)
}

// fetch performs the GET and streams the body into buf.
func (c *Client) fetch(ctx context.Context, rawURL string, buf *buffer.Buffer) error {
	// The query carries a literal space from the coords constant.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.ReplaceAll(rawURL, " ", "%20"), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.APIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &domain.TransportError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	if _, err := io.Copy(buf, resp.Body); err != nil {
		if errors.Is(err, domain.ErrAllocation) {
			return fmt.Errorf("buffer response: %w", err)
		}
		return &domain.TransportError{Err: fmt.Errorf("read body: %w", err)}
	}

	c.logger.Debug("venue search response buffered", "bytes", buf.Len())
	return nil
}
