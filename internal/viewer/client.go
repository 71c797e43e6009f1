package viewer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/afrireads/bookgate/internal/errors"
)

// ErrViewUnavailable is the generic failure surfaced to readers when the
// secure-view fetch does not succeed. The underlying detail is only logged.
var ErrViewUnavailable = apperrors.New("Unable to load the book viewer")

const maxResponseBodySize = 1 << 20

// Client fetches secure-view payloads from the gateway API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a secure-view client for the given gateway base URL.
// A nil httpClient falls back to a client with a 30 second timeout.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// FetchSecureView performs the single secure-view request for a book using
// the reader's bearer credential. Non-success responses collapse to
// ErrViewUnavailable with the response body logged.
func (c *Client) FetchSecureView(
	ctx context.Context,
	bearerToken string,
	bookID uuid.UUID,
) (*ViewPayload, error) {
	url := fmt.Sprintf("%s/v1/books/%s/secure-view", c.baseURL, bookID.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build secure view request")
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("secure view request failed",
				slog.String("book_id", bookID.String()),
				slog.Any("error", err),
			)
		}
		return nil, ErrViewUnavailable
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read secure view response")
	}

	if resp.StatusCode != http.StatusOK {
		if c.logger != nil {
			c.logger.Warn("secure view request denied",
				slog.String("book_id", bookID.String()),
				slog.Int("status", resp.StatusCode),
				slog.String("body", string(body)),
			)
		}
		return nil, ErrViewUnavailable
	}

	return ParseViewPayload(body)
}
