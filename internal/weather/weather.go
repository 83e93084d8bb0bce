// Package weather fetches a one-line weather summary from a wttr.in style
// endpoint.
package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Unavailable is what the display shows when no weather could be fetched.
const Unavailable = "Weather N/A"

var (
	ErrTimeout     = errors.New("weather: request timed out")
	ErrNotFound    = errors.New("weather: location not found")
	ErrUnavailable = errors.New("weather: service unavailable")
	ErrEmpty       = errors.New("weather: empty response")
)

// Client asks a wttr.in compatible service for "{BaseURL}/{Location}?format={Format}".
type Client struct {
	BaseURL  string
	Location string
	Format   string // e.g. %C+%t, condition and temperature
	HTTP     *http.Client
}

// NewClient returns a client with a request timeout.
func NewClient(baseURL, location, format string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Location: location,
		Format:   format,
		HTTP:     &http.Client{Timeout: timeout},
	}
}

func (c *Client) requestURL() string {
	// format is passed through as written, wttr.in reads '+' as a space
	return fmt.Sprintf("%s/%s?format=%s", c.BaseURL, url.PathEscape(c.Location), c.Format)
}

// Fetch returns the trimmed summary or one of the Err* conditions, wrapped.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	// wttr.in answers curl with plain text
	req.Header.Set("User-Agent", "curl/8 inkclock")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", classify(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", ErrNotFound, c.Location)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", classify(err)
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

func classify(err error) error {
	var ne interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// Display fetches the summary and falls back to Unavailable.  The failure,
// if any, is returned so callers can report it.
func (c *Client) Display(ctx context.Context) (string, error) {
	text, err := c.Fetch(ctx)
	if err != nil {
		log.Printf("weather for %s: %v", c.Location, err)
		return Unavailable, err
	}
	return text, nil
}
