package slack

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const sendTimeout = 15 * time.Second

// Client posts message payloads to one incoming-webhook URL. Delivery is
// fire-and-forget from the pipeline's point of view: failures surface to
// the caller and are never retried here.
type Client struct {
	url    string
	http   *http.Client
	logger zerolog.Logger
}

func NewClient(url string, logger zerolog.Logger) *Client {
	return &Client{
		url:    url,
		http:   &http.Client{Timeout: sendTimeout},
		logger: logger,
	}
}

// Send posts one JSON body to the webhook.
func (c *Client) Send(ctx context.Context, body string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("post webhook: http %s", resp.Status)
	}

	c.logger.Debug().Int("bytes", len(body)).Msg("webhook message sent")
	return nil
}
