package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/labstack/gommon/log"
)

// Client looks up assets over HTTP. Transient failures are retried with
// exponential backoff; a 404 maps to ErrNotFound without retrying.
type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

func (c *Client) Lookup(ctx context.Context, articleID int64, kind Kind) (*Asset, error) {
	url := fmt.Sprintf("%s/assets/%d/%s", c.endpoint, articleID, kind)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 100 * time.Millisecond
	bo.MaxInterval = 1 * time.Second
	bo.MaxElapsedTime = 3 * time.Second

	var asset *Asset
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.http.Do(req)
		if err != nil {
			log.Warnf("asset lookup failed, retrying: %v", err)
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(ErrNotFound)
		case resp.StatusCode >= 500:
			log.Warnf("asset service returned %d for %s, retrying", resp.StatusCode, url)
			return fmt.Errorf("asset service returned %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("asset service returned %d", resp.StatusCode))
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		var a Asset
		if err := json.Unmarshal(body, &a); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode asset: %w", err))
		}
		asset = &a
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return asset, nil
}
