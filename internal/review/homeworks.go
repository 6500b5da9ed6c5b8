package review

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/erkineren/homework-monitor/internal/apperr"
)

const maxAnswerSize = 1 << 20

// Fetch requests homework status updates after since (unix seconds). A zero
// since means "from now". The raw body is returned for the validator.
func (c *Client) Fetch(ctx context.Context, since int64) ([]byte, error) {
	if since == 0 {
		since = c.now().Unix()
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, apperr.Wrap(apperr.TransportUnavailable, "fetch", fmt.Errorf("invalid endpoint: %w", err))
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(since, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.TransportUnavailable, "fetch", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.TransportUnavailable, "fetch", fmt.Errorf("failed to request homework statuses: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxAnswerSize))
		return nil, apperr.New(apperr.TransportUnavailable, "fetch", "homework API returned %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAnswerSize))
	if err != nil {
		return nil, apperr.Wrap(apperr.TransportUnavailable, "fetch", fmt.Errorf("failed to read answer: %w", err))
	}

	return body, nil
}
