package practicum

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"homework-bot/model"
)

type Client struct {
	endpoint string
	token    string
	http     *http.Client
	now      func() time.Time
}

type Option func(*Client)

// WithClock replaces time.Now as the source of the fallback cursor.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func NewClient(endpoint, token string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: timeout},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Poll fetches statuses updated since cursor and validates the answer.
func (c *Client) Poll(ctx context.Context, cursor int64) (*model.StatusResponse, error) {
	answer, err := c.GetAPIAnswer(ctx, cursor)
	if err != nil {
		return nil, err
	}

	return CheckResponse(answer)
}

// GetAPIAnswer requests the endpoint and returns the decoded JSON body.
// A zero cursor means "from now".
func (c *Client) GetAPIAnswer(ctx context.Context, cursor int64) (any, error) {
	if cursor == 0 {
		cursor = c.now().Unix()
	}
	params := url.Values{}
	params.Set("from_date", strconv.FormatInt(cursor, 10))

	slog.Info("requesting endpoint", slog.String("endpoint", c.endpoint), slog.Int64("from_date", cursor))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrapf(ErrConnection, "can't create request: %v", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(ErrConnection, "endpoint error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrConnection, "endpoint %s answered %s", c.endpoint, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(ErrConnection, "can't read response body: %v", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.Wrap(ErrPayload, "empty response body")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var answer any
	if err := dec.Decode(&answer); err != nil {
		return nil, errors.Wrapf(ErrPayload, "can't decode response from %s with params from_date=%d: %v",
			c.endpoint, cursor, err)
	}

	return answer, nil
}
