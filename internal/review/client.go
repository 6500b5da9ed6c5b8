package review

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// DefaultEndpoint is the production homework status API.
const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

// tokenType is sent verbatim as the Authorization scheme.
const tokenType = "OAuth"

type Client struct {
	endpoint string
	client   *http.Client
	now      func() time.Time
}

func NewClient(endpoint, token string, timeout time.Duration) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token, TokenType: tokenType},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = timeout

	return &Client{
		endpoint: endpoint,
		client:   tc,
		now:      time.Now,
	}
}
