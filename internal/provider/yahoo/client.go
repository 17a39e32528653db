// Package yahoo provides the Yahoo Fantasy Sports client and the scoreboard
// normalizer used by the extractor.
//
// Yahoo uses OAuth2 with a long-lived refresh token. The client exchanges the
// refresh token for access tokens through golang.org/x/oauth2 and rate limits
// requests with a token bucket limiter.
package yahoo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/jyoun110/FantasyComp/internal/config"
)

// Options configures endpoints and throttling.
type Options struct {
	BaseURL           string
	AuthURL           string
	TokenURL          string
	RequestsPerMinute int

	// HTTPClient is the base client for token and API calls.
	// Defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

// OptionsFromConfig maps the shared configuration onto client options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		BaseURL:           cfg.YahooAPIURL,
		AuthURL:           cfg.YahooAuthURL,
		TokenURL:          cfg.YahooTokenURL,
		RequestsPerMinute: cfg.RequestsPerMinute,
	}
}

// Client is the authenticated HTTP client for Yahoo Fantasy endpoints.
type Client struct {
	httpClient *http.Client
	tokens     oauth2.TokenSource
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a Yahoo client. No network call is made until the first
// request or Validate.
func NewClient(ctx context.Context, creds config.Credentials, opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	base := opts.HTTPClient
	if base == nil {
		base = &http.Client{Timeout: 30 * time.Second}
	}
	rpm := opts.RequestsPerMinute
	if rpm < 1 {
		rpm = 60
	}

	oc := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  "oob",
		Endpoint: oauth2.Endpoint{
			AuthURL:   opts.AuthURL,
			TokenURL:  opts.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	// The oauth2 package picks up the base client from the context for
	// token refreshes and as the transport under the authorized client.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	tokens := oc.TokenSource(ctx, &oauth2.Token{RefreshToken: creds.RefreshToken})
	httpClient := oauth2.NewClient(ctx, tokens)
	httpClient.Timeout = base.Timeout

	return &Client{
		httpClient: httpClient,
		tokens:     tokens,
		baseURL:    opts.BaseURL,
		limiter:    rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
		logger:     logger,
	}
}

// Validate forces a token refresh so bad credentials fail before any data
// request is made.
func (c *Client) Validate(ctx context.Context) error {
	tok, err := c.tokens.Token()
	if err != nil {
		return classify("token refresh", err)
	}
	if !tok.Valid() {
		return fmt.Errorf("%w: refreshed token is not valid", ErrAuth)
	}
	c.logger.Debug("Yahoo token valid", "expiry", tok.Expiry)
	return nil
}

// get performs a rate-limited GET and returns the raw JSON body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("format", "json")
	u := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classify("http request "+path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ErrTransient, err)
	}
	c.logger.Debug("Yahoo request", "path", path, "status", resp.StatusCode,
		"bytes", len(body), "duration", time.Since(start).Round(time.Millisecond))

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: yahoo %s returned %d: %s", ErrAuth, path, resp.StatusCode, truncate(body, 200))
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: yahoo %s returned %d: %s", ErrTransient, path, resp.StatusCode, truncate(body, 200))
	default:
		return nil, fmt.Errorf("yahoo %s returned %d: %s", path, resp.StatusCode, truncate(body, 200))
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("decode response %s: invalid JSON: %s", path, truncate(body, 200))
	}
	return body, nil
}

// classify maps transport and token errors onto ErrAuth / ErrTransient.
func classify(op string, err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		return fmt.Errorf("%w: %s: %v", ErrAuth, op, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %s: %v", ErrTransient, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
