// Package navfeed provides a client for the external mutual-fund NAV service
package navfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/priyanshps/fundtrack/internal/common"
	"github.com/priyanshps/fundtrack/internal/interfaces"
	"github.com/priyanshps/fundtrack/internal/models"
)

const (
	DefaultBaseURL   = "https://latest-mutual-fund-nav.p.rapidapi.com"
	DefaultAPIHost   = "latest-mutual-fund-nav.p.rapidapi.com"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the NAVFeedClient interface
type Client struct {
	baseURL    string
	apiKey     string
	apiHost    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithAPIHost sets the host credential header value
func WithAPIHost(apiHost string) ClientOption {
	return func(c *Client) {
		c.apiHost = apiHost
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new NAV feed client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		apiHost: DefaultAPIHost,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("NAV feed error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// navRecord is the feed's wire format. Scheme_Code and Net_Asset_Value arrive
// as JSON numbers.
type navRecord struct {
	SchemeCode    json.Number `json:"Scheme_Code"`
	SchemeName    string      `json:"Scheme_Name"`
	NetAssetValue json.Number `json:"Net_Asset_Value"`
	Date          string      `json:"Date"`
}

// latest performs a rate-limited GET against the /latest endpoint and decodes
// the JSON array response. A non-array payload is a format error; the whole
// batch fails, never partially.
func (c *Client) latest(ctx context.Context, params url.Values) ([]models.NAVRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params.Set("Scheme_Type", "Open")
	reqURL := c.baseURL + "/latest?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("x-rapidapi-host", c.apiHost)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("query", params.Encode()).Msg("NAV feed request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   "/latest",
		}
	}

	var raw []navRecord
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid NAV feed response format: %w", err)
	}

	records := make([]models.NAVRecord, 0, len(raw))
	for _, r := range raw {
		nav, _ := r.NetAssetValue.Float64()
		records = append(records, models.NAVRecord{
			SchemeCode:    r.SchemeCode.String(),
			SchemeName:    r.SchemeName,
			NetAssetValue: nav,
			Date:          r.Date,
		})
	}
	return records, nil
}

// LatestNAV retrieves latest prices for a batch of scheme codes in a single
// request. The codes are sent comma-joined in one query parameter.
func (c *Client) LatestNAV(ctx context.Context, schemeCodes []string) ([]models.NAVRecord, error) {
	if len(schemeCodes) == 0 {
		return nil, fmt.Errorf("at least one scheme code is required")
	}

	params := url.Values{}
	params.Set("Scheme_Code", strings.Join(schemeCodes, ","))
	return c.latest(ctx, params)
}

// ListOpenSchemes retrieves the full open-scheme NAV list.
func (c *Client) ListOpenSchemes(ctx context.Context) ([]models.NAVRecord, error) {
	return c.latest(ctx, url.Values{})
}

// Ensure Client implements NAVFeedClient
var _ interfaces.NAVFeedClient = (*Client)(nil)
