// Package openlibrary is a small, rate-limited client for the Open Library
// books API, used to look up catalog metadata by ISBN.
package openlibrary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"libraryapi/internal/platform/retry"
)

const DefaultBaseURL = "https://openlibrary.org"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StatusError is a non-200 answer from Open Library.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
	retryOpts  []retry.Option
}

type Option func(*Client)

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetry tunes the backoff used for 429, 5xx and transport failures.
func WithRetry(opts ...retry.Option) Option {
	return func(c *Client) { c.retryOpts = append(c.retryOpts, opts...) }
}

func NewClient(userAgent string, rps float64, opts ...Option) *Client {
	if rps <= 0 {
		rps = 1
	}
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		userAgent:  userAgent,
		baseURL:    DefaultBaseURL,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		retryOpts:  []retry.Option{retry.WithMaxAttempts(4), retry.WithBaseDelay(time.Second)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Publisher struct {
	Name string `json:"name"`
}

type Author struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Edition matches one entry of api/books?jscmd=data.
type Edition struct {
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle"`
	Authors     []Author    `json:"authors"`
	Publishers  []Publisher `json:"publishers"`
	PublishDate string      `json:"publish_date"`
}

var yearPattern = regexp.MustCompile(`\b(1[0-9]{3}|20[0-9]{2})\b`)

// PublishYear extracts the year from free-form dates like "March 1965".
func (e Edition) PublishYear() (int, bool) {
	m := yearPattern.FindString(e.PublishDate)
	if m == "" {
		return 0, false
	}
	y, err := strconv.Atoi(m)
	return y, err == nil
}

// AuthorNames joins the author names with ", ".
func (e Edition) AuthorNames() string {
	names := make([]string, 0, len(e.Authors))
	for _, a := range e.Authors {
		if n := strings.TrimSpace(a.Name); n != "" {
			names = append(names, n)
		}
	}
	return strings.Join(names, ", ")
}

// EditionsByISBN fetches the editions for isbns in one request. The result is
// keyed by the bare ISBN; unknown ISBNs are simply absent.
func (c *Client) EditionsByISBN(ctx context.Context, isbns []string) (map[string]Edition, error) {
	if len(isbns) == 0 {
		return map[string]Edition{}, nil
	}

	bibkeys := make([]string, len(isbns))
	for i, isbn := range isbns {
		bibkeys[i] = "ISBN:" + isbn
	}
	q := url.Values{}
	q.Set("bibkeys", strings.Join(bibkeys, ","))
	q.Set("jscmd", "data")
	q.Set("format", "json")

	var raw map[string]Edition
	if err := c.get(ctx, c.baseURL+"/api/books?"+q.Encode(), &raw); err != nil {
		return nil, err
	}

	out := make(map[string]Edition, len(raw))
	for key, ed := range raw {
		out[strings.TrimPrefix(key, "ISBN:")] = ed
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, u string, target any) error {
	attempt := func(ctx context.Context) error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return &StatusError{Code: resp.StatusCode}
		}
		return json.NewDecoder(resp.Body).Decode(target)
	}

	opts := append([]retry.Option{retry.If(retryable)}, c.retryOpts...)
	return retry.Do(ctx, attempt, opts...)
}

func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var ue *url.Error
	return errors.As(err, &ue)
}
