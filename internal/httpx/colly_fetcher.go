package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultUserAgent = "recipe-scrape/0.1.0 (https://github.com/sd2k/recipes)"
	DefaultTimeout   = 10 * time.Second
)

// CollyFetcher issues one GET per call through a fresh Colly collector,
// waiting on a per-host limiter first. It never retries.
type CollyFetcher struct {
	userAgent     string
	timeout       time.Duration
	respectRobots bool
	mu            sync.Mutex
	defaultRate   rate.Limit
	defaultBurst  int
	hosts         map[string]*rate.Limiter
}

type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch error (status %d)", e.Status)
	}
	return fmt.Sprintf("fetch error (status %d): %v", e.Status, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Option func(*CollyFetcher)

func WithTimeout(d time.Duration) Option {
	return func(f *CollyFetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithRobots makes the collector consult robots.txt before the page request.
// This costs an extra request per host.
func WithRobots(respect bool) Option {
	return func(f *CollyFetcher) {
		f.respectRobots = respect
	}
}

func WithDefaultRate(per time.Duration, burst int) Option {
	return func(f *CollyFetcher) {
		if per > 0 && burst > 0 {
			f.defaultRate = rate.Every(per)
			f.defaultBurst = burst
		}
	}
}

func NewCollyFetcher(userAgent string, opts ...Option) *CollyFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	f := &CollyFetcher{
		userAgent:    userAgent,
		timeout:      DefaultTimeout,
		defaultRate:  rate.Every(time.Second),
		defaultBurst: 2,
		hosts:        make(map[string]*rate.Limiter),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *CollyFetcher) SetHostLimit(host string, per time.Duration, burst int) {
	if host == "" || per <= 0 || burst <= 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hosts[normalizeHost(host)] = rate.NewLimiter(rate.Every(per), burst)
}

// FetchBytes returns the body of a 2xx response. Anything else, including
// transport failures and timeouts, is a *FetchError.
func (f *CollyFetcher) FetchBytes(ctx context.Context, rawURL string) ([]byte, int, error) {
	var body []byte
	status, err := f.Fetch(ctx, rawURL, func(c *colly.Collector) {
		c.OnResponse(func(r *colly.Response) {
			body = append([]byte(nil), r.Body...)
		})
	})
	if err != nil {
		return nil, status, err
	}
	return body, status, nil
}

// Fetch performs the request, letting register attach Colly callbacks.
func (f *CollyFetcher) Fetch(ctx context.Context, rawURL string, register func(*colly.Collector)) (int, error) {
	target, err := normalizeURL(rawURL)
	if err != nil {
		return 0, &FetchError{Err: err}
	}
	if err := f.limiter(hostKey(target)).Wait(ctx); err != nil {
		return 0, &FetchError{Err: err}
	}
	status, err := f.fetchOnce(ctx, target, register)
	if err != nil {
		return status, &FetchError{Status: status, Err: err}
	}
	return status, nil
}

func (f *CollyFetcher) fetchOnce(ctx context.Context, target string, register func(*colly.Collector)) (int, error) {
	c := f.newCollector(ctx)
	if register != nil {
		register(c)
	}

	status := 0
	var reqErr error
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		reqErr = err
	})

	if err := c.Request(http.MethodGet, target, nil, nil, nil); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			return status, fmt.Errorf("%w: %v", ctxErr, err)
		}
		return status, err
	}
	if reqErr != nil {
		return status, reqErr
	}
	if status < 200 || status > 299 {
		return status, fmt.Errorf("status %d", status)
	}
	return status, nil
}

func (f *CollyFetcher) newCollector(ctx context.Context) *colly.Collector {
	c := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		colly.StdlibContext(ctx),
	)
	c.IgnoreRobotsTxt = !f.respectRobots
	// Status is judged in fetchOnce; colly alone would reject 203 and above.
	c.ParseHTTPErrorResponse = true
	c.AllowURLRevisit = true
	c.SetRequestTimeout(f.timeout)
	return c
}

func (f *CollyFetcher) limiter(host string) *rate.Limiter {
	if host == "" {
		host = "default"
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if l, ok := f.hosts[host]; ok {
		return l
	}
	l := rate.NewLimiter(f.defaultRate, f.defaultBurst)
	f.hosts[host] = l
	return l
}

func normalizeURL(rawURL string) (string, error) {
	if rawURL == "" {
		return "", errors.New("empty url")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	return u.String(), nil
}

func normalizeHost(host string) string {
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	return host
}

func hostKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "default"
	}
	return normalizeHost(u.Hostname())
}
