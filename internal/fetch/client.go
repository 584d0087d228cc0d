// Package fetch retrieves supplier snapshots and activity series from the
// remote admin API. Retry, rate limiting, and response caching live here;
// the classification and alignment packages never see a network.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/feedpulse/feedpulse/internal/model"
	"github.com/feedpulse/feedpulse/internal/series"
)

const (
	defaultTimeout    = 15 * time.Second
	defaultMaxElapsed = 30 * time.Second
	cacheSize         = 64
)

type cachedResponse struct {
	etag string
	body []byte
}

// Client talks to one upstream admin API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *lru.Cache[string, cachedResponse]
	maxElapsed time.Duration
}

// Config holds client tunables. Zero values fall back to defaults.
type Config struct {
	Timeout        time.Duration
	MaxElapsed     time.Duration
	RequestsPerSec float64
	Burst          int
}

// New creates a client for the given API base URL, e.g.
// "https://admin.example.com/api".
func New(baseURL string, conf ...Config) *Client {
	timeout := defaultTimeout
	maxElapsed := defaultMaxElapsed
	perSecond := 5.0
	burst := 5
	if len(conf) > 0 {
		if conf[0].Timeout > 0 {
			timeout = conf[0].Timeout
		}
		if conf[0].MaxElapsed > 0 {
			maxElapsed = conf[0].MaxElapsed
		}
		if conf[0].RequestsPerSec > 0 {
			perSecond = conf[0].RequestsPerSec
		}
		if conf[0].Burst > 0 {
			burst = conf[0].Burst
		}
	}

	cache, _ := lru.New[string, cachedResponse](cacheSize)
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(perSecond), burst),
		cache:      cache,
		maxElapsed: maxElapsed,
	}
}

// HTTPError is a non-2xx upstream response.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.URL, e.StatusCode)
}

// get fetches url with retry and ETag revalidation. 5xx and transport
// errors are retried with exponential backoff; 4xx are permanent.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	op := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		cached, hasCached := c.cache.Get(url)
		if hasCached && cached.etag != "" {
			req.Header.Set("If-None-Match", cached.etag)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotModified && hasCached:
			body = cached.body
			return nil
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			body, err = io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			if etag := resp.Header.Get("ETag"); etag != "" {
				c.cache.Add(url, cachedResponse{etag: etag, body: body})
			}
			return nil
		case resp.StatusCode >= 500:
			return &HTTPError{URL: url, StatusCode: resp.StatusCode}
		default:
			return backoff.Permanent(&HTTPError{URL: url, StatusCode: resp.StatusCode})
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.maxElapsed
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return body, nil
}

// Suppliers fetches the current supplier snapshot set.
func (c *Client) Suppliers(ctx context.Context) ([]model.SupplierSnapshot, error) {
	body, err := c.get(ctx, c.baseURL+"/suppliers")
	if err != nil {
		return nil, fmt.Errorf("fetching suppliers: %w", err)
	}

	var snaps []model.SupplierSnapshot
	if err := json.Unmarshal(body, &snaps); err != nil {
		return nil, fmt.Errorf("decoding suppliers: %w", err)
	}
	return snaps, nil
}

// ActivitySeries fetches one metric's daily counter for the last days days.
func (c *Client) ActivitySeries(ctx context.Context, metric string, days int) ([]series.TimePoint, error) {
	url := c.baseURL + "/activity/" + metric + "?days=" + strconv.Itoa(days)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s activity: %w", metric, err)
	}

	var points []series.TimePoint
	if err := json.Unmarshal(body, &points); err != nil {
		return nil, fmt.Errorf("decoding %s activity: %w", metric, err)
	}
	return points, nil
}

// AllActivity fetches every tracked metric. A failing metric is reported
// in errs but does not block the others.
func (c *Client) AllActivity(ctx context.Context, days int) (map[string][]series.TimePoint, map[string]error) {
	out := make(map[string][]series.TimePoint, len(model.ActivityMetrics))
	errs := make(map[string]error)
	for _, metric := range model.ActivityMetrics {
		points, err := c.ActivitySeries(ctx, metric, days)
		if err != nil {
			errs[metric] = err
			continue
		}
		out[metric] = points
	}
	return out, errs
}
