package footballdata

import (
	"context"
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/matchpulse/matchpulse/internal/platform/logging"
	"github.com/matchpulse/matchpulse/internal/platform/resilience"
	"github.com/matchpulse/matchpulse/internal/usecase"
)

var errTransient = crerr.New("football-data transient failure")

type ClientConfig struct {
	URLTemplate    string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client downloads one season's results CSV from football-data.co.uk.
type Client struct {
	http        *fasthttp.Client
	urlTemplate string
	maxRetries  int
	timeout     time.Duration
	logger      *logging.Logger
	breaker     *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	var breaker *resilience.CircuitBreaker
	if cfg.CircuitBreaker.Enabled {
		breaker = resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	}

	return &Client{
		http:        &fasthttp.Client{ReadTimeout: timeout, WriteTimeout: timeout},
		urlTemplate: cfg.URLTemplate,
		maxRetries:  cfg.MaxRetries,
		timeout:     timeout,
		logger:      logger,
		breaker:     breaker,
	}
}

// DownloadSeason fetches the raw CSV for one season code (e.g. "2526").
func (c *Client) DownloadSeason(ctx context.Context, code string) ([]byte, error) {
	url := fmt.Sprintf(c.urlTemplate, code)

	var payload []byte
	err := c.breaker.Do(func() error {
		raw, reqErr := c.execute(ctx, url)
		if reqErr != nil {
			return reqErr
		}
		payload = raw
		return nil
	})
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		return nil, fmt.Errorf("%w: football-data is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) execute(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		req.SetRequestURI(url)
		req.Header.SetMethod(fasthttp.MethodGet)

		err := c.http.DoTimeout(req, resp, c.timeout)
		status := resp.StatusCode()
		body := append([]byte(nil), resp.Body()...)
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)

		switch {
		case err != nil:
			lastErr = crerr.Wrapf(errTransient, "send request: %v", err)
		case status >= 200 && status < 300:
			return body, nil
		case status == fasthttp.StatusTooManyRequests || status >= 500:
			lastErr = crerr.Wrapf(errTransient, "status=%d", status)
		default:
			return nil, fmt.Errorf("football-data status=%d url=%s", status, url)
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("football-data request failed")
	}
	c.logger.WarnContext(ctx, "football-data request failed", "url", url, "error", lastErr)
	return nil, lastErr
}
