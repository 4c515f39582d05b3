package understat

import (
	"context"
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/matchpulse/matchpulse/internal/domain/xg"
	"github.com/matchpulse/matchpulse/internal/platform/cache"
	"github.com/matchpulse/matchpulse/internal/platform/logging"
	"github.com/matchpulse/matchpulse/internal/platform/resilience"
	"github.com/matchpulse/matchpulse/internal/reconcile"
	"github.com/matchpulse/matchpulse/internal/usecase"
)

// Understat serves browsers, not APIs; a browser user agent avoids the
// bot filter.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

var errTransient = crerr.New("understat transient failure")

type ClientConfig struct {
	URLTemplate    string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	Pages          *cache.Store
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client scrapes season xG data from the Understat league page. The
// datasets ride inside script tags as escaped JSON assigned to JS vars.
type Client struct {
	http        *fasthttp.Client
	urlTemplate string
	timeout     time.Duration
	maxRetries  int
	logger      *logging.Logger
	pages       *cache.Store
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
	pages := cfg.Pages
	if pages == nil {
		pages = cache.NewStore(24 * time.Hour)
	}

	var breaker *resilience.CircuitBreaker
	if cfg.CircuitBreaker.Enabled {
		breaker = resilience.NewCircuitBreaker(cfg.CircuitBreaker)
	}

	return &Client{
		http:        &fasthttp.Client{ReadTimeout: timeout, WriteTimeout: timeout},
		urlTemplate: cfg.URLTemplate,
		timeout:     timeout,
		maxRetries:  cfg.MaxRetries,
		logger:      logger,
		pages:       pages,
		breaker:     breaker,
	}
}

// FetchSeason returns the season's team and player xG totals for the
// given Understat year (the season start year, e.g. "2025").
func (c *Client) FetchSeason(ctx context.Context, year string, teams *reconcile.TeamMapper) ([]xg.TeamRecord, []xg.PlayerRecord, error) {
	url := fmt.Sprintf(c.urlTemplate, year)

	page, err := c.pages.GetOrLoad(ctx, url, func(ctx context.Context) ([]byte, error) {
		var payload []byte
		doErr := c.breaker.Do(func() error {
			raw, reqErr := c.execute(ctx, url)
			if reqErr != nil {
				return reqErr
			}
			payload = raw
			return nil
		})
		if crerr.Is(doErr, resilience.ErrCircuitOpen) {
			return nil, fmt.Errorf("%w: understat is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return payload, doErr
	})
	if err != nil {
		return nil, nil, err
	}

	teamsRaw, err := extractScriptVar(page, "teamsData")
	if err != nil {
		return nil, nil, fmt.Errorf("extract teamsData: %w", err)
	}
	playersRaw, err := extractScriptVar(page, "playersData")
	if err != nil {
		return nil, nil, fmt.Errorf("extract playersData: %w", err)
	}

	teamRecords, err := parseTeams(teamsRaw, teams)
	if err != nil {
		return nil, nil, err
	}
	players, err := parsePlayers(playersRaw, teams)
	if err != nil {
		return nil, nil, err
	}

	c.logger.InfoContext(ctx, "understat season fetched",
		"year", year,
		"teams", len(teamRecords),
		"players", len(players),
	)
	return teamRecords, players, nil
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
		req.Header.SetUserAgent(userAgent)

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
			return nil, fmt.Errorf("understat status=%d url=%s", status, url)
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
		lastErr = fmt.Errorf("understat request failed")
	}
	c.logger.WarnContext(ctx, "understat request failed", "url", url, "error", lastErr)
	return nil, lastErr
}
