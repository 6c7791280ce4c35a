// Package flashfeed is the collector for the upstream score feed. It speaks
// the feed's delimited wire format and hands raw records to the pipeline.
package flashfeed

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"

	"github.com/scorepipe/scorepipe/internal/normalizer"
	"github.com/scorepipe/scorepipe/internal/platform/logging"
	"github.com/scorepipe/scorepipe/internal/platform/resilience"
	"github.com/scorepipe/scorepipe/internal/usecase"
)

const (
	defaultBaseURL     = "https://www.flashscore.com"
	defaultLogoBaseURL = "https://static.flashscore.com/res/image/data"
	defaultTimeout     = 15 * time.Second

	matchesPathFormat = "/x/feed/f_1_%d_3_en_1"
	standingsPath     = "/x/feed/standings_1_en"
	bracketsPath      = "/x/feed/draw_1_en"

	signHeader = "x-fsign"
)

var errFeedTransient = crerr.New("feed transient failure")

type ClientConfig struct {
	BaseURL        string
	Sign           string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *fasthttp.Client
	baseURL        string
	sign           string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	now            func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL:        baseURL,
		sign:           strings.TrimSpace(cfg.Sign),
		timeout:        timeout,
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
		now:            time.Now,
	}
}

// LogoBaseURL is the static host match logo paths expand against.
func LogoBaseURL() string {
	return defaultLogoBaseURL
}

// FetchMatches pulls the fixture feed for one day. The feed addresses days
// by offset from today, so the day is translated before the request.
func (c *Client) FetchMatches(ctx context.Context, day time.Time) ([]normalizer.RawRecord, error) {
	today := c.now().UTC().Truncate(24 * time.Hour)
	offset := int(day.UTC().Truncate(24*time.Hour).Sub(today).Hours() / 24)

	payload, err := c.fetch(ctx, fmt.Sprintf(matchesPathFormat, offset))
	if err != nil {
		return nil, fmt.Errorf("fetch match feed offset=%d: %w", offset, err)
	}
	return ParseMatches(payload), nil
}

func (c *Client) FetchStandings(ctx context.Context) ([]normalizer.RawRecord, error) {
	payload, err := c.fetch(ctx, standingsPath)
	if err != nil {
		return nil, fmt.Errorf("fetch standings feed: %w", err)
	}
	return ParseStandings(payload), nil
}

func (c *Client) FetchBrackets(ctx context.Context) ([]normalizer.RawRecord, error) {
	payload, err := c.fetch(ctx, bracketsPath)
	if err != nil {
		return nil, fmt.Errorf("fetch bracket feed: %w", err)
	}
	return ParseBrackets(payload), nil
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "feed circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	payload, err := c.executeRequest(ctx, c.baseURL+path)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errFeedTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	return payload, err
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		payload, err := c.doOnce(fullURL)
		if err == nil {
			return payload, nil
		}
		lastErr = err
		if !crerr.Is(err, errFeedTransient) {
			return nil, err
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

	c.logger.WarnContext(ctx, "feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) doOnce(fullURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	if c.sign != "" {
		req.Header.Set(signHeader, c.sign)
	}

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		return nil, crerr.Wrapf(errFeedTransient, "send request: %v", err)
	}

	status := resp.StatusCode()
	switch {
	case status >= 200 && status < 300:
		// The response buffer is recycled on release; copy the body out.
		return append([]byte(nil), resp.Body()...), nil
	case isRetryableStatus(status):
		return nil, crerr.Wrapf(errFeedTransient, "feed status=%d", status)
	default:
		return nil, fmt.Errorf("feed status=%d", status)
	}
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}
