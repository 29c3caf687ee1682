package polls

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/platform/logging"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/platform/resilience"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/usecase"
)

const defaultBaseURL = "https://api.collegepolltracker.example.com/v1"

var errPollsTransient = crerr.New("polls transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches weekly top-25 polls. Responses are small and the data
// is non-critical, so the client protects the rest of the request path
// with a circuit breaker and collapses duplicate in-flight fetches.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

type pollEnvelope struct {
	Year    int `json:"year"`
	Week    int `json:"week"`
	Ranking []struct {
		Rank   int    `json:"rank"`
		Team   string `json:"team"`
		Record string `json:"record"`
		Points int    `json:"points"`
	} `json:"ranking"`
}

func (c *Client) WeeklyPoll(ctx context.Context, year, week int) (usecase.Poll, error) {
	if year <= 0 {
		return usecase.Poll{}, fmt.Errorf("year must be greater than zero")
	}

	values := url.Values{}
	values.Set("year", strconv.Itoa(year))
	if week > 0 {
		values.Set("week", strconv.Itoa(week))
	}
	fullURL := c.baseURL + "/rankings?" + values.Encode()

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "polls circuit breaker rejected request", "state", c.breaker.State())
			return usecase.Poll{}, fmt.Errorf("%w: polls provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isPollsCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return usecase.Poll{}, err
	}
	raw, ok := out.([]byte)
	if !ok {
		return usecase.Poll{}, fmt.Errorf("unexpected response payload type %T", out)
	}

	var envelope pollEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return usecase.Poll{}, fmt.Errorf("decode polls payload: %w", err)
	}

	poll := usecase.Poll{Year: envelope.Year, Week: envelope.Week}
	if poll.Year == 0 {
		poll.Year = year
	}
	if poll.Week == 0 {
		poll.Week = week
	}
	for _, entry := range envelope.Ranking {
		if entry.Rank <= 0 || strings.TrimSpace(entry.Team) == "" {
			continue
		}
		poll.Entries = append(poll.Entries, usecase.PollEntry{
			Rank:   entry.Rank,
			Team:   strings.TrimSpace(entry.Team),
			Record: entry.Record,
			Points: entry.Points,
		})
	}
	return poll, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errPollsTransient, err)
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errPollsTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d", errPollsTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("provider status=%d", resp.StatusCode)
			}
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
	return nil, lastErr
}

// readBody copies the response through a pooled buffer; poll payloads
// are capped at 1 MiB.
func readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(body, 1<<20)); err != nil {
		return nil, err
	}
	out := make([]byte, len(buf.B))
	copy(out, buf.B)
	return out, nil
}

func isPollsCircuitFailure(err error) bool {
	return stderrors.Is(err, errPollsTransient) || stderrors.Is(err, context.DeadlineExceeded)
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
