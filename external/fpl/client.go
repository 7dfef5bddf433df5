package fpl

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/amiablealex/vantix/internal/platform/logging"
	"github.com/amiablealex/vantix/internal/platform/resilience"
	"github.com/amiablealex/vantix/internal/usecase"
)

const (
	defaultBaseURL   = "https://fantasy.premierleague.com/api"
	maxStandingsPage = 40
)

var errFPLTransient = crerr.New("fpl transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	RequestDelay   time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the upstream fantasy API. Requests are throttled to one
// per RequestDelay as a courtesy to the unauthenticated public endpoints.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	limiter        *rate.Limiter
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

	// A caller-supplied client is used as given, never mutated.
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	delay := cfg.RequestDelay
	if delay <= 0 {
		delay = time.Second
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     max(cfg.MaxRetries, 0),
		limiter:        rate.NewLimiter(rate.Every(delay), 1),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

var _ usecase.UpstreamClient = (*Client)(nil)

// FetchBootstrap pulls the global player pool and gameweek calendar.
func (c *Client) FetchBootstrap(ctx context.Context) (usecase.UpstreamBootstrap, error) {
	var bootstrap Bootstrap
	if err := c.doJSON(ctx, "/bootstrap-static/", nil, &bootstrap); err != nil {
		return usecase.UpstreamBootstrap{}, fmt.Errorf("fetch bootstrap: %w", err)
	}

	out := usecase.UpstreamBootstrap{
		Gameweeks: make([]usecase.UpstreamGameweek, 0, len(bootstrap.Events)),
		Players:   make([]usecase.UpstreamPlayer, 0, len(bootstrap.Elements)),
	}
	for _, event := range bootstrap.Events {
		deadline, err := time.Parse(time.RFC3339, event.DeadlineTime)
		if err != nil {
			return usecase.UpstreamBootstrap{}, fmt.Errorf("decode gameweek %d deadline %q: %w", event.ID, event.DeadlineTime, err)
		}
		out.Gameweeks = append(out.Gameweeks, usecase.UpstreamGameweek{
			ID:       event.ID,
			Deadline: deadline,
			Finished: event.Finished,
		})
	}
	for _, element := range bootstrap.Elements {
		out.Players = append(out.Players, usecase.UpstreamPlayer{
			ID:          element.ID,
			WebName:     element.WebName,
			FullName:    strings.TrimSpace(element.FirstName + " " + element.SecondName),
			GoalsScored: element.GoalsScored,
			Assists:     element.Assists,
			CleanSheets: element.CleanSheets,
		})
	}
	return out, nil
}

// FetchLeagueTeams walks every standings page of a classic league and
// returns the full roster.
func (c *Client) FetchLeagueTeams(ctx context.Context, leagueCode int64) ([]usecase.UpstreamTeam, error) {
	if leagueCode <= 0 {
		return nil, fmt.Errorf("%w: league code must be greater than zero", usecase.ErrInvalidInput)
	}

	teams := make([]usecase.UpstreamTeam, 0, 32)
	for page := 1; page <= maxStandingsPage; page++ {
		var envelope standingsEnvelope
		path := fmt.Sprintf("/leagues-classic/%d/standings/", leagueCode)
		query := map[string]string{"page_standings": fmt.Sprintf("%d", page)}
		if err := c.doJSON(ctx, path, query, &envelope); err != nil {
			return nil, fmt.Errorf("fetch standings league=%d page=%d: %w", leagueCode, page, err)
		}

		for _, entry := range envelope.Standings.Results {
			teams = append(teams, usecase.UpstreamTeam{
				EntryID:     entry.Entry,
				TeamName:    entry.EntryName,
				ManagerName: entry.PlayerName,
			})
		}
		if !envelope.Standings.HasNext {
			return teams, nil
		}
	}

	c.logger.WarnContext(ctx, "standings pagination capped", "league_code", leagueCode, "pages", maxStandingsPage)
	return teams, nil
}

// FetchTeamHistory pulls one team's per-gameweek results and chip usage.
// Bank and value arrive in provider tenths and are converted here.
func (c *Client) FetchTeamHistory(ctx context.Context, entryID int64) (usecase.UpstreamHistory, error) {
	var history History
	path := fmt.Sprintf("/entry/%d/history/", entryID)
	if err := c.doJSON(ctx, path, nil, &history); err != nil {
		return usecase.UpstreamHistory{}, fmt.Errorf("fetch history entry=%d: %w", entryID, err)
	}

	out := usecase.UpstreamHistory{
		Results: make([]usecase.UpstreamGameweekResult, 0, len(history.Current)),
		Chips:   make([]usecase.UpstreamChip, 0, len(history.Chips)),
	}
	for _, row := range history.Current {
		out.Results = append(out.Results, usecase.UpstreamGameweekResult{
			Gameweek:           row.Event,
			Points:             row.Points,
			TotalPoints:        row.TotalPoints,
			Rank:               row.Rank,
			Bank:               float64(row.Bank) / 10,
			Value:              float64(row.Value) / 10,
			EventTransfers:     row.EventTransfers,
			EventTransfersCost: row.EventTransfersCost,
		})
	}
	for _, play := range history.Chips {
		out.Chips = append(out.Chips, usecase.UpstreamChip{Name: play.Name, Gameweek: play.Event})
	}
	return out, nil
}

// FetchTeamTransfers pulls one team's full transfer log.
func (c *Client) FetchTeamTransfers(ctx context.Context, entryID int64) ([]usecase.UpstreamTransfer, error) {
	var transfers []Transfer
	path := fmt.Sprintf("/entry/%d/transfers/", entryID)
	if err := c.doJSON(ctx, path, nil, &transfers); err != nil {
		return nil, fmt.Errorf("fetch transfers entry=%d: %w", entryID, err)
	}

	out := make([]usecase.UpstreamTransfer, 0, len(transfers))
	for _, tr := range transfers {
		out = append(out, usecase.UpstreamTransfer{
			PlayerIn:  tr.ElementIn,
			PlayerOut: tr.ElementOut,
			Gameweek:  tr.Event,
		})
	}
	return out, nil
}

// FetchSquadPicks pulls one team's squad selection for a gameweek as a
// flat player id list.
func (c *Client) FetchSquadPicks(ctx context.Context, entryID int64, gw int) ([]int64, error) {
	var envelope picksEnvelope
	path := fmt.Sprintf("/entry/%d/event/%d/picks/", entryID, gw)
	if err := c.doJSON(ctx, path, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch picks entry=%d gw=%d: %w", entryID, gw, err)
	}

	ids := make([]int64, 0, len(envelope.Picks))
	for _, pick := range envelope.Picks {
		ids = append(ids, pick.Element)
	}
	return ids, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "fpl circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: fantasy data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errFPLTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errFPLTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errFPLTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errFPLTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
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

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "fpl request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
