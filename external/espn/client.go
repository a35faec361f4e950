package espn

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
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/riskibarqy/fantasy-statline/internal/domain/player"
	"github.com/riskibarqy/fantasy-statline/internal/domain/sport"
	"github.com/riskibarqy/fantasy-statline/internal/domain/statline"
	"github.com/riskibarqy/fantasy-statline/internal/platform/logging"
	"github.com/riskibarqy/fantasy-statline/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-statline/internal/usecase"
)

const (
	defaultSiteBaseURL = "https://site.api.espn.com/apis/site/v2/sports"
	defaultCoreBaseURL = "https://sports.core.api.espn.com/v3/sports"
	maxResponseBytes   = 16 << 20
	rosterPageLimit    = "20000"
)

var errESPNTransient = crerr.New("espn transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	SiteBaseURL    string
	CoreBaseURL    string
	Timeout        time.Duration
	MaxRetries     int
	RatePerSecond  float64
	RateBurst      int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads schedules, game summaries, play feeds and rosters.
type Client struct {
	httpClient  *http.Client
	siteBaseURL string
	coreBaseURL string
	maxRetries  int
	limiter     *rate.Limiter
	logger      *logging.Logger
	breaker     *resilience.CircuitBreaker
	flight      resilience.Flight[[]byte]
	retryDelay  func(attempt int) time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	siteBaseURL := strings.TrimRight(strings.TrimSpace(cfg.SiteBaseURL), "/")
	if siteBaseURL == "" {
		siteBaseURL = defaultSiteBaseURL
	}
	coreBaseURL := strings.TrimRight(strings.TrimSpace(cfg.CoreBaseURL), "/")
	if coreBaseURL == "" {
		coreBaseURL = defaultCoreBaseURL
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.RateBurst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		httpClient:  httpClient,
		siteBaseURL: siteBaseURL,
		coreBaseURL: coreBaseURL,
		maxRetries:  max(cfg.MaxRetries, 0),
		limiter:     rate.NewLimiter(limit, burst),
		logger:      logger,
		breaker:     resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		retryDelay: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * time.Second
		},
	}
}

// ListGames returns in-progress and completed games for the day, in upstream order.
func (c *Client) ListGames(ctx context.Context, s sport.Sport, date time.Time) ([]usecase.ScheduledGame, error) {
	sportPath, leaguePath, err := s.UpstreamPath()
	if err != nil {
		return nil, err
	}

	var resp scoreboardResponse
	query := map[string]string{"dates": date.Format("20060102")}
	if s == sport.NCAAF {
		query["groups"] = "80"
	}
	if _, err := c.doJSON(ctx, c.siteBaseURL+"/"+sportPath+"/"+leaguePath+"/scoreboard", query, &resp); err != nil {
		return nil, fmt.Errorf("fetch %s scoreboard %s: %w", s, date.Format(time.DateOnly), err)
	}

	out := make([]usecase.ScheduledGame, 0, len(resp.Events))
	for _, event := range resp.Events {
		if strings.TrimSpace(event.ID) == "" {
			continue
		}
		season := event.Season.Year
		if season == 0 {
			season = resp.Season.Year
		}
		week := event.Week.Number
		if week == 0 {
			week = resp.Week.Number
		}
		out = append(out, usecase.ScheduledGame{
			ID:     event.ID,
			Sport:  s,
			State:  gameState(event.Status.Type),
			Season: season,
			Week:   week,
		})
	}
	return out, nil
}

func gameState(t StatusType) usecase.GameState {
	switch strings.ToLower(strings.TrimSpace(t.State)) {
	case "in":
		return usecase.GameStateInProgress
	case "post":
		return usecase.GameStateFinal
	default:
		if t.Completed {
			return usecase.GameStateFinal
		}
		return usecase.GameStateScheduled
	}
}

func (c *Client) FetchGameSummary(ctx context.Context, s sport.Sport, gameID string) (GameSummary, error) {
	sportPath, leaguePath, err := s.UpstreamPath()
	if err != nil {
		return GameSummary{}, err
	}

	var out GameSummary
	fullPath := c.siteBaseURL + "/" + sportPath + "/" + leaguePath + "/summary"
	if _, err := c.doJSON(ctx, fullPath, map[string]string{"event": gameID}, &out); err != nil {
		return GameSummary{}, fmt.Errorf("fetch %s summary game=%s: %w", s, gameID, err)
	}
	return out, nil
}

func (c *Client) FetchPlayByPlay(ctx context.Context, s sport.Sport, gameID string) ([]Play, error) {
	sportPath, leaguePath, err := s.UpstreamPath()
	if err != nil {
		return nil, err
	}

	var out playByPlayResponse
	fullPath := c.siteBaseURL + "/" + sportPath + "/" + leaguePath + "/playbyplay"
	if _, err := c.doJSON(ctx, fullPath, map[string]string{"event": gameID}, &out); err != nil {
		return nil, fmt.Errorf("fetch %s play-by-play game=%s: %w", s, gameID, err)
	}
	return out.Plays, nil
}

// FetchGameStats fetches one game and normalizes it. The play feed is only
// requested when the summary does not embed plays and the sport derives stats from it.
func (c *Client) FetchGameStats(ctx context.Context, s sport.Sport, gameID string) (statline.GameStats, error) {
	summary, err := c.FetchGameSummary(ctx, s, gameID)
	if err != nil {
		return nil, err
	}

	plays := summary.Plays
	if len(plays) == 0 && NeedsPlayByPlay(s) {
		plays, err = c.FetchPlayByPlay(ctx, s, gameID)
		if err != nil {
			c.logger.WarnContext(ctx, "play-by-play unavailable, derived stats skipped",
				"sport", s,
				"game_id", gameID,
				"error", err,
			)
			plays = []Play{}
		}
	}

	return Parse(s, summary, plays)
}

// FetchActiveRoster lists every active athlete for the sport's league.
func (c *Client) FetchActiveRoster(ctx context.Context, s sport.Sport) ([]player.Player, error) {
	sportPath, leaguePath, err := s.UpstreamPath()
	if err != nil {
		return nil, err
	}

	var resp athletesResponse
	fullPath := c.coreBaseURL + "/" + sportPath + "/" + leaguePath + "/athletes"
	query := map[string]string{"limit": rosterPageLimit, "active": "true"}
	if _, err := c.doJSON(ctx, fullPath, query, &resp); err != nil {
		return nil, fmt.Errorf("fetch %s roster: %w", s, err)
	}

	now := time.Now().UTC()
	out := make([]player.Player, 0, len(resp.Items))
	for _, item := range resp.Items {
		if !item.Active {
			continue
		}
		id, ok := sport.PlayerIDFromString(s, item.ID)
		if !ok {
			continue
		}
		_, upstreamID, _ := sport.SplitPlayerID(id)
		out = append(out, player.Player{
			ID:          id,
			Sport:       s,
			UpstreamID:  upstreamID,
			FirstName:   strings.TrimSpace(item.FirstName),
			LastName:    strings.TrimSpace(item.LastName),
			DisplayName: strings.TrimSpace(item.DisplayName),
			Position:    firstNonEmpty(item.Position.Abbreviation, item.Position.Name),
			TeamName:    strings.TrimSpace(item.Team.DisplayName),
			UpdatedAt:   now,
		})
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, endpoint string, query map[string]string, target any) ([]byte, error) {
	if c.breaker.Enabled() {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: espn is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	fullURL := endpoint
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, _, err := c.flight.Do(fullURL, func() ([]byte, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.breaker.Enabled() {
			c.breaker.Record(isTransient(reqErr))
		}
		return raw, reqErr
	})
	if err != nil {
		if isTransient(err) {
			return nil, fmt.Errorf("%w: %w", usecase.ErrDependencyUnavailable, err)
		}
		return nil, err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode espn payload: %w", err)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errESPNTransient, err)
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errESPNTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: espn status=%d body=%s", errESPNTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("espn status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.retryDelay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("espn request failed")
	}
	c.logger.WarnContext(ctx, "espn request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(body, maxResponseBytes)); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.B...), nil
}

func isTransient(err error) bool {
	return err != nil && stderrors.Is(err, errESPNTransient)
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
