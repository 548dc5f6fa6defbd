package sleeper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/fantasy-data-service/internal/domain/fantasy"
	"github.com/preston-bernstein/fantasy-data-service/internal/logging"
	"github.com/preston-bernstein/fantasy-data-service/internal/providers"
)

// Config controls how the Sleeper client reaches the upstream API.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client fetches Sleeper resources and maps them to domain models. It holds only read-only
// configuration and is safe for concurrent use.
type Client struct {
	baseURL    string
	timeout    time.Duration
	userAgent  string
	httpClient httpDoer
	logger     *slog.Logger
	now        func() time.Time
}

var _ providers.Provider = (*Client)(nil)

// NewClient constructs a Sleeper client with the provided configuration.
func NewClient(cfg Config) *Client {
	timeout := resolveTimeout(cfg.Timeout)
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		timeout:    timeout,
		userAgent:  resolveUserAgent(cfg.UserAgent),
		httpClient: resolveHTTPClient(cfg.HTTPClient, timeout),
		logger:     cfg.Logger,
		now:        time.Now,
	}
}

// FetchUser looks up an account by username or user id.
func (c *Client) FetchUser(ctx context.Context, usernameOrID string) (fantasy.UserProfile, error) {
	op := providers.OpFetchUser
	if err := checkRequest(op, userRequest{UsernameOrID: strings.TrimSpace(usernameOrID)}); err != nil {
		return fantasy.UserProfile{}, err
	}
	return getOne(ctx, c, op, "/user/"+url.PathEscape(usernameOrID), nil, mapUser)
}

// FetchUserLeagues lists the leagues a user joined for a sport and season.
func (c *Client) FetchUserLeagues(ctx context.Context, userID, sport, season string) ([]fantasy.League, error) {
	op := providers.OpFetchUserLeagues
	req := userLeaguesRequest{
		UserID: strings.TrimSpace(userID),
		Sport:  strings.TrimSpace(sport),
		Season: strings.TrimSpace(season),
	}
	if err := checkRequest(op, req); err != nil {
		return nil, err
	}
	path := "/user/" + url.PathEscape(userID) + "/leagues/" + url.PathEscape(sport) + "/" + url.PathEscape(season)
	return getMany(ctx, c, op, path, nil, mapLeague)
}

// FetchLeague returns a league's configuration.
func (c *Client) FetchLeague(ctx context.Context, leagueID string) (fantasy.League, error) {
	op := providers.OpFetchLeague
	if err := checkRequest(op, leagueRequest{LeagueID: strings.TrimSpace(leagueID)}); err != nil {
		return fantasy.League{}, err
	}
	return getOne(ctx, c, op, "/league/"+url.PathEscape(leagueID), nil, mapLeague)
}

// FetchLeagueRosters returns every roster in a league.
func (c *Client) FetchLeagueRosters(ctx context.Context, leagueID string) ([]fantasy.Roster, error) {
	op := providers.OpFetchLeagueRosters
	if err := checkRequest(op, leagueRequest{LeagueID: strings.TrimSpace(leagueID)}); err != nil {
		return nil, err
	}
	return getMany(ctx, c, op, "/league/"+url.PathEscape(leagueID)+"/rosters", nil, mapRoster)
}

// FetchLeagueUsers returns the members of a league.
func (c *Client) FetchLeagueUsers(ctx context.Context, leagueID string) ([]fantasy.UserProfile, error) {
	op := providers.OpFetchLeagueUsers
	if err := checkRequest(op, leagueRequest{LeagueID: strings.TrimSpace(leagueID)}); err != nil {
		return nil, err
	}
	return getMany(ctx, c, op, "/league/"+url.PathEscape(leagueID)+"/users", nil, mapUser)
}

// FetchLeagueMatchups returns the scoring lines for one week of a league.
func (c *Client) FetchLeagueMatchups(ctx context.Context, leagueID string, week int) ([]fantasy.Matchup, error) {
	op := providers.OpFetchLeagueMatchups
	if err := checkRequest(op, matchupsRequest{LeagueID: strings.TrimSpace(leagueID), Week: week}); err != nil {
		return nil, err
	}
	path := "/league/" + url.PathEscape(leagueID) + "/matchups/" + strconv.Itoa(week)
	return getMany(ctx, c, op, path, nil, mapMatchup)
}

// FetchAllPlayers downloads the full player directory for a sport, keyed by player id.
func (c *Client) FetchAllPlayers(ctx context.Context, sport string) (map[string]fantasy.Player, error) {
	op := providers.OpFetchAllPlayers
	if err := checkRequest(op, playersRequest{Sport: strings.TrimSpace(sport)}); err != nil {
		return nil, err
	}
	var players map[string]fantasy.Player
	err := c.get(ctx, op, "/players/"+url.PathEscape(sport), nil, func(body io.Reader) error {
		var decodeErr error
		players, decodeErr = decodePlayerDirectory(body)
		return decodeErr
	})
	if err != nil {
		return nil, err
	}
	return players, nil
}

// FetchTrendingPlayers returns the most added or dropped players over the query's window.
func (c *Client) FetchTrendingPlayers(ctx context.Context, query fantasy.TrendingQuery) ([]fantasy.TrendingEntry, error) {
	op := providers.OpFetchTrendingPlayers
	req := trendingRequest{
		Sport:         strings.TrimSpace(query.Sport),
		Type:          string(query.Type),
		LookbackHours: query.LookbackHours,
		Limit:         query.Limit,
	}
	if err := checkRequest(op, req); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("lookback_hours", strconv.Itoa(query.LookbackHours))
	params.Set("limit", strconv.Itoa(query.Limit))
	path := "/players/" + url.PathEscape(query.Sport) + "/trending/" + url.PathEscape(string(query.Type))

	entries, err := getMany(ctx, c, op, path, params, func(entry *fantasy.Object) (fantasy.TrendingEntry, error) {
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	// null elements carry no record; drop them the way the player directory does.
	out := entries[:0]
	for _, entry := range entries {
		if entry != nil {
			out = append(out, entry)
		}
	}
	return out, nil
}

// getOne decodes a single entity; a null or empty body means the entity does not exist.
func getOne[D, T any](ctx context.Context, c *Client, op, path string, query url.Values, mapFn func(D) (T, error)) (T, error) {
	var out T
	err := c.get(ctx, op, path, query, func(body io.Reader) error {
		var dto *D
		empty, err := decodeBody(body, &dto)
		if err != nil {
			return err
		}
		if empty || dto == nil {
			return providers.NotFound(op, "sleeper returned no "+resourceName(path))
		}
		mapped, err := mapFn(*dto)
		if err != nil {
			return err
		}
		out = mapped
		return nil
	})
	return out, err
}

// getMany decodes a sequence; a null body decodes to an empty slice. An empty body is
// malformed.
func getMany[D, T any](ctx context.Context, c *Client, op, path string, query url.Values, mapFn func(D) (T, error)) ([]T, error) {
	var out []T
	err := c.get(ctx, op, path, query, func(body io.Reader) error {
		var dtos []D
		empty, err := decodeBody(body, &dtos)
		if err != nil {
			return err
		}
		if empty {
			return errors.New("sleeper: empty response body")
		}
		mapped, err := mapAll(dtos, mapFn)
		if err != nil {
			return err
		}
		out = mapped
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// get performs one bounded GET and hands the body to decode. Every failure leaves as a
// *providers.Error.
func (c *Client) get(ctx context.Context, op, path string, query url.Values, decode func(io.Reader) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return providers.Unavailable(op, err)
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return providers.Unavailable(op, err)
	}
	defer resp.Body.Close()

	logger := logging.FromContext(ctx, c.logger)
	if logger != nil {
		logger.Debug("sleeper response",
			slog.String(logging.FieldOperation, op),
			slog.String(logging.FieldPath, path),
			slog.Int(logging.FieldStatusCode, resp.StatusCode),
			slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
		)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return providers.Unavailable(op, &providers.RateLimitError{
			Provider:   Name,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    "sleeper rate limited",
		})
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return providers.Unavailable(op, fmt.Errorf("sleeper: unexpected status %d", resp.StatusCode))
	}

	if err := decode(resp.Body); err != nil {
		if pErr, ok := providers.AsError(err); ok {
			return pErr
		}
		return providers.Unavailable(op, err)
	}
	return nil
}

func resourceName(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 {
		return "resource"
	}
	return parts[0]
}
