package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	domainfantasy "github.com/preston-bernstein/fantasy-data-service/internal/domain/fantasy"
	"github.com/preston-bernstein/fantasy-data-service/internal/logging"
	"github.com/preston-bernstein/fantasy-data-service/internal/providers"
	"github.com/preston-bernstein/fantasy-data-service/internal/timeutil"
)

type nowFunc func() time.Time

// FantasyService is the aggregation surface the handlers expose.
type FantasyService interface {
	User(ctx context.Context, usernameOrID string) (domainfantasy.UserProfile, error)
	UserLeagues(ctx context.Context, userID, sport, season string) ([]domainfantasy.League, error)
	League(ctx context.Context, leagueID string) (domainfantasy.League, error)
	LeagueRosters(ctx context.Context, leagueID string) ([]domainfantasy.Roster, error)
	LeagueUsers(ctx context.Context, leagueID string) ([]domainfantasy.UserProfile, error)
	LeagueMatchups(ctx context.Context, leagueID string, week int) ([]domainfantasy.Matchup, error)
	AllPlayers(ctx context.Context, sport string) (map[string]domainfantasy.Player, error)
	TrendingPlayers(ctx context.Context, query domainfantasy.TrendingQuery) ([]domainfantasy.TrendingEntry, error)
}

// Path parameter names shared with the router.
const (
	ParamUsernameOrID = "usernameOrId"
	ParamUserID       = "userId"
	ParamSport        = "sport"
	ParamSeason       = "season"
	ParamLeagueID     = "leagueId"
	ParamWeek         = "week"
	ParamType         = "type"
	QueryLookback     = "lookbackHours"
	QueryLimit        = "limit"
)

// Handler wires HTTP routes to the fantasy service.
type Handler struct {
	svc    FantasyService
	logger *slog.Logger
	now    nowFunc
	out    *responder
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc FantasyService, logger *slog.Logger) *Handler {
	h := &Handler{
		svc:    svc,
		logger: logger,
		now:    time.Now,
	}
	h.out = newResponder(logger, func() time.Time { return h.now() })
	return h
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		h.out.writeError(w, r, ErrorBody{Code: CodeBadMethod, Message: "method not allowed"})
		return
	}
	if err := r.Context().Err(); err != nil {
		h.out.writeJSON(w, r, nethttp.StatusServiceUnavailable, Envelope{
			Message:   "shutting down",
			Timestamp: timeutil.FormatTimestamp(h.now()),
		})
		return
	}
	h.out.writeData(w, r, nethttp.StatusOK, map[string]string{"status": "ok"})
}

// NotFound answers unmatched routes.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.out.writeError(w, r, ErrorBody{Code: CodeRouteMissing, Message: "route not found"})
}

// MethodNotAllowed answers known routes requested with the wrong method.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.out.writeError(w, r, ErrorBody{Code: CodeBadMethod, Message: "method not allowed"})
}

// User serves GET /user/{usernameOrId}.
func (h *Handler) User(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathParam(w, r, providers.OpFetchUser, ParamUsernameOrID)
	if !ok {
		return
	}
	user, err := h.svc.User(r.Context(), id)
	h.respond(w, r, user, err)
}

// UserLeagues serves GET /user/{userId}/leagues/{sport}/{season}.
func (h *Handler) UserLeagues(w nethttp.ResponseWriter, r *nethttp.Request) {
	params, ok := h.pathParams(w, r, providers.OpFetchUserLeagues, ParamUserID, ParamSport, ParamSeason)
	if !ok {
		return
	}
	leagues, err := h.svc.UserLeagues(r.Context(), params[0], params[1], params[2])
	h.respond(w, r, leagues, err)
}

// League serves GET /league/{leagueId}.
func (h *Handler) League(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathParam(w, r, providers.OpFetchLeague, ParamLeagueID)
	if !ok {
		return
	}
	league, err := h.svc.League(r.Context(), id)
	h.respond(w, r, league, err)
}

// LeagueRosters serves GET /league/{leagueId}/rosters.
func (h *Handler) LeagueRosters(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathParam(w, r, providers.OpFetchLeagueRosters, ParamLeagueID)
	if !ok {
		return
	}
	rosters, err := h.svc.LeagueRosters(r.Context(), id)
	h.respond(w, r, rosters, err)
}

// LeagueUsers serves GET /league/{leagueId}/users.
func (h *Handler) LeagueUsers(w nethttp.ResponseWriter, r *nethttp.Request) {
	id, ok := h.pathParam(w, r, providers.OpFetchLeagueUsers, ParamLeagueID)
	if !ok {
		return
	}
	users, err := h.svc.LeagueUsers(r.Context(), id)
	h.respond(w, r, users, err)
}

// LeagueMatchups serves GET /league/{leagueId}/matchups/{week}.
func (h *Handler) LeagueMatchups(w nethttp.ResponseWriter, r *nethttp.Request) {
	const op = providers.OpFetchLeagueMatchups
	params, ok := h.pathParams(w, r, op, ParamLeagueID, ParamWeek)
	if !ok {
		return
	}
	week, err := parseInt(op, ParamWeek, params[1])
	if err != nil {
		h.fail(w, r, err)
		return
	}
	matchups, err := h.svc.LeagueMatchups(r.Context(), params[0], week)
	h.respond(w, r, matchups, err)
}

// AllPlayers serves GET /players/{sport}.
func (h *Handler) AllPlayers(w nethttp.ResponseWriter, r *nethttp.Request) {
	sport, ok := h.pathParam(w, r, providers.OpFetchAllPlayers, ParamSport)
	if !ok {
		return
	}
	players, err := h.svc.AllPlayers(r.Context(), sport)
	h.respond(w, r, players, err)
}

// TrendingPlayers serves GET /players/{sport}/trending/{type}. Missing lookbackHours and limit
// fall back to 24 and 25.
func (h *Handler) TrendingPlayers(w nethttp.ResponseWriter, r *nethttp.Request) {
	const op = providers.OpFetchTrendingPlayers
	params, ok := h.pathParams(w, r, op, ParamSport, ParamType)
	if !ok {
		return
	}
	var opts []domainfantasy.TrendingOption
	query := r.URL.Query()
	if raw := query.Get(QueryLookback); raw != "" {
		hours, err := parseInt(op, QueryLookback, raw)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		opts = append(opts, domainfantasy.WithLookbackHours(hours))
	}
	if raw := query.Get(QueryLimit); raw != "" {
		limit, err := parseInt(op, QueryLimit, raw)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		opts = append(opts, domainfantasy.WithLimit(limit))
	}
	q := domainfantasy.NewTrendingQuery(params[0], domainfantasy.TrendType(params[1]), opts...)
	entries, err := h.svc.TrendingPlayers(r.Context(), q)
	h.respond(w, r, entries, err)
}

func (h *Handler) respond(w nethttp.ResponseWriter, r *nethttp.Request, data any, err error) {
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.out.writeData(w, r, nethttp.StatusOK, data)
}

func (h *Handler) fail(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	body := errorBodyFor(err)
	if body.Code == providers.CodeInternal {
		logging.Error(loggerFromContext(r, h.logger), "unhandled error", err)
	}
	h.out.writeError(w, r, body)
}

func (h *Handler) pathParam(w nethttp.ResponseWriter, r *nethttp.Request, op, name string) (string, bool) {
	values, ok := h.pathParams(w, r, op, name)
	if !ok {
		return "", false
	}
	return values[0], true
}

// pathParams reads chi URL parameters in order. chi matches against RawPath when the request
// has one, so only then are the segments still escaped. Emptiness is left to the provider's
// validation so both boundaries report it the same way.
func (h *Handler) pathParams(w nethttp.ResponseWriter, r *nethttp.Request, op string, names ...string) ([]string, bool) {
	escaped := r.URL.RawPath != ""
	values := make([]string, len(names))
	for i, name := range names {
		value := chi.URLParam(r, name)
		if !escaped {
			values[i] = value
			continue
		}
		value, err := url.PathUnescape(value)
		if err != nil {
			h.fail(w, r, providers.InvalidArgument(op, map[string]string{name: "must be a valid path segment"}))
			return nil, false
		}
		values[i] = value
	}
	return values, true
}

func parseInt(op, name, raw string) (int, error) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, providers.InvalidArgument(op, map[string]string{name: "must be an integer"})
	}
	return value, nil
}
