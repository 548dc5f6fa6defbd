package mcp

import (
	"context"
	"log/slog"
	"sort"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/mark3labs/mcp-go/mcp"

	appfantasy "github.com/preston-bernstein/fantasy-data-service/internal/app/fantasy"
	domainfantasy "github.com/preston-bernstein/fantasy-data-service/internal/domain/fantasy"
	"github.com/preston-bernstein/fantasy-data-service/internal/logging"
	"github.com/preston-bernstein/fantasy-data-service/internal/providers"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Tool names.
const (
	ToolGetUser            = "get_user"
	ToolGetUserLeagues     = "get_user_leagues"
	ToolGetLeague          = "get_league"
	ToolGetLeagueRosters   = "get_league_rosters"
	ToolGetLeagueUsers     = "get_league_users"
	ToolGetLeagueMatchups  = "get_league_matchups"
	ToolGetAllPlayers      = "get_all_players"
	ToolGetTrendingPlayers = "get_trending_players"
)

type toolFunc func(ctx context.Context, args map[string]interface{}) (any, error)

type toolDef struct {
	tool mcp.Tool
	call toolFunc
}

// Tools exposes the fantasy service as MCP tools.
type Tools struct {
	svc    *appfantasy.Service
	logger *slog.Logger
	defs   map[string]toolDef
	order  []string
}

// NewTools registers every tool against svc.
func NewTools(svc *appfantasy.Service, logger *slog.Logger) *Tools {
	t := &Tools{svc: svc, logger: logger, defs: make(map[string]toolDef)}
	t.register(ToolGetUser, "Get a Sleeper user by username or user id",
		props(strProp("username_or_id", "Sleeper username or numeric user id")), t.getUser)
	t.register(ToolGetUserLeagues, "List the leagues a user joined for a sport and season",
		props(
			strProp("user_id", "Sleeper user id"),
			strProp("sport", "Sport, e.g. nfl"),
			strProp("season", "Season year, e.g. 2024"),
		), t.getUserLeagues)
	t.register(ToolGetLeague, "Get league settings and metadata",
		props(strProp("league_id", "Sleeper league id")), t.getLeague)
	t.register(ToolGetLeagueRosters, "List every roster in a league",
		props(strProp("league_id", "Sleeper league id")), t.getLeagueRosters)
	t.register(ToolGetLeagueUsers, "List the users in a league",
		props(strProp("league_id", "Sleeper league id")), t.getLeagueUsers)
	t.register(ToolGetLeagueMatchups, "List the matchups of a league week",
		props(
			strProp("league_id", "Sleeper league id"),
			intProp("week", "Week number, 0 or greater"),
		), t.getLeagueMatchups)
	t.register(ToolGetAllPlayers, "Count the player directory for a sport and return the requested players",
		props(
			strProp("sport", "Sport, e.g. nfl"),
			map[string]interface{}{"player_ids": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Player ids to return from the directory",
			}},
		), t.getAllPlayers)
	t.register(ToolGetTrendingPlayers, "List trending players by adds or drops",
		props(
			strProp("sport", "Sport, e.g. nfl"),
			map[string]interface{}{"type": map[string]interface{}{
				"type":        "string",
				"enum":        []string{string(domainfantasy.TrendAdd), string(domainfantasy.TrendDrop)},
				"description": "Trend type",
			}},
			intProp("lookback_hours", "Activity window in hours, default 24"),
			intProp("limit", "Maximum entries, default 25"),
		), t.getTrendingPlayers)
	return t
}

func (t *Tools) register(name, description string, properties map[string]interface{}, call toolFunc) {
	t.defs[name] = toolDef{
		tool: mcp.Tool{
			Name:        name,
			Description: description,
			InputSchema: mcp.ToolInputSchema{Type: "object", Properties: properties},
		},
		call: call,
	}
	t.order = append(t.order, name)
}

// List returns the tool definitions in registration order.
func (t *Tools) List() []mcp.Tool {
	tools := make([]mcp.Tool, 0, len(t.order))
	for _, name := range t.order {
		tools = append(tools, t.defs[name].tool)
	}
	return tools
}

// Call runs the named tool. Failures are reported in the result, never as a protocol error.
func (t *Tools) Call(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	logger := logging.FromContext(ctx, t.logger)
	def, ok := t.defs[name]
	if !ok {
		logging.Warn(logger, "unknown tool called", slog.String("tool", name))
		return errorResult(errorPayload{Code: providers.CodeValidation, Message: "unknown tool: " + name}), nil
	}
	if args == nil {
		args = map[string]interface{}{}
	}

	start := time.Now()
	data, err := def.call(ctx, args)
	if err != nil {
		payload := payloadFor(err)
		if payload.Code == providers.CodeInternal {
			logging.Error(logger, "tool failed", err, slog.String("tool", name))
		}
		return errorResult(payload), nil
	}
	logging.Info(logger, "tool completed",
		slog.String("tool", name),
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
	return jsonResult(data)
}

func (t *Tools) getUser(ctx context.Context, args map[string]interface{}) (any, error) {
	errs := argError{}
	id := stringArg(args, "username_or_id", errs)
	if err := errs.check(providers.OpFetchUser); err != nil {
		return nil, err
	}
	return t.svc.User(ctx, id)
}

func (t *Tools) getUserLeagues(ctx context.Context, args map[string]interface{}) (any, error) {
	errs := argError{}
	userID := stringArg(args, "user_id", errs)
	sport := stringArg(args, "sport", errs)
	season := stringArg(args, "season", errs)
	if err := errs.check(providers.OpFetchUserLeagues); err != nil {
		return nil, err
	}
	return t.svc.UserLeagues(ctx, userID, sport, season)
}

func (t *Tools) getLeague(ctx context.Context, args map[string]interface{}) (any, error) {
	errs := argError{}
	id := stringArg(args, "league_id", errs)
	if err := errs.check(providers.OpFetchLeague); err != nil {
		return nil, err
	}
	return t.svc.League(ctx, id)
}

func (t *Tools) getLeagueRosters(ctx context.Context, args map[string]interface{}) (any, error) {
	errs := argError{}
	id := stringArg(args, "league_id", errs)
	if err := errs.check(providers.OpFetchLeagueRosters); err != nil {
		return nil, err
	}
	return t.svc.LeagueRosters(ctx, id)
}

func (t *Tools) getLeagueUsers(ctx context.Context, args map[string]interface{}) (any, error) {
	errs := argError{}
	id := stringArg(args, "league_id", errs)
	if err := errs.check(providers.OpFetchLeagueUsers); err != nil {
		return nil, err
	}
	return t.svc.LeagueUsers(ctx, id)
}

func (t *Tools) getLeagueMatchups(ctx context.Context, args map[string]interface{}) (any, error) {
	errs := argError{}
	id := stringArg(args, "league_id", errs)
	week := intArg(args, "week", errs)
	if err := errs.check(providers.OpFetchLeagueMatchups); err != nil {
		return nil, err
	}
	return t.svc.LeagueMatchups(ctx, id, week)
}

// playersSummary keeps tool output small; the full directory runs to several megabytes.
type playersSummary struct {
	Sport   string                          `json:"sport"`
	Count   int                             `json:"count"`
	Players map[string]domainfantasy.Player `json:"players"`
	Missing []string                        `json:"missing,omitempty"`
}

func (t *Tools) getAllPlayers(ctx context.Context, args map[string]interface{}) (any, error) {
	errs := argError{}
	sport := stringArg(args, "sport", errs)
	ids := stringListArg(args, "player_ids", errs)
	if err := errs.check(providers.OpFetchAllPlayers); err != nil {
		return nil, err
	}
	directory, err := t.svc.AllPlayers(ctx, sport)
	if err != nil {
		return nil, err
	}
	summary := playersSummary{
		Sport:   sport,
		Count:   len(directory),
		Players: make(map[string]domainfantasy.Player, len(ids)),
	}
	for _, id := range ids {
		if p, ok := directory[id]; ok {
			summary.Players[id] = p
			continue
		}
		summary.Missing = append(summary.Missing, id)
	}
	sort.Strings(summary.Missing)
	return summary, nil
}

func (t *Tools) getTrendingPlayers(ctx context.Context, args map[string]interface{}) (any, error) {
	errs := argError{}
	sport := stringArg(args, "sport", errs)
	trend := stringArg(args, "type", errs)
	hours := optionalIntArg(args, "lookback_hours", domainfantasy.DefaultTrendingLookbackHours, errs)
	limit := optionalIntArg(args, "limit", domainfantasy.DefaultTrendingLimit, errs)
	if err := errs.check(providers.OpFetchTrendingPlayers); err != nil {
		return nil, err
	}
	q := domainfantasy.NewTrendingQuery(sport, domainfantasy.TrendType(trend),
		domainfantasy.WithLookbackHours(hours), domainfantasy.WithLimit(limit))
	return t.svc.TrendingPlayers(ctx, q)
}

func (e argError) check(op string) error {
	if len(e) == 0 {
		return nil
	}
	return providers.InvalidArgument(op, e)
}

func props(items ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, item := range items {
		for k, v := range item {
			out[k] = v
		}
	}
	return out
}

func strProp(name, description string) map[string]interface{} {
	return map[string]interface{}{name: map[string]interface{}{
		"type":        "string",
		"description": description,
	}}
}

func intProp(name, description string) map[string]interface{} {
	return map[string]interface{}{name: map[string]interface{}{
		"type":        "integer",
		"description": description,
	}}
}
