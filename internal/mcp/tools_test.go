package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appfantasy "github.com/preston-bernstein/fantasy-data-service/internal/app/fantasy"
	domainfantasy "github.com/preston-bernstein/fantasy-data-service/internal/domain/fantasy"
	"github.com/preston-bernstein/fantasy-data-service/internal/providers"
	"github.com/preston-bernstein/fantasy-data-service/internal/providers/sleeper"
	"github.com/preston-bernstein/fantasy-data-service/internal/testutil"
)

func newMockTools(t *testing.T) (*Tools, *testutil.MockProvider) {
	t.Helper()
	mp := &testutil.MockProvider{}
	t.Cleanup(func() { mp.AssertExpectations(t) })
	logger, _ := testutil.NewBufferLogger()
	return NewTools(appfantasy.NewService(mp, logger, nil), logger), mp
}

func newFakeTools(t *testing.T) (*Tools, *testutil.FakeSleeperServer) {
	t.Helper()
	fake := testutil.NewFakeSleeperServer()
	t.Cleanup(fake.Close)
	logger, _ := testutil.NewBufferLogger()
	client := sleeper.NewClient(sleeper.Config{BaseURL: fake.URL(), Logger: logger})
	return NewTools(appfantasy.NewService(client, logger, nil), logger), fake
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func decodeError(t *testing.T, res *mcp.CallToolResult) errorPayload {
	t.Helper()
	require.True(t, res.IsError)
	var payload errorPayload
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
	return payload
}

func TestListReturnsEveryTool(t *testing.T) {
	tools, _ := newMockTools(t)

	var names []string
	for _, tool := range tools.List() {
		names = append(names, tool.Name)
		assert.Equal(t, "object", tool.InputSchema.Type)
		assert.NotEmpty(t, tool.Description)
	}
	assert.Equal(t, []string{
		ToolGetUser, ToolGetUserLeagues, ToolGetLeague, ToolGetLeagueRosters,
		ToolGetLeagueUsers, ToolGetLeagueMatchups, ToolGetAllPlayers, ToolGetTrendingPlayers,
	}, names)
}

func TestGetUserAgainstFakeSleeper(t *testing.T) {
	tools, _ := newFakeTools(t)

	res, err := tools.Call(context.Background(), ToolGetUser, map[string]interface{}{"username_or_id": testutil.FakeUsername})
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var user map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &user))
	assert.Equal(t, testutil.FakeUserID, user["userId"])
}

func TestGetLeagueMatchupsAcceptsNumericWeek(t *testing.T) {
	tools, mp := newMockTools(t)
	mp.On("FetchLeagueMatchups", "l1", 2).Return([]domainfantasy.Matchup{}, nil).Once()

	res, err := tools.Call(context.Background(), ToolGetLeagueMatchups, map[string]interface{}{
		"league_id": "l1",
		"week":      float64(2),
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "[]", resultText(t, res))
}

func TestGetLeagueMatchupsRejectsFractionalWeek(t *testing.T) {
	tools, _ := newMockTools(t)

	res, err := tools.Call(context.Background(), ToolGetLeagueMatchups, map[string]interface{}{
		"league_id": "l1",
		"week":      2.5,
	})
	require.NoError(t, err)
	payload := decodeError(t, res)
	assert.Equal(t, providers.CodeValidation, payload.Code)
	assert.Contains(t, payload.ValidationErrors, "week")
}

func TestGetTrendingPlayersRejectsOutOfRangeLimit(t *testing.T) {
	tools, _ := newMockTools(t)

	res, err := tools.Call(context.Background(), ToolGetTrendingPlayers, map[string]interface{}{
		"sport": "nfl",
		"type":  "add",
		"limit": 1e300,
	})
	require.NoError(t, err)
	payload := decodeError(t, res)
	assert.Equal(t, providers.CodeValidation, payload.Code)
	assert.Equal(t, "is out of range", payload.ValidationErrors["limit"])
}

func TestMissingArgumentsReportAllFields(t *testing.T) {
	tools, _ := newMockTools(t)

	res, err := tools.Call(context.Background(), ToolGetUserLeagues, nil)
	require.NoError(t, err)
	payload := decodeError(t, res)
	assert.Equal(t, providers.CodeValidation, payload.Code)
	assert.Len(t, payload.ValidationErrors, 3)
}

func TestGetTrendingPlayersAppliesDefaults(t *testing.T) {
	tools, mp := newMockTools(t)
	want := domainfantasy.NewTrendingQuery("nfl", domainfantasy.TrendAdd)
	mp.On("FetchTrendingPlayers", want).Return([]domainfantasy.TrendingEntry{}, nil).Once()

	res, err := tools.Call(context.Background(), ToolGetTrendingPlayers, map[string]interface{}{
		"sport": "nfl",
		"type":  "add",
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
}

func TestGetAllPlayersReturnsCountAndRequestedIDs(t *testing.T) {
	tools, _ := newFakeTools(t)

	res, err := tools.Call(context.Background(), ToolGetAllPlayers, map[string]interface{}{
		"sport":      "nfl",
		"player_ids": []interface{}{"4034", "nope"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var summary struct {
		Sport   string                    `json:"sport"`
		Count   int                       `json:"count"`
		Players map[string]map[string]any `json:"players"`
		Missing []string                  `json:"missing"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &summary))
	assert.Equal(t, "nfl", summary.Sport)
	assert.Greater(t, summary.Count, 0)
	assert.Contains(t, summary.Players, "4034")
	assert.Equal(t, []string{"nope"}, summary.Missing)
}

func TestProviderErrorsBecomeToolErrors(t *testing.T) {
	tools, mp := newMockTools(t)
	mp.On("FetchLeague", "l1").Return(nil, providers.Unavailable(providers.OpFetchLeague, errors.New("dial tcp: refused"))).Once()
	mp.On("FetchLeague", "l2").Return(nil, errors.New("secret")).Once()

	res, err := tools.Call(context.Background(), ToolGetLeague, map[string]interface{}{"league_id": "l1"})
	require.NoError(t, err)
	payload := decodeError(t, res)
	assert.Equal(t, providers.CodeProviderUnavailable, payload.Code)
	assert.NotContains(t, resultText(t, res), "refused")

	res, err = tools.Call(context.Background(), ToolGetLeague, map[string]interface{}{"league_id": "l2"})
	require.NoError(t, err)
	payload = decodeError(t, res)
	assert.Equal(t, providers.CodeInternal, payload.Code)
	assert.Equal(t, messageInternal, payload.Message)
}

func TestUnknownTool(t *testing.T) {
	tools, _ := newMockTools(t)

	res, err := tools.Call(context.Background(), "drop_table", nil)
	require.NoError(t, err)
	payload := decodeError(t, res)
	assert.Contains(t, payload.Message, "drop_table")
}

func TestNewServerBuilds(t *testing.T) {
	tools, _ := newMockTools(t)
	assert.NotNil(t, NewServer(tools, "fantasy-data-service", "test"))
}
