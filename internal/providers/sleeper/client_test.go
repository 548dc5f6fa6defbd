package sleeper_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/fantasy-data-service/internal/domain/fantasy"
	"github.com/preston-bernstein/fantasy-data-service/internal/providers"
	"github.com/preston-bernstein/fantasy-data-service/internal/providers/sleeper"
	"github.com/preston-bernstein/fantasy-data-service/internal/testutil"
)

func newFakeClient(t *testing.T) (*sleeper.Client, *testutil.FakeSleeperServer) {
	t.Helper()
	fake := testutil.NewFakeSleeperServer()
	t.Cleanup(fake.Close)
	return sleeper.NewClient(sleeper.Config{BaseURL: fake.URL(), UserAgent: "fantasy-test"}), fake
}

func newHandlerClient(t *testing.T, h http.HandlerFunc, timeout time.Duration) *sleeper.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return sleeper.NewClient(sleeper.Config{BaseURL: srv.URL, Timeout: timeout})
}

func TestFetchUserMapsProviderShape(t *testing.T) {
	client, fake := newFakeClient(t)

	user, err := client.FetchUser(context.Background(), testutil.FakeUsername)
	require.NoError(t, err)

	assert.Equal(t, "12345678", user.UserID)
	assert.Equal(t, "sleeperuser", user.Username)
	require.NotNil(t, user.DisplayName)
	assert.Equal(t, "SleeperUser", *user.DisplayName)
	assert.Nil(t, user.Avatar)
	require.NotNil(t, user.IsBot)
	assert.False(t, *user.IsBot)

	req := fake.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "/v1/user/sleeperuser", req.URL.Path)
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "fantasy-test", req.Header.Get("User-Agent"))
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestFetchUserNullBodyIsNotFound(t *testing.T) {
	client, _ := newFakeClient(t)

	_, err := client.FetchUser(context.Background(), "nobody")
	assert.ErrorIs(t, err, providers.ErrNotFound)
	assert.Equal(t, providers.CodeNotFound, providers.CodeOf(err))
}

func TestFetchLeagueNullBodyIsNotFound(t *testing.T) {
	client, _ := newFakeClient(t)

	_, err := client.FetchLeague(context.Background(), "0")
	assert.ErrorIs(t, err, providers.ErrNotFound)
}

func TestEmptySingleEntityBodyIsNotFound(t *testing.T) {
	client := newHandlerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, 0)

	_, err := client.FetchUser(context.Background(), "nobody")
	assert.ErrorIs(t, err, providers.ErrNotFound)
	assert.Equal(t, providers.CodeNotFound, providers.CodeOf(err))

	_, err = client.FetchLeague(context.Background(), "0")
	assert.ErrorIs(t, err, providers.ErrNotFound)
}

func TestEmptyListBodyIsUnavailable(t *testing.T) {
	client := newHandlerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, 0)

	_, err := client.FetchLeagueRosters(context.Background(), testutil.FakeLeagueID)
	assert.ErrorIs(t, err, providers.ErrProviderUnavailable)
}

func TestTrailingDataAfterBodyIsUnavailable(t *testing.T) {
	bodies := map[string]string{
		"/user/a":              `{"user_id":"1","username":"a"} garbage{{{`,
		"/league/1/matchups/1": `[] ]]]not json`,
		"/players/nfl":         `{"1":{"player_id":"1"}} }}garbage`,
	}
	client := newHandlerClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(bodies[r.URL.Path]))
	}, 0)
	ctx := context.Background()

	_, err := client.FetchUser(ctx, "a")
	assertUnavailable(t, providers.OpFetchUser, err)

	_, err = client.FetchLeagueMatchups(ctx, "1", 1)
	assertUnavailable(t, providers.OpFetchLeagueMatchups, err)

	_, err = client.FetchAllPlayers(ctx, "nfl")
	assertUnavailable(t, providers.OpFetchAllPlayers, err)
}

func TestTrailingWhitespaceIsAccepted(t *testing.T) {
	client := newHandlerClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{\"user_id\":\"1\",\"username\":\"a\"}\n\t "))
	}, 0)

	user, err := client.FetchUser(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "1", user.UserID)
}

func TestUpstreamCallsLogAtDebugWithoutBodies(t *testing.T) {
	logger, buf := testutil.NewDebugBufferLogger()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "secret upstream detail", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	client := sleeper.NewClient(sleeper.Config{BaseURL: srv.URL, Logger: logger})

	_, err := client.FetchLeague(context.Background(), "l1")
	assertUnavailable(t, providers.OpFetchLeague, err)

	out := buf.String()
	assert.Contains(t, out, "sleeper response")
	assert.Contains(t, out, "status_code=500")
	assert.Contains(t, out, "operation="+providers.OpFetchLeague)
	assert.NotContains(t, out, "secret upstream detail")
}

func TestFetchTrendingPlayersSkipsNullEntries(t *testing.T) {
	client := newHandlerClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"player_id":"4034","count":5}, null]`))
	}, 0)

	entries, err := client.FetchTrendingPlayers(context.Background(), fantasy.NewTrendingQuery("nfl", fantasy.TrendAdd))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0])
	id, _ := entries[0].String("player_id")
	assert.Equal(t, "4034", id)
}

func TestFetchUserLeaguesMapsLeagues(t *testing.T) {
	client, fake := newFakeClient(t)

	leagues, err := client.FetchUserLeagues(context.Background(), testutil.FakeUserID, "nfl", testutil.FakeSeason)
	require.NoError(t, err)
	require.Len(t, leagues, 1)

	l := leagues[0]
	assert.Equal(t, testutil.FakeLeagueID, l.LeagueID)
	assert.Equal(t, "Sleeperbot Friends League", l.Name)
	assert.Equal(t, 12, l.TotalRosters)
	assert.Equal(t, []string{"QB", "RB", "RB", "WR", "WR", "TE", "FLEX", "K", "DEF", "BN", "BN"}, l.RosterPositions)
	assert.Equal(t, []string{"rec", "pass_td", "rush_yd", "fum_lost"}, l.ScoringSettings.Keys())
	require.NotNil(t, l.DraftID)
	assert.Equal(t, "289646328508579840", *l.DraftID)
	assert.Equal(t, "/v1/user/12345678/leagues/nfl/2024", fake.LastRequest().URL.Path)
}

func TestFetchUserLeaguesEmpty(t *testing.T) {
	client, _ := newFakeClient(t)

	leagues, err := client.FetchUserLeagues(context.Background(), testutil.FakeUserID, "nfl", "1999")
	require.NoError(t, err)
	assert.NotNil(t, leagues)
	assert.Empty(t, leagues)
}

func TestFetchLeagueRostersKeepsOrderAndUnclaimedRosters(t *testing.T) {
	client, _ := newFakeClient(t)

	rosters, err := client.FetchLeagueRosters(context.Background(), testutil.FakeLeagueID)
	require.NoError(t, err)
	require.Len(t, rosters, 2)

	first := rosters[0]
	assert.Equal(t, 1, first.RosterID)
	require.NotNil(t, first.OwnerID)
	assert.Equal(t, []string{"2307", "2257", "4034", "147", "642", "4039", "515", "4149", "DET"}, first.Starters)
	assert.Nil(t, first.PlayerMap)

	unclaimed := rosters[1]
	assert.Nil(t, unclaimed.OwnerID)
	assert.Empty(t, unclaimed.Players)
	assert.NotNil(t, unclaimed.Reserve)
}

func TestFetchLeagueUsers(t *testing.T) {
	client, _ := newFakeClient(t)

	users, err := client.FetchLeagueUsers(context.Background(), testutil.FakeLeagueID)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "188815879448829952", users[0].UserID)
	assert.Nil(t, users[0].IsBot)
	assert.Equal(t, "12345678", users[1].UserID)
}

func TestFetchLeagueMatchupsParallelArrays(t *testing.T) {
	client, _ := newFakeClient(t)

	matchups, err := client.FetchLeagueMatchups(context.Background(), testutil.FakeLeagueID, 1)
	require.NoError(t, err)
	require.Len(t, matchups, 3)

	for _, m := range matchups {
		assert.Len(t, m.StartersPoints, len(m.Starters))
	}
	assert.Equal(t, 4.0, matchups[0].StarterPoints()["2133"])
	require.NotNil(t, matchups[1].CustomPoints)
	assert.Equal(t, 19.0, *matchups[1].CustomPoints)
	assert.Nil(t, matchups[2].MatchupID)
}

func TestFetchLeagueMatchupsEmptyWeek(t *testing.T) {
	client, _ := newFakeClient(t)

	matchups, err := client.FetchLeagueMatchups(context.Background(), testutil.FakeLeagueID, 17)
	require.NoError(t, err)
	assert.NotNil(t, matchups)
	assert.Len(t, matchups, 0)
}

func TestFetchLeagueMatchupsRejectsMisalignedStarters(t *testing.T) {
	client := newHandlerClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"roster_id":1,"starters":["a","b"],"starters_points":[1.0]}]`))
	}, 0)

	_, err := client.FetchLeagueMatchups(context.Background(), "l1", 1)
	assert.ErrorIs(t, err, providers.ErrProviderUnavailable)
}

func TestFetchAllPlayersKeysMatchIDs(t *testing.T) {
	client, _ := newFakeClient(t)

	players, err := client.FetchAllPlayers(context.Background(), "nfl")
	require.NoError(t, err)
	require.Len(t, players, 4)

	for key, p := range players {
		assert.Equal(t, key, p.PlayerID)
	}
	brady := players["3086"]
	assert.Equal(t, "Tom Brady", brady.DisplayName())
	require.NotNil(t, brady.Number)
	assert.Equal(t, 12, *brady.Number)
	assert.Equal(t, []string{"rookie_year", "channel_id"}, brady.Metadata.Keys())

	def := players["DET"]
	assert.Equal(t, "DET", def.PlayerID)
	assert.Equal(t, "DEF", def.Position)

	inactive := players["9999"]
	assert.Nil(t, inactive.Team)
	assert.Nil(t, inactive.FirstName)
	assert.NotNil(t, inactive.FantasyPositions)
}

func TestFetchTrendingPlayersDefaultQuery(t *testing.T) {
	client, fake := newFakeClient(t)

	explicit, err := client.FetchTrendingPlayers(context.Background(),
		fantasy.NewTrendingQuery("nfl", fantasy.TrendAdd, fantasy.WithLookbackHours(24), fantasy.WithLimit(25)))
	require.NoError(t, err)
	explicitURL := fake.LastRequest().URL

	defaulted, err := client.FetchTrendingPlayers(context.Background(), fantasy.NewTrendingQuery("nfl", fantasy.TrendAdd))
	require.NoError(t, err)
	defaultURL := fake.LastRequest().URL

	assert.Equal(t, "/v1/players/nfl/trending/add", defaultURL.Path)
	assert.Equal(t, url.Values{"lookback_hours": {"24"}, "limit": {"25"}}, defaultURL.Query())
	assert.Equal(t, explicitURL.String(), defaultURL.String())
	assert.Equal(t, explicit, defaulted)

	require.Len(t, defaulted, 2)
	id, _ := defaulted[0].String("player_id")
	assert.Equal(t, "4034", id)
	assert.Equal(t, []string{"player_id", "count"}, defaulted[0].Keys())
}

func TestFetchTrendingPlayersCustomQuery(t *testing.T) {
	client, fake := newFakeClient(t)

	_, err := client.FetchTrendingPlayers(context.Background(),
		fantasy.NewTrendingQuery("nba", fantasy.TrendDrop, fantasy.WithLookbackHours(0), fantasy.WithLimit(5)))
	require.NoError(t, err)

	got := fake.LastRequest().URL
	assert.Equal(t, "/v1/players/nba/trending/drop", got.Path)
	assert.Equal(t, "0", got.Query().Get("lookback_hours"))
	assert.Equal(t, "5", got.Query().Get("limit"))
}

func TestPathSegmentsAreEscaped(t *testing.T) {
	var escaped string
	client := newHandlerClient(t, func(w http.ResponseWriter, r *http.Request) {
		escaped = r.URL.EscapedPath()
		_, _ = w.Write([]byte("null"))
	}, 0)

	_, _ = client.FetchUser(context.Background(), "a b/c")
	assert.Equal(t, "/user/a%20b%2Fc", escaped)
}

func TestRepeatedFetchesAreIdentical(t *testing.T) {
	client, fake := newFakeClient(t)
	ctx := context.Background()

	first, err := client.FetchLeague(ctx, testutil.FakeLeagueID)
	require.NoError(t, err)
	second, err := client.FetchLeague(ctx, testutil.FakeLeagueID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 2, fake.Hits(), "every call is a fresh fetch")
}

func TestInvalidArgumentsNeverReachNetwork(t *testing.T) {
	client, fake := newFakeClient(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		call  func() error
		field string
	}{
		{"blank user", func() error { _, err := client.FetchUser(ctx, "  "); return err }, "usernameOrId"},
		{"blank season", func() error { _, err := client.FetchUserLeagues(ctx, "u1", "nfl", ""); return err }, "season"},
		{"blank sport", func() error { _, err := client.FetchUserLeagues(ctx, "u1", "", "2024"); return err }, "sport"},
		{"blank league", func() error { _, err := client.FetchLeague(ctx, ""); return err }, "leagueId"},
		{"blank rosters league", func() error { _, err := client.FetchLeagueRosters(ctx, ""); return err }, "leagueId"},
		{"blank users league", func() error { _, err := client.FetchLeagueUsers(ctx, "\t"); return err }, "leagueId"},
		{"negative week", func() error { _, err := client.FetchLeagueMatchups(ctx, "l1", -1); return err }, "week"},
		{"blank players sport", func() error { _, err := client.FetchAllPlayers(ctx, ""); return err }, "sport"},
		{"bad trend type", func() error {
			_, err := client.FetchTrendingPlayers(ctx, fantasy.NewTrendingQuery("nfl", fantasy.TrendType("hot")))
			return err
		}, "type"},
		{"negative lookback", func() error {
			_, err := client.FetchTrendingPlayers(ctx, fantasy.NewTrendingQuery("nfl", fantasy.TrendAdd, fantasy.WithLookbackHours(-1)))
			return err
		}, "lookbackHours"},
		{"zero limit", func() error {
			_, err := client.FetchTrendingPlayers(ctx, fantasy.NewTrendingQuery("nfl", fantasy.TrendAdd, fantasy.WithLimit(0)))
			return err
		}, "limit"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			require.ErrorIs(t, err, providers.ErrInvalidArgument)
			pErr, ok := providers.AsError(err)
			require.True(t, ok)
			assert.Contains(t, pErr.Fields, tc.field)
		})
	}
	assert.Zero(t, fake.Hits())
}

// everyOperation calls each provider operation with valid arguments.
func everyOperation(client *sleeper.Client) map[string]func(context.Context) error {
	return map[string]func(context.Context) error{
		providers.OpFetchUser: func(ctx context.Context) error {
			_, err := client.FetchUser(ctx, "sleeperuser")
			return err
		},
		providers.OpFetchUserLeagues: func(ctx context.Context) error {
			_, err := client.FetchUserLeagues(ctx, "12345678", "nfl", "2024")
			return err
		},
		providers.OpFetchLeague: func(ctx context.Context) error {
			_, err := client.FetchLeague(ctx, "l1")
			return err
		},
		providers.OpFetchLeagueRosters: func(ctx context.Context) error {
			_, err := client.FetchLeagueRosters(ctx, "l1")
			return err
		},
		providers.OpFetchLeagueUsers: func(ctx context.Context) error {
			_, err := client.FetchLeagueUsers(ctx, "l1")
			return err
		},
		providers.OpFetchLeagueMatchups: func(ctx context.Context) error {
			_, err := client.FetchLeagueMatchups(ctx, "l1", 1)
			return err
		},
		providers.OpFetchAllPlayers: func(ctx context.Context) error {
			_, err := client.FetchAllPlayers(ctx, "nfl")
			return err
		},
		providers.OpFetchTrendingPlayers: func(ctx context.Context) error {
			_, err := client.FetchTrendingPlayers(ctx, fantasy.NewTrendingQuery("nfl", fantasy.TrendAdd))
			return err
		},
	}
}

func assertUnavailable(t *testing.T, op string, err error) {
	t.Helper()
	require.Error(t, err, op)
	assert.ErrorIs(t, err, providers.ErrProviderUnavailable, op)
	var urlErr *url.Error
	assert.False(t, errors.As(err, &urlErr), "%s leaked transport error", op)
	assert.NotErrorIs(t, err, context.DeadlineExceeded, op)
	pErr, ok := providers.AsError(err)
	require.True(t, ok, op)
	assert.Equal(t, op, pErr.Op)
	assert.NotNil(t, pErr.Cause(), op)
}

func TestErrorBoundaryServerError(t *testing.T) {
	client := newHandlerClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}, 0)
	for op, call := range everyOperation(client) {
		assertUnavailable(t, op, call(context.Background()))
	}
}

func TestErrorBoundaryNotFoundStatus(t *testing.T) {
	client := newHandlerClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}, 0)
	for op, call := range everyOperation(client) {
		assertUnavailable(t, op, call(context.Background()))
	}
}

func TestErrorBoundaryMalformedJSON(t *testing.T) {
	client := newHandlerClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user_id": [`))
	}, 0)
	for op, call := range everyOperation(client) {
		assertUnavailable(t, op, call(context.Background()))
	}
}

func TestErrorBoundaryTimeout(t *testing.T) {
	client := newHandlerClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, 20*time.Millisecond)
	for op, call := range everyOperation(client) {
		assertUnavailable(t, op, call(context.Background()))
	}
}

func TestErrorBoundaryCanceledContext(t *testing.T) {
	client, fake := newFakeClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for op, call := range everyOperation(client) {
		err := call(ctx)
		assertUnavailable(t, op, err)
		assert.NotErrorIs(t, err, context.Canceled)
	}
	assert.Zero(t, fake.Hits())
}

func TestErrorBoundaryConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client := sleeper.NewClient(sleeper.Config{BaseURL: base})
	for op, call := range everyOperation(client) {
		assertUnavailable(t, op, call(context.Background()))
	}
}

func TestRateLimitedResponseCarriesRetryAfter(t *testing.T) {
	client := newHandlerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}, 0)

	_, err := client.FetchAllPlayers(context.Background(), "nfl")
	assert.ErrorIs(t, err, providers.ErrProviderUnavailable)

	rl, ok := providers.AsRateLimitError(err)
	require.True(t, ok)
	assert.Equal(t, 7*time.Second, rl.RetryAfter)
	assert.Equal(t, http.StatusTooManyRequests, rl.StatusCode)
	assert.Equal(t, sleeper.Name, rl.Provider)
}

func TestShapeViolationIsUnavailable(t *testing.T) {
	client := newHandlerClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"username":"ghost"}`))
	}, 0)

	_, err := client.FetchUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, providers.ErrProviderUnavailable)
}
