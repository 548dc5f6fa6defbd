package testutil

import (
	"embed"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
)

//go:embed sleeperdata
var sleeperdata embed.FS

// Identifiers served by the fake Sleeper server.
const (
	FakeUsername = "sleeperuser"
	FakeUserID   = "12345678"
	FakeLeagueID = "289646328504385536"
	FakeSeason   = "2024"
)

// FakeSleeperServer serves canned Sleeper responses under /v1. Unknown users answer 200 with a
// null body, the way the real API does.
type FakeSleeperServer struct {
	s    *httptest.Server
	hits atomic.Int64

	mu      sync.Mutex
	lastReq *http.Request
}

// NewFakeSleeperServer starts the server; callers must Close it.
func NewFakeSleeperServer() *FakeSleeperServer {
	f := &FakeSleeperServer{}

	r := chi.NewRouter()
	r.Use(f.record)
	r.Route("/v1", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			r.Get("/{userID}/leagues/{sport}/{season}", userLeaguesHandler)
			r.Get("/{username}", sleeperUserHandler)
		})
		r.Route("/league/{leagueID}", func(r chi.Router) {
			r.Get("/", leagueFileHandler("league.json", "null"))
			r.Get("/rosters", leagueFileHandler("rosters.json", "[]"))
			r.Get("/users", leagueFileHandler("league_users.json", "[]"))
			r.Get("/matchups/{week}", matchupsHandler)
		})
		r.Get("/players/{sport}", playersHandler)
		r.Get("/players/{sport}/trending/{type}", trendingHandler)
	})

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakeSleeperServer) Close() {
	f.s.Close()
}

// URL returns the base URL clients should use, including /v1.
func (f *FakeSleeperServer) URL() string {
	return f.s.URL + "/v1"
}

// Hits returns the number of requests served.
func (f *FakeSleeperServer) Hits() int64 {
	return f.hits.Load()
}

// LastRequest returns the most recent request, or nil.
func (f *FakeSleeperServer) LastRequest() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastReq
}

func (f *FakeSleeperServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		f.mu.Lock()
		f.lastReq = r.Clone(r.Context())
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func sleeperUserHandler(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == FakeUsername || username == FakeUserID {
		serveFile(w, "sleeperuser.json")
		return
	}
	writeRaw(w, "null")
}

func userLeaguesHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "userID") == FakeUserID && chi.URLParam(r, "sport") == "nfl" && chi.URLParam(r, "season") == FakeSeason {
		serveFile(w, "user_leagues.json")
		return
	}
	writeRaw(w, "[]")
}

func leagueFileHandler(name, missing string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "leagueID") != FakeLeagueID {
			writeRaw(w, missing)
			return
		}
		serveFile(w, name)
	}
}

func matchupsHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "leagueID") == FakeLeagueID && chi.URLParam(r, "week") == "1" {
		serveFile(w, "matchups_1.json")
		return
	}
	writeRaw(w, "[]")
}

func playersHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "sport") == "nfl" {
		serveFile(w, "players_nfl.json")
		return
	}
	writeRaw(w, "{}")
}

func trendingHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "sport") == "nfl" && chi.URLParam(r, "type") == "add" {
		serveFile(w, "trending_nfl_add.json")
		return
	}
	writeRaw(w, "[]")
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := sleeperdata.ReadFile("sleeperdata/" + name)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func writeRaw(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
