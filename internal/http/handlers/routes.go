package handlers

import "github.com/go-chi/chi/v5"

// SleeperRoutes returns the sub-router mounted under /api/sleeper.
func (h *Handler) SleeperRoutes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/user/{"+ParamUsernameOrID+"}", h.User)
	r.Get("/user/{"+ParamUserID+"}/leagues/{"+ParamSport+"}/{"+ParamSeason+"}", h.UserLeagues)
	r.Route("/league/{"+ParamLeagueID+"}", func(r chi.Router) {
		r.Get("/", h.League)
		r.Get("/rosters", h.LeagueRosters)
		r.Get("/users", h.LeagueUsers)
		r.Get("/matchups/{"+ParamWeek+"}", h.LeagueMatchups)
	})
	r.Get("/players/{"+ParamSport+"}", h.AllPlayers)
	r.Get("/players/{"+ParamSport+"}/trending/{"+ParamType+"}", h.TrendingPlayers)
	return r
}
