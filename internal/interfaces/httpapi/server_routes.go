package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerSeasonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons", handler.ListSeasons)
	mux.HandleFunc("POST /v1/seasons", handler.CreateSeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}", handler.GetSeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/teams", handler.ListTeamSeasons)
	mux.HandleFunc("PUT /v1/seasons/{seasonID}/teams/{teamID}", handler.UpsertTeamSeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/teams/{teamID}/players", handler.ListRoster)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/standings", handler.ListStandings)
	mux.HandleFunc("POST /v1/seasons/{seasonID}/rankings/top25", handler.AssignTop25)
	mux.HandleFunc("POST /v1/seasons/{seasonID}/stats/recompute", handler.RecomputeSeasonStats)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/polls", handler.GetWeeklyPoll)
	mux.HandleFunc("POST /v1/seasons/{seasonID}/players/progression", handler.RunProgression)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/players/{playerID}/career", handler.GetPlayerCareer)
	mux.HandleFunc("POST /v1/players/{playerID}/redshirt", handler.ToggleRedshirt)
	mux.HandleFunc("GET /v1/dashboard", handler.GetDashboard)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons/{seasonID}/games", handler.ListSeasonGames)
	mux.HandleFunc("POST /v1/seasons/{seasonID}/games", handler.CreateGame)
	mux.HandleFunc("GET /v1/games/{gameID}", handler.GetGame)
	mux.HandleFunc("PUT /v1/games/{gameID}/score", handler.UpdateGameScore)
}

func registerPlayoffRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/playoff/{seasonID}/bracket", handler.GetBracket)
	mux.HandleFunc("POST /v1/playoff/{seasonID}/bracket", handler.CreateBracketShell)
	mux.HandleFunc("POST /v1/playoff/{seasonID}/seed_bracket", handler.SeedBracket)
	mux.HandleFunc("POST /v1/playoff/{seasonID}/manual-seed-bracket", handler.ManualSeedBracket)
	mux.HandleFunc("POST /v1/playoff/{seasonID}/playoff-result", handler.SubmitPlayoffResult)
	mux.HandleFunc("POST /v1/playoff/{seasonID}/batch-playoff-result", handler.SubmitPlayoffResults)
	mux.HandleFunc("GET /v1/playoff/{seasonID}/eligible-teams", handler.ListEligibleTeams)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/recruiting-class", handler.AddRecruitingClass)
	mux.HandleFunc("GET /v1/recruiting-class", handler.ListRecruitingClass)
	mux.HandleFunc("POST /v1/transfer-portal", handler.AddTransferPortal)
	mux.HandleFunc("GET /v1/transfer-portal", handler.ListTransferPortal)
	mux.HandleFunc("POST /v1/rankings/recruiting", handler.ImportRecruitingRanks)
}
