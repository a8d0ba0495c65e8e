package httpapi

import (
	"net/http"

	"github.com/riskibarqy/footmate/internal/domain/user"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET "+openAPIPath, handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func authed(verifier TokenVerifier, fn http.HandlerFunc) http.Handler {
	return RequireAuth(verifier, fn)
}

func withRole(verifier TokenVerifier, fn http.HandlerFunc, roles ...user.Role) http.Handler {
	return RequireAuth(verifier, RequireRole(fn, roles...))
}

func registerAccountRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("POST /register", handler.Register)
	mux.HandleFunc("POST /create-password", handler.CreatePassword)
	mux.HandleFunc("POST /login", handler.Login)
	mux.HandleFunc("POST /forgot-password", handler.ForgotPassword)
	mux.HandleFunc("POST /reset-password", handler.ResetPassword)
	mux.Handle("POST /change-password", authed(verifier, handler.ChangePassword))
	mux.Handle("GET /profile", authed(verifier, handler.Profile))
	mux.Handle("PUT /update-details", authed(verifier, handler.UpdateDetails))
}

func registerMemberRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /member/player/list", authed(verifier, handler.ListPlayers))
	mux.Handle("PATCH /admin/member/{user_id}/profile-status", withRole(verifier, handler.ReviewProfile, user.RoleAdmin))
	mux.Handle("PATCH /admin/member/{user_id}/document-status", withRole(verifier, handler.ReviewDocument, user.RoleAdmin))
}

func registerMasterRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("GET /master/country/all", handler.ListCountries)
	mux.HandleFunc("GET /master/country/byId/{id}", handler.GetCountryByID)
	mux.HandleFunc("GET /master/country/byCode/{code}", handler.GetCountryByCode)
	mux.HandleFunc("GET /master/state/all", handler.ListStates)
	mux.HandleFunc("GET /master/state/list", handler.StateList)
	mux.HandleFunc("GET /master/state/byId/{id}", handler.GetStateByID)
	mux.HandleFunc("GET /master/state/byCountryId/{countryId}", handler.ListStatesByCountry)
	mux.HandleFunc("GET /master/city/all", handler.ListCities)
	mux.HandleFunc("GET /master/city/byId/{id}", handler.GetCityByID)
	mux.HandleFunc("GET /master/city/byStateID/{stateId}", handler.ListCitiesByState)
	mux.HandleFunc("GET /master/location/stats", handler.LocationStats)
	mux.HandleFunc("GET /master/ability/list", handler.ListAbilities)
	mux.HandleFunc("GET /master/position/list", handler.ListPositions)
	mux.Handle("POST /master/state/add", withRole(verifier, handler.AddState, user.RoleAdmin))
	mux.Handle("PUT /master/state/{id}", withRole(verifier, handler.EditState, user.RoleAdmin))
	mux.Handle("POST /master/city/add/{state_id}", withRole(verifier, handler.AddCity, user.RoleAdmin))
}

func registerAchievementRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /achievement/stats", authed(verifier, handler.AchievementStats))
	mux.Handle("GET /achievement/list", authed(verifier, handler.ListAchievements))
	mux.Handle("POST /achievement/add", authed(verifier, handler.AddAchievement))
	mux.Handle("PUT /achievement/{id}", authed(verifier, handler.EditAchievement))
	mux.Handle("DELETE /achievement/{id}", authed(verifier, handler.DeleteAchievement))
}

func registerContractRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /employment-contract", authed(verifier, handler.CreateContract))
	mux.Handle("GET /employment-contract/list", authed(verifier, handler.ListContracts))
	mux.Handle("GET /employment-contract/{id}", authed(verifier, handler.GetContract))
	mux.Handle("PUT /employment-contract/{id}", authed(verifier, handler.UpdateContract))
	mux.Handle("DELETE /employment-contract/{id}", authed(verifier, handler.DeleteContract))
	mux.Handle("PATCH /employment-contract/{id}/status", authed(verifier, handler.UpdateContractStatus))
}

func registerFootplayerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	org := []user.Role{user.RoleClub, user.RoleAcademy}
	mux.Handle("GET /footplayers", withRole(verifier, handler.ListFootplayers, org...))
	mux.Handle("POST /footplayer/request", withRole(verifier, handler.SendFootplayerRequest, org...))
	mux.Handle("POST /footplayer/invite", withRole(verifier, handler.InviteFootplayer, org...))
	mux.Handle("PATCH /footplayer/request/{id}/accept", withRole(verifier, handler.AcceptFootplayerRequest, user.RolePlayer))
	mux.Handle("PATCH /footplayer/request/{id}/reject", withRole(verifier, handler.RejectFootplayerRequest, user.RolePlayer))
	mux.Handle("DELETE /footplayers/{id}", authed(verifier, handler.DeleteFootplayer))
}

func registerReportCardRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	org := []user.Role{user.RoleClub, user.RoleAcademy}
	mux.Handle("GET /manage/report-card/list", withRole(verifier, handler.ListManagedReportCards, org...))
	mux.Handle("GET /manage/report-card/list/{player_id}", withRole(verifier, handler.ListManagedPlayerReportCards, org...))
	mux.Handle("POST /report-card", withRole(verifier, handler.CreateReportCard, org...))
	mux.Handle("PUT /report-card/{id}", withRole(verifier, handler.EditReportCard, org...))
	mux.Handle("GET /report-card/{id}", authed(verifier, handler.GetReportCard))
	mux.Handle("GET /player/report-card/list", withRole(verifier, handler.ListPlayerReportCards, user.RolePlayer))
}
