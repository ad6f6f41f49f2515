package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /{$}", handler.Root)
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerTeamRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, authEnforced bool) {
	mux.Handle("POST /teams", guard(authEnforced, verifier, handler.RegisterTeam))
	mux.HandleFunc("GET /teams", handler.ListTeams)
	mux.HandleFunc("GET /teams/nearby", handler.FindNearbyTeams)
}

func registerMatchRequestRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier, authEnforced bool) {
	mux.Handle("POST /match-requests", guard(authEnforced, verifier, handler.SendMatchRequest))
	mux.Handle("POST /match-requests/{requestID}/accept", guard(authEnforced, verifier, handler.AcceptMatchRequest))
	mux.Handle("POST /match-requests/{requestID}/reject", guard(authEnforced, verifier, handler.RejectMatchRequest))
	mux.Handle("POST /match-requests/{requestID}/confirm", guard(authEnforced, verifier, handler.ConfirmMatchRequest))
	mux.HandleFunc("GET /match-requests", handler.ListMatchRequests)
}

// guard wraps mutating routes with RequireAuth when ownership is enforced.
func guard(authEnforced bool, verifier TokenVerifier, fn http.HandlerFunc) http.Handler {
	if !authEnforced {
		return fn
	}
	return RequireAuth(verifier, fn)
}
