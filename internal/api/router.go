package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const apiPrefix = "/api/v1"

// NewRouter wires the HTTP API routes and middleware
func NewRouter(h *AlertHandler, auth *AuthManager, rateLimitRPS int) http.Handler {
	router := mux.NewRouter()

	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	router.NotFoundHandler = http.HandlerFunc(notFound)

	router.HandleFunc(apiPrefix+"/eval", h.Evaluate).Methods(http.MethodPost)
	router.HandleFunc(apiPrefix+"/scan", h.Scan).Methods(http.MethodPost)
	router.HandleFunc(apiPrefix+"/history", h.ListHistory).Methods(http.MethodGet)
	router.HandleFunc(apiPrefix+"/indicators", ListIndicators).Methods(http.MethodGet)
	router.HandleFunc(apiPrefix+"/universes", h.ListUniverses).Methods(http.MethodGet)

	router.HandleFunc("/health", Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler())

	// route-aware middleware runs after mux has matched the route
	router.Use(
		mux.MiddlewareFunc(LoggingMiddleware()),
		mux.MiddlewareFunc(AuthMiddleware(auth)),
	)

	return ChainMiddleware(
		CORSMiddleware(),
		ErrorHandlingMiddleware(),
		RateLimitMiddleware(rateLimitRPS),
	)(router)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, http.StatusMethodNotAllowed, "Method "+r.Method+" not allowed")
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, http.StatusNotFound, "Not found")
}
