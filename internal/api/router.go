package api

import (
	"net/http"
	"tmap-route-service/internal/api/handlers"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(routes *handlers.RouteHandler, log *zap.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/", routes.Form).Methods(http.MethodGet)
	r.HandleFunc("/route", routes.Submit).Methods(http.MethodPost)
	r.HandleFunc("/api/route", routes.Lookup).Methods(http.MethodGet)
	r.HandleFunc("/map", routes.Map).Methods(http.MethodGet)

	r.Use(requestIDMiddleware, loggingMiddleware(log.Named("http")))

	return otelhttp.NewHandler(r, "tmap-route-service")
}
