package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// Health provides a minimal liveness check endpoint.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(zap.NewNop(), w, r, http.StatusOK, map[string]string{"status": "ok"})
}
