package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dtroode/filedrop/internal/logger"
	"github.com/dtroode/filedrop/internal/model"
)

const healthTimeout = 2 * time.Second

// Health reports whether the database answers.
type Health struct {
	pinger model.Pinger
	logger *logger.Logger
}

// NewHealth creates a new Health handler.
func NewHealth(pinger model.Pinger, logger *logger.Logger) *Health {
	return &Health{pinger: pinger, logger: logger}
}

type healthResponse struct {
	Status string `json:"status"`
}

// Check answers 200 when the database is reachable and 503 otherwise.
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	status, resp := http.StatusOK, healthResponse{Status: "ok"}
	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Error("Health handler: database ping failed", "error", err.Error())
		status, resp = http.StatusServiceUnavailable, healthResponse{Status: "unavailable"}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Debug("Health handler: failed to write response", "error", err.Error())
	}
}
