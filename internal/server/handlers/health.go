package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"accounts-server/internal/shared/response"
)

const pingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Store     string `json:"store"`
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	storeStatus := "disconnected"
	if err := h.store.Ping(ctx); err == nil {
		storeStatus = "connected"
	} else {
		logger.Warn("Account store ping failed", "error", err)
	}

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Store:     storeStatus,
	}

	response.Success(w, http.StatusOK, resp)
}
