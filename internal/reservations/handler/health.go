package handler

import (
	"net/http"

	"campsite/internal/reservations/engine"
	httputil "campsite/pkg/http"
	"campsite/pkg/logger"
	"campsite/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type HealthHandler struct {
	engine *engine.Engine
	log    *logger.Logger
}

func NewHealthHandler(eng *engine.Engine, log *logger.Logger) *HealthHandler {
	return &HealthHandler{engine: eng, log: log}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Health)
}

// Health reports liveness plus the ledger horizon, which doubles as a quick
// sanity check that the calendar was initialized.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	horizon := h.engine.Horizon()
	if err := httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":        "ok",
		"horizon_start": horizon.Checkin.Format(model.DateLayout),
		"horizon_end":   horizon.Checkout.Format(model.DateLayout),
	}); err != nil {
		h.log.Error("failed to write health response", "error", err)
	}
}
