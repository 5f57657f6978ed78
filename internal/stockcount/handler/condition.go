package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mknoufi/stock-verify-backend/internal/stockcount/batch"
	"github.com/mknoufi/stock-verify-backend/pkg/httputil"
	"github.com/mknoufi/stock-verify-backend/pkg/logger"
)

// ConditionHandler serves the condition catalog to counting devices
type ConditionHandler struct {
	logger *logger.Logger
}

// NewConditionHandler creates a new condition handler
func NewConditionHandler(log *logger.Logger) *ConditionHandler {
	return &ConditionHandler{logger: log}
}

// Options lists the selectable conditions in display order
func (h *ConditionHandler) Options(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, http.StatusOK, batch.ConditionOptions())
}

// QuickActions lists the one-tap actions offered for a condition
func (h *ConditionHandler) QuickActions(w http.ResponseWriter, r *http.Request) {
	condition := chi.URLParam(r, "condition")

	httputil.JSON(w, http.StatusOK, map[string]interface{}{
		"condition":     condition,
		"quick_actions": batch.QuickActions(batch.ItemCondition(condition)),
	})
}
