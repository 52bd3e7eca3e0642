// README: Fare prediction handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farecast/internal/inference"
)

type PredictHandler struct {
	svc *inference.Service
}

func NewPredictHandler(svc *inference.Service) *PredictHandler {
	return &PredictHandler{svc: svc}
}

// Index handles GET /.
func (h *PredictHandler) Index(c *gin.Context) {
	writeJSON(c, http.StatusOK, map[string]any{"message": "Welcome to the fare prediction API"})
}

// Predict handles POST /predict_fare.
func (h *PredictHandler) Predict(c *gin.Context) {
	var req inference.RideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	fare, err := h.svc.Predict(c.Request.Context(), req)
	if err != nil {
		writePredictError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"prediction": fare})
}

// Reload handles POST /model/reload, swapping in a freshly persisted
// artifact without restarting the server.
func (h *PredictHandler) Reload(c *gin.Context) {
	if err := h.svc.Reload(c.Request.Context()); err != nil {
		writePredictError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"status": "reloaded"})
}
