// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"farecast/internal/inference"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writePredictError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, inference.ErrMalformedRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, inference.ErrModelUnavailable):
		writeError(c, http.StatusServiceUnavailable, "model unavailable")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
