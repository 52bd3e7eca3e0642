// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farecast/internal/http/handlers"
	"farecast/internal/http/middleware"
	"farecast/internal/inference"
)

func NewRouter(svc *inference.Service) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging(), middleware.CORS())

	h := handlers.NewPredictHandler(svc)
	r.GET("/", h.Index)
	r.POST("/predict_fare", h.Predict)
	r.POST("/model/reload", h.Reload)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
