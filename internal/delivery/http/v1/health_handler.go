package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"profiler-backend/internal/delivery/http/response"
	"profiler-backend/internal/usecase"
	"profiler-backend/pkg/logger"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(r gin.IRoutes, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	r.GET("/health", handler.Health)
	r.GET("/ready", handler.Ready)
}

// Health godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.healthUC.Check(c.Request.Context()))
}

// Ready godoc
// @Summary      Readiness probe
// @Description  Checks every configured dependency.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	report, err := h.healthUC.Ready(c.Request.Context())
	if err != nil {
		logger.Log.WarnContext(c.Request.Context(), "readiness check failed", "error", err.Error())
		response.JSON(c, http.StatusServiceUnavailable, report)
		return
	}
	response.JSON(c, http.StatusOK, report)
}
