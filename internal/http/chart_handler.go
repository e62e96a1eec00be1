package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"saju-api/internal/domain"
	"saju-api/internal/service"
)

// ChartHandler expone el calculo de cartas y compatibilidad.
type ChartHandler struct {
	logger *zap.Logger
	charts *service.ChartService
}

func NewChartHandler(logger *zap.Logger, charts *service.ChartService) *ChartHandler {
	return &ChartHandler{
		logger: logger,
		charts: charts,
	}
}

// Los punteros distinguen un 0 valido (medianoche) de un campo ausente.
type birthMomentRequest struct {
	Year   *int `json:"year" binding:"required"`
	Month  *int `json:"month" binding:"required"`
	Day    *int `json:"day" binding:"required"`
	Hour   *int `json:"hour" binding:"required"`
	Minute *int `json:"minute" binding:"required"`
}

func (r birthMomentRequest) toDomain() domain.BirthMoment {
	return domain.BirthMoment{Year: *r.Year, Month: *r.Month, Day: *r.Day, Hour: *r.Hour, Minute: *r.Minute}
}

// CreateChart maneja POST /v1/charts.
func (h *ChartHandler) CreateChart(c *gin.Context) {
	var req birthMomentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chart request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	report, err := h.charts.Chart(c.Request.Context(), req.toDomain())
	if err != nil {
		h.writeError(c, "chart", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pillars":  report.Pillars,
		"analysis": report.Analysis,
	})
}

// CreateCompatibility maneja POST /v1/compatibility.
func (h *ChartHandler) CreateCompatibility(c *gin.Context) {
	var req struct {
		A *birthMomentRequest `json:"a" binding:"required"`
		B *birthMomentRequest `json:"b" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid compatibility request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	report, err := h.charts.Compatibility(c.Request.Context(), req.A.toDomain(), req.B.toDomain())
	if err != nil {
		h.writeError(c, "compatibility", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"a":      report.A,
		"b":      report.B,
		"result": report.Result,
	})
}

func (h *ChartHandler) writeError(c *gin.Context, op string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		h.logger.Warn(op+" validation failed", zap.String("field", verr.Field), zap.String("reason", verr.Reason))
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, service.ErrBackend):
		h.logger.Error(op+" backend failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "calculation backend error"})
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute " + op})
	}
}
