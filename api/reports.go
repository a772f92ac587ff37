package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nickmwangemi/Flight-Management-API/internal/service/stats"
)

type ReportsHandler struct {
	service stats.StatsUseCase
}

func NewReportsHandler(service stats.StatsUseCase) *ReportsHandler {
	return &ReportsHandler{service: service}
}

func (h *ReportsHandler) Register(router *gin.RouterGroup) {
	router.GET("/flight-stats", h.flightStats)
}

func (h *ReportsHandler) flightStats(c *gin.Context) {
	input := stats.StatsInput{
		StartTime: c.Query("start_time"),
		EndTime:   c.Query("end_time"),
	}
	report, err := h.service.FlightStatistics(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   report.Airports,
		"meta":   report.Meta,
	})
}
