package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nickmwangemi/Flight-Management-API/internal/domain"
	"github.com/nickmwangemi/Flight-Management-API/internal/service/aircraft"
)

type AircraftHandler struct {
	service aircraft.AircraftUseCase
}

func NewAircraftHandler(service aircraft.AircraftUseCase) *AircraftHandler {
	return &AircraftHandler{service: service}
}

func (h *AircraftHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

type aircraftResponse struct {
	ID           int64  `json:"id"`
	SerialNumber string `json:"serial_number"`
	Manufacturer string `json:"manufacturer"`
}

func toAircraftResponse(a *domain.Aircraft) aircraftResponse {
	return aircraftResponse{ID: a.ID, SerialNumber: a.SerialNumber, Manufacturer: a.Manufacturer}
}

func (h *AircraftHandler) list(c *gin.Context) {
	aircraft, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]aircraftResponse, 0, len(aircraft))
	for i := range aircraft {
		resp = append(resp, toAircraftResponse(&aircraft[i]))
	}
	respondData(c, http.StatusOK, resp)
}

func (h *AircraftHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, toAircraftResponse(a))
}

func (h *AircraftHandler) create(c *gin.Context) {
	var input aircraft.CreateAircraftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, domain.Invalid("invalid request body"))
		return
	}
	a, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Aircraft created successfully", toAircraftResponse(a))
}

func (h *AircraftHandler) update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input aircraft.UpdateAircraftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, domain.Invalid("invalid request body"))
		return
	}
	a, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Aircraft updated successfully", toAircraftResponse(a))
}

func (h *AircraftHandler) delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Aircraft deleted successfully", nil)
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		respondError(c, domain.Invalid("invalid id"))
		return 0, false
	}
	return id, true
}
