package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nickmwangemi/Flight-Management-API/internal/domain"
	"github.com/nickmwangemi/Flight-Management-API/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
	router.PUT("/:id/assign-aircraft/:aircraft_id", h.assignAircraft)
}

func (h *FlightHandler) list(c *gin.Context) {
	input := flights.ListFlightsInput{
		DepartureAirport: c.Query("departure_airport"),
		ArrivalAirport:   c.Query("arrival_airport"),
		DepartureAfter:   c.Query("departure_after"),
		DepartureBefore:  c.Query("departure_before"),
	}
	list, err := h.service.List(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, flight)
}

func (h *FlightHandler) create(c *gin.Context) {
	var input flights.CreateFlightInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, domain.Invalid("invalid request body"))
		return
	}
	flight, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, "Flight created successfully", flight)
}

func (h *FlightHandler) update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input flights.UpdateFlightInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, domain.Invalid("invalid request body"))
		return
	}
	flight, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Flight updated successfully", flight)
}

func (h *FlightHandler) delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Flight deleted successfully", nil)
}

func (h *FlightHandler) assignAircraft(c *gin.Context) {
	flightID, ok := parseID(c, "id")
	if !ok {
		return
	}
	aircraftID, ok := parseID(c, "aircraft_id")
	if !ok {
		return
	}
	flight, err := h.service.AssignAircraft(c.Request.Context(), flightID, aircraftID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Aircraft assigned successfully", flight)
}
