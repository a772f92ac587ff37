package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nickmwangemi/Flight-Management-API/internal/domain"
)

// Response envelope: success payloads carry {status, data} and optionally
// {message}; errors carry {status, message}.

func respondData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"status": "success", "data": data})
}

func respondMessage(c *gin.Context, code int, message string, data interface{}) {
	body := gin.H{"status": "success", "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(code, body)
}

// respondError maps error kinds to HTTP status codes: validation → 400,
// not found → 404, conflict → 409, blocked delete → 400.
func respondError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case domain.IsValidation(err):
		code = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, domain.ErrPreconditionFailed):
		code = http.StatusBadRequest
	}
	c.JSON(code, gin.H{"status": "error", "message": err.Error()})
}
