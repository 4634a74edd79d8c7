package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"rental-backend/services"
	"rental-backend/utils"
)

// respondServiceError maps a service error kind to an HTTP status and
// renders the standard envelope. Storage causes are logged, never
// echoed.
func respondServiceError(c *gin.Context, err error) {
	se := services.AsServiceError(err)

	status := http.StatusInternalServerError
	switch se.Kind {
	case services.KindValidation:
		status = http.StatusBadRequest
	case services.KindNotFound:
		status = http.StatusNotFound
	case services.KindConflict:
		status = http.StatusConflict
	case services.KindStorage:
		log.Printf("storage error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.JSONError(c, status, "internal", "internal server error")
		return
	}

	utils.JSONError(c, status, se.Code, se.Message)
}

// parseIDParam reads the :id route param as an unsigned integer.
func parseIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseDate accepts "2006-01-02" or RFC3339 timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
