// Package handler exposes the services over HTTP with gin.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/middleware"
	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/observability"
	"leadership-dashboard/internal/progress"
	"leadership-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// base carries what every handler needs besides its service.
type base struct {
	expose bool
	now    func() time.Time
}

func (b base) today() time.Time { return progress.Day(b.now()) }

// fail writes err as {error, details}. Unexpected errors become 500s, are
// logged and reported; their message is only shown when expose is set.
func (b base) fail(c *gin.Context, err error) {
	var status int
	var label string
	switch {
	case errors.Is(err, service.ErrBadLogin):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrCycle):
		status, label = http.StatusBadRequest, "invalid input"
	case errors.Is(err, service.ErrForbidden):
		status, label = http.StatusForbidden, "forbidden"
	case errors.Is(err, service.ErrNotFound):
		status, label = http.StatusNotFound, "not found"
	case errors.Is(err, service.ErrConflict):
		status, label = http.StatusConflict, "conflict"
	default:
		rid := middleware.GetRequestID(c)
		logger.Error("http.error", "request_id", rid, "route", c.FullPath(), "err", err)
		observability.CaptureRequestErr(err, rid, c.Request.Method, c.FullPath())
		body := gin.H{"error": "internal error"}
		if b.expose {
			body["details"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
		return
	}
	c.JSON(status, gin.H{"error": label, "details": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
}

func actor(c *gin.Context) service.Actor {
	return service.Actor{ID: middleware.UserID(c), Role: middleware.Role(c)}
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, fmt.Errorf("%s must be a positive integer", name))
		return 0, false
	}
	return id, true
}

// optionalID reads an optional positive integer query parameter.
func optionalID(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, fmt.Errorf("%s must be a positive integer", name))
		return nil, false
	}
	return &id, true
}

func dateParam(c *gin.Context, name string) (model.Date, bool) {
	d, err := model.ParseDate(c.Param(name))
	if err != nil {
		badRequest(c, err)
		return "", false
	}
	return d, true
}

// dateQuery reads an optional YYYY-MM-DD query parameter, def when absent.
func dateQuery(c *gin.Context, name string, def time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		badRequest(c, err)
		return time.Time{}, false
	}
	return d.Time(), true
}

// monthQuery accepts YYYY-MM or any YYYY-MM-DD inside the month.
func monthQuery(c *gin.Context, name string, def time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	if t, err := time.Parse("2006-01", raw); err == nil {
		return t, true
	}
	return dateQuery(c, name, def)
}
