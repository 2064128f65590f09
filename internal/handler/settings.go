package handler

import (
	"net/http"
	"strconv"

	"leadership-dashboard/internal/middleware"
	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	base
	settings  *service.SettingsService
	questions *service.QuestionService
}

func (h *SettingsHandler) Get(c *gin.Context) {
	ps, err := h.settings.Progress(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ps)
}

func (h *SettingsHandler) Put(c *gin.Context) {
	var req service.ProgressSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ps, err := h.settings.SetProgress(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ps)
}

func weekdayParam(c *gin.Context) (int, bool) {
	d, err := strconv.Atoi(c.Param("weekday"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": "weekday must be 1-5"})
		return 0, false
	}
	return d, true
}

// Questions serves the prompts of a weekday; trainees get their extra one.
func (h *SettingsHandler) Questions(c *gin.Context) {
	day, ok := weekdayParam(c)
	if !ok {
		return
	}
	q, err := h.questions.For(c.Request.Context(), day, middleware.Role(c) == model.RoleTrainee)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *SettingsHandler) PutQuestions(c *gin.Context) {
	day, ok := weekdayParam(c)
	if !ok {
		return
	}
	var req model.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	q, err := h.questions.Upsert(c.Request.Context(), day, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}
