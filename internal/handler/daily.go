package handler

import (
	"net/http"
	"time"

	"leadership-dashboard/internal/middleware"
	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/progress"
	"leadership-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// DailyHandler serves the caller's own daily entries and period goals.
type DailyHandler struct {
	base
	daily *service.DailyService
	goals *service.GoalService
}

// List defaults to the current month.
func (h *DailyHandler) List(c *gin.Context) {
	start, end := progress.MonthRange(h.today())
	from, ok := dateQuery(c, "from", start)
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to", end)
	if !ok {
		return
	}
	entries, err := h.daily.List(c.Request.Context(), middleware.UserID(c), model.NewDate(from), model.NewDate(to))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *DailyHandler) Get(c *gin.Context) {
	date, ok := dateParam(c, "date")
	if !ok {
		return
	}
	e, err := h.daily.Get(c.Request.Context(), middleware.UserID(c), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *DailyHandler) Put(c *gin.Context) {
	date, ok := dateParam(c, "date")
	if !ok {
		return
	}
	var req model.DailyEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	e, err := h.daily.Upsert(c.Request.Context(), middleware.UserID(c), date, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *DailyHandler) GetWeekly(c *gin.Context) {
	week, ok := dateParam(c, "week")
	if !ok {
		return
	}
	g, err := h.goals.Weekly(c.Request.Context(), middleware.UserID(c), week.Time())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *DailyHandler) PutWeekly(c *gin.Context) {
	week, ok := dateParam(c, "week")
	if !ok {
		return
	}
	var req model.WeeklyGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	g, err := h.goals.UpsertWeekly(c.Request.Context(), middleware.UserID(c), week.Time(), req.Goals)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *DailyHandler) GetMonthly(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}
	p, err := h.goals.Monthly(c.Request.Context(), middleware.UserID(c), month)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *DailyHandler) PutMonthly(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}
	var req model.PlanningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.goals.UpsertMonthly(c.Request.Context(), middleware.UserID(c), month, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// monthParam accepts :month as YYYY-MM or as any date inside the month.
func monthParam(c *gin.Context) (time.Time, bool) {
	raw := c.Param("month")
	if t, err := time.Parse("2006-01", raw); err == nil {
		return t, true
	}
	d, ok := dateParam(c, "month")
	return d.Time(), ok
}
