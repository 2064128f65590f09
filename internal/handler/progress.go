package handler

import (
	"net/http"

	"leadership-dashboard/internal/middleware"
	"leadership-dashboard/internal/progress"
	"leadership-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	base
	progress        *service.ProgressService
	recommendations *service.RecommendationService
}

func (h *ProgressHandler) query(c *gin.Context) (service.Query, bool) {
	period, err := progress.ParsePeriod(c.Query("period"))
	if err != nil {
		badRequest(c, err)
		return service.Query{}, false
	}
	q := service.Query{Period: period}
	var ok bool
	if q.Date, ok = dateQuery(c, "date", h.today()); !ok {
		return q, false
	}
	if period == progress.PeriodRange {
		if q.From, ok = dateQuery(c, "from", q.Date); !ok {
			return q, false
		}
		if q.To, ok = dateQuery(c, "to", q.Date); !ok {
			return q, false
		}
	}
	return q, true
}

// User reports the caller, or the user in user_id when the caller may see
// them.
func (h *ProgressHandler) User(c *gin.Context) {
	q, ok := h.query(c)
	if !ok {
		return
	}
	target, ok := optionalID(c, "user_id")
	if !ok {
		return
	}
	uid := middleware.UserID(c)
	if target != nil {
		uid = *target
	}
	r, err := h.progress.ForUser(c.Request.Context(), actor(c), uid, q, h.today())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *ProgressHandler) Team(c *gin.Context) {
	q, ok := h.query(c)
	if !ok {
		return
	}
	teamID, ok := optionalID(c, "team_id")
	if !ok {
		return
	}
	r, err := h.progress.ForTeam(c.Request.Context(), actor(c), teamID, q, h.today())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *ProgressHandler) Recommendations(c *gin.Context) {
	r, err := h.recommendations.For(c.Request.Context(), middleware.UserID(c), h.today())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}
