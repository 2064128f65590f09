package handler

import (
	"net/http"
	"strconv"

	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	base
	bookings *service.BookingService
}

func (h *BookingHandler) ListSpeakers(c *gin.Context) {
	speakers, err := h.bookings.ListSpeakers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, speakers)
}

func (h *BookingHandler) CreateSpeaker(c *gin.Context) {
	var req model.SpeakerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sp, err := h.bookings.CreateSpeaker(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sp)
}

func (h *BookingHandler) UpdateSpeaker(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req model.SpeakerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sp, err := h.bookings.UpdateSpeaker(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sp)
}

func (h *BookingHandler) DeleteSpeaker(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.bookings.DeleteSpeaker(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) List(c *gin.Context) {
	var f service.BookingFilter
	f.EventID, _ = strconv.ParseInt(c.Query("event_id"), 10, 64)
	f.SpeakerID, _ = strconv.ParseInt(c.Query("speaker_id"), 10, 64)
	f.Status = model.BookingStatus(c.Query("status"))
	for name, dst := range map[string]*model.Date{"from": &f.From, "to": &f.To} {
		if raw := c.Query(name); raw != "" {
			d, err := model.ParseDate(raw)
			if err != nil {
				badRequest(c, err)
				return
			}
			*dst = d
		}
	}
	list, err := h.bookings.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) Book(c *gin.Context) {
	var req model.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.bookings.Book(c.Request.Context(), actor(c), req, h.today())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	b, err := h.bookings.Cancel(c.Request.Context(), actor(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
