package handler

import (
	"net/http"

	"leadership-dashboard/internal/middleware"
	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// PushHandler manages the caller's own push subscriptions and consents.
type PushHandler struct {
	base
	push     *service.PushService
	consents *service.ConsentService
}

func (h *PushHandler) List(c *gin.Context) {
	subs, err := h.push.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *PushHandler) Subscribe(c *gin.Context) {
	var req model.PushSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sub, err := h.push.Subscribe(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *PushHandler) Unsubscribe(c *gin.Context) {
	var req model.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.push.Unsubscribe(c.Request.Context(), middleware.UserID(c), req.Endpoint); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PushHandler) ListConsents(c *gin.Context) {
	list, err := h.consents.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PushHandler) RecordConsent(c *gin.Context) {
	var req model.ConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	consent, err := h.consents.Record(c.Request.Context(), middleware.UserID(c), req, h.now())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, consent)
}
