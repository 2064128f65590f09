package handler

import (
	"net/http"

	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/middleware"
	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	base
	auth  *service.AuthService
	users *service.UserService
	jwt   *middleware.JWT
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	u, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("login.failed", "email", req.Email)
		h.fail(c, err)
		return
	}
	token, err := h.jwt.Issue(u.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	logger.Info("login.ok", "uid", u.ID, "role", u.Role)

	p, err := h.users.Profile(c.Request.Context(), u.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.LoginResponse{Token: token, User: *p})
}

func (h *AuthHandler) Me(c *gin.Context) {
	p, err := h.users.Profile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *AuthHandler) SetTargets(c *gin.Context) {
	var req model.PersonalTargets
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.users.SetTargets(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *AuthHandler) SetMonthlyTargets(c *gin.Context) {
	var req model.MetricValues
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a := actor(c)
	p, err := h.users.SetMonthlyTargets(c.Request.Context(), a, a.ID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
