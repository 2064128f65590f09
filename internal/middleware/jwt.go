package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"leadership-dashboard/internal/config"
	"leadership-dashboard/internal/logger"
	"leadership-dashboard/internal/model"
	"leadership-dashboard/internal/observability"
	"leadership-dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// UserLoader resolves the token subject to an active user. The role is
// always read from there, never from the token.
type UserLoader interface {
	Active(ctx context.Context, id int64) (*model.User, error)
}

// JWT issues and verifies HS256 bearer tokens carrying only the user id.
type JWT struct {
	secret []byte
	ttl    time.Duration
	renew  time.Duration
	now    func() time.Time
}

func NewJWT(cfg config.AuthConfig) *JWT {
	return &JWT{secret: []byte(cfg.JWTSecret), ttl: cfg.TokenTTL, renew: cfg.RenewWithin, now: time.Now}
}

func (j *JWT) Issue(uid int64) (string, error) {
	now := j.now()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprint(uid),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
	}).SignedString(j.secret)
}

func (j *JWT) parse(raw string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(j.now))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Auth rejects requests without a valid bearer token or whose user is gone
// or deactivated. Tokens that expire within the renew window get a fresh one
// in X-New-Token. A failing user lookup is a 500; expose adds its message.
func (j *JWT) Auth(users UserLoader, expose bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		claims, err := j.parse(auth[7:])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		var uid int64
		if _, err := fmt.Sscan(claims.Subject, &uid); err != nil || uid <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		u, err := users.Active(c.Request.Context(), uid)
		switch {
		case errors.Is(err, service.ErrNotFound):
			logger.Warn("auth.user_rejected", "uid", uid, "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account inactive"})
			return
		case err != nil:
			rid := GetRequestID(c)
			if !errors.Is(err, context.Canceled) {
				logger.Error("auth.lookup_failed", "request_id", rid, "uid", uid, "err", err)
				observability.CaptureRequestErr(err, rid, c.Request.Method, c.FullPath())
			}
			body := gin.H{"error": "internal error"}
			if expose {
				body["details"] = err.Error()
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, body)
			return
		}
		c.Set(ctxUserID, u.ID)
		c.Set(ctxRole, u.Role)

		if claims.ExpiresAt != nil && claims.ExpiresAt.Sub(j.now()) < j.renew {
			if token, err := j.Issue(u.ID); err == nil {
				c.Header("X-New-Token", token)
			}
		}

		c.Next()
	}
}

// UserID returns the authenticated user id.
func UserID(c *gin.Context) int64 {
	v, _ := c.Get(ctxUserID)
	id, _ := v.(int64)
	return id
}

// Role returns the authenticated user's role.
func Role(c *gin.Context) model.Role {
	v, _ := c.Get(ctxRole)
	r, _ := v.(model.Role)
	return r
}

// RequireRole lets only the listed roles through.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := Role(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}
