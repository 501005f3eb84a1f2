package handlers

import (
	"net/http"
	"strings"
	"time"

	"writing_challenge/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userCtx         = "user"
	requestIDHeader = "X-Request-ID"
)

// requestLogger tags each request with an ID and logs it once it completes.
// A client-supplied X-Request-ID is kept.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Header(requestIDHeader, id)

	c.Next()

	status := c.Writer.Status()
	log := h.log.With("request_id", id, "method", c.Request.Method, "path", c.FullPath())
	if status >= http.StatusInternalServerError {
		log.Warnw("http_request", "status", status, "latency", time.Since(start))
		return
	}
	log.Debugw("http_request", "status", status, "latency", time.Since(start))
}

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userID, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// The token may outlive its user after a database reset.
	user, err := h.services.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.log.Errorw("auth_load_user_failed", "user_id", userID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errInternal})
		return
	}
	if user == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "unknown user",
		})
		return
	}

	c.Set(userCtx, *user)
	c.Next()
}

// adminMiddleware must run after userIdMiddleware.
func (h *Handler) adminMiddleware(c *gin.Context) {
	u, ok := currentUser(c)
	if !ok || !u.IsAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "admin access required",
		})
		return
	}
	c.Next()
}

func currentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userCtx)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}
