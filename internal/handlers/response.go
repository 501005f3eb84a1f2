package handlers

import (
	"errors"
	"net/http"

	"writing_challenge/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK        = "ok"
	statusSignedOut = "signed_out"
	statusCleared   = "cleared"
	statusReset     = "reset"

	errInternal        = "internal error"
	errInvalidBodyPref = "invalid body: "
)

// statusFor maps a service error to an HTTP status. A self-vote joined with an
// earlier rejection still reports 403.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAuthFailed), errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrSelfVote):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrPhaseClosed),
		errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrDuplicateSubmission),
		errors.Is(err, service.ErrAlreadyVoted),
		errors.Is(err, service.ErrNoSubmissions):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Centralized error logging and response. Internal failures are logged as errors and
// hidden from the client; domain rejections are logged at info and echoed back.
func (h *Handler) logAndJSONError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	code := statusFor(err)
	fields := append([]interface{}{"err", err, "status", code}, kv...)
	if code >= http.StatusInternalServerError {
		h.log.Errorw(logKey, fields...)
		c.JSON(code, gin.H{"error": errInternal})
		return
	}
	h.log.Infow(logKey, fields...)
	c.JSON(code, gin.H{"error": err.Error()})
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
