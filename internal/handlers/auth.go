package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type signUpInput struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Email    string `json:"email" binding:"required" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"s3cr3t!"`
}

type signInInput struct {
	Email    string `json:"email" binding:"required" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"s3cr3t!"`
}

// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      signUpInput  true  "account"
// @Success      201    {object}  map[string]interface{}  "user"
// @Failure      400    {object}  map[string]string
// @Failure      409    {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input signUpInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.Register(c.Request.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		h.logAndJSONError(c, "auth_sign_up_failed", err, "email", input.Email)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": u.Profile()})
}

// @Summary      Sign in
// @Description  Returns a bearer token and records the user as the current session.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      signInInput  true  "credentials"
// @Success      200    {object}  map[string]interface{}  "token, user"
// @Failure      401    {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input signInInput
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}
	ctx := c.Request.Context()

	u, err := h.services.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		h.logAndJSONError(c, "auth_sign_in_failed", err, "email", input.Email)
		return
	}

	token, err := h.services.IssueToken(u)
	if err != nil {
		h.logAndJSONError(c, "auth_issue_token_failed", err, "user_id", u.ID)
		return
	}
	if err := h.services.SetSession(ctx, &u); err != nil {
		h.logAndJSONError(c, "auth_set_session_failed", err, "user_id", u.ID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": u.Profile()})
}

// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/sign-out [post]
// @Security     BearerAuth
func (h *Handler) signOut(c *gin.Context) {
	if err := h.services.SetSession(c.Request.Context(), nil); err != nil {
		h.logAndJSONError(c, "auth_sign_out_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSignedOut})
}

// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "user, has_voted, has_submitted"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/me [get]
// @Security     BearerAuth
func (h *Handler) me(c *gin.Context) {
	u, _ := currentUser(c)
	ctx := c.Request.Context()

	cfg, err := h.services.Config.Get(ctx)
	if err != nil {
		h.logAndJSONError(c, "me_get_config_failed", err)
		return
	}
	voted, err := h.services.HasVotedThisRound(ctx, u.ID)
	if err != nil {
		h.logAndJSONError(c, "me_has_voted_failed", err, "user_id", u.ID)
		return
	}
	submitted, err := h.services.HasSubmitted(ctx, u.ID, cfg.CurrentWord)
	if err != nil {
		h.logAndJSONError(c, "me_has_submitted_failed", err, "user_id", u.ID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          u.Profile(),
		"has_voted":     voted,
		"has_submitted": submitted,
	})
}
