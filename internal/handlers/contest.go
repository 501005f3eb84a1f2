package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"writing_challenge/internal/models"
	"writing_challenge/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmissionRequest is the body of a new contest entry.
type SubmissionRequest struct {
	Title   string `json:"title" binding:"required" example:"Harbor"`
	Content string `json:"content" binding:"required" example:"The lights came on one by one..."`
}

// @Summary      Contest state
// @Description  Config, phase, tally and winner of the current round.
// @Tags         contest
// @Produce      json
// @Success      200  {object}  models.ContestState
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/contest/state [get]
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, "contest_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Contest config
// @Tags         contest
// @Produce      json
// @Success      200  {object}  models.ContestConfig
// @Router       /api/v1/contest/config [get]
func (h *Handler) getConfig(c *gin.Context) {
	cfg, err := h.services.Config.Get(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, "contest_get_config_failed", err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// @Summary      List submissions
// @Tags         contest
// @Produce      json
// @Param        word  query     string  false  "Word; defaults to the current word"
// @Success      200   {object}  map[string]interface{}  "count, submissions"
// @Router       /api/v1/contest/submissions [get]
func (h *Handler) listSubmissions(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		subs []models.Submission
		err  error
	)
	if word := strings.TrimSpace(c.Query("word")); word != "" {
		subs, err = h.services.ListForWord(ctx, word)
	} else {
		subs, err = h.services.ListCurrent(ctx)
	}
	if err != nil {
		h.logAndJSONError(c, "contest_list_submissions_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":       len(subs),
		"submissions": subs,
	})
}

// @Summary      Get submission
// @Tags         contest
// @Produce      json
// @Param        id   path      string  true  "Submission ID"
// @Success      200  {object}  models.Submission
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/contest/submissions/{id} [get]
func (h *Handler) getSubmission(c *gin.Context) {
	id := c.Param("id")
	sub, err := h.services.GetByID(c.Request.Context(), id)
	if err == nil && sub == nil {
		err = fmt.Errorf("%w: submission %s", service.ErrNotFound, id)
	}
	if err != nil {
		h.logAndJSONError(c, "contest_get_submission_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// @Summary      Vote tally
// @Tags         contest
// @Produce      json
// @Param        word  query     string  false  "Word; defaults to the current word"
// @Success      200   {object}  map[string]interface{}  "tally"
// @Router       /api/v1/contest/tally [get]
func (h *Handler) getTally(c *gin.Context) {
	tally, err := h.services.Tally(c.Request.Context(), strings.TrimSpace(c.Query("word")))
	if err != nil {
		h.logAndJSONError(c, "contest_tally_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tally": tally})
}

// @Summary      Winner
// @Tags         contest
// @Produce      json
// @Param        word  query     string  false  "Word; defaults to the current word"
// @Success      200   {object}  models.Submission
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/contest/winner [get]
func (h *Handler) getWinner(c *gin.Context) {
	word := strings.TrimSpace(c.Query("word"))
	w, err := h.services.GetWinner(c.Request.Context(), word)
	if err == nil && w == nil {
		err = fmt.Errorf("%w: no winner declared", service.ErrNotFound)
	}
	if err != nil {
		h.logAndJSONError(c, "contest_get_winner_failed", err, "word", word)
		return
	}
	c.JSON(http.StatusOK, w)
}

// @Summary      Archived rounds
// @Tags         contest
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, archives"
// @Router       /api/v1/contest/archives [get]
func (h *Handler) listArchives(c *gin.Context) {
	archives, err := h.services.ListArchives(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, "contest_list_archives_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(archives),
		"archives": archives,
	})
}

// @Summary      Has the caller voted this round
// @Tags         contest
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /api/v1/contest/voted [get]
// @Security     BearerAuth
func (h *Handler) hasVoted(c *gin.Context) {
	u, _ := currentUser(c)
	voted, err := h.services.HasVotedThisRound(c.Request.Context(), u.ID)
	if err != nil {
		h.logAndJSONError(c, "contest_has_voted_failed", err, "user_id", u.ID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"voted": voted})
}

// @Summary      Submit an entry
// @Description  One entry per user per word, only while writing is open.
// @Tags         contest
// @Accept       json
// @Produce      json
// @Param        input  body      SubmissionRequest  true  "entry"
// @Success      201    {object}  models.Submission
// @Failure      400    {object}  map[string]string
// @Failure      409    {object}  map[string]string
// @Router       /api/v1/contest/submissions [post]
// @Security     BearerAuth
func (h *Handler) createSubmission(c *gin.Context) {
	var req SubmissionRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	u, _ := currentUser(c)

	sub, err := h.services.Submissions.Create(c.Request.Context(), u.ID, u.Username, req.Title, req.Content)
	if err != nil {
		h.logAndJSONError(c, "contest_create_submission_failed", err, "user_id", u.ID)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

// @Summary      Vote
// @Description  One vote per user per round; never for one's own entry.
// @Tags         contest
// @Produce      json
// @Param        id   path      string  true  "Submission ID"
// @Success      200  {object}  models.Submission
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/contest/submissions/{id}/vote [post]
// @Security     BearerAuth
func (h *Handler) vote(c *gin.Context) {
	u, _ := currentUser(c)
	id := c.Param("id")

	sub, err := h.services.Vote(c.Request.Context(), u.ID, id)
	if err != nil {
		h.logAndJSONError(c, "contest_vote_failed", err, "user_id", u.ID, "submission_id", id)
		return
	}
	c.JSON(http.StatusOK, sub)
}
