package handlers

import (
	"fmt"
	"net/http"

	"writing_challenge/internal/models"
	"writing_challenge/internal/service"

	"github.com/gin-gonic/gin"
)

const resetConfirmation = "RESET"

type phaseRequest struct {
	Phase models.Phase `json:"phase" binding:"required" example:"voting"`
}

type activeRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type wordRequest struct {
	Word string `json:"word" binding:"required" example:"Trust"`
}

type winnerRequest struct {
	SubmissionID string `json:"submission_id" binding:"required"`
}

type resetRequest struct {
	Confirm string `json:"confirm" binding:"required" example:"RESET"`
}

// ConfigPatchRequest is a partial config update; omitted fields are unchanged.
type ConfigPatchRequest struct {
	CurrentWord    *string       `json:"current_word,omitempty" example:"Trust"`
	ChallengeMonth *string       `json:"challenge_month,omitempty" example:"April 2025"`
	Phase          *models.Phase `json:"phase,omitempty" example:"writing"`
}

// @Summary      Admin dashboard
// @Tags         admin
// @Produce      json
// @Success      200  {object}  models.Dashboard
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/admin/dashboard [get]
// @Security     BearerAuth
func (h *Handler) dashboard(c *gin.Context) {
	d, err := h.services.Dashboard(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, "admin_dashboard_failed", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary      Patch config
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        input  body      ConfigPatchRequest  true  "fields to change"
// @Success      200    {object}  models.ContestConfig
// @Router       /api/v1/admin/config [patch]
// @Security     BearerAuth
func (h *Handler) patchConfig(c *gin.Context) {
	var req ConfigPatchRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	cfg, err := h.services.Update(c.Request.Context(), service.ConfigPatch{
		CurrentWord:    req.CurrentWord,
		ChallengeMonth: req.ChallengeMonth,
		Phase:          req.Phase,
	})
	if err != nil {
		h.logAndJSONError(c, "admin_patch_config_failed", err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// @Summary      Set phase
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        input  body      phaseRequest  true  "writing, voting or results"
// @Success      200    {object}  models.ContestConfig
// @Failure      400    {object}  map[string]string
// @Router       /api/v1/admin/phase [put]
// @Security     BearerAuth
func (h *Handler) setPhase(c *gin.Context) {
	var req phaseRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	cfg, err := h.services.SetPhase(c.Request.Context(), req.Phase)
	if err != nil {
		h.logAndJSONError(c, "admin_set_phase_failed", err, "phase", req.Phase)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// @Summary      Open or close writing
// @Description  Opening writing closes voting; closing it while open moves to results.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        input  body      activeRequest  true  "active flag"
// @Success      200    {object}  models.ContestConfig
// @Failure      400    {object}  map[string]string
// @Router       /api/v1/admin/phase/writing [put]
// @Security     BearerAuth
func (h *Handler) setWritingPhase(c *gin.Context) {
	var req activeRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	cfg, err := h.services.SetWritingPhase(c.Request.Context(), *req.Active)
	if err != nil {
		h.logAndJSONError(c, "admin_set_writing_failed", err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// @Summary      Open or close voting
// @Description  Opening voting closes writing; closing it while open moves to results.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        input  body      activeRequest  true  "active flag"
// @Success      200    {object}  models.ContestConfig
// @Failure      400    {object}  map[string]string
// @Router       /api/v1/admin/phase/voting [put]
// @Security     BearerAuth
func (h *Handler) setVotingPhase(c *gin.Context) {
	var req activeRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	cfg, err := h.services.SetVotingPhase(c.Request.Context(), *req.Active)
	if err != nil {
		h.logAndJSONError(c, "admin_set_voting_failed", err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// togglePhase flips writing or voting.
//
// @Summary      Toggle a phase
// @Description  Opens the phase if it is closed, otherwise closes it into results.
// @Tags         admin
// @Produce      json
// @Success      200  {object}  models.ContestConfig
// @Router       /api/v1/admin/phase/writing/toggle [post]
// @Router       /api/v1/admin/phase/voting/toggle [post]
// @Security     BearerAuth
func (h *Handler) togglePhase(p models.Phase) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, err := h.services.TogglePhase(c.Request.Context(), p)
		if err != nil {
			h.logAndJSONError(c, "admin_toggle_phase_failed", err, "phase", p)
			return
		}
		c.JSON(http.StatusOK, cfg)
	}
}

// @Summary      Set word
// @Description  Changes the word and month label. Does not archive; use /rounds for that.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        input  body      wordRequest  true  "word"
// @Success      200    {object}  models.ContestConfig
// @Router       /api/v1/admin/word [put]
// @Security     BearerAuth
func (h *Handler) setWord(c *gin.Context) {
	var req wordRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	cfg, err := h.services.SetWord(c.Request.Context(), req.Word)
	if err != nil {
		h.logAndJSONError(c, "admin_set_word_failed", err, "word", req.Word)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// @Summary      Declare winner
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        input  body      winnerRequest  true  "submission"
// @Success      200    {object}  models.Submission
// @Failure      404    {object}  map[string]string
// @Router       /api/v1/admin/winner [post]
// @Security     BearerAuth
func (h *Handler) declareWinner(c *gin.Context) {
	var req winnerRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	w, err := h.services.DeclareWinner(c.Request.Context(), req.SubmissionID)
	if err != nil {
		h.logAndJSONError(c, "admin_declare_winner_failed", err, "submission_id", req.SubmissionID)
		return
	}
	c.JSON(http.StatusOK, w)
}

// @Summary      Declare the top-voted entry
// @Tags         admin
// @Produce      json
// @Success      200  {object}  models.Submission
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/admin/winner/auto [post]
// @Security     BearerAuth
func (h *Handler) autoDeclareWinner(c *gin.Context) {
	w, err := h.services.AutoDeclareTopVoted(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, "admin_auto_winner_failed", err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// @Summary      Clear winner
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/v1/admin/winner [delete]
// @Security     BearerAuth
func (h *Handler) clearWinner(c *gin.Context) {
	if err := h.services.ClearWinner(c.Request.Context()); err != nil {
		h.logAndJSONError(c, "admin_clear_winner_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusCleared})
}

// @Summary      Archive the current round
// @Description  Appends an archive snapshot without changing the word or phase.
// @Tags         admin
// @Produce      json
// @Success      201  {object}  models.ArchiveEntry
// @Router       /api/v1/admin/archive [post]
// @Security     BearerAuth
func (h *Handler) archiveRound(c *gin.Context) {
	entry, err := h.services.ArchiveRound(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, "admin_archive_failed", err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// @Summary      Start a new round
// @Description  Archives the current round and opens writing for the new word.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        input  body      wordRequest  true  "new word"
// @Success      201    {object}  map[string]interface{}  "archive, config"
// @Router       /api/v1/admin/rounds [post]
// @Security     BearerAuth
func (h *Handler) newRound(c *gin.Context) {
	var req wordRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	entry, cfg, err := h.services.ResetForNewRound(c.Request.Context(), req.Word)
	if err != nil {
		h.logAndJSONError(c, "admin_new_round_failed", err, "word", req.Word)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"archive": entry, "config": cfg})
}

// @Summary      Export everything
// @Tags         admin
// @Produce      json
// @Success      200  {object}  models.ExportBundle
// @Router       /api/v1/admin/export [get]
// @Security     BearerAuth
func (h *Handler) export(c *gin.Context) {
	bundle, err := h.services.Export(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, "admin_export_failed", err)
		return
	}
	name := fmt.Sprintf("writing-challenge-%s.json", bundle.ExportedAt.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.JSON(http.StatusOK, bundle)
}

// @Summary      Reset database
// @Description  Deletes everything and restores the default config and admin. Body must be {"confirm":"RESET"}.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        input  body      resetRequest  true  "confirmation"
// @Success      200    {object}  map[string]string
// @Failure      400    {object}  map[string]string
// @Router       /api/v1/admin/reset [post]
// @Security     BearerAuth
func (h *Handler) resetDatabase(c *gin.Context) {
	var req resetRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	if req.Confirm != resetConfirmation {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("confirm must be %q", resetConfirmation)})
		return
	}
	if err := h.services.ResetDatabase(c.Request.Context()); err != nil {
		h.logAndJSONError(c, "admin_reset_failed", err)
		return
	}
	h.log.Warnw("database_reset")
	c.JSON(http.StatusOK, gin.H{"status": statusReset})
}

// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, users"
// @Router       /api/v1/admin/users [get]
// @Security     BearerAuth
func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.services.ListUsers(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, "admin_list_users_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(users),
		"users": users,
	})
}
