package handlers

import (
	"time"

	"writing_challenge/internal/logger"
	"writing_challenge/internal/models"
	"writing_challenge/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services   *service.Service
	log        *logger.Logger
	wsInterval time.Duration
}

// NewHandler constructs a new HTTP handler with dependencies. A nil log discards output.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{services: services, log: log, wsInterval: defaultInterval}
}

// WithStateInterval sets the default push interval of /ws.
func (h *Handler) WithStateInterval(d time.Duration) *Handler {
	if d > 0 && d <= maxInterval {
		h.wsInterval = d
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// Contest state stream over the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
		auth.POST("/sign-out", h.userIdMiddleware, h.signOut)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/me", h.userIdMiddleware, h.me)
		h.registerContestRoutes(api)
		h.registerAdminRoutes(api)
	}
}

func (h *Handler) registerContestRoutes(api *gin.RouterGroup) {
	contest := api.Group("/contest")
	{
		contest.GET("/state", h.getState)
		contest.GET("/config", h.getConfig)
		contest.GET("/submissions", h.listSubmissions)
		contest.GET("/submissions/:id", h.getSubmission)
		contest.GET("/tally", h.getTally)
		contest.GET("/winner", h.getWinner)
		contest.GET("/archives", h.listArchives)
	}

	member := contest.Group("", h.userIdMiddleware)
	{
		member.GET("/voted", h.hasVoted)
		// Body example: {"title":"Harbor","content":"..."}
		member.POST("/submissions", h.createSubmission)
		member.POST("/submissions/:id/vote", h.vote)
	}
}

func (h *Handler) registerAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin", h.userIdMiddleware, h.adminMiddleware)
	{
		admin.GET("/dashboard", h.dashboard)
		admin.PATCH("/config", h.patchConfig)
		admin.PUT("/phase", h.setPhase)
		admin.PUT("/phase/writing", h.setWritingPhase)
		admin.PUT("/phase/voting", h.setVotingPhase)
		admin.POST("/phase/writing/toggle", h.togglePhase(models.PhaseWriting))
		admin.POST("/phase/voting/toggle", h.togglePhase(models.PhaseVoting))
		admin.PUT("/word", h.setWord)
		admin.POST("/winner", h.declareWinner)
		admin.POST("/winner/auto", h.autoDeclareWinner)
		admin.DELETE("/winner", h.clearWinner)
		admin.POST("/archive", h.archiveRound)
		admin.POST("/rounds", h.newRound)
		admin.GET("/export", h.export)
		admin.POST("/reset", h.resetDatabase)
		admin.GET("/users", h.listUsers)
		admin.GET("/logs", h.getLogs)
	}
}
