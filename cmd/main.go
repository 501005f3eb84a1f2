package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	_ "writing_challenge/docs"
	"writing_challenge/internal/config"
	"writing_challenge/internal/handlers"
	"writing_challenge/internal/logger"
	"writing_challenge/internal/repository"
	"writing_challenge/internal/repository/db"
	"writing_challenge/internal/server"
	"writing_challenge/internal/service"
)

// @title                       Writing Challenge API
// @version                     1.0
// @description                 Monthly writing challenge: one word, one entry per member, one vote per member.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	configPath := flag.String("config", "", "path to config file (default: configs/config.yml if present)")
	flag.Parse()

	// load config.yml + CHALLENGE_* env
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New(logger.InfoLevel, logger.ConsoleEncoding).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level, cfg.Log.Encoding)
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// open DB and apply migrations
	conn, err := db.InitDB(ctx, cfg.DB.Path, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, service.Options{
		SigningKey:  cfg.Auth.SigningKey,
		TokenTTL:    cfg.Auth.TokenTTL,
		BcryptCost:  cfg.Auth.BcryptCost,
		DefaultWord: cfg.Contest.DefaultWord,
		Admin: service.AdminSeed{
			Username: cfg.Admin.Username,
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
		},
	})
	if err := services.Bootstrap(ctx); err != nil {
		log.Fatalw("failed to seed contest store", "err", err)
	}
	apiHandler := handlers.NewHandler(services, log).WithStateInterval(cfg.WS.Interval)

	// start HTTP server
	srv := server.New(ctx, cfg.HTTP)
	runHTTPServer(srv, cfg.Port, apiHandler, log)
	log.Infow("writing challenge started", "port", cfg.Port, "db", cfg.DB.Path)

	// graceful shutdown
	waitForShutdown(cancel, srv, cfg.HTTP, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, httpCfg config.HTTPConfig, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}

	// Shutdown does not track hijacked connections; cancelling the base context ends /ws streams.
	cancel()
}
