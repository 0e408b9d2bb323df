package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Scalingo/sclng-starred-repos/config"
	"github.com/Scalingo/sclng-starred-repos/controller"
	"github.com/Scalingo/sclng-starred-repos/logger"
	"github.com/Scalingo/sclng-starred-repos/model"
	"github.com/Scalingo/sclng-starred-repos/service"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("unable to load configuration, using defaults")
		cfg = config.GetDefault()
	}

	// configure logger
	logger.Setup(*cfg)

	// setup github client
	// we do here and pass the client to Github service to easily improve tests with mock client
	githubClient, err := service.NewGithubClient(*cfg, nil)
	if err != nil {
		log.WithError(err).Error("invalid github base url")
		os.Exit(model.ExitTransport)
	}

	githubService := service.NewGithubService(*cfg, githubClient)

	if cfg.API.Enabled {
		serve(*cfg, githubService)
		return
	}

	cli := controller.NewCLIController(githubService, os.Stdout, os.Stderr)
	os.Exit(cli.Run(context.Background(), cfg.Github.Organization))
}

// serve exposes the summary over http until SIGINT or SIGTERM
func serve(cfg config.Config, githubService service.RepoClient) {
	requestsPerMinute := max(cfg.API.RequestsPerMinute, 1)
	rateLimiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute)
	apiController := controller.NewAPIController(githubService, rateLimiter)

	gin.SetMode(gin.ReleaseMode)
	router := controller.NewRouter(apiController)

	server := &http.Server{
		Addr:    ":" + cfg.API.ListenPort,
		Handler: router,
	}

	go func() {
		log.Info("server listening on port " + cfg.API.ListenPort)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("error while starting server")
		}
	}()

	// kill default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("SIGINT, SIGTERM received, will shut down server ...")

	// the server has 15 seconds to finish the requests it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	} else {
		log.Info("Application stopped gracefully !")
	}
}
