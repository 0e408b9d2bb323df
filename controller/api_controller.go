package controller

import (
	"net/http"

	"github.com/Scalingo/sclng-starred-repos/model"
	"github.com/Scalingo/sclng-starred-repos/service"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type APIController interface {
	GetRepositories(ctx *gin.Context)
	Throttle() gin.HandlerFunc
}

type apiController struct {
	repoClient  service.RepoClient
	rateLimiter *rate.Limiter
}

// NewAPIController serves the repositories summary over http
// the limiter bounds the inbound requests forwarded to github
func NewAPIController(repoClient service.RepoClient, rateLimiter *rate.Limiter) APIController {
	return apiController{
		repoClient:  repoClient,
		rateLimiter: rateLimiter,
	}
}

func (s apiController) GetRepositories(c *gin.Context) {
	org := c.Param("org")

	repos, err := s.repoClient.FetchRepos(c.Request.Context(), org)
	if err != nil {
		apiErr := model.NewAPIError(err)
		log.WithError(err).WithField("organization", org).Info("unable to fetch repositories")

		c.JSON(apiErr.Status, apiErr)
		return
	}

	c.JSON(http.StatusOK, service.Summary(repos))
}

// Throttle rejects requests once the local limiter is exhausted
func (s apiController) Throttle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.rateLimiter.Allow() {
			log.Warning("inbound request limit reached")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, model.APIError{
				Code:    "TOO_MANY_REQUESTS",
				Message: "too many requests. wait few seconds and try again",
			})
			return
		}

		c.Next()
	}
}
