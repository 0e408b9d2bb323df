package controller

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter defines all routes of the http mode
func NewRouter(apiController APIController) *gin.Engine {
	router := gin.New()

	router.Use(
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Content-Type, Content-Length, Accept-Encoding, Host, accept, Origin, Cache-Control, X-Requested-With"},
			MaxAge:       12 * time.Hour,
		}),
	)

	api := router.Group("", apiController.Throttle())
	{
		api.GET("/orgs/:org/repos", apiController.GetRepositories)
	}

	return router
}
