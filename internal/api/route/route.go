package route

import (
	"net/http"

	"github.com/bassista/rpi_configurator/internal/api/middleware"
	"github.com/bassista/rpi_configurator/internal/app"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRoutes builds the HTTP engine serving the service monitor configuration.
func SetupRoutes(appCtx *app.App, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	// Recovery wraps ErrorReporting so a panic is reported before it is turned into a 500.
	r.Use(gin.Recovery())
	r.Use(middleware.ErrorReporting(appCtx.Reporter, logger.WithField("component", "http")))
	r.Use(middleware.CORSMiddleware(appCtx.Config.Server.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "UP",
		})
	})

	publicRouter := r.Group("")
	timeout := appCtx.Config.Server.RequestTimeout

	NewServiceRouter(timeout, publicRouter, appCtx.Cache)
	NewConfigurationRouter(timeout, publicRouter, appCtx.Cache)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return r
}
