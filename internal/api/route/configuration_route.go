package route

import (
	"time"

	"github.com/bassista/rpi_configurator/internal/api/controller"
	"github.com/bassista/rpi_configurator/internal/api/middleware"
	"github.com/bassista/rpi_configurator/internal/cache"
	"github.com/gin-gonic/gin"
)

// NewConfigurationRouter sets up configuration-related routes.
func NewConfigurationRouter(timeout time.Duration, group *gin.RouterGroup, store cache.AppStore) {
	cc := controller.NewConfigurationController(store)
	timeoutMiddleware := middleware.RequestTimeout(timeout)

	group.GET("configuration", timeoutMiddleware, cc.GetConfiguration)
}
