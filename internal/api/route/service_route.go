package route

import (
	"time"

	"github.com/bassista/rpi_configurator/internal/api/controller"
	"github.com/bassista/rpi_configurator/internal/api/middleware"
	"github.com/bassista/rpi_configurator/internal/cache"
	"github.com/gin-gonic/gin"
)

// NewServiceRouter sets up the monitored-service CRUD routes.
func NewServiceRouter(timeout time.Duration, group *gin.RouterGroup, store cache.ServiceStore) {
	sc := controller.NewServiceController(store)
	timeoutMiddleware := middleware.RequestTimeout(timeout)

	group.GET("services", timeoutMiddleware, sc.AllServices)
	group.POST("services/save", timeoutMiddleware, sc.SaveServices)
	group.GET("service/:index", timeoutMiddleware, sc.GetService)
	group.POST("service", timeoutMiddleware, sc.AddService)
	group.PUT("service/:index", timeoutMiddleware, sc.UpdateService)
	group.DELETE("service/:index", timeoutMiddleware, sc.DeleteService)
}
