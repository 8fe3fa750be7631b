package controller

import (
	"net/http"

	"github.com/bassista/rpi_configurator/internal/cache"
	"github.com/bassista/rpi_configurator/internal/configuration"
	"github.com/bassista/rpi_configurator/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ServiceController handles service-related HTTP endpoints using the generic CRUD controller.
type ServiceController struct {
	crud  *CrudController[configuration.Service]
	store cache.ServiceStore
}

// NewServiceController creates a new ServiceController backed by store.
func NewServiceController(store cache.ServiceStore) *ServiceController {
	return &ServiceController{
		crud: &CrudController[configuration.Service]{
			Service:   &ServiceCrudService{Store: store},
			Validator: &ServiceCrudValidator{validator: validator.New()},
		},
		store: store,
	}
}

// AllServices handles GET /services.
func (sc *ServiceController) AllServices(c *gin.Context) {
	logger.WithComponent("service-controller").Debugf("GET /services handler called")
	sc.crud.GetAll(c)
}

// GetService handles GET /service/:index.
func (sc *ServiceController) GetService(c *gin.Context) {
	logger.WithComponent("service-controller").Debugf("GET /service/%s handler called", c.Param("index"))
	sc.crud.GetOne(c)
}

// AddService handles POST /service - appends a service.
func (sc *ServiceController) AddService(c *gin.Context) {
	logger.WithComponent("service-controller").Debugf("POST /service handler called")
	sc.crud.Create(c)
}

// UpdateService handles PUT /service/:index - replaces id, name and timeout.
func (sc *ServiceController) UpdateService(c *gin.Context) {
	logger.WithComponent("service-controller").Debugf("PUT /service/%s handler called", c.Param("index"))
	sc.crud.Update(c)
}

// DeleteService handles DELETE /service/:index.
func (sc *ServiceController) DeleteService(c *gin.Context) {
	logger.WithComponent("service-controller").Debugf("DELETE /service/%s handler called", c.Param("index"))
	sc.crud.Delete(c)
}

// SaveServices handles POST /services/save - writes the service section to disk now.
func (sc *ServiceController) SaveServices(c *gin.Context) {
	if err := sc.store.Save(); err != nil {
		logger.WithComponent("service-controller").Errorf("save services: %v", err)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save services"})
		return
	}
	logger.WithComponent("service-controller").Infof("services saved to %s", sc.store.File())
	c.JSON(http.StatusOK, sc.store.Snapshot())
}
