package controller

import (
	"net/http"

	"github.com/bassista/rpi_configurator/internal/cache"
	"github.com/bassista/rpi_configurator/internal/configuration"
	"github.com/gin-gonic/gin"
)

// ConfigurationResponse describes the configuration section served by this instance.
type ConfigurationResponse struct {
	Type     configuration.Type `json:"type"`
	File     string             `json:"file"`
	Services int                `json:"services"`
	Dirty    bool               `json:"dirty"`
}

// ConfigurationController handles configuration-related API endpoints.
type ConfigurationController struct {
	store cache.AppStore
}

// NewConfigurationController creates a new ConfigurationController.
func NewConfigurationController(store cache.AppStore) *ConfigurationController {
	return &ConfigurationController{
		store: store,
	}
}

// GetConfiguration returns the type tag, backing file and state of the configuration.
func (cc *ConfigurationController) GetConfiguration(c *gin.Context) {
	response := ConfigurationResponse{
		Type:     cc.store.Type(),
		File:     cc.store.File(),
		Services: len(cc.store.Snapshot()),
		Dirty:    cc.store.IsDirty(),
	}
	c.JSON(http.StatusOK, response)
}
