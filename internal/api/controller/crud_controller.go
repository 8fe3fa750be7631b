package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/bassista/rpi_configurator/internal/configuration"
	"github.com/gin-gonic/gin"
)

// CrudService defines the minimal interface required for indexed CRUD operations.
type CrudService[T any] interface {
	All() ([]T, error)
	Get(index int) (T, error)
	Add(item T) ([]T, error)
	Update(index int, item T) ([]T, error)
	Remove(index int) ([]T, error)
}

// CrudValidator defines the interface for validating a resource.
type CrudValidator[T any] interface {
	Validate(item T) error
}

// CrudController provides generic CRUD handlers for index-addressed resources.
type CrudController[T any] struct {
	Service   CrudService[T]
	Validator CrudValidator[T]
}

// RegisterCrudRoutes registers CRUD endpoints for a resource on the given router group.
func (cc *CrudController[T]) RegisterCrudRoutes(rg *gin.RouterGroup, resource string) {
	rg.GET("/"+resource+"s", cc.GetAll)
	rg.GET("/"+resource+"/:index", cc.GetOne)
	rg.POST("/"+resource, cc.Create)
	rg.PUT("/"+resource+"/:index", cc.Update)
	rg.DELETE("/"+resource+"/:index", cc.Delete)
}

// GetAll handles GET requests to list all resources.
func (cc *CrudController[T]) GetAll(c *gin.Context) {
	items, err := cc.Service.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read resource list"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetOne handles GET requests for the resource at :index.
func (cc *CrudController[T]) GetOne(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	item, err := cc.Service.Get(index)
	if err != nil {
		writeServiceError(c, err, "failed to read resource")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create handles POST requests appending a resource.
func (cc *CrudController[T]) Create(c *gin.Context) {
	item, ok := cc.bind(c)
	if !ok {
		return
	}
	items, err := cc.Service.Add(item)
	if err != nil {
		writeServiceError(c, err, "failed to add resource")
		return
	}
	c.JSON(http.StatusOK, items)
}

// Update handles PUT requests replacing the resource at :index.
func (cc *CrudController[T]) Update(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	item, ok := cc.bind(c)
	if !ok {
		return
	}
	items, err := cc.Service.Update(index, item)
	if err != nil {
		writeServiceError(c, err, "failed to update resource")
		return
	}
	c.JSON(http.StatusOK, items)
}

// Delete handles DELETE requests removing the resource at :index.
func (cc *CrudController[T]) Delete(c *gin.Context) {
	index, ok := indexParam(c)
	if !ok {
		return
	}
	items, err := cc.Service.Remove(index)
	if err != nil {
		writeServiceError(c, err, "failed to delete resource")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (cc *CrudController[T]) bind(c *gin.Context) (T, bool) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return item, false
	}
	if cc.Validator != nil {
		if err := cc.Validator.Validate(item); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return item, false
		}
	}
	return item, true
}

func indexParam(c *gin.Context) (int, bool) {
	raw := c.Param("index")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing resource index"})
		return 0, false
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resource index must be an integer"})
		return 0, false
	}
	return index, true
}

func writeServiceError(c *gin.Context, err error, msg string) {
	if errors.Is(err, configuration.ErrIndexOutOfRange) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
