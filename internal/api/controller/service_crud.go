package controller

import (
	"github.com/bassista/rpi_configurator/internal/cache"
	"github.com/bassista/rpi_configurator/internal/configuration"
	"github.com/go-playground/validator/v10"
)

// ServiceCrudService implements CrudService for monitored services.
type ServiceCrudService struct {
	Store cache.ServiceStore
}

func (s *ServiceCrudService) All() ([]configuration.Service, error) {
	return s.Store.Snapshot(), nil
}

func (s *ServiceCrudService) Get(index int) (configuration.Service, error) {
	return s.Store.Get(index)
}

func (s *ServiceCrudService) Add(item configuration.Service) ([]configuration.Service, error) {
	return s.Store.Add(item), nil
}

func (s *ServiceCrudService) Update(index int, item configuration.Service) ([]configuration.Service, error) {
	return s.Store.Update(index, item)
}

func (s *ServiceCrudService) Remove(index int) ([]configuration.Service, error) {
	return s.Store.Remove(index)
}

// ServiceCrudValidator implements CrudValidator for services.
// Only the HTTP payload is checked; the configuration itself accepts any name.
type ServiceCrudValidator struct {
	validator *validator.Validate
}

func (v *ServiceCrudValidator) Validate(item configuration.Service) error {
	return v.validator.Var(item.Name, "required")
}
