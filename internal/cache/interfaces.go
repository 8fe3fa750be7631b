package cache

import "github.com/bassista/rpi_configurator/internal/configuration"

// ServiceConfiguration is the subset of configuration.ServiceMonitorConfiguration
// the store drives.
type ServiceConfiguration interface {
	File() string
	Type() configuration.Type
	AddService(id int, name string, timeout uint)
	RemoveService(index int) error
	SetID(index, value int) error
	SetName(index int, value string) error
	SetTimeout(index int, value uint) error
	Count() int
	Services() []configuration.Service
	Save() error
}

// ReadOnlyStore is the minimal cache API for read-only controllers.
type ReadOnlyStore interface {
	Snapshot() []configuration.Service
	Get(index int) (configuration.Service, error)
	Type() configuration.Type
	File() string
}

// ServiceStore is the cache API needed by service handlers.
type ServiceStore interface {
	ReadOnlyStore
	Add(svc configuration.Service) []configuration.Service
	Update(index int, svc configuration.Service) ([]configuration.Service, error)
	Remove(index int) ([]configuration.Service, error)
	Save() error
}

// PersistableStore is the cache API needed by the persistence scheduler.
type PersistableStore interface {
	IsDirty() bool
	Save() error
}

// AppStore is the cache contract the application container exposes.
type AppStore interface {
	ServiceStore
	PersistableStore
}
