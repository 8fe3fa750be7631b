package configuration

import (
	"errors"
	"fmt"
	"os"

	"github.com/bassista/rpi_configurator/internal/logger"
	"github.com/bassista/rpi_configurator/internal/report"
	"github.com/bassista/rpi_configurator/internal/settings"
	"github.com/sirupsen/logrus"
)

// Settings paths of the service monitor section.
const (
	ServicesPath      = "ServiceMonitor/Services"
	ServiceIDKey      = "Id"
	ServiceNameKey    = "Name"
	ServiceTimeoutKey = "Timeout"
)

var _ Configuration = (*ServiceMonitorConfiguration)(nil)

// Service is one monitored-service definition.
type Service struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Timeout uint   `json:"timeout"`
}

// ServiceMonitorConfiguration manages the ordered list of monitored services
// stored under ServicesPath. It is not safe for concurrent use.
type ServiceMonitorConfiguration struct {
	base
	services []Service
	log      logrus.FieldLogger
	reporter report.Reporter
}

// Option customises a ServiceMonitorConfiguration.
type Option func(*ServiceMonitorConfiguration)

// WithLogger replaces the component logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *ServiceMonitorConfiguration) {
		if l != nil {
			c.log = l
		}
	}
}

// WithReporter sets the collaborator notified about out-of-range indexes.
func WithReporter(r report.Reporter) Option {
	return func(c *ServiceMonitorConfiguration) {
		if r != nil {
			c.reporter = r
		}
	}
}

// NewServiceMonitorConfiguration loads every service stored in file.
// A missing file is not an error and yields an empty list.
func NewServiceMonitorConfiguration(file string, opts ...Option) (*ServiceMonitorConfiguration, error) {
	b, err := newBase(file)
	if err != nil {
		return nil, err
	}

	c := &ServiceMonitorConfiguration{
		base:     b,
		services: []Service{},
		log:      logger.WithComponent("service-monitor-config"),
		reporter: report.Nop,
	}
	for _, opt := range opts {
		opt(c)
	}

	if _, err := os.Stat(file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("stat configuration file: %w", err)
	}

	c.log.Debugf("loading file: %s", file)
	store, err := settings.Open(file)
	if err != nil {
		return nil, fmt.Errorf("open service monitor configuration: %w", err)
	}

	count := store.BeginReadArray(ServicesPath)
	c.log.Debugf("number of services: %d", count)
	for i := 0; i < count; i++ {
		store.SetArrayIndex(i)
		svc := Service{
			ID:      store.Value(ServiceIDKey).Int(),
			Name:    store.Value(ServiceNameKey).String(),
			Timeout: store.Value(ServiceTimeoutKey).Uint(),
		}
		c.log.Debugf("loading service (%d, %s, %d)", svc.ID, svc.Name, svc.Timeout)
		c.services = append(c.services, svc)
	}
	store.EndArray()

	return c, nil
}

// Type returns ServiceMonitor.
func (c *ServiceMonitorConfiguration) Type() Type {
	return ServiceMonitor
}

// AddService appends a service. Ids are not checked for uniqueness.
func (c *ServiceMonitorConfiguration) AddService(id int, name string, timeout uint) {
	c.services = append(c.services, Service{ID: id, Name: name, Timeout: timeout})
}

// RemoveService deletes the service at index; later services shift down by one.
func (c *ServiceMonitorConfiguration) RemoveService(index int) error {
	if err := c.checkIndex("RemoveService", index); err != nil {
		return err
	}
	c.services = append(c.services[:index], c.services[index+1:]...)
	return nil
}

func (c *ServiceMonitorConfiguration) SetID(index, value int) error {
	if err := c.checkIndex("SetID", index); err != nil {
		return err
	}
	c.services[index].ID = value
	return nil
}

func (c *ServiceMonitorConfiguration) SetName(index int, value string) error {
	if err := c.checkIndex("SetName", index); err != nil {
		return err
	}
	c.services[index].Name = value
	return nil
}

func (c *ServiceMonitorConfiguration) SetTimeout(index int, value uint) error {
	if err := c.checkIndex("SetTimeout", index); err != nil {
		return err
	}
	c.services[index].Timeout = value
	return nil
}

func (c *ServiceMonitorConfiguration) ID(index int) (int, error) {
	if err := c.checkIndex("ID", index); err != nil {
		return 0, err
	}
	return c.services[index].ID, nil
}

func (c *ServiceMonitorConfiguration) Name(index int) (string, error) {
	if err := c.checkIndex("Name", index); err != nil {
		return "", err
	}
	return c.services[index].Name, nil
}

func (c *ServiceMonitorConfiguration) Timeout(index int) (uint, error) {
	if err := c.checkIndex("Timeout", index); err != nil {
		return 0, err
	}
	return c.services[index].Timeout, nil
}

// Count returns the number of configured services.
func (c *ServiceMonitorConfiguration) Count() int {
	return len(c.services)
}

// Services returns a copy of the services in their stored order.
func (c *ServiceMonitorConfiguration) Services() []Service {
	out := make([]Service, len(c.services))
	copy(out, c.services)
	return out
}

// Save rewrites the whole service section of the backing file.
// Other sections of the document are left untouched.
func (c *ServiceMonitorConfiguration) Save() error {
	store, err := settings.Open(c.file)
	if err != nil {
		return fmt.Errorf("open service monitor configuration: %w", err)
	}

	store.BeginWriteArray(ServicesPath)
	for i, svc := range c.services {
		store.SetArrayIndex(i)
		store.SetValue(ServiceIDKey, svc.ID)
		store.SetValue(ServiceNameKey, svc.Name)
		store.SetValue(ServiceTimeoutKey, svc.Timeout)
	}
	store.EndArray()

	if err := store.Sync(); err != nil {
		return fmt.Errorf("save service monitor configuration: %w", err)
	}
	c.log.Debugf("saved %d services to %s", len(c.services), c.file)
	return nil
}

func (c *ServiceMonitorConfiguration) checkIndex(op string, index int) error {
	count := len(c.services)
	assertInRange(op, index, count)
	if index >= 0 && index < count {
		return nil
	}

	err := &IndexError{Op: op, Index: index, Count: count}
	c.log.Warn(err.Error())
	c.reporter.Report(err, "configuration", "index")
	return err
}
