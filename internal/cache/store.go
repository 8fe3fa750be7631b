package cache

import (
	"sync"

	"github.com/bassista/rpi_configurator/internal/configuration"
)

// Store serialises access to a service configuration shared by HTTP handlers
// and the persistence scheduler.
type Store struct {
	mu    sync.Mutex
	cfg   ServiceConfiguration
	dirty bool // true if services changed since last save
}

// NewStore wraps cfg; the store becomes its only user.
func NewStore(cfg ServiceConfiguration) *Store {
	return &Store{cfg: cfg}
}

// IsDirty returns true if the configuration has unsaved changes.
func (s *Store) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

func (s *Store) Type() configuration.Type {
	return s.cfg.Type()
}

func (s *Store) File() string {
	return s.cfg.File()
}

// Snapshot returns a copy of the services.
func (s *Store) Snapshot() []configuration.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Services()
}

// Get returns the service at index.
func (s *Store) Get(index int) (configuration.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	services := s.cfg.Services()
	if index < 0 || index >= len(services) {
		return configuration.Service{}, &configuration.IndexError{Op: "Get", Index: index, Count: len(services)}
	}
	return services[index], nil
}

// Add appends svc and returns the new snapshot.
func (s *Store) Add(svc configuration.Service) []configuration.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg.AddService(svc.ID, svc.Name, svc.Timeout)
	s.dirty = true
	return s.cfg.Services()
}

// Update replaces every field of the service at index.
func (s *Store) Update(index int, svc configuration.Service) ([]configuration.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// SetID validates the index before any field is touched.
	if err := s.cfg.SetID(index, svc.ID); err != nil {
		return nil, err
	}
	if err := s.cfg.SetName(index, svc.Name); err != nil {
		return nil, err
	}
	if err := s.cfg.SetTimeout(index, svc.Timeout); err != nil {
		return nil, err
	}
	s.dirty = true
	return s.cfg.Services(), nil
}

// Remove deletes the service at index and returns the new snapshot.
func (s *Store) Remove(index int) ([]configuration.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cfg.RemoveService(index); err != nil {
		return nil, err
	}
	s.dirty = true
	return s.cfg.Services(), nil
}

// Save persists the configuration and clears the dirty flag on success.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cfg.Save(); err != nil {
		return err
	}
	s.dirty = false
	return nil
}
