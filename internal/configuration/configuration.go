// Package configuration holds the typed views over the configurator's JSON settings files.
// Each view owns one section of a settings document, loads it eagerly on construction
// and rewrites it on Save.
package configuration

import (
	"errors"
	"fmt"
)

// Type identifies the kind of a configuration so a registry can dispatch on it.
type Type int

const (
	Unknown Type = iota
	ServiceMonitor
)

func (t Type) String() string {
	switch t {
	case ServiceMonitor:
		return "ServiceMonitor"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the type by name so it reads well in JSON responses.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Configuration is implemented by every typed configuration view.
type Configuration interface {
	File() string
	Type() Type
	Save() error
}

// base carries the bookkeeping shared by all configuration views.
type base struct {
	file string
}

func newBase(file string) (base, error) {
	if file == "" {
		return base{}, errors.New("configuration file path is required")
	}
	return base{file: file}, nil
}

// File returns the backing settings file.
func (b base) File() string {
	return b.file
}

// ErrIndexOutOfRange is matched by every IndexError.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError describes an indexed access outside [0, Count).
type IndexError struct {
	Op    string
	Index int
	Count int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0, %d)", e.Op, e.Index, e.Count)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
