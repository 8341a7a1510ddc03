package backend

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/shader"
)

// DriverFactory creates a new driver instance.
type DriverFactory func() (shader.Driver, error)

// Default is the driver Open uses for an empty name.
const Default = "naga"

// ErrNotRegistered is returned by Open for an unknown driver name.
var ErrNotRegistered = errors.New("backend: driver not registered")

var (
	registryMu sync.RWMutex
	factories  = make(map[string]DriverFactory)
)

// Register registers a driver factory under name.
// This is typically called from init() functions in driver packages.
// A later registration with the same name replaces the earlier one.
func Register(name string, factory DriverFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a driver from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered driver names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a driver with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Open creates a driver by name. An empty name selects Default.
func Open(name string) (shader.Driver, error) {
	if name == "" {
		name = Default
	}
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrNotRegistered, name, Available())
	}

	drv, err := factory()
	if err != nil {
		return nil, fmt.Errorf("backend: open %s: %w", name, err)
	}
	shader.Logger().Debug("backend: driver opened", "name", name)
	return drv, nil
}
