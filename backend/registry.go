package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rayview/internal/gpucore"
)

// InstanceFactory creates a GPU instance restricted to the given native
// APIs.
type InstanceFactory func(backends gputypes.Backends) (gpucore.Instance, error)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]InstanceFactory)
	// Priority order for backend selection (first available wins).
	backendPriority = []string{BackendNative}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory InstanceFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the sorted names of registered backends.
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

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Open creates an instance from the named backend.
func Open(name string, backends gputypes.Backends) (gpucore.Instance, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	inst, err := factory(backends)
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}
	return inst, nil
}

// OpenDefault creates an instance from the best available backend.
// Backends are tried in priority order, then in name order; the first one
// that opens wins.
func OpenDefault(backends gputypes.Backends) (gpucore.Instance, error) {
	names := Available()
	order := make([]string, 0, len(names))
	for _, name := range backendPriority {
		if slices.Contains(names, name) {
			order = append(order, name)
		}
	}
	for _, name := range names {
		if !slices.Contains(order, name) {
			order = append(order, name)
		}
	}

	var errs []error
	for _, name := range order {
		inst, err := Open(name, backends)
		if err == nil {
			return inst, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, ErrBackendNotAvailable
	}
	return nil, fmt.Errorf("%w: %w", ErrBackendNotAvailable, errs[len(errs)-1])
}
