package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a new instance from its constructor arguments.
type Factory func(cfg Config) (Engine, error)

// registry holds registered implementations.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for selection (first available wins).
	// Worker > InProcess (the worker keeps computation off the caller's
	// goroutine; in-process is the fallback).
	priority = []string{NameWorker, NameInProcess}
)

// Register registers a factory with the given name.
// This is typically called from init() functions.
// If a factory with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a factory from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the sorted names of registered implementations.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if an implementation with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Get creates an instance of the named implementation.
// Returns ErrNotAvailable if the name is not registered.
func Get(name string, cfg Config) (Engine, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotAvailable, name)
	}
	return factory(cfg)
}

// Default creates an instance of the best available implementation.
// Implementations whose factory fails are skipped with a warning.
func Default(cfg Config) (Engine, error) {
	registryMu.RLock()
	candidates := make([]Factory, 0, len(factories))
	names := make([]string, 0, len(factories))
	seen := make(map[string]bool, len(priority))
	for _, name := range priority {
		if f, ok := factories[name]; ok {
			candidates = append(candidates, f)
			names = append(names, name)
			seen[name] = true
		}
	}
	for name, f := range factories {
		if !seen[name] {
			candidates = append(candidates, f)
			names = append(names, name)
		}
	}
	registryMu.RUnlock()

	for i, f := range candidates {
		e, err := f(cfg)
		if err == nil && e != nil {
			return e, nil
		}
		logger().Warn("engine: implementation unavailable, falling back",
			"engine", names[i], "kind", cfg.Kind, "error", err)
	}
	return nil, ErrNotAvailable
}
