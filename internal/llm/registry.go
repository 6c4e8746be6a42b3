// Copyright 2026 The Clai Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/smetj/clai/internal/config"
)

// Factory builds a Provider from a resolved config instance.
type Factory func(inst config.Instance) (Provider, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// Register adds a backend factory to the global registry.
// It panics if a backend with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("backend already registered: %s", name))
	}
	factories[name] = f
}

// Lookup returns the factory registered under name. Unknown names are a
// *config.Error listing the supported backends.
func Lookup(name string) (Factory, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, config.Errorf("unsupported backend %q (supported: %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names returns the registered backend names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unregister removes a backend. Only for use in tests that register stubs.
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	delete(factories, name)
}
