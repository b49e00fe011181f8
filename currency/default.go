package currency

import (
	"context"
	"sync"
)

var (
	defaultRegistry     *Registry
	defaultRegistryErr  error
	defaultRegistryOnce sync.Once
)

// Default returns the registry built from the embedded assets. The load runs at most once,
// concurrent callers wait for it and all observe the same registry or error
func Default() (*Registry, error) {
	defaultRegistryOnce.Do(func() {
		defaultRegistry, defaultRegistryErr = Load(context.Background())
	})

	return defaultRegistry, defaultRegistryErr
}

// MustDefault is like Default but panics if the embedded assets can not be loaded
func MustDefault() *Registry {
	r, err := Default()
	if err != nil {
		panic(err)
	}

	return r
}
