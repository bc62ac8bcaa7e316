// Package di provides a small lazy dependency injection container with
// typed tokens.
package di

import (
	"fmt"
	"sync"
)

// ServiceRegistry resolves registered services.
type ServiceRegistry interface {
	Get(key string) any
}

// Container is a ServiceRegistry that accepts registrations.
type Container interface {
	ServiceRegistry
	Register(key string, value any)
	RegisterFactory(key string, factory func(ServiceRegistry) any)
}

type entry struct {
	once    sync.Once
	factory func(ServiceRegistry) any
	value   any
}

type container struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewContainer creates an empty container.
func NewContainer() Container {
	return &container{entries: make(map[string]*entry)}
}

// Register stores an already constructed value.
func (c *container) Register(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry{value: value}
	e.once.Do(func() {})
	c.entries[key] = e
}

// RegisterFactory stores a factory invoked on first Get. The result is cached.
func (c *container) RegisterFactory(key string, factory func(ServiceRegistry) any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &entry{factory: factory}
}

// Get resolves a service, panicking when the key was never registered.
func (c *container) Get(key string) any {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		panic(fmt.Sprintf("di: service %q not registered", key))
	}

	e.once.Do(func() {
		e.value = e.factory(c)
	})
	return e.value
}

// Token is a typed key for a service.
type Token[T any] struct {
	name string
}

// NewToken creates a token with the given registry name.
func NewToken[T any](name string) Token[T] {
	return Token[T]{name: name}
}

// Name returns the registry key.
func (t Token[T]) Name() string {
	return t.name
}

// RegisterToken registers a typed factory.
func RegisterToken[T any](c Container, token Token[T], factory func(ServiceRegistry) T) {
	c.RegisterFactory(token.name, func(sr ServiceRegistry) any {
		return factory(sr)
	})
}

// GetToken resolves a typed service.
func GetToken[T any](sr ServiceRegistry, token Token[T]) T {
	v, ok := sr.Get(token.name).(T)
	if !ok {
		panic(fmt.Sprintf("di: service %q has unexpected type", token.name))
	}
	return v
}
