// Package plumbing contains small generic building blocks shared by the other packages.
package plumbing

import (
	"errors"
	"sync"
)

// ErrNoMatch is returned by a factory that does not apply to its input. The
// provider moves on to the next factory when it sees it.
var ErrNoMatch = errors.New("no match")

// Factory is a function that takes a parameter of type R and returns a value of type T or an error.
type Factory[R any, T any] func(R) (T, error)

// Provider is an ordered chain of factories producing values of type T from a value of type R.
// The factories are always tried in registration order.
type Provider[R any, T any] struct {
	mu        sync.RWMutex
	factories []Factory[R, T]
	err       error
}

// Register adds a new factory to the end of the chain.
func (p *Provider[R, T]) Register(f Factory[R, T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.factories = append(p.factories, f)
}

// Get returns the value from the first factory that succeeds. A factory
// returning an error other than ErrNoMatch stops the chain and its error is
// returned as is. If no factory matches, the error supplied at creation time is
// returned.
func (p *Provider[R, T]) Get(r R) (T, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, f := range p.factories {
		t, err := f(r)
		if err == nil {
			return t, nil
		}
		if !errors.Is(err, ErrNoMatch) {
			return *new(T), err
		}
	}
	return *new(T), p.err
}

// Len returns the number of registered factories.
func (p *Provider[R, T]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.factories)
}

// NewProvider creates a new instance of Provider.
// The error is returned if no factory can produce a value of type T.
func NewProvider[R any, T any](err error, factories ...Factory[R, T]) *Provider[R, T] {
	return &Provider[R, T]{err: err, factories: factories}
}
