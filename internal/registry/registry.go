// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package registry is a process-wide store for resolved configuration.
//
// The config package publishes into a *Registry through the
// config.Publisher interface; other subsystems read typed values back with
// [Get]. A Registry is safe for concurrent use.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/go-layered-config/internal/config"
)

var (
	// ErrNotFound is returned by [Get] when nothing was published under a
	// kind.
	ErrNotFound = errors.New("config kind not published")
	// ErrTypeMismatch is returned by [Get] when the published value has a
	// different type than requested.
	ErrTypeMismatch = errors.New("config kind has a different type")
	// ErrEmptyKind is returned by Publish for an empty kind.
	ErrEmptyKind = errors.New("empty config kind")
)

// Registry maps configuration kinds to published values.
type Registry struct {
	mu     sync.RWMutex
	values map[config.Kind]any
}

var _ config.Publisher = (*Registry)(nil)

func New() *Registry {
	return &Registry{values: make(map[config.Kind]any)}
}

// Publish stores value under kind, replacing any previous value.
func (r *Registry) Publish(kind config.Kind, value any) error {
	if kind == "" {
		return ErrEmptyKind
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[kind] = value
	return nil
}

// Lookup returns the raw value published under kind.
func (r *Registry) Lookup(kind config.Kind) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.values[kind]
	return v, ok
}

// Kinds returns the published kinds in lexical order.
func (r *Registry) Kinds() []config.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]config.Kind, 0, len(r.values))
	for k := range r.values {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)

	return kinds
}

// Get returns the value published under kind as a T.
func Get[T any](r *Registry, kind config.Kind) (T, error) {
	var zero T

	v, ok := r.Lookup(kind)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, kind)
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %T", ErrTypeMismatch, kind, v)
	}

	return typed, nil
}
