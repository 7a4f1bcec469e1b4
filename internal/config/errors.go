// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by the typed errors below. Callers can match a
// failure class with errors.Is and reach the details with errors.As.
var (
	// ErrRead indicates that a configuration file could not be read.
	ErrRead = errors.New("failed to read config file")
	// ErrParse indicates malformed YAML, TOML or JSON content.
	ErrParse = errors.New("failed to parse config file")
	// ErrUnsupportedFormat indicates a file extension with no known format.
	ErrUnsupportedFormat = errors.New("unsupported config file format")
	// ErrBuilder indicates that the layered sources could not be decoded
	// into the target structure.
	ErrBuilder = errors.New("failed to build config")

	// ErrMissingRequired is wrapped by a BuilderError when no source
	// defines a field that has no default.
	ErrMissingRequired = errors.New("missing required value")
	// ErrInvalidRedisMode is wrapped by a BuilderError when a redis mode
	// is neither "single" nor "cluster".
	ErrInvalidRedisMode = errors.New("invalid redis mode")
)

// ReadError is returned when a configuration file cannot be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s %q: %v", ErrRead, e.Path, e.Err)
}

func (e *ReadError) Unwrap() []error {
	return []error{ErrRead, e.Err}
}

// ParseError is returned when a configuration file holds malformed content
// for its format.
type ParseError struct {
	Format Format
	Path   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s config %q: %v", e.Format, e.Path, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}

// UnsupportedFormatError is returned by [DetectFormat] for an unknown file
// extension. Extension is lower-cased and carries no leading dot.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedFormat, e.Extension)
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}

// BuilderError is returned when the final decode step fails: a required key
// is missing, a value has the wrong type or an enumerated value is unknown.
// Key is the dotted file key or the environment variable name involved, and
// may be empty when the failure is not tied to a single key.
type BuilderError struct {
	Key string
	Err error
}

func (e *BuilderError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %v", ErrBuilder, e.Err)
	}

	return fmt.Sprintf("%s: %s: %v", ErrBuilder, e.Key, e.Err)
}

func (e *BuilderError) Unwrap() []error {
	return []error{ErrBuilder, e.Err}
}
