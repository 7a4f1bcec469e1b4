// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// envSeparator joins the prefix, section and field parts of an environment
// variable name.
const envSeparator = "_"

// parseEnv decodes the sections of the environment layer from environ using
// the caarlos0/env library. Keys are formed as {PREFIX}_{SECTION}_{FIELD}
// from the `envPrefix` and `env` tags on [sections] and its nested types.
//
// Returns a *BuilderError if a value cannot be converted to its field type.
func parseEnv(environ map[string]string, prefix string) (sections, error) {
	var s sections

	err := env.ParseWithOptions(&s, env.Options{
		Prefix:      prefix + envSeparator,
		Environment: environ,
	})
	if err != nil {
		return sections{}, &BuilderError{Err: fmt.Errorf("error getting env configs: %w", err)}
	}

	return s, nil
}

// environSnapshot captures the current process environment.
func environSnapshot() map[string]string {
	return env.ToMap(os.Environ())
}
