// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// A layer is what a single source (a file or the environment) says about
// the configuration. Every leaf is a pointer or a slice so that "the source
// does not define this key" (nil) is distinguishable from a zero value.
//
// Struct tags:
//   - yaml/toml/json: key names inside configuration files.
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env: environment variable name for scalar fields.

type databaseLayer struct {
	URL            *string `yaml:"url" toml:"url" json:"url" env:"URL"`
	MaxConnections *uint32 `yaml:"max_connections" toml:"max_connections" json:"max_connections" env:"MAX_CONNECTIONS"`
	MinConnections *uint32 `yaml:"min_connections" toml:"min_connections" json:"min_connections" env:"MIN_CONNECTIONS"`
	ConnectTimeout *uint64 `yaml:"connect_timeout" toml:"connect_timeout" json:"connect_timeout" env:"CONNECT_TIMEOUT"`
	IdleTimeout    *uint64 `yaml:"idle_timeout" toml:"idle_timeout" json:"idle_timeout" env:"IDLE_TIMEOUT"`
}

type serverLayer struct {
	Host *string `yaml:"host" toml:"host" json:"host" env:"HOST"`
	Port *uint32 `yaml:"port" toml:"port" json:"port" env:"PORT"`
}

type jwtLayer struct {
	Secret *string `yaml:"jwt_secret" toml:"jwt_secret" json:"jwt_secret" env:"JWT_SECRET"`
	Issuer *string `yaml:"issuer" toml:"issuer" json:"issuer" env:"ISSUER"`
	Expire *int64  `yaml:"expire" toml:"expire" json:"expire" env:"EXPIRE"`
}

type redisLayer struct {
	Mode *string  `yaml:"mode" toml:"mode" json:"mode" env:"MODE"`
	URL  *string  `yaml:"url" toml:"url" json:"url" env:"URL"`
	URLs []string `yaml:"urls" toml:"urls" json:"urls" env:"URLS" envSeparator:","`
}

func (l redisLayer) defined() bool {
	return l.Mode != nil || l.URL != nil || l.URLs != nil
}

type mongoLayer struct {
	URI *string `yaml:"uri" toml:"uri" json:"uri" env:"URI"`
}

func (l mongoLayer) defined() bool {
	return l.URI != nil
}

type s3Layer struct {
	Region          *string `yaml:"region" toml:"region" json:"region" env:"REGION"`
	AccessKeyID     *string `yaml:"access_key_id" toml:"access_key_id" json:"access_key_id" env:"ACCESS_KEY_ID"`
	SecretAccessKey *string `yaml:"secret_access_key" toml:"secret_access_key" json:"secret_access_key" env:"SECRET_ACCESS_KEY"`
	Endpoint        *string `yaml:"endpoint" toml:"endpoint" json:"endpoint" env:"ENDPOINT"`
}

func (l s3Layer) defined() bool {
	return l.Region != nil || l.AccessKeyID != nil || l.SecretAccessKey != nil || l.Endpoint != nil
}

// sections are the non-instance parts of a layer, the only parts the
// environment source decodes: instance lists come from the scanner.
type sections struct {
	Database databaseLayer `envPrefix:"DATABASE_"`
	Server   serverLayer   `envPrefix:"SERVER_"`
	JWT      jwtLayer      `envPrefix:"JWT_"`
	Redis    redisLayer    `envPrefix:"REDIS_"`
	Mongo    mongoLayer    `envPrefix:"MONGO_"`
	S3       s3Layer       `envPrefix:"S3_"`
}

type databaseInstanceLayer struct {
	Name     *string       `yaml:"name" toml:"name" json:"name"`
	Database databaseLayer `yaml:"database" toml:"database" json:"database"`
}

type redisInstanceLayer struct {
	Name  *string    `yaml:"name" toml:"name" json:"name"`
	Redis redisLayer `yaml:"redis" toml:"redis" json:"redis"`
}

type mongoInstanceLayer struct {
	Name  *string    `yaml:"name" toml:"name" json:"name"`
	Mongo mongoLayer `yaml:"mongo" toml:"mongo" json:"mongo"`
}

type s3InstanceLayer struct {
	Name *string `yaml:"name" toml:"name" json:"name"`
	S3   s3Layer `yaml:"s3" toml:"s3" json:"s3"`
}

// fileDocument is the shape of a configuration file.
type fileDocument struct {
	Database          databaseLayer           `yaml:"database" toml:"database" json:"database"`
	DatabaseInstances []databaseInstanceLayer `yaml:"database_instances" toml:"database_instances" json:"database_instances"`
	Server            serverLayer             `yaml:"server" toml:"server" json:"server"`
	JWT               jwtLayer                `yaml:"jwt" toml:"jwt" json:"jwt"`
	Redis             redisLayer              `yaml:"redis" toml:"redis" json:"redis"`
	RedisInstances    []redisInstanceLayer    `yaml:"redis_instances" toml:"redis_instances" json:"redis_instances"`
	Mongo             mongoLayer              `yaml:"mongo" toml:"mongo" json:"mongo"`
	MongoInstances    []mongoInstanceLayer    `yaml:"mongo_instances" toml:"mongo_instances" json:"mongo_instances"`
	S3                s3Layer                 `yaml:"s3" toml:"s3" json:"s3"`
	S3Instances       []s3InstanceLayer       `yaml:"s3_instances" toml:"s3_instances" json:"s3_instances"`
}

func (d *fileDocument) sections() sections {
	return sections{
		Database: d.Database,
		Server:   d.Server,
		JWT:      d.JWT,
		Redis:    d.Redis,
		Mongo:    d.Mongo,
		S3:       d.S3,
	}
}

// ResolveValue implements the precedence contract of the layered loader for a
// single field: the environment value wins, then the file value, then def.
func ResolveValue[T any](env, file *T, def T) T {
	if env != nil {
		return *env
	}
	if file != nil {
		return *file
	}

	return def
}

// ResolveRequired is [ResolveValue] for a field without a default. It fails with
// a [BuilderError] naming key when neither source defines the field.
func ResolveRequired[T any](key string, env, file *T) (T, error) {
	if env != nil {
		return *env, nil
	}
	if file != nil {
		return *file, nil
	}

	var zero T
	return zero, &BuilderError{Key: key, Err: ErrMissingRequired}
}

// resolveList applies the precedence contract to list values, where an
// empty list counts as undefined.
func resolveList(env, file []string) []string {
	switch {
	case len(env) > 0:
		return trimAll(env)
	case len(file) > 0:
		return trimAll(file)
	default:
		return nil
	}
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
