// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/MKhiriev/go-layered-config/internal/logger"
)

// Resolve runs the full resolution pipeline:
//  1. [Load] builds the base configuration with file-declared instances;
//  2. a [Scanner] discovers environment-declared instances per family;
//  3. [MergeInstances] reconciles both lists per family.
//
// The environment is snapshotted once and shared by every step. Each call
// is independent and holds no state afterwards.
func Resolve(opts Options) (*Config, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	cfg, err := Load(opts)
	if err != nil {
		return nil, err
	}

	if opts.DisableEnv || opts.SkipInstanceScan {
		return cfg, nil
	}

	scanner := NewScanner(opts.EnvPrefix, MapLookup(opts.Environ),
		WithStrict(opts.Strict),
		WithMaxInstances(opts.MaxInstances),
		WithScannerLogger(log.Component("scanner")),
	)
	if !scanner.HasAnyInstances() {
		return cfg, nil
	}

	log.Info().Msg("found multi-instance environment variables, applying overrides")

	if err := applyInstances(cfg, scanner, log); err != nil {
		return nil, fmt.Errorf("error scanning instances: %w", err)
	}

	return cfg, nil
}

func applyInstances(cfg *Config, scanner *Scanner, log *logger.Logger) error {
	databases, err := scanner.DatabaseInstances()
	if err != nil {
		return err
	}
	redis, err := scanner.RedisInstances()
	if err != nil {
		return err
	}
	mongo, err := scanner.MongoInstances()
	if err != nil {
		return err
	}
	s3, err := scanner.S3Instances()
	if err != nil {
		return err
	}

	cfg.DatabaseInstances = mergeLogged(log, FamilyDatabase, cfg.DatabaseInstances, databases)
	cfg.RedisInstances = mergeLogged(log, FamilyRedis, cfg.RedisInstances, redis)
	cfg.MongoInstances = mergeLogged(log, FamilyMongo, cfg.MongoInstances, mongo)
	cfg.S3Instances = mergeLogged(log, FamilyS3, cfg.S3Instances, s3)

	return nil
}

func mergeLogged[T any](log *logger.Logger, family string, fileInstances, envInstances []Named[T]) []Named[T] {
	if len(envInstances) == 0 {
		return fileInstances
	}

	log.Info().
		Str("family", family).
		Int("count", len(envInstances)).
		Msg("merging instances from environment variables")

	return mergeInstances(fileInstances, envInstances, func(name string, replaced bool) {
		if replaced {
			log.Debug().Str("family", family).Str("instance", name).Msg("overriding instance with environment variables")
			return
		}
		log.Debug().Str("family", family).Str("instance", name).Msg("adding instance from environment variables")
	})
}

// Init resolves the configuration with [Resolve] and publishes it to p.
//
// Published kinds, in order: KindConfig, KindDatabase,
// KindDatabaseInstances, KindServer, KindJWT, KindRedis (when present),
// KindRedisInstances, KindMongo (when present), KindMongoInstances, KindS3
// (when present), KindS3Instances. Instance lists are published even when
// empty. The first publish error aborts the sequence.
func Init(p Publisher, opts Options) (*Config, error) {
	opts = opts.withDefaults()

	cfg, err := Resolve(opts)
	if err != nil {
		opts.Logger.Error().Err(err).Msg("failed to resolve configuration")
		return nil, err
	}

	if err := publish(p, cfg); err != nil {
		opts.Logger.Error().Err(err).Msg("failed to publish configuration")
		return nil, err
	}

	opts.Logger.Info().Msg("configuration initialized successfully")
	return cfg, nil
}

// InitFromFile initializes configuration from a single file without the
// environment layer.
func InitFromFile(p Publisher, path string, log *logger.Logger) (*Config, error) {
	return Init(p, Options{Files: []string{path}, DisableEnv: true, Logger: log})
}

// InitFromEnv initializes configuration from environment variables only.
func InitFromEnv(p Publisher, prefix string, log *logger.Logger) (*Config, error) {
	return Init(p, Options{EnvPrefix: prefix, SkipInstanceScan: true, Logger: log})
}

// InitFromFileWithEnv initializes configuration from a file overridden by
// environment variables, without scanning environment-declared instances.
func InitFromFileWithEnv(p Publisher, path, prefix string, log *logger.Logger) (*Config, error) {
	return Init(p, Options{Files: []string{path}, EnvPrefix: prefix, SkipInstanceScan: true, Logger: log})
}

// InitFromFileWithMultiInstanceEnv runs the full pipeline on a single file.
func InitFromFileWithMultiInstanceEnv(p Publisher, path, prefix string, log *logger.Logger) (*Config, error) {
	return Init(p, Options{Files: []string{path}, EnvPrefix: prefix, Logger: log})
}

type publication struct {
	kind  Kind
	value any
}

func publications(cfg *Config) []publication {
	out := []publication{
		{KindConfig, *cfg},
		{KindDatabase, cfg.Database},
		{KindDatabaseInstances, cfg.DatabaseInstances},
		{KindServer, cfg.Server},
		{KindJWT, cfg.JWT},
	}

	if cfg.Redis != nil {
		out = append(out, publication{KindRedis, *cfg.Redis})
	}
	out = append(out, publication{KindRedisInstances, cfg.RedisInstances})

	if cfg.Mongo != nil {
		out = append(out, publication{KindMongo, *cfg.Mongo})
	}
	out = append(out, publication{KindMongoInstances, cfg.MongoInstances})

	if cfg.S3 != nil {
		out = append(out, publication{KindS3, *cfg.S3})
	}
	out = append(out, publication{KindS3Instances, cfg.S3Instances})

	return out
}

func publish(p Publisher, cfg *Config) error {
	for _, pub := range publications(cfg) {
		if err := p.Publish(pub.kind, pub.value); err != nil {
			return fmt.Errorf("error publishing %s config: %w", pub.kind, err)
		}
	}

	return nil
}
