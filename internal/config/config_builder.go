package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"

	"github.com/MKhiriev/go-layered-config/internal/logger"
)

// Options controls how configuration is resolved.
type Options struct {
	// Files are configuration file paths applied in order; a later file
	// overrides the fields an earlier one defines. May be empty.
	Files []string

	// EnvPrefix is the environment variable prefix. Defaults to
	// [DefaultEnvPrefix].
	EnvPrefix string

	// Environ is the environment snapshot to read. When nil the process
	// environment is captured at the start of resolution.
	Environ map[string]string

	// DisableEnv skips the environment layer and the instance scan.
	DisableEnv bool

	// SkipInstanceScan keeps the environment layer for base sections but
	// does not scan environment-declared instances.
	SkipInstanceScan bool

	// Strict makes the instance scanner fail on malformed optional values
	// instead of substituting defaults.
	Strict bool

	// MaxInstances bounds the instance scan of each family. Defaults to
	// [DefaultMaxInstances].
	MaxInstances int

	// Logger receives progress logs. Defaults to a no-op logger.
	Logger *logger.Logger
}

func (o Options) withDefaults() Options {
	if o.EnvPrefix == "" {
		o.EnvPrefix = DefaultEnvPrefix
	}
	if o.Environ == nil && !o.DisableEnv {
		o.Environ = environSnapshot()
	}
	if o.MaxInstances <= 0 {
		o.MaxInstances = DefaultMaxInstances
	}
	if o.Logger == nil {
		o.Logger = logger.Nop()
	}

	return o
}

// Load builds the base configuration from the file layers and the
// environment layer, including the instance lists declared in files.
// It does not scan environment-declared instances; see [Resolve].
//
// Precedence per field: environment, then the last file defining the
// field, then the default. Decoding is all-or-nothing.
func Load(opts Options) (*Config, error) {
	opts = opts.withDefaults()

	b := newConfigBuilder(opts.Logger).withFiles(opts.Files...)
	if !opts.DisableEnv {
		b.withEnv(opts.Environ, opts.EnvPrefix)
	}

	return b.build()
}

// fileLayer is a parsed configuration file.
type fileLayer struct {
	path string
	doc  *fileDocument
}

type configBuilder struct {
	files []fileLayer
	env   sections
	err   error
	log   *logger.Logger
}

func newConfigBuilder(log *logger.Logger) *configBuilder {
	if log == nil {
		log = logger.Nop()
	}

	return &configBuilder{
		files: make([]fileLayer, 0, 2),
		log:   log,
	}
}

func (b *configBuilder) build() (*Config, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	var (
		fileSections sections
		instances    fileInstances
		r            resolver
	)

	for _, f := range b.files {
		if err := mergo.Merge(&fileSections, f.doc.sections(), mergo.WithOverride, mergo.WithoutDereference); err != nil {
			return nil, fmt.Errorf("error merging config file %q: %w", f.path, err)
		}

		next := r.instances(f.doc)
		instances.databases = mergeFileInstances(instances.databases, next.databases)
		instances.redis = mergeFileInstances(instances.redis, next.redis)
		instances.mongo = mergeFileInstances(instances.mongo, next.mongo)
		instances.s3 = mergeFileInstances(instances.s3, next.s3)
	}

	cfg := r.sections(b.env, fileSections)
	if err := r.err(); err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", err)
	}

	cfg.DatabaseInstances = instances.databases
	cfg.RedisInstances = instances.redis
	cfg.MongoInstances = instances.mongo
	cfg.S3Instances = instances.s3

	return cfg, nil
}

func (b *configBuilder) withFiles(paths ...string) *configBuilder {
	for _, path := range paths {
		b.log.Info().Str("path", path).Msg("loading config from file")

		doc, err := parseFile(path)
		if err != nil {
			b.err = errors.Join(b.err, err)
			continue
		}

		b.files = append(b.files, fileLayer{path: path, doc: doc})
	}

	return b
}

func (b *configBuilder) withEnv(environ map[string]string, prefix string) *configBuilder {
	b.log.Info().Str("prefix", prefix).Msg("loading config from environment variables")

	envSections, err := parseEnv(environ, prefix)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.env = envSections
	return b
}

// mergeFileInstances folds the instances of a later file into those of the
// earlier files, keeping nil when no file declares any. The first file's
// list is taken as written, duplicate names included.
func mergeFileInstances[T any](acc, next []Named[T]) []Named[T] {
	if len(next) == 0 {
		return acc
	}
	if len(acc) == 0 {
		return next
	}

	return MergeInstances(acc, next)
}
