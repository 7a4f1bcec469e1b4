// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-layered-config/internal/logger"
)

// Resource family tokens used in instance environment variable names.
const (
	FamilyDatabase = "DATABASE"
	FamilyRedis    = "REDIS"
	FamilyMongo    = "MONGO"
	FamilyS3       = "S3"
)

// DefaultMaxInstances bounds the index scan of a single family.
const DefaultMaxInstances = 4096

// LookupFunc returns the value of an environment variable and whether it is
// set. An empty value that is set counts as present.
type LookupFunc func(key string) (string, bool)

// MapLookup returns a LookupFunc reading from environ.
func MapLookup(environ map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := environ[key]
		return v, ok
	}
}

// Scanner discovers named resource instances declared in environment
// variables of the form
//
//	{PREFIX}_{FAMILY}_INSTANCES_{INDEX}_NAME
//	{PREFIX}_{FAMILY}_INSTANCES_{INDEX}_{FAMILY}_{FIELD}
//
// Indexes are scanned from 0 upwards and the scan of a family stops at the
// first index that lacks any required key. Later indexes are never
// inspected, so {0, 2} yields only instance 0.
//
// In lenient mode (the default) the scanner never fails: a malformed
// optional number is replaced by its default and an unknown redis mode
// becomes "single". In strict mode both return a *BuilderError.
type Scanner struct {
	prefix string
	lookup LookupFunc
	strict bool
	limit  int
	log    *logger.Logger
}

// ScannerOption configures a [Scanner].
type ScannerOption func(*Scanner)

// WithStrict turns strict parsing of optional fields on or off.
func WithStrict(strict bool) ScannerOption {
	return func(s *Scanner) {
		s.strict = strict
	}
}

// WithMaxInstances sets the safety bound of the index scan. Values below 1
// keep the default.
func WithMaxInstances(n int) ScannerOption {
	return func(s *Scanner) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithScannerLogger sets the logger used to report a scan that hits the
// safety bound.
func WithScannerLogger(log *logger.Logger) ScannerOption {
	return func(s *Scanner) {
		if log != nil {
			s.log = log
		}
	}
}

// NewScanner returns a Scanner reading variables under prefix through
// lookup.
func NewScanner(prefix string, lookup LookupFunc, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		prefix: prefix,
		lookup: lookup,
		limit:  DefaultMaxInstances,
		log:    logger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// HasAnyInstances reports whether index 0 of any family has its name key
// set. It is a cheap probe; a true result does not guarantee that a full
// scan yields instances.
func (s *Scanner) HasAnyInstances() bool {
	for _, family := range []string{FamilyDatabase, FamilyRedis, FamilyMongo, FamilyS3} {
		if _, ok := s.lookup(s.nameKey(family, 0)); ok {
			return true
		}
	}

	return false
}

// DatabaseInstances scans database instances. Required: NAME, DATABASE_URL.
// Optional: DATABASE_MAX_CONNECTIONS (10), DATABASE_MIN_CONNECTIONS (1),
// DATABASE_CONNECT_TIMEOUT (30) and DATABASE_IDLE_TIMEOUT (600); the
// timeouts also accept a _SECONDS suffix.
func (s *Scanner) DatabaseInstances() ([]DatabaseInstance, error) {
	return scan(s, FamilyDatabase, []string{"URL"}, func(g group, req map[string]string) (DatabaseConfig, error) {
		cfg := DatabaseConfig{URL: req["URL"]}

		var err error
		if cfg.MaxConnections, err = g.uint32Field(DefaultMaxConnections, "MAX_CONNECTIONS"); err != nil {
			return cfg, err
		}
		if cfg.MinConnections, err = g.uint32Field(DefaultMinConnections, "MIN_CONNECTIONS"); err != nil {
			return cfg, err
		}
		if cfg.ConnectTimeout, err = g.uint64Field(DefaultConnectTimeout, "CONNECT_TIMEOUT", "CONNECT_TIMEOUT_SECONDS"); err != nil {
			return cfg, err
		}
		if cfg.IdleTimeout, err = g.uint64Field(DefaultIdleTimeout, "IDLE_TIMEOUT", "IDLE_TIMEOUT_SECONDS"); err != nil {
			return cfg, err
		}

		return cfg, nil
	})
}

// RedisInstances scans redis instances. Required: NAME, REDIS_MODE.
// Optional: REDIS_URL and REDIS_URLS (comma separated, entries trimmed).
func (s *Scanner) RedisInstances() ([]RedisInstance, error) {
	return scan(s, FamilyRedis, []string{"MODE"}, func(g group, req map[string]string) (RedisConfig, error) {
		mode, ok := ParseRedisMode(req["MODE"])
		if !ok {
			if s.strict {
				return RedisConfig{}, &BuilderError{
					Key: g.key("MODE"),
					Err: fmt.Errorf("%w: %q", ErrInvalidRedisMode, req["MODE"]),
				}
			}
			mode = RedisModeSingle
		}

		cfg := RedisConfig{Mode: mode}
		if url, ok := g.get("URL"); ok {
			cfg.URL = url
		}
		if urls, ok := g.get("URLS"); ok {
			cfg.URLs = trimAll(strings.Split(urls, ","))
		}

		return cfg, nil
	})
}

// MongoInstances scans document store instances. Required: NAME,
// MONGO_URI.
func (s *Scanner) MongoInstances() ([]MongoInstance, error) {
	return scan(s, FamilyMongo, []string{"URI"}, func(_ group, req map[string]string) (MongoConfig, error) {
		return MongoConfig{URI: req["URI"]}, nil
	})
}

// S3Instances scans object store instances. Required: NAME, S3_REGION,
// S3_ACCESS_KEY_ID, S3_SECRET_ACCESS_KEY. Optional: S3_ENDPOINT.
func (s *Scanner) S3Instances() ([]S3Instance, error) {
	fields := []string{"REGION", "ACCESS_KEY_ID", "SECRET_ACCESS_KEY"}

	return scan(s, FamilyS3, fields, func(g group, req map[string]string) (S3Config, error) {
		cfg := S3Config{
			Region:          req["REGION"],
			AccessKeyID:     req["ACCESS_KEY_ID"],
			SecretAccessKey: req["SECRET_ACCESS_KEY"],
		}
		if endpoint, ok := g.get("ENDPOINT"); ok {
			cfg.Endpoint = endpoint
		}

		return cfg, nil
	})
}

// scan runs the gap-terminated index loop for one family. requiredFields
// are field names without the family part; NAME is always required.
func scan[T any](s *Scanner, family string, requiredFields []string, build func(group, map[string]string) (T, error)) ([]Named[T], error) {
	var instances []Named[T]

	for index := 0; index < s.limit; index++ {
		name, ok := s.lookup(s.nameKey(family, index))
		if !ok {
			return instances, nil
		}

		g := group{scanner: s, family: family, index: index}
		values := make(map[string]string, len(requiredFields))
		for _, field := range requiredFields {
			v, ok := g.get(field)
			if !ok {
				return instances, nil
			}
			values[field] = v
		}

		cfg, err := build(g, values)
		if err != nil {
			return nil, err
		}

		instances = append(instances, Named[T]{Name: name, Config: cfg})
	}

	s.log.Warn().
		Str("family", family).
		Int("limit", s.limit).
		Msg("instance scan stopped at safety bound")

	return instances, nil
}

func (s *Scanner) nameKey(family string, index int) string {
	return fmt.Sprintf("%s_%s_INSTANCES_%d_NAME", s.prefix, family, index)
}

// group reads the fields of the instance at one index of one family.
type group struct {
	scanner *Scanner
	family  string
	index   int
}

func (g group) key(field string) string {
	return fmt.Sprintf("%s_%s_INSTANCES_%d_%s_%s", g.scanner.prefix, g.family, g.index, g.family, field)
}

func (g group) get(field string) (string, bool) {
	return g.scanner.lookup(g.key(field))
}

// first returns the value of the first field in fields that is set.
func (g group) first(fields ...string) (key, value string, ok bool) {
	for _, field := range fields {
		if v, ok := g.get(field); ok {
			return g.key(field), v, true
		}
	}

	return "", "", false
}

func (g group) uint32Field(def uint32, fields ...string) (uint32, error) {
	v, err := g.uintField(uint64(def), 32, fields...)
	return uint32(v), err
}

func (g group) uint64Field(def uint64, fields ...string) (uint64, error) {
	return g.uintField(def, 64, fields...)
}

func (g group) uintField(def uint64, bitSize int, fields ...string) (uint64, error) {
	key, raw, ok := g.first(fields...)
	if !ok {
		return def, nil
	}

	v, err := strconv.ParseUint(raw, 10, bitSize)
	if err != nil {
		if g.scanner.strict {
			return 0, &BuilderError{Key: key, Err: err}
		}
		return def, nil
	}

	return v, nil
}
