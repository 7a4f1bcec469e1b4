// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

// resolver turns an environment layer and a file layer into resolved
// structures, collecting every failure so that a single decode reports all
// missing or invalid keys at once.
type resolver struct {
	errs []error
}

func (r *resolver) fail(err error) {
	r.errs = append(r.errs, err)
}

func (r *resolver) err() error {
	return errors.Join(r.errs...)
}

func required[T any](r *resolver, key string, env, file *T) T {
	v, err := ResolveRequired(key, env, file)
	if err != nil {
		r.fail(err)
	}
	return v
}

func (r *resolver) sections(env, file sections) *Config {
	cfg := &Config{
		Database: r.database("database", env.Database, file.Database),
		Server: ServerConfig{
			Host: ResolveValue(env.Server.Host, file.Server.Host, DefaultServerHost),
			Port: ResolveValue(env.Server.Port, file.Server.Port, DefaultServerPort),
		},
		JWT: JWTConfig{
			Secret: required(r, "jwt.jwt_secret", env.JWT.Secret, file.JWT.Secret),
			Issuer: required(r, "jwt.issuer", env.JWT.Issuer, file.JWT.Issuer),
			Expire: ResolveValue(env.JWT.Expire, file.JWT.Expire, DefaultJWTExpire),
		},
	}

	if env.Redis.defined() || file.Redis.defined() {
		redis := r.redis("redis", env.Redis, file.Redis)
		cfg.Redis = &redis
	}
	if env.Mongo.defined() || file.Mongo.defined() {
		mongo := r.mongo("mongo", env.Mongo, file.Mongo)
		cfg.Mongo = &mongo
	}
	if env.S3.defined() || file.S3.defined() {
		s3 := r.s3("s3", env.S3, file.S3)
		cfg.S3 = &s3
	}

	return cfg
}

func (r *resolver) database(key string, env, file databaseLayer) DatabaseConfig {
	return DatabaseConfig{
		URL:            required(r, key+".url", env.URL, file.URL),
		MaxConnections: ResolveValue(env.MaxConnections, file.MaxConnections, DefaultMaxConnections),
		MinConnections: ResolveValue(env.MinConnections, file.MinConnections, DefaultMinConnections),
		ConnectTimeout: ResolveValue(env.ConnectTimeout, file.ConnectTimeout, DefaultConnectTimeout),
		IdleTimeout:    ResolveValue(env.IdleTimeout, file.IdleTimeout, DefaultIdleTimeout),
	}
}

func (r *resolver) redis(key string, env, file redisLayer) RedisConfig {
	rawMode := required(r, key+".mode", env.Mode, file.Mode)

	mode, ok := ParseRedisMode(rawMode)
	if !ok && (env.Mode != nil || file.Mode != nil) {
		r.fail(&BuilderError{Key: key + ".mode", Err: fmt.Errorf("%w: %q", ErrInvalidRedisMode, rawMode)})
	}

	return RedisConfig{
		Mode: mode,
		URL:  ResolveValue(env.URL, file.URL, ""),
		URLs: resolveList(env.URLs, file.URLs),
	}
}

func (r *resolver) mongo(key string, env, file mongoLayer) MongoConfig {
	return MongoConfig{
		URI: required(r, key+".uri", env.URI, file.URI),
	}
}

func (r *resolver) s3(key string, env, file s3Layer) S3Config {
	return S3Config{
		Region:          required(r, key+".region", env.Region, file.Region),
		AccessKeyID:     required(r, key+".access_key_id", env.AccessKeyID, file.AccessKeyID),
		SecretAccessKey: required(r, key+".secret_access_key", env.SecretAccessKey, file.SecretAccessKey),
		Endpoint:        ResolveValue(env.Endpoint, file.Endpoint, ""),
	}
}

// fileInstances resolves the instance lists declared in a single file.
// Instances never read the environment layer: environment-declared
// instances are discovered by the [Scanner].
type fileInstances struct {
	databases []DatabaseInstance
	redis     []RedisInstance
	mongo     []MongoInstance
	s3        []S3Instance
}

func (r *resolver) instances(doc *fileDocument) fileInstances {
	var out fileInstances

	for i, l := range doc.DatabaseInstances {
		key := fmt.Sprintf("database_instances[%d]", i)
		out.databases = append(out.databases, DatabaseInstance{
			Name:   required(r, key+".name", nil, l.Name),
			Config: r.database(key+".database", databaseLayer{}, l.Database),
		})
	}
	for i, l := range doc.RedisInstances {
		key := fmt.Sprintf("redis_instances[%d]", i)
		out.redis = append(out.redis, RedisInstance{
			Name:   required(r, key+".name", nil, l.Name),
			Config: r.redis(key+".redis", redisLayer{}, l.Redis),
		})
	}
	for i, l := range doc.MongoInstances {
		key := fmt.Sprintf("mongo_instances[%d]", i)
		out.mongo = append(out.mongo, MongoInstance{
			Name:   required(r, key+".name", nil, l.Name),
			Config: r.mongo(key+".mongo", mongoLayer{}, l.Mongo),
		})
	}
	for i, l := range doc.S3Instances {
		key := fmt.Sprintf("s3_instances[%d]", i)
		out.s3 = append(out.s3, S3Instance{
			Name:   required(r, key+".name", nil, l.Name),
			Config: r.s3(key+".s3", s3Layer{}, l.S3),
		})
	}

	return out
}
