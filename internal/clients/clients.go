// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package clients turns resolved resource configs into driver handles and
// health-checks them.
package clients

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-layered-config/internal/config"
)

var (
	// ErrNoRedisURL indicates a redis config without an address for its
	// mode.
	ErrNoRedisURL = errors.New("redis config has no url for its mode")
	// ErrInvalidMongoURI indicates a mongo URI with an unknown scheme or
	// no host.
	ErrInvalidMongoURI = errors.New("invalid mongo uri")
	// ErrRedisClusterCredentials indicates cluster node URLs that disagree on
	// username or password.
	ErrRedisClusterCredentials = errors.New("redis cluster urls have different credentials")
)

// OpenDatabase opens a pgx-backed *sql.DB sized by cfg. No connection is
// established until the pool is first used.
func OpenDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("error parsing database url: %w", err)
	}
	connConfig.ConnectTimeout = cfg.ConnectTimeoutDuration()

	db := stdlib.OpenDB(*connConfig)

	// setup connections
	db.SetMaxOpenConns(int(cfg.MaxConnections))
	db.SetMaxIdleConns(int(cfg.MinConnections))
	db.SetConnMaxIdleTime(cfg.IdleTimeoutDuration())

	return db, nil
}

// NewRedis returns a single-node client or a cluster client depending on
// cfg.Mode. Cluster nodes take the credentials of the first URL; every
// other URL must carry the same ones.
func NewRedis(cfg config.RedisConfig) (redis.UniversalClient, error) {
	if cfg.IsCluster() {
		urls := cfg.ClusterURLs()
		if len(urls) == 0 {
			return nil, ErrNoRedisURL
		}

		opts := &redis.ClusterOptions{}
		for i, u := range urls {
			node, err := redis.ParseURL(u)
			if err != nil {
				return nil, fmt.Errorf("error parsing redis cluster url: %w", err)
			}

			if i == 0 {
				opts.Username = node.Username
				opts.Password = node.Password
			} else if node.Username != opts.Username || node.Password != opts.Password {
				return nil, fmt.Errorf("%w: node %s", ErrRedisClusterCredentials, node.Addr)
			}
			opts.Addrs = append(opts.Addrs, node.Addr)
		}

		return redis.NewClusterClient(opts), nil
	}

	if cfg.SingleURL() == "" {
		return nil, ErrNoRedisURL
	}

	opts, err := redis.ParseURL(cfg.SingleURL())
	if err != nil {
		return nil, fmt.Errorf("error parsing redis url: %w", err)
	}

	return redis.NewClient(opts), nil
}

// NewS3 returns an S3 client using the static credentials in cfg. A custom
// endpoint switches to path-style addressing for S3 compatible services.
func NewS3(cfg config.S3Config) *s3.Client {
	return s3.New(s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	}, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
}

// ValidateMongoURI checks that cfg.URI is a mongodb:// or mongodb+srv://
// connection string with a host.
func ValidateMongoURI(cfg config.MongoConfig) error {
	u, err := url.Parse(cfg.URI)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMongoURI, err)
	}

	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidMongoURI, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidMongoURI)
	}

	return nil
}
