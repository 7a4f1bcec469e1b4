package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"

	"github.com/MKhiriev/go-layered-config/internal/config"
	"github.com/MKhiriev/go-layered-config/internal/logger"
)

// DefaultCheckTimeout bounds a single resource probe.
const DefaultCheckTimeout = 5 * time.Second

// Result is the outcome of probing one resource. Name is empty for the
// base config of a family.
type Result struct {
	Family string
	Name   string
	Err    error
}

func (r Result) OK() bool {
	return r.Err == nil
}

func (r Result) String() string {
	target := r.Family
	if r.Name != "" {
		target += "/" + r.Name
	}

	if r.Err != nil {
		return fmt.Sprintf("%s: FAIL: %v", target, r.Err)
	}
	return target + ": OK"
}

// Checker probes every resource of a resolved configuration.
type Checker struct {
	log      *logger.Logger
	timeout  time.Duration
	openDB   func(config.DatabaseConfig) (DB, error)
	newRedis func(config.RedisConfig) (redis.UniversalClient, error)
	newS3    func(config.S3Config) BucketLister
}

// CheckerOption configures a [Checker].
type CheckerOption func(*Checker)

// WithTimeout bounds each probe. Values below or equal to zero keep the
// default.
func WithTimeout(d time.Duration) CheckerOption {
	return func(c *Checker) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithDatabaseOpener replaces the function used to open databases.
func WithDatabaseOpener(open func(config.DatabaseConfig) (DB, error)) CheckerOption {
	return func(c *Checker) {
		c.openDB = open
	}
}

// WithRedisFactory replaces the function used to create redis clients.
func WithRedisFactory(factory func(config.RedisConfig) (redis.UniversalClient, error)) CheckerOption {
	return func(c *Checker) {
		c.newRedis = factory
	}
}

// WithS3Factory replaces the function used to create S3 clients.
func WithS3Factory(factory func(config.S3Config) BucketLister) CheckerOption {
	return func(c *Checker) {
		c.newS3 = factory
	}
}

func NewChecker(log *logger.Logger, opts ...CheckerOption) *Checker {
	if log == nil {
		log = logger.Nop()
	}

	c := &Checker{
		log:     log,
		timeout: DefaultCheckTimeout,
		openDB: func(cfg config.DatabaseConfig) (DB, error) {
			return OpenDatabase(cfg)
		},
		newRedis: NewRedis,
		newS3: func(cfg config.S3Config) BucketLister {
			return NewS3(cfg)
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Check probes the JWT config, every database, redis and S3 config and
// instance, and validates every mongo URI. All resources are probed even
// after a failure; results keep the config order.
func (c *Checker) Check(ctx context.Context, cfg *config.Config) []Result {
	results := []Result{
		{Family: "jwt", Err: CheckJWT(cfg.JWT)},
		{Family: "database", Err: c.checkDatabase(ctx, cfg.Database)},
	}
	for _, inst := range cfg.DatabaseInstances {
		results = append(results, Result{Family: "database", Name: inst.Name, Err: c.checkDatabase(ctx, inst.Config)})
	}

	if cfg.Redis != nil {
		results = append(results, Result{Family: "redis", Err: c.checkRedis(ctx, *cfg.Redis)})
	}
	for _, inst := range cfg.RedisInstances {
		results = append(results, Result{Family: "redis", Name: inst.Name, Err: c.checkRedis(ctx, inst.Config)})
	}

	if cfg.Mongo != nil {
		results = append(results, Result{Family: "mongo", Err: ValidateMongoURI(*cfg.Mongo)})
	}
	for _, inst := range cfg.MongoInstances {
		results = append(results, Result{Family: "mongo", Name: inst.Name, Err: ValidateMongoURI(inst.Config)})
	}

	if cfg.S3 != nil {
		results = append(results, Result{Family: "s3", Err: c.checkS3(ctx, *cfg.S3)})
	}
	for _, inst := range cfg.S3Instances {
		results = append(results, Result{Family: "s3", Name: inst.Name, Err: c.checkS3(ctx, inst.Config)})
	}

	for _, r := range results {
		if r.Err != nil {
			c.log.Err(r.Err).Str("family", r.Family).Str("instance", r.Name).Msg("resource check failed")
			continue
		}
		c.log.Debug().Str("family", r.Family).Str("instance", r.Name).Msg("resource check passed")
	}

	return results
}

func (c *Checker) checkDatabase(ctx context.Context, cfg config.DatabaseConfig) error {
	db, err := c.openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("error connecting database (ping): %w", err)
	}
	return nil
}

func (c *Checker) checkRedis(ctx context.Context, cfg config.RedisConfig) error {
	client, err := c.newRedis(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("error connecting redis (ping): %w", err)
	}
	return nil
}

func (c *Checker) checkS3(ctx context.Context, cfg config.S3Config) error {
	client := c.newS3(cfg)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := client.ListBuckets(ctx, &s3.ListBucketsInput{}); err != nil {
		return fmt.Errorf("error listing s3 buckets: %w", err)
	}
	return nil
}
