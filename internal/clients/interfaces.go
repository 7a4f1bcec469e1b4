package clients

//go:generate mockgen -source=interfaces.go -destination=../mock/clients_mock.go -package=mock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// DB is the part of *sql.DB used by health checks.
type DB interface {
	PingContext(ctx context.Context) error
	Close() error
}

// BucketLister is the part of *s3.Client used by health checks.
type BucketLister interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
}
