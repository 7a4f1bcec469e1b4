package config

//go:generate mockgen -source=interfaces.go -destination=../mock/publisher_mock.go -package=mock

// Kind identifies a resolved configuration value handed to a [Publisher].
type Kind string

// Kinds published by [Init], in publication order.
const (
	KindConfig            Kind = "config"
	KindDatabase          Kind = "database"
	KindDatabaseInstances Kind = "database_instances"
	KindServer            Kind = "server"
	KindJWT               Kind = "jwt"
	KindRedis             Kind = "redis"
	KindRedisInstances    Kind = "redis_instances"
	KindMongo             Kind = "mongo"
	KindMongoInstances    Kind = "mongo_instances"
	KindS3                Kind = "s3"
	KindS3Instances       Kind = "s3_instances"
)

// Publisher receives the resolved configuration so that unrelated
// subsystems can retrieve it later. Implementations own their storage and
// must serialize concurrent writes themselves.
type Publisher interface {
	// Publish stores value under kind, replacing any previous value.
	Publish(kind Kind, value any) error
}
