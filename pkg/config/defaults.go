package config

import "time"

const (
	EnvironmentProduction  = "production"
	EnvironmentDevelopment = "development"

	DefaultMongoURI          = "mongodb://localhost:27017/?replicaSet=rs0"
	DefaultMongoDatabaseName = "tranquilstayDB"
	DefaultMongoConnTimeout  = 10 * time.Second
	DefaultAtlasHost         = "cluster0.dfacken.mongodb.net"
	DefaultAtlasAppName      = "Cluster0"

	DefaultPort        = "5000"
	DefaultEnvironment = EnvironmentDevelopment
	DefaultLogLevel    = "info"

	DefaultSessionTTL          = 30 * 24 * time.Hour
	MinAccessTokenSecretLength = 16

	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultKafkaEventsTopic = "tranquilstay.events"
)

var DefaultCORSAllowedOrigins = []string{
	"http://localhost:5173",
	"https://tranquil-stay.web.app",
	"https://tranquil-stay-server.vercel.app",
}
