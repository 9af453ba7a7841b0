package kafka_config

import "time"

const (
	DefaultKafkaBrokers = "localhost:9092"

	// Booking events are low volume, so batches flush almost immediately.
	DefaultProducerMaxAttempts  = 5
	DefaultProducerBatchTimeout = 5 * time.Millisecond
	DefaultProducerWriteTimeout = 5 * time.Second
	DefaultProducerRequireAcks  = -1
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = false

	DefaultEnableMiddleware = true
)

var supportedCompressions = []string{"none", "gzip", "snappy", "lz4", "zstd"}
