package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "roomly"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultRateLimitRequests = 20
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// NotifierModeLog logs confirmations locally, NotifierModeKafka
	// publishes them to the confirmations topic.
	NotifierModeLog   = "log"
	NotifierModeKafka = "kafka"

	DefaultNotifierMode          = NotifierModeLog
	DefaultNotifyTimeout         = 5 * time.Second
	DefaultConfirmationsTopic    = "roomly.confirmations"
	DefaultConfirmationsDLQTopic = "roomly.confirmations.dlq"

	DefaultPaginationLimit = 50
)
