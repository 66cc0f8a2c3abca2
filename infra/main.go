package infra

import (
	"context"
	"log"
	"time"

	"github.com/obrunogonzaga/formatura-2025/config"
	"github.com/obrunogonzaga/formatura-2025/infra/produce"
)

type Infra struct {
	Postgres  *PostgresClient
	Storage   *StorageClient
	Minio     *MinioClient
	Logger    *LoggerClient
	Telemetry *TelemetryClient
	Redis     *RedisClient
	RabbitMQ  *RabbitMQClient
	Produce   *produce.Produce
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	storage := InitStorageClient(cfg.EnvConfig)
	if storage == nil {
		panic("Failed to initialize Storage service")
	}

	minioClient := InitMinioClient(cfg.EnvConfig)
	if minioClient == nil {
		panic("Failed to initialize MinIO service")
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	telemetry := InitTelemetryClient(cfg.EnvConfig)
	if telemetry == nil {
		panic("Failed to initialize Telemetry service")
	}

	// Cache and broker are optional: the submission flow works without them.
	redisClient, err := NewRedisClient(cfg.EnvConfig)
	if err != nil {
		log.Printf("Warning: Redis unavailable, listing cache disabled: %v", err)
		redisClient = nil
	}

	rabbitMQ, err := NewRabbitMQClient(cfg.EnvConfig)
	var produceService *produce.Produce
	if err != nil {
		log.Printf("Warning: RabbitMQ unavailable, submission events disabled: %v", err)
		rabbitMQ = nil
	} else {
		produceService = produce.InitProduce(rabbitMQ.Channel)
	}

	// Bucket bootstrap: the listing endpoint hands out plain public URLs, so
	// the bucket must exist and allow anonymous reads.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := minioClient.EnsureBucket(ctx, cfg.EnvConfig.S3.Bucket, cfg.EnvConfig.S3.Region); err != nil {
		panic("Failed to ensure photo bucket: " + err.Error())
	}
	if err := minioClient.SetBucketPublicRead(ctx, cfg.EnvConfig.S3.Bucket); err != nil {
		log.Printf("Warning: could not set public-read policy on bucket %s: %v", cfg.EnvConfig.S3.Bucket, err)
	}

	infraInstance = &Infra{
		Postgres:  postgres,
		Storage:   storage,
		Minio:     minioClient,
		Logger:    logger,
		Telemetry: telemetry,
		Redis:     redisClient,
		RabbitMQ:  rabbitMQ,
		Produce:   produceService,
	}

	return infraInstance
}

// Shutdown flushes and closes the clients that buffer or hold connections.
// It tolerates a partially built Infra so it can run on any exit path.
func (i *Infra) Shutdown(ctx context.Context) {
	if i.Telemetry != nil {
		if err := i.Telemetry.Shutdown(ctx); err != nil {
			log.Printf("Telemetry shutdown: %v", err)
		}
	}
	if i.Logger != nil {
		if err := i.Logger.Shutdown(ctx); err != nil {
			log.Printf("Logger shutdown: %v", err)
		}
	}
	if i.RabbitMQ != nil {
		i.RabbitMQ.Close()
	}
}

func GetClient() *Infra {
	if infraInstance == nil {
		panic("Infra not initialized. Call InitInfra() first.")
	}
	return infraInstance
}
