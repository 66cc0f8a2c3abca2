package config

import (
	"os"
	"strconv"
)

type EnvConfig struct {
	Postgres struct {
		URL string
	}
	S3 struct {
		Endpoint        string
		PublicEndpoint  string
		PresignEndpoint string
		Bucket          string
		Region          string
		AccessKey       string
		SecretKey       string
		ForcePathStyle  bool
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		Database int
	}
	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}
	CORS struct {
		AllowOrigins string
	}
	Telemetry struct {
		OTLPEndpoint string
		ServiceName  string
	}
	Upload struct {
		MaxFileSizeMB int
	}
	Environment struct {
		Mode string
	}
	Port string
}

func LoadEnvConfig() *EnvConfig {
	var config EnvConfig

	// Postgres
	config.Postgres.URL = os.Getenv("DATABASE_URL")

	// S3-compatible object storage
	config.S3.Endpoint = os.Getenv("S3_ENDPOINT")
	config.S3.PublicEndpoint = os.Getenv("S3_PUBLIC_ENDPOINT")
	if config.S3.PublicEndpoint == "" {
		config.S3.PublicEndpoint = config.S3.Endpoint
	}
	config.S3.PresignEndpoint = os.Getenv("S3_PRESIGN_ENDPOINT")
	if config.S3.PresignEndpoint == "" {
		config.S3.PresignEndpoint = config.S3.PublicEndpoint
	}
	config.S3.Bucket = os.Getenv("S3_BUCKET")
	config.S3.Region = os.Getenv("S3_REGION")
	if config.S3.Region == "" {
		config.S3.Region = "us-east-1"
	}
	config.S3.AccessKey = os.Getenv("S3_ACCESS_KEY")
	config.S3.SecretKey = os.Getenv("S3_SECRET_KEY")
	config.S3.ForcePathStyle = os.Getenv("S3_FORCE_PATH_STYLE") != "false"

	// Redis (optional, listing cache)
	config.Redis.Host = os.Getenv("REDIS_HOST")
	config.Redis.Port = os.Getenv("REDIS_PORT")
	if config.Redis.Port == "" {
		config.Redis.Port = "6379"
	}
	config.Redis.Password = os.Getenv("REDIS_PASSWORD")
	config.Redis.Database, _ = strconv.Atoi(os.Getenv("REDIS_DB"))

	// RabbitMQ (optional, submission events)
	config.RabbitMQ.Host = os.Getenv("RABBITMQ_HOST")
	config.RabbitMQ.Port = os.Getenv("RABBITMQ_PORT")
	if config.RabbitMQ.Port == "" {
		config.RabbitMQ.Port = "5672"
	}
	config.RabbitMQ.Username = os.Getenv("RABBITMQ_USER")
	if config.RabbitMQ.Username == "" {
		config.RabbitMQ.Username = "guest"
	}
	config.RabbitMQ.Password = os.Getenv("RABBITMQ_PASSWORD")
	if config.RabbitMQ.Password == "" {
		config.RabbitMQ.Password = "guest"
	}

	// Comma-separated allowed origins, "*" (default) allows all
	config.CORS.AllowOrigins = os.Getenv("ALLOWED_ORIGINS")

	// OpenTelemetry
	config.Telemetry.OTLPEndpoint = os.Getenv("OTLP_ENDPOINT")
	config.Telemetry.ServiceName = os.Getenv("SERVICE_NAME")
	if config.Telemetry.ServiceName == "" {
		config.Telemetry.ServiceName = "formatura-submission-service"
	}

	// Client-visible upload hint, not enforced server-side
	if val := os.Getenv("MAX_FILE_SIZE_MB"); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			config.Upload.MaxFileSizeMB = size
		} else {
			config.Upload.MaxFileSizeMB = 10
		}
	} else {
		config.Upload.MaxFileSizeMB = 10
	}

	config.Environment.Mode = os.Getenv("DEPLOY_ENV")
	if config.Environment.Mode == "" {
		config.Environment.Mode = "development"
	}

	config.Port = os.Getenv("PORT")
	if config.Port == "" {
		config.Port = "8080"
	}

	return &config
}
