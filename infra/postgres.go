package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/obrunogonzaga/formatura-2025/config"
	"github.com/obrunogonzaga/formatura-2025/entity"
)

type PostgresClient struct {
	DB *gorm.DB
}

func InitPostgresClient(cfg *config.EnvConfig) *PostgresClient {
	dsn := cfg.Postgres.URL
	if dsn == "" {
		panic("DATABASE_URL is not configured")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Postgres: %v", err))
	}

	if err := db.AutoMigrate(&entity.Submission{}, &entity.Child{}, &entity.Photo{}); err != nil {
		panic(fmt.Sprintf("Failed to migrate schema: %v", err))
	}

	return &PostgresClient{DB: db}
}
