package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB holds the database connection handle, constructed once at startup and
// injected into everything that needs it.
type DB struct {
	Postgres *gorm.DB
}

// InitDB initializes and returns the database connection.
func InitDB(cfg *Config) (*DB, error) {
	if cfg.PostgresConnStr == "" {
		return nil, fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
	}

	// TranslateError maps driver errors onto gorm sentinels, which the
	// repositories rely on for conflict detection.
	db, err := gorm.Open(postgres.Open(cfg.PostgresConnStr), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	return &DB{Postgres: db}, nil
}

// CloseDB closes the database connection.
func (db *DB) CloseDB() error {
	if db.Postgres == nil {
		return nil
	}
	sqlDB, err := db.Postgres.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
