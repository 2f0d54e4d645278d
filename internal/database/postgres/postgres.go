package postgres

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"quote-service/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func DSN(cfg config.PostgresConfig, dbname string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, dbname, cfg.SSLMode)
}

// ConnectAndCreateDB connects to the service database, creating it first through the
// default postgres database when it does not exist yet.
func ConnectAndCreateDB(cfg config.PostgresConfig) (*sqlx.DB, error) {
	slog.Info("connecting to PostgreSQL", "host", cfg.Host, "port", cfg.Port, "user", cfg.Username, "dbname", cfg.DBname)

	defaultDB, err := sql.Open("postgres", DSN(cfg, "postgres"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to default postgres db: %w", err)
	}
	defer defaultDB.Close()

	var exists bool
	checkQuery := `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`
	if err := defaultDB.QueryRow(checkQuery, cfg.DBname).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check if database exists: %w", err)
	}

	if !exists {
		createQuery := fmt.Sprintf(`CREATE DATABASE "%s"`, cfg.DBname)
		if _, err := defaultDB.Exec(createQuery); err != nil {
			return nil, fmt.Errorf("failed to create database %s: %w", cfg.DBname, err)
		}
		slog.Info("database created", "dbname", cfg.DBname)
	}

	db, err := Connect(DSN(cfg, cfg.DBname))
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := MigrateUp(db.DB); err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}

func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to target database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping target database: %w", err)
	}
	return db, nil
}
