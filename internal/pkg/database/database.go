package database

import (
	"backoffice-service/config"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"go.elastic.co/apm/module/apmsql"
	_ "go.elastic.co/apm/module/apmsql/pq"
)

// GetConnection opens the Postgres pool through the APM-instrumented
// driver so every query shows up as a span on the active transaction.
func GetConnection(cfg *config.DatabaseConfig) *sqlx.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := apmsql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("error open database connection: %v", err)
	}

	dbx := sqlx.NewDb(db, "postgres")
	dbx.SetMaxOpenConns(25)
	dbx.SetMaxIdleConns(5)
	dbx.SetConnMaxLifetime(30 * time.Minute)

	if err := dbx.Ping(); err != nil {
		log.Fatalf("error ping database: %v", err)
	}

	return dbx
}
