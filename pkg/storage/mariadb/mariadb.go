package mariadb

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/mgarciapsic/clinica-backend/config"
)

// Connect opens a pooled connection to MariaDB using the credentials from the
// configuration. The returned handle is passed explicitly into every service
// constructor; nothing in this package keeps a global reference.
func Connect(cfg *config.Config) (*sql.DB, error) {
	// DSN format: username:password@tcp(host:port)/dbname?parseTime=true&loc=Europe%2FMadrid
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Europe%%2FMadrid",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
