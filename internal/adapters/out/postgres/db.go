// Package postgres opens the GORM connection used by the PostgreSQL
// repositories and prepares their schema.
//
// Usage:
//
//	db, err := postgres.Open(ctx, postgres.Options{
//	    Host: "localhost", Port: "5432",
//	    User: "app", Password: "secret", Name: "orders",
//	    SSLMode: "disable",
//	})
//	if err != nil {
//	    return err
//	}
//	repo := orderrepo.NewGormOrderRepository(db)
package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	"logistics/internal/adapters/out/postgres/orderrepo"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrConnectionOptionsAreIncomplete = errors.New("postgres connection options are incomplete")

// Options holds the connection settings.
type Options struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the options as a postgres:// URL.
func (o Options) DSN() (string, error) {
	if o.Host == "" || o.User == "" || o.Name == "" {
		return "", fmt.Errorf("%w: host, user and database name are required", ErrConnectionOptionsAreIncomplete)
	}

	port := o.Port
	if port == "" {
		port = "5432"
	}
	sslMode := o.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(o.User, o.Password),
		Host:     net.JoinHostPort(o.Host, port),
		Path:     "/" + o.Name,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return dsn.String(), nil
}

// Open connects, pings the server and migrates the order tables.
func Open(ctx context.Context, opts Options) (*gorm.DB, error) {
	dsn, err := opts.DSN()
	if err != nil {
		return nil, err
	}

	return OpenDSN(ctx, dsn)
}

// OpenDSN is Open for a ready-made connection string.
func OpenDSN(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err = orderrepo.Migrate(db.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("migrate order tables: %w", err)
	}

	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
