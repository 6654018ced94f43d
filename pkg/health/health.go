// Package health defines dependency probes used by the readiness endpoint.
package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"profiler-backend/pkg/redis"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

type funcChecker struct {
	name string
	fn   func(ctx context.Context) error
}

// NewChecker adapts fn into a Checker.
func NewChecker(name string, fn func(ctx context.Context) error) Checker {
	return &funcChecker{name: name, fn: fn}
}

func (c *funcChecker) Name() string { return c.name }

func (c *funcChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return c.fn(ctx)
}

func Postgres(pool *pgxpool.Pool) Checker {
	return NewChecker("postgres", pool.Ping)
}

func SQLite(db *gorm.DB) Checker {
	return NewChecker("sqlite", func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
}

// Redis probes the shared client; callers register it only when Redis is configured.
func Redis() Checker {
	return NewChecker("redis", redis.HealthCheck)
}
