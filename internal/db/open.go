package db

import (
	"context"
	"fmt"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Options selects and configures a backend
type Options struct {
	Driver        string
	SQLitePath    string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open returns the Store for opts.Driver. An empty driver means memory.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		if opts.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite driver requires a database path")
		}
		s, err := OpenSQLite(ctx, opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverPostgres:
		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres driver requires a database URL")
		}
		p, err := ConnectPostgres(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return p, nil
	case DriverRedis:
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("redis driver requires an address")
		}
		r, err := ConnectRedis(ctx, RedisOptions{Addr: opts.RedisAddr, Password: opts.RedisPassword, DB: opts.RedisDB})
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}
