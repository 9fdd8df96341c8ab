package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"saassyadmin/internal/config"
)

const connectTimeout = 5 * time.Second

type Infra struct {
	// PG is nil when DATABASE_URL is empty (local/test runs).
	PG    *pgxpool.Pool
	Redis *redis.Client
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Infra, error) {
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		var err error
		pool, err = newPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
	} else {
		logger.Warn("DATABASE_URL is empty, accounts are kept in memory")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: connectTimeout,
	})
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		if pool != nil {
			pool.Close()
		}
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Info("infra ready", zap.Bool("postgres", pool != nil), zap.String("redis", cfg.RedisAddr))
	return &Infra{PG: pool, Redis: rdb}, nil
}

func newPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.ConnConfig.ConnectTimeout = connectTimeout

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return pool, nil
}

func (i *Infra) Close() {
	if i == nil {
		return
	}
	if i.PG != nil {
		i.PG.Close()
	}
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
}
