package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/kardex-farmacia/pkg/config"
)

// NewPool crea el pool del kardex. Cada conexión arranca con los tiempos de espera del ledger
// y con el codec NUMERIC -> shopspring/decimal registrado.
func NewPool(ctx context.Context, db config.DBConfig, ledger config.LedgerConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(db.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	for k, v := range runtimeParams(ledger) {
		poolConfig.ConnConfig.RuntimeParams[k] = v
	}

	maxConns := db.MaxConns
	if maxConns <= 0 {
		maxConns = 10
	}
	poolConfig.MaxConns = int32(maxConns)
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	// Cantidades y saldos nunca pasan por float.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, mapError("ping DB", err)
	}
	return pool, nil
}

// runtimeParams parámetros de sesión: lock_timeout acota la espera por el FOR UPDATE del
// producto (55P03 -> ErrConcurrentModification) y statement_timeout cada sentencia
// (57014 -> ErrStorageUnavailable). Valores en milisegundos; 0 los deja sin límite.
func runtimeParams(ledger config.LedgerConfig) map[string]string {
	params := map[string]string{"application_name": "kardex-farmacia"}
	if ledger.LockTimeout > 0 {
		params["lock_timeout"] = strconv.FormatInt(ledger.LockTimeout.Milliseconds(), 10)
	}
	if ledger.StorageTimeout > 0 {
		params["statement_timeout"] = strconv.FormatInt(ledger.StorageTimeout.Milliseconds(), 10)
	}
	return params
}
