package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaDDL esquema de la aplicación. Idempotente: se puede ejecutar en cada
// arranque sin efecto sobre datos existentes.
//
// stock_current / stock_previous materializan el ledger como filas
// (move_id, product_id, quantity): el incremento conmutativo es un upsert
// "quantity = quantity + delta" resuelto en el servidor. Sin CHECK de no
// negatividad: una celda puede quedar negativa por un undo fuera de orden y
// eso se tolera.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS stock_current (
	move_id    TEXT   NOT NULL,
	product_id TEXT   NOT NULL,
	quantity   BIGINT NOT NULL DEFAULT 0,
	PRIMARY KEY (move_id, product_id)
);

CREATE TABLE IF NOT EXISTS stock_previous (
	move_id    TEXT   NOT NULL,
	product_id TEXT   NOT NULL,
	quantity   BIGINT NOT NULL DEFAULT 0,
	PRIMARY KEY (move_id, product_id)
);

CREATE TABLE IF NOT EXISTS stock_transactions (
	id        UUID        PRIMARY KEY DEFAULT gen_random_uuid(),
	move_id   TEXT        NOT NULL,
	deltas    JSONB       NOT NULL,
	ts        TIMESTAMPTZ NOT NULL DEFAULT now(),
	user_id   TEXT        NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stock_transactions_ts ON stock_transactions (ts DESC);

CREATE TABLE IF NOT EXISTS app_config (
	id              INT  PRIMARY KEY DEFAULT 1 CHECK (id = 1),
	reset_time      TEXT NOT NULL,
	last_reset_date TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
	id            UUID        PRIMARY KEY,
	email         TEXT        NOT NULL UNIQUE,
	password_hash TEXT        NOT NULL,
	name          TEXT        NOT NULL,
	role          TEXT        NOT NULL,
	status        TEXT        NOT NULL DEFAULT 'active',
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema crea las tablas si no existen y siembra la fila única de
// configuración. El marcador inicial es la fecha de hoy del servidor de BD
// para no disparar un cierre inmediato en el primer arranque.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	seed := `
		INSERT INTO app_config (id, reset_time, last_reset_date)
		VALUES (1, '05:00', to_char(now(), 'YYYY-MM-DD'))
		ON CONFLICT (id) DO NOTHING`
	if _, err := pool.Exec(ctx, seed); err != nil {
		return fmt.Errorf("sembrar configuración: %w", err)
	}
	return nil
}
