package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS usuarios (
	id          uuid PRIMARY KEY,
	nombre      text NOT NULL,
	email       text NOT NULL UNIQUE,
	password    text NOT NULL,
	rol         text NOT NULL CHECK (rol IN ('vendedor', 'cliente', 'admin')),
	imagen_url  text,
	created_at  timestamptz NOT NULL DEFAULT now(),
	updated_at  timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS vendedores_clientes (
	vendedor_id uuid NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
	cliente_id  uuid NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
	created_at  timestamptz NOT NULL DEFAULT now(),
	PRIMARY KEY (vendedor_id, cliente_id)
);

CREATE TABLE IF NOT EXISTS pedidos (
	id          uuid PRIMARY KEY,
	cliente_id  uuid NOT NULL REFERENCES usuarios(id) ON DELETE CASCADE,
	estado      text NOT NULL DEFAULT 'solicitado' CHECK (estado IN ('solicitado', 'descargado', 'capturado')),
	cancelado   boolean NOT NULL DEFAULT false,
	datos       jsonb NOT NULL DEFAULT '{}'::jsonb,
	created_at  timestamptz NOT NULL DEFAULT now(),
	updated_at  timestamptz NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS pedidos_cliente_id_idx ON pedidos (cliente_id);
`

// EnsureSchema creates the tables when they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
