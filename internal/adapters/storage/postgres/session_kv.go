package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"vet-booking-client/internal/session"
)

const schema = `
	CREATE TABLE IF NOT EXISTS session_kv (
		namespace  TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (namespace, key)
	)
`

// SessionRepo guarda la sesión en la tabla session_kv, una fila por campo.
// namespace permite compartir la tabla entre perfiles/dispositivos.
type SessionRepo struct {
	db        *sql.DB
	namespace string
}

func NewSessionRepo(ctx context.Context, db *sql.DB, namespace string) (*SessionRepo, error) {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = "default"
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("postgres session backend: migrate: %w", err)
	}
	return &SessionRepo{db: db, namespace: namespace}, nil
}

var _ session.Backend = (*SessionRepo)(nil)

func (r *SessionRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `
		SELECT value FROM session_kv
		WHERE namespace = $1 AND key = $2
	`, r.namespace, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// SetMany hace upsert de todos los campos dentro de una transacción.
func (r *SessionRepo) SetMany(ctx context.Context, values map[string]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op tras Commit

	for k, v := range values {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO session_kv (namespace, key, value, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (namespace, key) DO UPDATE
			   SET value = EXCLUDED.value,
			       updated_at = now()
		`, r.namespace, k, v); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SessionRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM session_kv WHERE namespace = $1`, r.namespace)
	return err
}

func (r *SessionRepo) Close() error {
	return r.db.Close()
}
