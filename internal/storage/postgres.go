package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperror "goestoque/internal/errors"
)

// PostgresStore grava os blobs na tabela kv_store (ver migrações em internal/pkg/database).
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore cria o armazenamento sobre um pool já aberto.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM kv_store WHERE key = $1`

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", apperror.NewDBError(fmt.Sprintf("falha ao ler a chave %s", key), err)
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return apperror.NewDBError(fmt.Sprintf("falha ao gravar a chave %s", key), err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_store WHERE key = $1`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return apperror.NewDBError(fmt.Sprintf("falha ao remover a chave %s", key), err)
	}
	return nil
}
