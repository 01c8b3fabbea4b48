// Package storage define o armazenamento chave-valor onde o estado do estoque é gravado
// como blobs JSON, e suas implementações (Redis/memória via cache.Client e PostgreSQL).
package storage

import (
	"context"
	"errors"
	"time"

	"goestoque/internal/pkg/cache"
)

// ErrNotFound indica que a chave não existe no armazenamento.
var ErrNotFound = errors.New("storage: chave não encontrada")

// KeyValueStore é o contrato mínimo de persistência: blobs de texto por chave.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// CacheStore adapta um cache.Client (Redis ou memória) para KeyValueStore.
// Os blobs são gravados sem expiração.
type CacheStore struct {
	client cache.Client
}

// NewCacheStore cria o adaptador.
func NewCacheStore(client cache.Client) *CacheStore {
	return &CacheStore{client: client}
}

func (s *CacheStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key)
	if errors.Is(err, cache.ErrCacheMiss) {
		return "", ErrNotFound
	}
	return val, err
}

func (s *CacheStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, time.Duration(0))
}

func (s *CacheStore) Delete(ctx context.Context, key string) error {
	return s.client.Delete(ctx, key)
}
