package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persiste sessões no Redis, uma chave por sessão.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore cria o armazenamento sobre um cliente já conectado.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(id string) string {
	return fmt.Sprintf("sessao:%s", id)
}

// Save grava a sessão serializada com o prazo informado.
func (r *RedisStore) Save(ctx context.Context, id string, s Sessao, ttl time.Duration) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("sessao: serializando: %w", err)
	}
	return r.client.Set(ctx, redisKey(id), payload, ttl).Err()
}

// Get devolve a sessão quando a chave ainda existe.
func (r *RedisStore) Get(ctx context.Context, id string) (Sessao, error) {
	data, err := r.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Sessao{}, ErrNaoEncontrada
	}
	if err != nil {
		return Sessao{}, fmt.Errorf("sessao: redis: %w", err)
	}

	var s Sessao
	if err := json.Unmarshal(data, &s); err != nil {
		return Sessao{}, fmt.Errorf("sessao: decodificando: %w", err)
	}
	return s, nil
}

// Delete descarta a sessão.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, redisKey(id)).Err()
}
