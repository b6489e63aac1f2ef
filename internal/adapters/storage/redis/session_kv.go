package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"vet-booking-client/internal/session"
)

const DefaultKey = "vetapp:session"

type Options struct {
	Addr     string
	Password string
	DB       int
	// Key es el hash donde viven los campos; default DefaultKey.
	Key string
}

// kvRepo guarda la sesión en un hash de Redis. SetMany va en MULTI/EXEC.
type kvRepo struct {
	client *goredis.Client
	key    string
}

// Open conecta y hace ping con timeout corto; falla si Redis no responde.
func Open(ctx context.Context, opts Options) (session.Backend, error) {
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		addr = "localhost:6379"
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis session backend: ping %s: %w", addr, err)
	}
	return NewSessionBackend(client, opts.Key), nil
}

// NewSessionBackend usa un cliente ya construido.
func NewSessionBackend(client *goredis.Client, key string) session.Backend {
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	return &kvRepo{client: client, key: key}
}

func (r *kvRepo) Get(ctx context.Context, field string) (string, bool, error) {
	v, err := r.client.HGet(ctx, r.key, field).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *kvRepo) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	args := make([]any, 0, len(values)*2)
	for k, v := range values {
		args = append(args, k, v)
	}
	_, err := r.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.HSet(ctx, r.key, args...)
		return nil
	})
	return err
}

func (r *kvRepo) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key).Err()
}

func (r *kvRepo) Close() error {
	return r.client.Close()
}
