package memory

import (
	"context"
	"sync"

	"vet-booking-client/internal/session"
)

// kvRepo es un session.Backend en memoria (tests y modo dev, no sobrevive reinicios).
type kvRepo struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewSessionBackend() session.Backend {
	return &kvRepo{values: make(map[string]string)}
}

func (r *kvRepo) Get(ctx context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.values[key]
	return v, ok, nil
}

func (r *kvRepo) SetMany(ctx context.Context, values map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, v := range values {
		r.values[k] = v
	}
	return nil
}

func (r *kvRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values = make(map[string]string)
	return nil
}

func (r *kvRepo) Close() error { return nil }
