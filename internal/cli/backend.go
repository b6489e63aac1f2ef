package cli

import (
	"context"
	"fmt"

	"vet-booking-client/internal/adapters/storage/file"
	"vet-booking-client/internal/adapters/storage/memory"
	pg "vet-booking-client/internal/adapters/storage/postgres"
	rd "vet-booking-client/internal/adapters/storage/redis"
	"vet-booking-client/internal/platform/config"
	"vet-booking-client/internal/session"
)

// OpenSessionBackend elige el almacén de sesión según la configuración.
func OpenSessionBackend(ctx context.Context, cfg config.SessionConfig) (session.Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.NewSessionBackend(), nil

	case config.BackendRedis:
		key := cfg.RedisKey
		if key == "" {
			key = "vetapp:session:" + cfg.Namespace
		}
		return rd.Open(ctx, rd.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Key:      key,
		})

	case config.BackendPostgres:
		db, err := pg.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		repo, err := pg.NewSessionRepo(ctx, db, cfg.Namespace)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return repo, nil

	case config.BackendFile, "":
		path := cfg.FilePath
		if path == "" {
			path = file.DefaultPath()
		}
		return file.NewSessionBackend(path)

	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Backend)
	}
}
