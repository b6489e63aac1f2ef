package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"vet-booking-client/internal/session"
)

// kvRepo guarda la sesión como un documento JSON. Cada escritura va a un
// archivo temporal en el mismo directorio y se renombra encima del original,
// así un lector nunca ve un documento a medio escribir.
type kvRepo struct {
	mu   sync.Mutex
	path string
}

func NewSessionBackend(path string) (session.Backend, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("file session backend: path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("file session backend: mkdir: %w", err)
	}
	return &kvRepo{path: path}, nil
}

// DefaultPath es ~/.config/vetapp/session.json (o el equivalente del SO).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "vetapp", "session.json")
}

func (r *kvRepo) Get(ctx context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	values, err := r.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (r *kvRepo) SetMany(ctx context.Context, values map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, err := r.read()
	if err != nil {
		return err
	}
	for k, v := range values {
		cur[k] = v
	}
	return r.write(cur)
}

func (r *kvRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := os.Remove(r.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file session backend: remove: %w", err)
	}
	return nil
}

func (r *kvRepo) Close() error { return nil }

func (r *kvRepo) read() (map[string]string, error) {
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file session backend: read: %w", err)
	}

	values := map[string]string{}
	if len(raw) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("file session backend: decode: %w", err)
	}
	return values, nil
}

func (r *kvRepo) write(values map[string]string) error {
	b, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("file session backend: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("file session backend: temp: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op tras el rename

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("file session backend: chmod: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("file session backend: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("file session backend: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file session backend: close: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("file session backend: rename: %w", err)
	}
	return nil
}
