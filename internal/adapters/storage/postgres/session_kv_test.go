package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
)

// Requiere un Postgres real: DB_DSN=postgres://... go test ./...
func TestSessionRepo_Postgres(t *testing.T) {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		t.Skip("DB_DSN not set")
	}
	ctx := context.Background()

	db, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	repo, err := NewSessionRepo(ctx, db, "test-"+uuid.NewString())
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	defer repo.Close()
	defer repo.Clear(ctx)

	if err := repo.SetMany(ctx, map[string]string{"token": "abc", "user_id": "7"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := repo.SetMany(ctx, map[string]string{"token": "def"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if v, ok, err := repo.Get(ctx, "token"); err != nil || !ok || v != "def" {
		t.Fatalf("get token: %q %v %v", v, ok, err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, "user_id"); ok {
		t.Fatalf("user_id must be gone after clear")
	}
}
