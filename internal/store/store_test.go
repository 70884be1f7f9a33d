package store

import (
	"context"
	"path/filepath"
	"testing"
)

func TestSQLiteRepo(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer s.Close()

	repo := s.Repo()

	// Missing key reads as (nil, nil).
	data, err := repo.Get(ctx, "u1", "c1", "position")
	if err != nil || data != nil {
		t.Errorf("Get(missing) = (%v, %v), want (nil, nil)", data, err)
	}

	if err := repo.Set(ctx, "u1", "c1", "position", []byte(`{"moduleIndex":1}`)); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	data, err = repo.Get(ctx, "u1", "c1", "position")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(data) != `{"moduleIndex":1}` {
		t.Errorf("Get() = %s", data)
	}

	// Upsert replaces.
	if err := repo.Set(ctx, "u1", "c1", "position", []byte(`{"moduleIndex":2}`)); err != nil {
		t.Fatalf("Set() upsert error: %v", err)
	}
	data, _ = repo.Get(ctx, "u1", "c1", "position")
	if string(data) != `{"moduleIndex":2}` {
		t.Errorf("Get() after upsert = %s", data)
	}

	// Scoping: a different user or namespace sees nothing.
	if d, _ := repo.Get(ctx, "u2", "c1", "position"); d != nil {
		t.Error("record leaked across users")
	}
	if d, _ := repo.Get(ctx, "u1", "c1", "progress"); d != nil {
		t.Error("record leaked across namespaces")
	}

	if err := repo.Delete(ctx, "u1", "c1", "position"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if d, _ := repo.Get(ctx, "u1", "c1", "position"); d != nil {
		t.Error("record survived Delete()")
	}
}
