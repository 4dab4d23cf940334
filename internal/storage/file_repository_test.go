package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
)

func TestFileRepositoryRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	repo, err := NewFileRepository(fs, "/data")
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	ctx := context.Background()

	if _, ok, err := repo.Load(ctx, "notes"); ok || err != nil {
		t.Fatalf("expected absent, ok=%v err=%v", ok, err)
	}
	if err := repo.Save(ctx, "notes", []byte(`["a"]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := repo.Load(ctx, "notes")
	if err != nil || !ok || string(got) != `["a"]` {
		t.Fatalf("unexpected load: %q ok=%v err=%v", got, ok, err)
	}
	if exists, _ := afero.Exists(fs, "/data/notes.json.tmp"); exists {
		t.Fatal("temp file left behind")
	}

	if err := repo.Delete(ctx, "notes"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "notes"); err != nil {
		t.Fatalf("deleting an absent key should be a no-op: %v", err)
	}
	if err := repo.Save(ctx, "Bad Key", nil); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestFileRepositorySaveFailsOnReadOnlyFs(t *testing.T) {
	base := afero.NewMemMapFs()
	_ = base.MkdirAll("/data", 0o755)
	repo := &FileRepository{fs: afero.NewReadOnlyFs(base), dir: "/data"}
	if err := repo.Save(context.Background(), "tasks", []byte("[]")); err == nil {
		t.Fatal("expected write error on read-only fs")
	}
}
