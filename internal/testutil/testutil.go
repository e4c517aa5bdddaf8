// Package testutil provides shared test helpers for setting up note databases.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/starford/quicknote/internal/models"
	"github.com/starford/quicknote/internal/store"
)

// TestDB creates a temporary SQLite note store that is automatically cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "quicknote-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() {
		for _, suffix := range []string{"", "-wal", "-shm"} {
			os.Remove(dbFile.Name() + suffix)
		}
	})

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// Seed inserts one note per text with increasing timestamps and returns them.
func Seed(t *testing.T, db store.Store, texts ...string) []models.Note {
	t.Helper()
	out := make([]models.Note, 0, len(texts))
	for i, text := range texts {
		n, err := db.Insert(context.Background(), models.Note{Text: text, ModifiedAt: int64(1700000000000 + i*1000)})
		if err != nil {
			t.Fatalf("seed %q: %v", text, err)
		}
		out = append(out, n)
	}
	return out
}
