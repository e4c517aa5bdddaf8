package store

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/starford/quicknote/internal/apperr"
	"github.com/starford/quicknote/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "quicknote-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM notes`).Scan(&count); err != nil {
		t.Fatalf("notes table missing: %v", err)
	}
}

func TestOpenTwiceKeepsData(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	if _, err := db.Insert(ctx, models.Note{Text: "persist", ModifiedAt: 1}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	again, err := Open(db.Path())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()
	all, err := again.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 1 || all[0].Text != "persist" {
		t.Errorf("reopened notes = %+v", all)
	}
}

func TestInsertAndGetByID(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	n, err := db.Insert(ctx, models.Note{Text: "hello", ModifiedAt: 1700000000000})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if n.ID == 0 {
		t.Fatal("expected assigned id")
	}
	got, err := db.GetByID(ctx, n.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Text != "hello" || got.ModifiedAt != 1700000000000 {
		t.Errorf("got %+v", got)
	}
}

func TestInsertAssignsUniqueIDs(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		n, err := db.Insert(ctx, models.Note{Text: "n", ModifiedAt: int64(i)})
		if err != nil {
			t.Fatalf("Insert: %v", err)
		}
		if seen[n.ID] {
			t.Fatalf("duplicate id %d", n.ID)
		}
		seen[n.ID] = true
	}
}

func TestInsertWithIDReplaces(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	n, _ := db.Insert(ctx, models.Note{Text: "first", ModifiedAt: 1})
	n.Text = "replaced"
	if _, err := db.Insert(ctx, n); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	all, _ := db.GetAll(ctx)
	if len(all) != 1 || all[0].Text != "replaced" {
		t.Errorf("notes = %+v, want one replaced row", all)
	}
}

func TestUpdate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	n, _ := db.Insert(ctx, models.Note{Text: "old", ModifiedAt: 1})

	n.Text = "new"
	n.ModifiedAt = 2
	if err := db.Update(ctx, n); err != nil {
		t.Fatalf("Update: %v", err)
	}
	all, _ := db.GetAll(ctx)
	if len(all) != 1 {
		t.Fatalf("len = %d, want 1", len(all))
	}
	if all[0].ID != n.ID || all[0].Text != "new" || all[0].ModifiedAt != 2 {
		t.Errorf("after update = %+v", all[0])
	}
}

func TestUpdate_NotFound(t *testing.T) {
	db := testDB(t)
	err := db.Update(context.Background(), models.Note{ID: 42, Text: "x"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	n, _ := db.Insert(ctx, models.Note{Text: "bye", ModifiedAt: 1})

	if err := db.Delete(ctx, n.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := db.Delete(ctx, n.ID); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	all, _ := db.GetAll(ctx)
	if len(all) != 0 {
		t.Errorf("expected empty store, got %+v", all)
	}
}

func TestDeleteMany(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	a, _ := db.Insert(ctx, models.Note{Text: "a", ModifiedAt: 1})
	b, _ := db.Insert(ctx, models.Note{Text: "b", ModifiedAt: 1})
	c, _ := db.Insert(ctx, models.Note{Text: "c", ModifiedAt: 1})

	if err := db.Delete(ctx, a.ID, c.ID, 999); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	all, _ := db.GetAll(ctx)
	if len(all) != 1 || all[0].ID != b.ID {
		t.Errorf("remaining = %+v, want only %d", all, b.ID)
	}
	if err := db.Delete(ctx); err != nil {
		t.Errorf("empty Delete: %v", err)
	}
}

func TestGetAllInsertionOrder(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	for _, text := range []string{"one", "two", "three"} {
		_, _ = db.Insert(ctx, models.Note{Text: text, ModifiedAt: 1})
	}
	all, err := db.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	want := []string{"one", "two", "three"}
	for i, n := range all {
		if n.Text != want[i] {
			t.Errorf("all[%d] = %q, want %q", i, n.Text, want[i])
		}
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := testDB(t)
	_, err := db.GetByID(context.Background(), 7)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
