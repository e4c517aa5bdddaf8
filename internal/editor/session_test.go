package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/starford/quicknote/internal/apperr"
	"github.com/starford/quicknote/internal/models"
	"github.com/starford/quicknote/internal/testutil"
)

func stepClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

var epoch = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func TestSaveNewInserts(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	s := OpenNew(db, WithClock(stepClock(epoch)))

	closed, err := s.Save(ctx, "Buy milk")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !closed {
		t.Error("editor should close after save")
	}
	if s.IsNew() {
		t.Error("session should track the inserted note")
	}
	got, err := db.GetByID(ctx, s.Note().ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Text != "Buy milk" || got.ModifiedAt != epoch.Add(time.Second).UnixMilli() {
		t.Errorf("stored %+v", got)
	}
}

func TestSaveEmptyIsNoop(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	s := OpenNew(db)

	closed, err := s.Save(ctx, "")
	if err != nil || closed {
		t.Fatalf("Save empty = (%v, %v), want (false, nil)", closed, err)
	}
	all, _ := db.GetAll(ctx)
	if len(all) != 0 {
		t.Errorf("store mutated: %+v", all)
	}
	if !s.IsNew() {
		t.Error("session should remain new")
	}
}

func TestSaveEmptyExistingIsNoop(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	n, _ := db.Insert(ctx, models.Note{Text: "keep", ModifiedAt: 5})

	s, err := OpenExisting(ctx, db, n.ID)
	if err != nil {
		t.Fatalf("OpenExisting: %v", err)
	}
	if closed, _ := s.Save(ctx, ""); closed {
		t.Error("editor must stay open on empty save")
	}
	got, _ := db.GetByID(ctx, n.ID)
	if got != n {
		t.Errorf("note changed: %+v -> %+v", n, got)
	}
}

func TestSaveExistingUpdates(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	n, _ := db.Insert(ctx, models.Note{Text: "Buy milk", ModifiedAt: epoch.UnixMilli()})

	s, err := OpenExisting(ctx, db, n.ID, WithClock(stepClock(epoch)))
	if err != nil {
		t.Fatalf("OpenExisting: %v", err)
	}
	if s.Text() != "Buy milk" {
		t.Errorf("text = %q", s.Text())
	}
	if _, err := s.Save(ctx, "Buy milk and eggs"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	all, _ := db.GetAll(ctx)
	if len(all) != 1 {
		t.Fatalf("len = %d, want 1 (no duplicate)", len(all))
	}
	if all[0].ID != n.ID || all[0].Text != "Buy milk and eggs" || all[0].ModifiedAt <= n.ModifiedAt {
		t.Errorf("after update %+v", all[0])
	}
}

func TestSecondSaveOnNewSessionUpdates(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	s := OpenNew(db, WithClock(stepClock(epoch)))
	_, _ = s.Save(ctx, "one")
	_, _ = s.Save(ctx, "two")

	all, _ := db.GetAll(ctx)
	if len(all) != 1 || all[0].Text != "two" {
		t.Errorf("notes = %+v, want single note with text two", all)
	}
}

func TestOpenExistingStaleID(t *testing.T) {
	db := testutil.TestDB(t)
	_, err := OpenExisting(context.Background(), db, 404)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveAfterConcurrentDelete(t *testing.T) {
	db := testutil.TestDB(t)
	ctx := context.Background()
	n, _ := db.Insert(ctx, models.Note{Text: "doomed", ModifiedAt: 1})
	s, _ := OpenExisting(ctx, db, n.ID)

	_ = db.Delete(ctx, n.ID)

	closed, err := s.Save(ctx, "edited")
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if closed {
		t.Error("editor must stay open on conflict")
	}
	all, _ := db.GetAll(ctx)
	if len(all) != 0 {
		t.Errorf("deleted note was resurrected: %+v", all)
	}
}
