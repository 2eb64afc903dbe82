package store

import (
	"testing"

	"github.com/acuna/shelfwise/model"
	"github.com/pkg/errors"
)

func TestCreateShelfEntryDuplicate(t *testing.T) {
	s := newTestStore(t)

	user := createTestUser(t, s, "reader")
	other := createTestUser(t, s, "otherreader")
	book, err := s.UpsertBook(&model.Book{ISBN: "9780441013593", Title: "Dune"})
	if err != nil {
		t.Fatalf("Failed to upsert book: %v", err)
	}

	if _, err := s.CreateShelfEntry(&model.ShelfEntry{UserID: user.ID, BookID: book.ID, Status: model.StatusPending}); err != nil {
		t.Fatalf("Failed to create shelf entry: %v", err)
	}

	// Same user, same book: conflict, not a merge.
	_, err = s.CreateShelfEntry(&model.ShelfEntry{UserID: user.ID, BookID: book.ID, Status: model.StatusPending})
	if !errors.Is(err, model.ErrDuplicateShelfEntry) {
		t.Fatalf("Expected duplicate shelf entry error, got %v", err)
	}

	// A different user tracks the same book independently.
	if _, err := s.CreateShelfEntry(&model.ShelfEntry{UserID: other.ID, BookID: book.ID, Status: model.StatusPending}); err != nil {
		t.Fatalf("Expected other user's entry to succeed, got %v", err)
	}
}

func TestUpdateShelfEntryPartial(t *testing.T) {
	s := newTestStore(t)

	user := createTestUser(t, s, "reader")
	book, err := s.UpsertBook(&model.Book{ISBN: "9780441013593", Title: "Dune"})
	if err != nil {
		t.Fatalf("Failed to upsert book: %v", err)
	}
	if _, err := s.CreateShelfEntry(&model.ShelfEntry{
		UserID:      user.ID,
		BookID:      book.ID,
		Status:      model.StatusReading,
		CurrentPage: 120,
		Notes:       "slow start",
		Tags:        "scifi",
	}); err != nil {
		t.Fatalf("Failed to create shelf entry: %v", err)
	}

	// Only the rating is supplied, everything else must stay untouched.
	rating := 4.5
	updated, err := s.UpdateShelfEntry(user.ID, book.ID, &model.ShelfEntryUpdate{Rating: &rating})
	if err != nil {
		t.Fatalf("Failed to update shelf entry: %v", err)
	}
	if updated.Rating != 4.5 {
		t.Fatalf("Expected rating 4.5, got %f", updated.Rating)
	}
	if updated.Status != model.StatusReading || updated.CurrentPage != 120 || updated.Notes != "slow start" || updated.Tags != "scifi" {
		t.Fatalf("Expected untouched fields to survive the patch: %+v", updated)
	}
}

func TestUpdateShelfEntryNotFound(t *testing.T) {
	s := newTestStore(t)

	user := createTestUser(t, s, "reader")
	status := model.StatusFinished
	_, err := s.UpdateShelfEntry(user.ID, 9999, &model.ShelfEntryUpdate{Status: &status})
	if !errors.Is(err, model.ErrShelfEntryNotFound) {
		t.Fatalf("Expected not found error, got %v", err)
	}
}

func TestDeleteShelfEntry(t *testing.T) {
	s := newTestStore(t)

	user := createTestUser(t, s, "reader")
	book, err := s.UpsertBook(&model.Book{ISBN: "9780441013593", Title: "Dune"})
	if err != nil {
		t.Fatalf("Failed to upsert book: %v", err)
	}
	if _, err := s.CreateShelfEntry(&model.ShelfEntry{UserID: user.ID, BookID: book.ID, Status: model.StatusPending}); err != nil {
		t.Fatalf("Failed to create shelf entry: %v", err)
	}

	if err := s.DeleteShelfEntry(user.ID, book.ID); err != nil {
		t.Fatalf("Failed to delete shelf entry: %v", err)
	}
	if err := s.DeleteShelfEntry(user.ID, book.ID); !errors.Is(err, model.ErrShelfEntryNotFound) {
		t.Fatalf("Expected not found on second delete, got %v", err)
	}
}

func TestListShelfBooksJoin(t *testing.T) {
	s := newTestStore(t)

	user := createTestUser(t, s, "reader")
	book, err := s.UpsertBook(&model.Book{ISBN: "9780441013593", Title: "Dune", PageCount: 200})
	if err != nil {
		t.Fatalf("Failed to upsert book: %v", err)
	}
	if _, err := s.CreateShelfEntry(&model.ShelfEntry{
		UserID:      user.ID,
		BookID:      book.ID,
		Status:      model.StatusReading,
		CurrentPage: 50,
	}); err != nil {
		t.Fatalf("Failed to create shelf entry: %v", err)
	}

	shelf, err := s.ListShelfBooks(user.ID)
	if err != nil {
		t.Fatalf("Failed to list shelf books: %v", err)
	}
	if len(shelf) != 1 {
		t.Fatalf("Expected one shelf book, got %d", len(shelf))
	}
	if shelf[0].Book == nil || shelf[0].Book.Title != "Dune" {
		t.Fatalf("Expected joined catalog record")
	}
	if got := shelf[0].Progress(); got != 25.0 {
		t.Fatalf("Expected progress 25.0, got %f", got)
	}
}
