package store

import (
	"testing"
	"time"

	"github.com/acuna/shelfwise/model"
)

func TestCreateRecommendationBatchSharesTimestamp(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "reader")

	batch, err := s.CreateRecommendationBatch(user.ID, []*model.Recommendation{
		{Title: "Hyperion", Author: "Dan Simmons", Reason: "epic scope"},
		{Title: "Blindsight", Author: "Peter Watts", Reason: "hard scifi"},
		{Title: "Anathem", Author: "Neal Stephenson", Reason: "big ideas"},
	})
	if err != nil {
		t.Fatalf("Failed to create batch: %v", err)
	}
	if len(batch) != 3 {
		t.Fatalf("Expected 3 recommendations, got %d", len(batch))
	}
	for _, rec := range batch {
		if rec.CreatedTs != batch[0].CreatedTs {
			t.Fatalf("Expected the whole batch to share one created_ts")
		}
	}
}

func TestListLatestRecommendations(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "reader")

	if _, err := s.CreateRecommendationBatch(user.ID, []*model.Recommendation{
		{Title: "Old Suggestion", Reason: "stale"},
	}); err != nil {
		t.Fatalf("Failed to create first batch: %v", err)
	}

	// created_ts has second granularity, the batches need distinct seconds.
	time.Sleep(1100 * time.Millisecond)

	if _, err := s.CreateRecommendationBatch(user.ID, []*model.Recommendation{
		{Title: "Fresh One", Reason: "new"},
		{Title: "Fresh Two", Reason: "new"},
	}); err != nil {
		t.Fatalf("Failed to create second batch: %v", err)
	}

	latest, err := s.ListRecommendations(&model.FindRecommendation{UserID: &user.ID, LatestBatch: true})
	if err != nil {
		t.Fatalf("Failed to list latest batch: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("Expected latest batch of 2, got %d", len(latest))
	}
	for _, rec := range latest {
		if rec.Title == "Old Suggestion" {
			t.Fatalf("Expected only the newest batch")
		}
	}

	history, err := s.ListRecommendations(&model.FindRecommendation{UserID: &user.ID})
	if err != nil {
		t.Fatalf("Failed to list history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("Expected full history of 3, got %d", len(history))
	}
	if history[0].Title == "Old Suggestion" {
		t.Fatalf("Expected history ordered newest first")
	}
}

func TestCreateRecommendationBatchAtomic(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "reader")

	// A trigger rejecting one title simulates a persistence failure midway
	// through the batch.
	if _, err := s.db.Exec(`
		CREATE TRIGGER reject_poison BEFORE INSERT ON recommendation
		WHEN NEW.title = 'poison'
		BEGIN
			SELECT RAISE(ABORT, 'poisoned row');
		END
	`); err != nil {
		t.Fatalf("Failed to create trigger: %v", err)
	}

	_, err := s.CreateRecommendationBatch(user.ID, []*model.Recommendation{
		{Title: "First", Reason: "fine"},
		{Title: "Second", Reason: "fine"},
		{Title: "poison", Reason: "fails"},
	})
	if err == nil {
		t.Fatalf("Expected the batch to fail")
	}

	list, err := s.ListRecommendations(&model.FindRecommendation{UserID: &user.ID})
	if err != nil {
		t.Fatalf("Failed to list recommendations: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("Expected zero persisted rows after rollback, got %d", len(list))
	}
}
