package recommend

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/acuna/shelfwise/catalog"
	"github.com/acuna/shelfwise/database"
	"github.com/acuna/shelfwise/model"
	"github.com/acuna/shelfwise/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	filename := filepath.Join(t.TempDir(), "recommend_test.db")
	db, err := sql.Open("sqlite", filename+"?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.Migrate(context.Background(), db))
	return store.NewStore(db)
}

func seedReader(t *testing.T, s *store.Store) *model.User {
	t.Helper()

	user, err := s.CreateUser(&model.User{
		Username:     "reader",
		Email:        "reader@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         model.RoleUser,
	})
	require.NoError(t, err)
	return user
}

func seedShelfBook(t *testing.T, s *store.Store, userID int32, isbn, title string, rating float64) {
	t.Helper()

	book, err := s.UpsertBook(&model.Book{ISBN: isbn, Title: title, Author: "Frank Herbert"})
	require.NoError(t, err)
	_, err = s.CreateShelfEntry(&model.ShelfEntry{
		UserID: userID,
		BookID: book.ID,
		Status: model.StatusFinished,
		Rating: rating,
	})
	require.NoError(t, err)
}

// newTestWorkflow wires a workflow against fake chat and volumes endpoints.
func newTestWorkflow(t *testing.T, s *store.Store, chatContent, volumesBody string) *Workflow {
	t.Helper()

	chat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{Message: chatMessage{Content: chatContent}})
	}))
	t.Cleanup(chat.Close)

	volumes := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(volumesBody))
	}))
	t.Cleanup(volumes.Close)

	generator := NewGenerator(chat.URL, "test-model")
	reconciler := catalog.NewReconciler(s, catalog.NewClient(volumes.URL, "en", 5*time.Second))
	return NewWorkflow(s, generator, reconciler)
}

func TestRunForUserEmptyShelf(t *testing.T) {
	s := newTestStore(t)
	user := seedReader(t, s)
	w := newTestWorkflow(t, s, `[]`, `{}`)

	_, err := w.RunForUser(context.Background(), user.ID)
	assert.ErrorIs(t, err, model.ErrEmptyShelf)
}

func TestRunForUserPersistsEnrichedBatch(t *testing.T) {
	s := newTestStore(t)
	user := seedReader(t, s)
	seedShelfBook(t, s, user.ID, "9780000000001", "Dune", 5)

	w := newTestWorkflow(t, s,
		`[{"title": "Hyperion", "author": "Dan Simmons", "reason": "space opera"},
		  {"title": "Ilium", "author": "Dan Simmons", "reason": "more Simmons"}]`,
		`{"items":[{"volumeInfo":{
			"title": "Hyperion",
			"authors": ["Dan Simmons"],
			"imageLinks": {"thumbnail": "http://img.example/h.jpg"},
			"infoLink": "http://info.example/h",
			"industryIdentifiers": [{"type": "ISBN_13", "identifier": "9780553283686"}]
		}}]}`)

	batch, err := w.RunForUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, batch, 2)

	// One shared timestamp for the whole run.
	assert.Equal(t, batch[0].CreatedTs, batch[1].CreatedTs)
	for _, rec := range batch {
		assert.Equal(t, user.ID, rec.UserID)
		assert.Equal(t, "http://img.example/h.jpg", rec.ImageURL)
		assert.Equal(t, "http://info.example/h", rec.ExternalLink)
	}

	stored, err := s.ListRecommendations(&model.FindRecommendation{UserID: &user.ID, LatestBatch: true})
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestRunForUserKeepsUnresolvableSuggestions(t *testing.T) {
	s := newTestStore(t)
	user := seedReader(t, s)
	seedShelfBook(t, s, user.ID, "9780000000001", "Dune", 5)

	w := newTestWorkflow(t, s,
		`[{"title": "Obscure Zine", "author": "Anon", "reason": "offbeat pick"}]`,
		`{}`)

	batch, err := w.RunForUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, "Obscure Zine", batch[0].Title)
	assert.Empty(t, batch[0].ImageURL)
	assert.Empty(t, batch[0].ExternalLink)
}

func TestRunForUserGarbageModelOutput(t *testing.T) {
	s := newTestStore(t)
	user := seedReader(t, s)
	seedShelfBook(t, s, user.ID, "9780000000001", "Dune", 5)

	w := newTestWorkflow(t, s, "I have nothing for you today.", `{}`)

	batch, err := w.RunForUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, batch)
}
