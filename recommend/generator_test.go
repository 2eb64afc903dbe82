package recommend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/acuna/shelfwise/config"
	"github.com/acuna/shelfwise/log"
	"github.com/acuna/shelfwise/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	config.Opts = config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

func TestParseSuggestions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []model.Suggestion
	}{
		{
			name: "plain array",
			raw:  `[{"title": "Hyperion", "author": "Dan Simmons", "reason": "space opera"}]`,
			want: []model.Suggestion{{Title: "Hyperion", Author: "Dan Simmons", Reason: "space opera"}},
		},
		{
			name: "array wrapped in chatter",
			raw: "Sure! Here are my picks:\n```json\n" +
				`[{"title": "Hyperion", "author": "Dan Simmons", "reason": "space opera"}]` +
				"\n```\nEnjoy your reading]",
			want: []model.Suggestion{},
		},
		{
			name: "markdown fences without trailing bracket noise",
			raw: "Here you go:\n" +
				`[{"title": "Hyperion", "author": "Dan Simmons", "reason": "space opera"}]`,
			want: []model.Suggestion{{Title: "Hyperion", Author: "Dan Simmons", Reason: "space opera"}},
		},
		{
			name: "no brackets at all",
			raw:  "I cannot produce recommendations right now.",
			want: []model.Suggestion{},
		},
		{
			name: "broken json inside brackets",
			raw:  `[{"title": "Hyperion", }]`,
			want: []model.Suggestion{},
		},
		{
			name: "closing bracket before opening",
			raw:  `] nonsense [`,
			want: []model.Suggestion{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSuggestions(tt.raw))
		})
	}
}

func TestGenerateFiltersPromptByRating(t *testing.T) {
	var prompt string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.False(t, req.Stream)
		require.Len(t, req.Messages, 1)
		prompt = req.Messages[0].Content

		json.NewEncoder(w).Encode(chatResponse{Message: chatMessage{
			Role:    "assistant",
			Content: `[{"title": "Hyperion", "author": "Dan Simmons", "reason": "space opera"}]`,
		}})
	}))
	defer ts.Close()

	g := NewGenerator(ts.URL, "test-model")
	shelf := []*model.ShelfBook{
		{ShelfEntry: model.ShelfEntry{Rating: 5}, Book: &model.Book{Title: "Dune", Author: "Frank Herbert", Category: "Science Fiction"}},
		{ShelfEntry: model.ShelfEntry{Rating: 2}, Book: &model.Book{Title: "Meh", Author: "Nobody", Category: "General"}},
	}

	suggestions, err := g.Generate(context.Background(), shelf)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Hyperion", suggestions[0].Title)

	// Only highly rated books feed the taste profile.
	assert.Contains(t, prompt, "Dune")
	assert.NotContains(t, prompt, "Meh")
}

func TestGenerateCapsSuggestionCount(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatResponse{Message: chatMessage{
			Content: `[
				{"title": "A", "author": "a", "reason": "r"},
				{"title": "B", "author": "b", "reason": "r"},
				{"title": "C", "author": "c", "reason": "r"},
				{"title": "D", "author": "d", "reason": "r"}
			]`,
		}})
	}))
	defer ts.Close()

	g := NewGenerator(ts.URL, "test-model")
	suggestions, err := g.Generate(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, suggestions, suggestionCap)
}

func TestGenerateDegradesToEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model loading", http.StatusInternalServerError)
	}))
	g := NewGenerator(ts.URL, "test-model")

	suggestions, err := g.Generate(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, suggestions)

	// Unreachable endpoint behaves the same way.
	ts.Close()
	suggestions, err = g.Generate(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}
