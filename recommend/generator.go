// Package recommend turns a user's rated shelf into AI-suggested titles and
// persists them as recommendation batches.
package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/acuna/shelfwise/log"
	"github.com/acuna/shelfwise/model"
	"go.uber.org/zap"
)

const (
	// tasteSignalRating is the cutoff below which a shelf entry says nothing
	// useful about the user's taste.
	tasteSignalRating = 4.0
	// suggestionCap bounds how many titles one generation run asks for.
	suggestionCap = 3
)

// Generator builds a prompt from a rated shelf, runs it through an
// ollama-compatible chat endpoint and parses the reply. Model output is
// untrusted text; anything unparseable comes back as zero suggestions, never
// as an error.
type Generator struct {
	endpoint string
	model    string
	client   *http.Client
}

func NewGenerator(endpoint, modelName string) *Generator {
	return &Generator{
		endpoint: endpoint,
		model:    modelName,
		// Generation can take a while on small hardware, the request context
		// is the only deadline here.
		client: &http.Client{},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  chatOptions   `json:"options"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// Generate proposes up to three titles based on the user's highly rated
// books. An empty or low-rated shelf still generates, the model just has
// nothing to go on.
func (g *Generator) Generate(ctx context.Context, shelf []*model.ShelfBook) ([]model.Suggestion, error) {
	prompt := buildPrompt(shelf)

	body, err := json.Marshal(chatRequest{
		Model:    g.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
		Options: chatOptions{
			// Moderate creativity, capped output length so the model does
			// not ramble past the JSON.
			Temperature: 0.7,
			TopP:        0.9,
			NumPredict:  500,
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		log.Warn("Chat request failed", zap.Error(err))
		return []model.Suggestion{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("Chat request returned non-OK status", zap.Int("status_code", resp.StatusCode))
		return []model.Suggestion{}, nil
	}

	var reply chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		log.Warn("Failed to decode chat response", zap.Error(err))
		return []model.Suggestion{}, nil
	}

	suggestions := ParseSuggestions(reply.Message.Content)
	if len(suggestions) > suggestionCap {
		suggestions = suggestions[:suggestionCap]
	}
	return suggestions, nil
}

// ParseSuggestions extracts the first top-level bracketed array from
// free-form model output and parses it strictly. Absent brackets or broken
// JSON read as zero suggestions.
func ParseSuggestions(raw string) []model.Suggestion {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		log.Warn("Model output carries no bracketed array")
		return []model.Suggestion{}
	}

	var suggestions []model.Suggestion
	if err := json.Unmarshal([]byte(raw[start:end+1]), &suggestions); err != nil {
		log.Warn("Failed to parse model output", zap.Error(err))
		return []model.Suggestion{}
	}
	return suggestions
}

func buildPrompt(shelf []*model.ShelfBook) string {
	var listing strings.Builder
	for _, sb := range shelf {
		if sb.Rating < tasteSignalRating {
			continue
		}
		fmt.Fprintf(&listing, "- %s by %s. Genre: %s. My rating: %.1f/5. Notes: %s\n",
			sb.Book.Title, sb.Book.Author, sb.Book.Category, sb.Rating, sb.Notes)
	}

	return fmt.Sprintf(`<SYSTEM>
You are an expert bookseller with a photographic memory. Your goal is to recommend %d new books based on the user's library.
Strict rules:
1. Recommend books that are NOT in the provided list.
2. Be specific: if the user likes "Horror", look for similar subgenres.
3. The response format must be EXCLUSIVELY valid JSON.
</SYSTEM>

<USER_LIBRARY>
%s</USER_LIBRARY>

<FORMAT_EXAMPLE>
[
  {
    "title": "Book Name",
    "author": "Author Name",
    "reason": "Since you enjoyed 'Book X', you will love this one for its similar style in..."
  }
]
</FORMAT_EXAMPLE>

Respond strictly in JSON format:
[
  {"title": "...", "author": "...", "reason": "..."}
]
`, suggestionCap, listing.String())
}
