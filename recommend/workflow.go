package recommend

import (
	"context"

	"github.com/acuna/shelfwise/catalog"
	"github.com/acuna/shelfwise/log"
	"github.com/acuna/shelfwise/model"
	"github.com/acuna/shelfwise/store"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Workflow runs the full pipeline: shelf -> generator -> per-suggestion
// reconciliation -> one atomic batch insert.
type Workflow struct {
	store      *store.Store
	generator  *Generator
	reconciler *catalog.Reconciler
}

func NewWorkflow(store *store.Store, generator *Generator, reconciler *catalog.Reconciler) *Workflow {
	return &Workflow{store: store, generator: generator, reconciler: reconciler}
}

// RunForUser generates and persists one recommendation batch. An empty shelf
// returns ErrEmptyShelf; the interactive handler maps it to a client error,
// the scheduled loop just skips the user.
func (w *Workflow) RunForUser(ctx context.Context, userID int32) ([]*model.Recommendation, error) {
	shelf, err := w.store.ListShelfBooks(userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load shelf")
	}
	if len(shelf) == 0 {
		return nil, model.ErrEmptyShelf
	}

	suggestions, err := w.generator.Generate(ctx, shelf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate suggestions")
	}

	creates := make([]*model.Recommendation, 0, len(suggestions))
	for _, suggestion := range suggestions {
		rec := &model.Recommendation{
			UserID: userID,
			Title:  suggestion.Title,
			Author: suggestion.Author,
			Reason: suggestion.Reason,
		}

		// Enrichment is best effort. A suggestion the catalog cannot resolve
		// is still worth keeping, just without cover and link.
		book, err := w.reconciler.Resolve(ctx, suggestion.Title, suggestion.Author)
		switch {
		case err == nil:
			rec.ImageURL = book.ImageURL
			rec.ExternalLink = book.ExternalLink
		case errors.Is(err, model.ErrBookNotFound):
			log.Debug("Suggestion not resolvable, keeping without enrichment",
				zap.String("title", suggestion.Title))
		default:
			return nil, errors.Wrap(err, "failed to resolve suggestion")
		}

		creates = append(creates, rec)
	}

	batch, err := w.store.CreateRecommendationBatch(userID, creates)
	if err != nil {
		return nil, errors.Wrap(err, "failed to persist recommendation batch")
	}

	log.Info("Recommendation batch persisted",
		zap.Int32("user_id", userID),
		zap.Int("count", len(batch)))
	return batch, nil
}
