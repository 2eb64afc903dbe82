package catalog

import (
	"context"

	"github.com/acuna/shelfwise/log"
	"github.com/acuna/shelfwise/model"
	"github.com/acuna/shelfwise/store"
	"go.uber.org/zap"
)

// Reconciler produces canonical catalog records: local store first, external
// search on a miss, with every imported record de-duplicated on its
// identifier by the store's upsert.
type Reconciler struct {
	store  *store.Store
	client *Client
}

func NewReconciler(store *store.Store, client *Client) *Reconciler {
	return &Reconciler{store: store, client: client}
}

// Resolve returns the canonical record for a (title, author) pair.
// A local hit never touches the external source.
func (r *Reconciler) Resolve(ctx context.Context, title, author string) (*model.Book, error) {
	local, err := r.store.SearchBooks(title, author, 1)
	if err != nil {
		return nil, err
	}
	if len(local) > 0 {
		return local[0], nil
	}

	results := r.client.Search(ctx, title, author, 1)
	if len(results) == 0 {
		return nil, model.ErrBookNotFound
	}

	book, err := r.store.UpsertBook(results[0])
	if err != nil {
		return nil, err
	}
	log.Debug("Imported catalog record",
		zap.String("title", book.Title),
		zap.String("isbn", book.ISBN))
	return book, nil
}

// ResolveAll is the multi-import variant behind the search endpoint: local
// hits are returned as-is, a miss imports up to max external candidates.
func (r *Reconciler) ResolveAll(ctx context.Context, title, author string, max int) ([]*model.Book, error) {
	local, err := r.store.SearchBooks(title, author, 0)
	if err != nil {
		return nil, err
	}
	if len(local) > 0 {
		return local, nil
	}

	results := r.client.Search(ctx, title, author, max)
	if len(results) == 0 {
		return nil, model.ErrBookNotFound
	}

	books := make([]*model.Book, 0, len(results))
	for _, result := range results {
		book, err := r.store.UpsertBook(result)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}
