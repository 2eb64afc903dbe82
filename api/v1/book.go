package v1

import (
	"net/http"

	"github.com/acuna/shelfwise/config"
	"github.com/acuna/shelfwise/http/request"
	"github.com/acuna/shelfwise/http/response"
	"github.com/acuna/shelfwise/log"
	"github.com/acuna/shelfwise/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// searchBooks resolves a title/author against the catalog. Local matches are
// served directly; a local miss imports candidates from the external source
// before answering. Misses everywhere read as not found.
func (h *Handler) searchBooks(w http.ResponseWriter, r *http.Request) {
	title := request.QueryStringParam(r, "title", "")
	if title == "" {
		response.BadRequest(w, r, errors.New("title is required"))
		return
	}
	author := request.QueryStringParam(r, "author", "")
	maxResults := request.QueryIntParam(r, "max_results", config.Opts.CatalogMaxResults)

	books, err := h.reconciler.ResolveAll(r.Context(), title, author, maxResults)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			response.NotFound(w, r)
			return
		}
		log.Error("Failed to resolve books", zap.String("title", title), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, books)
}
