package v1

import (
	"encoding/json"
	"net/http"

	"github.com/acuna/shelfwise/http/request"
	"github.com/acuna/shelfwise/http/response"
	"github.com/acuna/shelfwise/log"
	"github.com/acuna/shelfwise/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// shelfBookResponse flattens a joined entry the way the dashboard consumes
// it, with the derived progress percentage baked in.
type shelfBookResponse struct {
	*model.ShelfBook
	Progress float64 `json:"progress"`
}

func shelfResponse(list []*model.ShelfBook) []*shelfBookResponse {
	out := make([]*shelfBookResponse, 0, len(list))
	for _, sb := range list {
		out = append(out, &shelfBookResponse{ShelfBook: sb, Progress: sb.Progress()})
	}
	return out
}

func (h *Handler) listShelf(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)

	list, err := h.store.ListShelfBooks(userID)
	if err != nil {
		log.Error("Failed to list shelf", zap.Int32("user_id", userID), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, shelfResponse(list))
}

type addToShelfRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// addToShelf resolves one book (importing it on a local miss) and links it
// to the caller's shelf. A book already on the shelf is a conflict.
func (h *Handler) addToShelf(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)

	var body addToShelfRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}
	if body.Title == "" {
		response.BadRequest(w, r, errors.New("title is required"))
		return
	}

	book, err := h.reconciler.Resolve(r.Context(), body.Title, body.Author)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			response.NotFound(w, r)
			return
		}
		log.Error("Failed to resolve book", zap.String("title", body.Title), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	entry, err := h.store.CreateShelfEntry(&model.ShelfEntry{
		UserID: userID,
		BookID: book.ID,
		Status: model.StatusPending,
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateShelfEntry) {
			response.Conflict(w, r, err)
			return
		}
		log.Error("Failed to create shelf entry", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.Created(w, r, map[string]interface{}{
		"entry": entry,
		"book":  book,
	})
}

// updateShelfEntry patches the caller's entry for a book. Only supplied
// fields change.
func (h *Handler) updateShelfEntry(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)
	bookID := request.RouteIntParam(r, "bookID")

	var update model.ShelfEntryUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}
	if v := update.CurrentPage; v != nil && *v < 0 {
		response.BadRequest(w, r, errors.New("current_page must not be negative"))
		return
	}
	if v := update.Rating; v != nil && (*v < 0 || *v > 5) {
		response.BadRequest(w, r, errors.New("rating must be between 0 and 5"))
		return
	}

	entry, err := h.store.UpdateShelfEntry(userID, bookID, &update)
	if err != nil {
		if errors.Is(err, model.ErrShelfEntryNotFound) {
			response.NotFound(w, r)
			return
		}
		log.Error("Failed to update shelf entry", zap.Int("book_id", bookID), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, entry)
}

func (h *Handler) removeFromShelf(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)
	bookID := request.RouteIntParam(r, "bookID")

	if err := h.store.DeleteShelfEntry(userID, bookID); err != nil {
		if errors.Is(err, model.ErrShelfEntryNotFound) {
			response.NotFound(w, r)
			return
		}
		log.Error("Failed to delete shelf entry", zap.Int("book_id", bookID), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.NoContent(w, r)
}
