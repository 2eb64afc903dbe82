package v1

import (
	"net/http"

	"github.com/acuna/shelfwise/http/request"
	"github.com/acuna/shelfwise/http/response"
	"github.com/acuna/shelfwise/log"
	"github.com/acuna/shelfwise/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// generateRecommendations runs the workflow right now for the caller.
// A user with nothing on the shelf has nothing to recommend from.
func (h *Handler) generateRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)

	batch, err := h.workflow.RunForUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrEmptyShelf) {
			response.BadRequest(w, r, err)
			return
		}
		log.Error("Failed to generate recommendations", zap.Int32("user_id", userID), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.Created(w, r, batch)
}

func (h *Handler) listLatestRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)

	list, err := h.store.ListRecommendations(&model.FindRecommendation{
		UserID:      &userID,
		LatestBatch: true,
	})
	if err != nil {
		log.Error("Failed to list latest recommendations", zap.Int32("user_id", userID), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, list)
}

func (h *Handler) listRecommendationHistory(w http.ResponseWriter, r *http.Request) {
	userID := request.UserID(r)

	list, err := h.store.ListRecommendations(&model.FindRecommendation{UserID: &userID})
	if err != nil {
		log.Error("Failed to list recommendation history", zap.Int32("user_id", userID), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, list)
}
