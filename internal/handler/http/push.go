package http

import (
	"encoding/json"
	"net/http"

	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/utils"
	"github.com/PatrikBaldon/RegiFarm-sub002/models"
)

// push applies a batch of client mutations and answers one outcome per
// mutation in submission order. Per-item rejections and conflicts ride in
// the outcomes with HTTP 200; only whole-call failures map to error codes.
func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	farmID, found := utils.GetFarmIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.push").Msg("no farm ID in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.push").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	outcomes, err := h.services.PushService.Push(ctx, farmID, request.Mutations)
	if err != nil {
		log.Err(err).Str("func", "*Handler.push").Msg("error applying push batch")
		http.Error(w, "error applying push batch", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.PushResponse{Outcomes: outcomes}, http.StatusOK)
}
