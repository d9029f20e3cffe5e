package http

import (
	"encoding/json"
	"net/http"

	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/utils"
	"github.com/PatrikBaldon/RegiFarm-sub002/models"
)

// fullPull returns the complete live record set of the authenticated farm,
// read under one snapshot, together with the seed watermark.
func (h *Handler) fullPull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	farmID, found := utils.GetFarmIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.fullPull").Msg("no farm ID in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	response, err := h.services.SyncService.FullPull(ctx, farmID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.fullPull").Msg("error assembling full pull")
		http.Error(w, "error assembling full pull", statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

// incrementalPull returns per-entity deltas past the watermarks submitted in
// the request body.
func (h *Handler) incrementalPull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	farmID, found := utils.GetFarmIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.incrementalPull").Msg("no farm ID in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.IncrementalPullRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.incrementalPull").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.SyncService.IncrementalPull(ctx, farmID, request)
	if err != nil {
		log.Err(err).Str("func", "*Handler.incrementalPull").Msg("error planning incremental pull")
		http.Error(w, "error planning incremental pull", statusFromError(err))
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
