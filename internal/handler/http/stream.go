package http

import (
	"encoding/json"
	"net/http"

	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/utils"
	"github.com/PatrikBaldon/RegiFarm-sub002/models"
)

const ndjsonContentType = "application/x-ndjson"

// streamPull serves a bootstrap pull as newline-delimited JSON chunks,
// flushed as they are produced so the client can apply them while the
// transfer runs.
//
// A clean stream ends with a marker chunk carrying done=true and the
// snapshot watermark. When the snapshot fails mid-stream the connection is
// cut without the marker; its absence is the client's signal to discard
// everything received so far.
func (h *Handler) streamPull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	farmID, found := utils.GetFarmIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.streamPull").Msg("no farm ID in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Error().Str("func", "*Handler.streamPull").Msg("response writer does not support streaming")
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	encoder := json.NewEncoder(w)

	var headerSent bool
	watermark, err := h.services.SyncService.StreamPull(ctx, farmID, func(chunk models.SyncChunk) error {
		if !headerSent {
			w.Header().Set("Content-Type", ndjsonContentType)
			w.WriteHeader(http.StatusOK)
			headerSent = true
		}

		if err := encoder.Encode(chunk); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*Handler.streamPull").Msg("stream pull aborted")

		// Nothing sent yet: answer with a proper status. Otherwise the
		// stream just ends without the done marker.
		if !headerSent {
			http.Error(w, "error streaming pull", statusFromError(err))
		}
		return
	}

	if !headerSent {
		w.Header().Set("Content-Type", ndjsonContentType)
		w.WriteHeader(http.StatusOK)
	}

	if err := encoder.Encode(models.SyncChunk{Done: true, Watermark: &watermark}); err != nil {
		log.Err(err).Str("func", "*Handler.streamPull").Msg("failed to write stream end marker")
		return
	}
	flusher.Flush()
}
