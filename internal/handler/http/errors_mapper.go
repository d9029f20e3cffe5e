package http

import (
	"errors"
	"net/http"

	"github.com/PatrikBaldon/RegiFarm-sub002/internal/catalog"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/service"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrNoMutationsProvided:     http.StatusBadRequest,

	catalog.ErrUnknownEntity: http.StatusBadRequest,

	store.ErrFarmNotFound:    http.StatusNotFound,
	store.ErrRecordNotFound:  http.StatusNotFound,
	store.ErrVersionConflict: http.StatusConflict,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// retryClassifier decides whether a store failure is worth a client retry.
var retryClassifier = store.NewPostgresErrorClassifier()

// statusFromError maps service and store errors onto HTTP status codes.
// Transient database failures come back as 503 so that clients retry the
// whole call instead of treating the failure as terminal.
func statusFromError(err error) int {
	if retryClassifier.Classify(err) == store.Retryable {
		return http.StatusServiceUnavailable
	}

	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
