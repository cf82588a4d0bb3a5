package api

import (
	"net/http"
	"time"

	"github.com/okian/advisor/internal/domain/model"
	"github.com/okian/advisor/pkg/logger"
)

type batchRequest struct {
	Model string       `json:"model"`
	Users []model.User `json:"users"`
	Now   *time.Time   `json:"now,omitempty"`
}

type batchResponse struct {
	Model   string   `json:"model"`
	Results []Result `json:"results"`
}

// BatchHandler handles batch scoring requests.
type BatchHandler struct {
	deps   Dependencies
	decode decoder
	log    logger.Logger
}

// HandleBatch handles POST /batch requests. Results follow the order of the
// submitted users.
func (h *BatchHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.batch"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req batchRequest
	if err := h.decode.decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, wrapKind(op, ErrBadRequest, err))
		return
	}
	if req.Users == nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, wrapKind(op, ErrMissing, errNoUsers))
		return
	}
	results, err := h.deps.ScoreBatch(r.Context(), req.Model, req.Users, requestTime(req.Now))
	if err != nil {
		writeFailure(r.Context(), w, h.log, op, err)
		return
	}
	if results == nil {
		results = []Result{}
	}
	writeJSON(w, http.StatusOK, batchResponse{Model: req.Model, Results: results})
}
