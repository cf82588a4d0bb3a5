package api

import (
	"net/http"
	"time"

	"github.com/okian/advisor/internal/domain/model"
	"github.com/okian/advisor/pkg/logger"
)

type advicesRequest struct {
	User model.User `json:"user"`
	Now  *time.Time `json:"now,omitempty"`
}

type advicesResponse struct {
	Advices []Advice `json:"advices"`
}

// AdvicesHandler handles advice list requests.
type AdvicesHandler struct {
	deps   Dependencies
	decode decoder
	log    logger.Logger
}

// HandleAdvices handles POST /advices requests.
func (h *AdvicesHandler) HandleAdvices(w http.ResponseWriter, r *http.Request) {
	const op = "api.advices"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req advicesRequest
	if err := h.decode.decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, wrapKind(op, ErrBadRequest, err))
		return
	}
	advices, err := h.deps.ComputeAdvices(r.Context(), req.User, requestTime(req.Now))
	if err != nil {
		writeFailure(r.Context(), w, h.log, op, err)
		return
	}
	if advices == nil {
		advices = []Advice{}
	}
	writeJSON(w, http.StatusOK, advicesResponse{Advices: advices})
}
