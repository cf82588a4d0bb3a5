package api

import (
	"net/http"
	"time"

	"github.com/okian/advisor/internal/domain/model"
	"github.com/okian/advisor/pkg/logger"
)

type scoreRequest struct {
	Model string     `json:"model"`
	User  model.User `json:"user"`
	Now   *time.Time `json:"now,omitempty"`
}

type cardResponse struct {
	Model    string `json:"model"`
	CardData any    `json:"cardData"`
}

// ScoreHandler handles single model requests.
type ScoreHandler struct {
	deps   Dependencies
	decode decoder
	log    logger.Logger
}

// HandleScore handles POST /score requests. An empty model selects the
// default model.
func (h *ScoreHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req scoreRequest
	if err := h.decode.decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, wrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.Score(r.Context(), req.Model, req.User, requestTime(req.Now))
	if err != nil {
		writeFailure(r.Context(), w, h.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleCard handles POST /card requests.
func (h *ScoreHandler) HandleCard(w http.ResponseWriter, r *http.Request) {
	const op = "api.card"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req scoreRequest
	if err := h.decode.decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, wrapKind(op, ErrBadRequest, err))
		return
	}
	data, err := h.deps.CardData(r.Context(), req.Model, req.User, requestTime(req.Now))
	if err != nil {
		writeFailure(r.Context(), w, h.log, op, err)
		return
	}
	writeJSON(w, http.StatusOK, cardResponse{Model: req.Model, CardData: data})
}
