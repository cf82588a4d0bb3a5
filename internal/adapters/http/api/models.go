package api

import "net/http"

type modelsResponse struct {
	Models []string `json:"models"`
}

// ModelsHandler lists the scoring models.
type ModelsHandler struct {
	deps Dependencies
}

// HandleModels handles GET /models requests.
func (h *ModelsHandler) HandleModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, modelsResponse{Models: h.deps.Models()})
}
