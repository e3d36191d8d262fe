package address

import (
	"errors"
	"net/http"

	"foodorder-be/internal/utils"

	"github.com/gorilla/mux"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the handler on a router that already requires auth.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/location/addresses/user", h.ListForUser).Methods(http.MethodGet)
}

func (h *Handler) ListForUser(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListForUser(r.Context())
	switch {
	case errors.Is(err, ErrUnauthenticated):
		utils.WriteJSONError(w, "authentication required", err, http.StatusUnauthorized)
		return
	case err != nil:
		utils.WriteJSONError(w, "failed to fetch addresses", err, http.StatusInternalServerError)
		return
	}

	utils.WriteData(w, http.StatusOK, "addresses retrieved", list)
}
