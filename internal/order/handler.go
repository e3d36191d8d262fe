package order

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

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/orders", h.Submit).Methods(http.MethodPost)
	r.HandleFunc("/orders", h.List).Methods(http.MethodGet)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var input SubmitInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		utils.WriteJSONError(w, "invalid request body", err, http.StatusBadRequest)
		return
	}

	o, err := h.svc.Submit(r.Context(), input)
	if err != nil {
		writeServiceError(w, "failed to submit order", err)
		return
	}

	utils.WriteData(w, http.StatusCreated, "order created", o)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, "failed to fetch orders", err)
		return
	}

	utils.WriteData(w, http.StatusOK, "orders retrieved", orders)
}

func writeServiceError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		utils.WriteJSONError(w, "authentication required", err, http.StatusUnauthorized)
	case errors.Is(err, ErrCartEmpty), errors.Is(err, ErrAddressRequired):
		utils.WriteJSONError(w, message, err, http.StatusBadRequest)
	default:
		utils.WriteJSONError(w, message, err, http.StatusInternalServerError)
	}
}
