package location

import (
	"context"
	"net/http"

	"foodorder-be/internal/logger"
	"foodorder-be/internal/utils"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Provider is the subset of the logistics API the handler needs.
type Provider interface {
	Districts(ctx context.Context) ([]District, error)
	Wards(ctx context.Context, districtID int64) ([]Ward, error)
}

type Handler struct {
	provider Provider
}

func NewHandler(p Provider) *Handler {
	return &Handler{provider: p}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/location/districts", h.GetDistricts).Methods(http.MethodGet)
	r.HandleFunc("/location/wards", h.GetWards).Methods(http.MethodGet)
}

func (h *Handler) GetDistricts(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context()).With(
		zap.String("layer", "handler"),
		zap.String("method", "GetDistricts"),
	)

	districts, err := h.provider.Districts(r.Context())
	if err != nil {
		log.Warn("failed to fetch districts", zap.Error(err))
		utils.WriteJSONError(w, "failed to fetch districts", err, http.StatusInternalServerError)
		return
	}

	utils.WriteData(w, http.StatusOK, "districts retrieved", districts)
}

func (h *Handler) GetWards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context()).With(
		zap.String("layer", "handler"),
		zap.String("method", "GetWards"),
	)

	districtID, err := utils.ParseInt64(r.URL.Query().Get("district_id"))
	if err != nil {
		utils.WriteJSONError(w, ErrInvalidDistrictID.Error(), err, http.StatusBadRequest)
		return
	}

	wards, err := h.provider.Wards(r.Context(), districtID)
	if err != nil {
		log.Warn("failed to fetch wards", zap.Int64("district_id", districtID), zap.Error(err))
		utils.WriteJSONError(w, "failed to fetch wards", err, http.StatusInternalServerError)
		return
	}

	utils.WriteData(w, http.StatusOK, "wards retrieved", wards)
}
