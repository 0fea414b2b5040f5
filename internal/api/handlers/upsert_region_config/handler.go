package upsert_region_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/PMS-InspectionService/internal/api/handlers"
	"github.com/m04kA/PMS-InspectionService/internal/domain"
	regionConfig "github.com/m04kA/PMS-InspectionService/internal/service/regionconfig"
	"github.com/m04kA/PMS-InspectionService/internal/service/regionconfig/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRegion      = "неизвестный регион"
	msgInvalidInput       = "некорректные параметры настроек"
)

type Handler struct {
	service RegionConfigService
	logger  Logger
}

func NewHandler(service RegionConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/regions/{region}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	region := domain.Region(mux.Vars(r)["region"])

	var req models.UpsertConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /regions/%s/config - Invalid request body: %v", region, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.Region = region

	result, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, regionConfig.ErrInvalidRegion):
			h.logger.Warn("PUT /regions/%s/config - Unknown region", region)
			handlers.RespondBadRequest(w, msgInvalidRegion)

		case errors.Is(err, regionConfig.ErrInvalidInput):
			h.logger.Warn("PUT /regions/%s/config - Invalid input: %v", region, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /regions/%s/config - Failed to upsert config: %v", region, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /regions/%s/config - Config saved", region)
	handlers.RespondJSON(w, http.StatusOK, result)
}
