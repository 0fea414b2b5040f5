package get_region_configs

import (
	"net/http"

	"github.com/m04kA/PMS-InspectionService/internal/api/handlers"
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

// Handle GET /api/v1/regions/configs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /regions/configs - Failed to list configs: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
