package upsert_region_config

import (
	"context"

	"github.com/m04kA/PMS-InspectionService/internal/service/regionconfig/models"
)

type RegionConfigService interface {
	Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
