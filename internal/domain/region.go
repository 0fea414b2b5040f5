package domain

import (
	"time"

	"github.com/m04kA/PMS-InspectionService/pkg/types"
)

// Region represents a fixed geographic partition used to scope
// configuration and inspection schedules
type Region string

const (
	RegionEast    Region = "EAST"
	RegionSouth   Region = "SOUTH"
	RegionWest    Region = "WEST"
	RegionNorth   Region = "NORTH"
	RegionCentral Region = "CENTRAL"
)

// Regions список всех регионов в фиксированном порядке
var Regions = []Region{
	RegionEast,
	RegionSouth,
	RegionWest,
	RegionNorth,
	RegionCentral,
}

// IsValid returns true if the region is one of the known values
func (r Region) IsValid() bool {
	switch r {
	case RegionEast, RegionSouth, RegionWest, RegionNorth, RegionCentral:
		return true
	}
	return false
}

// RegionConfig represents the default inspection-day parameters for a region.
// Mutating it never changes schedules that were already generated from it.
type RegionConfig struct {
	Region              Region
	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	MaxCapacity         int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
