package model

import (
	"time"

	"gorm.io/datatypes"
)

// Hub modules that can be shown on the dashboard.
const (
	ModuleFinance    = "finance"
	ModuleCooking    = "cooking"
	ModuleReading    = "reading"
	ModuleHousehold  = "household"
	ModuleVehicles   = "vehicles"
	ModuleProperties = "properties"
	ModuleDocuments  = "documents"
	ModulePlants     = "plants"
	ModuleCalendar   = "calendar"
)

// Modules is the default dashboard order.
var Modules = []string{
	ModuleCalendar,
	ModuleFinance,
	ModuleHousehold,
	ModuleVehicles,
	ModuleProperties,
	ModuleDocuments,
	ModuleCooking,
	ModuleReading,
	ModulePlants,
}

// UserPreferences keeps the dashboard layout for one profile.
type UserPreferences struct {
	Profile        string                      `gorm:"primaryKey;size:64" json:"profile"`
	ModuleOrder    datatypes.JSONSlice[string] `json:"module_order"`
	EnabledModules datatypes.JSONSlice[string] `json:"enabled_modules"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}
