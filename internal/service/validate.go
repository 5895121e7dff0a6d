package service

import (
	"strings"

	"vehicle-service/internal/model"
)

var validVehicleStatuses = map[model.VehicleStatus]bool{
	model.VehicleStatusInService:     true,
	model.VehicleStatusOutOfService:  true,
	model.VehicleStatusInMaintenance: true,
	model.VehicleStatusRetired:       true,
}

var validVehicleTypes = map[model.VehicleType]bool{
	model.VehicleTypeBus:     true,
	model.VehicleTypeVan:     true,
	model.VehicleTypeShuttle: true,
	model.VehicleTypeTram:    true,
}

// ValidateVehicle checks every constraint in one pass and returns all
// violations in a stable order, so a client sees the full list at once.
func ValidateVehicle(v *model.Vehicle) []string {
	var violations []string

	if strings.TrimSpace(v.LicensePlate) == "" {
		violations = append(violations, "license plate is required")
	}
	if v.Capacity <= 0 {
		violations = append(violations, "capacity must be greater than zero")
	}
	if !validVehicleStatuses[v.Status] {
		violations = append(violations, "status must be one of IN_SERVICE, OUT_OF_SERVICE, IN_MAINTENANCE, RETIRED")
	}
	if !validVehicleTypes[v.Type] {
		violations = append(violations, "type must be one of BUS, VAN, SHUTTLE, TRAM")
	}
	if strings.TrimSpace(v.RouteID) == "" {
		violations = append(violations, "route id is required")
	}
	if v.Driver != nil {
		if strings.TrimSpace(v.Driver.Name) == "" {
			violations = append(violations, "driver name is required")
		}
	}
	if v.CurrentLocation != nil {
		if v.CurrentLocation.Latitude < -90 || v.CurrentLocation.Latitude > 90 {
			violations = append(violations, "latitude must be between -90 and 90")
		}
		if v.CurrentLocation.Longitude < -180 || v.CurrentLocation.Longitude > 180 {
			violations = append(violations, "longitude must be between -180 and 180")
		}
	}
	if v.MaintenanceDetails != nil {
		if strings.TrimSpace(v.MaintenanceDetails.ScheduledBy) == "" {
			violations = append(violations, "maintenance scheduled_by is required")
		}
	}

	return violations
}
