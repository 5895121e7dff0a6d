package service

import (
	"vehicle-service/internal/model"
	"vehicle-service/internal/utils"
)

// MergeVehicle applies the candidate's fields over the existing vehicle and
// returns the result. Neither input is mutated. The candidate wins for every
// field it carries a value for; id and creation time always come from the
// existing record.
func MergeVehicle(candidate, existing *model.Vehicle) *model.Vehicle {
	merged := existing.Clone()

	if candidate.LicensePlate != "" {
		merged.LicensePlate = utils.NormalizePlate(candidate.LicensePlate)
	}
	if candidate.Capacity != 0 {
		merged.Capacity = candidate.Capacity
	}
	if candidate.Status != "" {
		merged.Status = candidate.Status
	}
	if candidate.Type != "" {
		merged.Type = candidate.Type
	}
	if candidate.Driver != nil {
		d := *candidate.Driver
		merged.Driver = &d
	}
	if candidate.CurrentLocation != nil {
		l := *candidate.CurrentLocation
		merged.CurrentLocation = &l
	}
	if candidate.MaintenanceDetails != nil {
		m := *candidate.MaintenanceDetails
		if m.ScheduledAt != nil {
			t := *m.ScheduledAt
			m.ScheduledAt = &t
		}
		merged.MaintenanceDetails = &m
	}
	if candidate.LastMaintenance != nil {
		t := *candidate.LastMaintenance
		merged.LastMaintenance = &t
	}
	if candidate.RouteID != "" {
		merged.RouteID = candidate.RouteID
	}

	return merged
}
