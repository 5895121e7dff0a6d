package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleStatus string

const (
	VehicleStatusInService     VehicleStatus = "IN_SERVICE"
	VehicleStatusOutOfService  VehicleStatus = "OUT_OF_SERVICE"
	VehicleStatusInMaintenance VehicleStatus = "IN_MAINTENANCE"
	VehicleStatusRetired       VehicleStatus = "RETIRED"
)

type VehicleType string

const (
	VehicleTypeBus     VehicleType = "BUS"
	VehicleTypeVan     VehicleType = "VAN"
	VehicleTypeShuttle VehicleType = "SHUTTLE"
	VehicleTypeTram    VehicleType = "TRAM"
)

type Driver struct {
	Name  string `gorm:"type:varchar(128)" json:"name"`
	Phone string `gorm:"type:varchar(32)" json:"phone"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Maintenance struct {
	ScheduledBy string     `gorm:"type:varchar(128)" json:"scheduled_by"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes"`
}

type Vehicle struct {
	ID                 uuid.UUID     `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	LicensePlate       string        `gorm:"type:varchar(32);uniqueIndex;not null" json:"license_plate"`
	Capacity           int           `gorm:"not null" json:"capacity"`
	Status             VehicleStatus `gorm:"type:vehicle_status;not null" json:"status"`
	Type               VehicleType   `gorm:"type:vehicle_type;not null" json:"type"`
	Driver             *Driver       `gorm:"embedded;embeddedPrefix:driver_" json:"driver,omitempty"`
	CurrentLocation    *Location     `gorm:"embedded;embeddedPrefix:location_" json:"current_location,omitempty"`
	MaintenanceDetails *Maintenance  `gorm:"embedded;embeddedPrefix:maintenance_" json:"maintenance_details,omitempty"`
	LastMaintenance    *time.Time    `json:"last_maintenance,omitempty"`
	RouteID            string        `gorm:"type:varchar(64);not null;index" json:"route_id"`
	CreatedAt          time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// Clone returns a deep copy sharing no pointers with the receiver.
func (v *Vehicle) Clone() *Vehicle {
	if v == nil {
		return nil
	}
	out := *v
	if v.Driver != nil {
		d := *v.Driver
		out.Driver = &d
	}
	if v.CurrentLocation != nil {
		l := *v.CurrentLocation
		out.CurrentLocation = &l
	}
	if v.MaintenanceDetails != nil {
		m := *v.MaintenanceDetails
		if m.ScheduledAt != nil {
			t := *m.ScheduledAt
			m.ScheduledAt = &t
		}
		out.MaintenanceDetails = &m
	}
	if v.LastMaintenance != nil {
		t := *v.LastMaintenance
		out.LastMaintenance = &t
	}
	return &out
}
