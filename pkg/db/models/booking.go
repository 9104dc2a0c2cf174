package models

import (
	"time"

	"github.com/fieldline/fieldline-backend/pkg/enums"
)

// Booking is a scheduled field-service appointment. At most one of AgentID
// and DispatcherID is set at any instant; assigning one clears the other.
type Booking struct {
	ID           int64               `gorm:"column:booking_id;primaryKey;autoIncrement"`
	CustomerID   int64               `gorm:"column:customer_id;not null"`
	AgentID      *int64              `gorm:"column:agent_id"`
	DispatcherID *int64              `gorm:"column:dispatcher_id"`
	RegionID     int64               `gorm:"column:region_id;not null"`
	BookingDate  string              `gorm:"column:booking_date;not null"`
	BookingTime  string              `gorm:"column:booking_time;not null"`
	Status       enums.BookingStatus `gorm:"column:status;not null;default:'scheduled'"`

	DispositionID *int64 `gorm:"column:disposition_id"`

	CallCenterAgentName  *string `gorm:"column:call_center_agent_name"`
	CallCenterAgentEmail *string `gorm:"column:call_center_agent_email"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Customer    *Customer    `gorm:"foreignKey:CustomerID"`
	Agent       *FieldAgent  `gorm:"foreignKey:AgentID"`
	Dispatcher  *Dispatcher  `gorm:"foreignKey:DispatcherID"`
	Region      *Region      `gorm:"foreignKey:RegionID"`
	Disposition *Disposition `gorm:"foreignKey:DispositionID"`
}

// TableName implements the GORM naming override.
func (Booking) TableName() string { return "bookings" }

// IsAssigned reports whether any assignee holds the booking.
func (b Booking) IsAssigned() bool {
	return b.AgentID != nil || b.DispatcherID != nil
}
