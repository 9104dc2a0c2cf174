package models

import (
	"time"

	"github.com/fieldline/fieldline-backend/pkg/enums"
)

// TimeOffRequest blocks an agent's availability for a date, either the full
// day or a start/end window.
type TimeOffRequest struct {
	ID          int64               `gorm:"column:request_id;primaryKey;autoIncrement"`
	AgentID     int64               `gorm:"column:agent_id;not null"`
	RequestDate string              `gorm:"column:request_date;not null"`
	IsFullDay   bool                `gorm:"column:is_full_day;not null;default:false"`
	StartTime   *string             `gorm:"column:start_time"`
	EndTime     *string             `gorm:"column:end_time"`
	Reason      *string             `gorm:"column:reason"`
	Status      enums.TimeOffStatus `gorm:"column:status;not null;default:'pending'"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`

	Agent *FieldAgent `gorm:"foreignKey:AgentID"`
}

// TableName implements the GORM naming override.
func (TimeOffRequest) TableName() string { return "time_off_requests" }
