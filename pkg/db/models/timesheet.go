package models

import (
	"time"

	"github.com/fieldline/fieldline-backend/pkg/enums"
)

// Timesheet is a field agent's weekly availability submission. WeekStartDate
// is always the Monday of the covered week.
type Timesheet struct {
	ID            int64                 `gorm:"column:timesheet_id;primaryKey;autoIncrement"`
	AgentID       int64                 `gorm:"column:agent_id;not null;uniqueIndex:idx_timesheets_agent_week,priority:1"`
	WeekStartDate string                `gorm:"column:week_start_date;not null;uniqueIndex:idx_timesheets_agent_week,priority:2"`
	Status        enums.TimesheetStatus `gorm:"column:status;not null;default:'pending'"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`

	Agent *FieldAgent     `gorm:"foreignKey:AgentID"`
	Slots []TimesheetSlot `gorm:"foreignKey:TimesheetID"`
}

// TableName implements the GORM naming override.
func (Timesheet) TableName() string { return "timesheets" }

// TimesheetSlot is one working window on one weekday of a timesheet.
type TimesheetSlot struct {
	ID          int64  `gorm:"column:slot_id;primaryKey;autoIncrement"`
	TimesheetID int64  `gorm:"column:timesheet_id;not null"`
	DayOfWeek   string `gorm:"column:day_of_week;not null"`
	StartTime   string `gorm:"column:start_time;not null"`
	EndTime     string `gorm:"column:end_time;not null"`
}

// TableName implements the GORM naming override.
func (TimesheetSlot) TableName() string { return "timesheet_slots" }
