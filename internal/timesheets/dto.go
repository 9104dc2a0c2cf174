package timesheets

import (
	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"github.com/fieldline/fieldline-backend/pkg/enums"
)

// SlotInput is one working window submitted on a timesheet. Times use HH:MM.
type SlotInput struct {
	DayOfWeek string `json:"day_of_week" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

// SubmitInput is an agent's weekly availability submission.
type SubmitInput struct {
	Slots []SlotInput `json:"slots" validate:"required,min=1,dive"`

	ActorID   int64
	ActorRole enums.Role
}

// CurrentInput reads the target-week timesheet for an agent.
type CurrentInput struct {
	AgentID *int64

	ActorID   int64
	ActorRole enums.Role
}

// ReviewInput approves or rejects a pending timesheet.
type ReviewInput struct {
	TimesheetID int64
	Action      string `json:"action" validate:"required,oneof=approve reject"`

	ActorID   int64
	ActorRole enums.Role
}

// ListPendingInput scopes the pending-review listing.
type ListPendingInput struct {
	ActorID   int64
	ActorRole enums.Role
}

// TimeOffInput is an agent's time-off request. Either the full day or an
// exactly-two-hour window within business hours.
type TimeOffInput struct {
	RequestDate string  `json:"request_date" validate:"required"`
	IsFullDay   bool    `json:"is_full_day"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Reason      *string `json:"reason"`

	ActorID   int64
	ActorRole enums.Role
}

// ReviewTimeOffInput approves or rejects a pending time-off request.
type ReviewTimeOffInput struct {
	RequestID int64
	Action    string `json:"action" validate:"required,oneof=approve reject"`

	ActorID   int64
	ActorRole enums.Role
}

// ListTimeOffInput scopes the time-off listing.
type ListTimeOffInput struct {
	ActorID   int64
	ActorRole enums.Role
}

// SlotView is the API projection of a timesheet slot.
type SlotView struct {
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// TimesheetView is the API projection of a timesheet with its slots.
type TimesheetView struct {
	ID             int64                 `json:"timesheet_id"`
	AgentID        int64                 `json:"agentId"`
	AgentName      string                `json:"agent_name"`
	WeekStartDate  string                `json:"week_start_date"`
	Status         enums.TimesheetStatus `json:"status"`
	Slots          []SlotView            `json:"slots"`
	TargetWeekType string                `json:"target_week_type,omitempty"`
}

// TimeOffView is the API projection of a time-off request.
type TimeOffView struct {
	ID          int64               `json:"requestId"`
	AgentID     int64               `json:"agentId"`
	AgentName   string              `json:"agent_name"`
	RequestDate string              `json:"request_date"`
	IsFullDay   bool                `json:"is_full_day"`
	StartTime   *string             `json:"start_time"`
	EndTime     *string             `json:"end_time"`
	Reason      *string             `json:"reason"`
	Status      enums.TimeOffStatus `json:"status"`
}

// NewTimesheetView projects a timesheet record.
func NewTimesheetView(record models.Timesheet) TimesheetView {
	view := TimesheetView{
		ID:            record.ID,
		AgentID:       record.AgentID,
		WeekStartDate: record.WeekStartDate,
		Status:        record.Status,
		Slots:         make([]SlotView, 0, len(record.Slots)),
	}
	if record.Agent != nil {
		view.AgentName = record.Agent.Name
	}
	for _, slot := range record.Slots {
		view.Slots = append(view.Slots, SlotView{
			DayOfWeek: slot.DayOfWeek,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}
	return view
}

// NewTimesheetViews projects timesheet records.
func NewTimesheetViews(records []models.Timesheet) []TimesheetView {
	views := make([]TimesheetView, 0, len(records))
	for _, record := range records {
		views = append(views, NewTimesheetView(record))
	}
	return views
}

// NewTimeOffView projects a time-off request record.
func NewTimeOffView(record models.TimeOffRequest) TimeOffView {
	view := TimeOffView{
		ID:          record.ID,
		AgentID:     record.AgentID,
		RequestDate: record.RequestDate,
		IsFullDay:   record.IsFullDay,
		StartTime:   record.StartTime,
		EndTime:     record.EndTime,
		Reason:      record.Reason,
		Status:      record.Status,
	}
	if record.Agent != nil {
		view.AgentName = record.Agent.Name
	}
	return view
}

// NewTimeOffViews projects time-off request records.
func NewTimeOffViews(records []models.TimeOffRequest) []TimeOffView {
	views := make([]TimeOffView, 0, len(records))
	for _, record := range records {
		views = append(views, NewTimeOffView(record))
	}
	return views
}
