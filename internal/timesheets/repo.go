package timesheets

import (
	"context"

	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"github.com/fieldline/fieldline-backend/pkg/enums"
	"gorm.io/gorm"
)

// TimeOffFilter narrows the time-off listing.
type TimeOffFilter struct {
	AgentID *int64
	TeamID  *int64
}

// Repository is the persistence surface for timesheets and time-off.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindAgent(ctx context.Context, agentID int64) (*models.FieldAgent, error)
	DispatcherTeamID(ctx context.Context, dispatcherID int64) (*int64, error)

	FindTimesheet(ctx context.Context, agentID int64, weekStart string) (*models.Timesheet, error)
	FindTimesheetByID(ctx context.Context, timesheetID int64) (*models.Timesheet, error)
	CreateTimesheet(ctx context.Context, timesheet *models.Timesheet) error
	DeleteTimesheet(ctx context.Context, timesheetID int64) error
	ListPendingTimesheets(ctx context.Context, teamID *int64) ([]models.Timesheet, error)
	UpdateTimesheetStatus(ctx context.Context, timesheetID int64, status enums.TimesheetStatus) error

	CreateTimeOff(ctx context.Context, request *models.TimeOffRequest) error
	FindTimeOff(ctx context.Context, requestID int64) (*models.TimeOffRequest, error)
	ListTimeOff(ctx context.Context, filter TimeOffFilter) ([]models.TimeOffRequest, error)
	UpdateTimeOffStatus(ctx context.Context, requestID int64, status enums.TimeOffStatus) error
	HasOverlappingTimeOff(ctx context.Context, agentID int64, date string, start, end *string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a timesheets repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindAgent(ctx context.Context, agentID int64) (*models.FieldAgent, error) {
	var record models.FieldAgent
	err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) DispatcherTeamID(ctx context.Context, dispatcherID int64) (*int64, error) {
	var teamID *int64
	err := r.db.WithContext(ctx).
		Table("dispatchers").
		Select("team_id").
		Where("dispatcher_id = ?", dispatcherID).
		Scan(&teamID).Error
	if err != nil {
		return nil, err
	}
	return teamID, nil
}

func (r *repository) FindTimesheet(ctx context.Context, agentID int64, weekStart string) (*models.Timesheet, error) {
	var record models.Timesheet
	err := r.db.WithContext(ctx).
		Preload("Agent").
		Preload("Slots").
		Where("agent_id = ? AND week_start_date = ?", agentID, weekStart).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) FindTimesheetByID(ctx context.Context, timesheetID int64) (*models.Timesheet, error) {
	var record models.Timesheet
	err := r.db.WithContext(ctx).
		Preload("Agent").
		Preload("Slots").
		Where("timesheet_id = ?", timesheetID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) CreateTimesheet(ctx context.Context, timesheet *models.Timesheet) error {
	return r.db.WithContext(ctx).Create(timesheet).Error
}

func (r *repository) DeleteTimesheet(ctx context.Context, timesheetID int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("timesheet_id = ?", timesheetID).Delete(&models.TimesheetSlot{}).Error; err != nil {
		return err
	}
	return db.Where("timesheet_id = ?", timesheetID).Delete(&models.Timesheet{}).Error
}

func (r *repository) ListPendingTimesheets(ctx context.Context, teamID *int64) ([]models.Timesheet, error) {
	query := r.db.WithContext(ctx).
		Preload("Agent").
		Preload("Slots").
		Where("status = ?", enums.TimesheetStatusPending)

	if teamID != nil {
		query = query.Where("agent_id IN (SELECT agent_id FROM field_agents WHERE team_id = ?)", *teamID)
	}

	var records []models.Timesheet
	if err := query.Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) UpdateTimesheetStatus(ctx context.Context, timesheetID int64, status enums.TimesheetStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Timesheet{}).
		Where("timesheet_id = ?", timesheetID).
		Update("status", status).Error
}

func (r *repository) CreateTimeOff(ctx context.Context, request *models.TimeOffRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repository) FindTimeOff(ctx context.Context, requestID int64) (*models.TimeOffRequest, error) {
	var record models.TimeOffRequest
	err := r.db.WithContext(ctx).
		Preload("Agent").
		Where("request_id = ?", requestID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) ListTimeOff(ctx context.Context, filter TimeOffFilter) ([]models.TimeOffRequest, error) {
	query := r.db.WithContext(ctx).Preload("Agent")

	if filter.AgentID != nil {
		query = query.Where("agent_id = ?", *filter.AgentID)
	}
	if filter.TeamID != nil {
		query = query.Where("agent_id IN (SELECT agent_id FROM field_agents WHERE team_id = ?)", *filter.TeamID)
	}

	var records []models.TimeOffRequest
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) UpdateTimeOffStatus(ctx context.Context, requestID int64, status enums.TimeOffStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.TimeOffRequest{}).
		Where("request_id = ?", requestID).
		Update("status", status).Error
}

func (r *repository) HasOverlappingTimeOff(ctx context.Context, agentID int64, date string, start, end *string) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.TimeOffRequest{}).
		Where("agent_id = ? AND request_date = ? AND status IN ?", agentID, date,
			[]enums.TimeOffStatus{enums.TimeOffStatusPending, enums.TimeOffStatusApproved})

	if start != nil && end != nil {
		query = query.Where("is_full_day = ? OR (start_time < ? AND end_time > ?)", true, *end, *start)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
