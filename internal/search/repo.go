package search

import (
	"context"

	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository loads the raw rows availability evaluation works from.
type Repository interface {
	ListLocatedAgents(ctx context.Context) ([]models.FieldAgent, error)
	ApprovedTimeOff(ctx context.Context, requestDate string) ([]models.TimeOffRequest, error)
	TimesheetsForWeek(ctx context.Context, weekStartDate string) ([]models.Timesheet, error)
	BookedAgentIDs(ctx context.Context, bookingDate, fromTime, toTime string) ([]int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a search repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListLocatedAgents(ctx context.Context) ([]models.FieldAgent, error) {
	var agents []models.FieldAgent
	err := r.db.WithContext(ctx).
		Preload("Location").
		Where("location_id IS NOT NULL").
		Find(&agents).Error
	if err != nil {
		return nil, err
	}
	return agents, nil
}

func (r *repository) ApprovedTimeOff(ctx context.Context, requestDate string) ([]models.TimeOffRequest, error) {
	var requests []models.TimeOffRequest
	err := r.db.WithContext(ctx).
		Where("status = ? AND request_date = ?", "approved", requestDate).
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *repository) TimesheetsForWeek(ctx context.Context, weekStartDate string) ([]models.Timesheet, error) {
	var timesheets []models.Timesheet
	err := r.db.WithContext(ctx).
		Preload("Slots").
		Where("week_start_date = ?", weekStartDate).
		Find(&timesheets).Error
	if err != nil {
		return nil, err
	}
	return timesheets, nil
}

func (r *repository) BookedAgentIDs(ctx context.Context, bookingDate, fromTime, toTime string) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("booking_date = ? AND booking_time BETWEEN ? AND ? AND agent_id IS NOT NULL", bookingDate, fromTime, toTime).
		Distinct().
		Pluck("agent_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
