package dispositions

import (
	"context"

	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a dispositions repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindBooking(ctx context.Context, id int64) (*models.Booking, error) {
	var record models.Booking
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Disposition").
		Preload("Disposition.Type").
		Where("booking_id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) FindBookingByDisposition(ctx context.Context, dispositionID int64) (*models.Booking, error) {
	var record models.Booking
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Disposition").
		Preload("Disposition.Type").
		Where("disposition_id = ?", dispositionID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) ListDispositions(ctx context.Context, filter ListFilter) ([]models.Booking, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Preload("Customer").
		Preload("Disposition").
		Preload("Disposition.Type").
		Joins("JOIN dispositions ON dispositions.disposition_id = bookings.disposition_id")

	if filter.BookingID != nil {
		query = query.Where("bookings.booking_id = ?", *filter.BookingID)
	}
	if filter.AgentID != nil {
		query = query.Where("bookings.agent_id = ?", *filter.AgentID)
	}

	var records []models.Booking
	if err := query.Order("dispositions.created_time DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) CreateDisposition(ctx context.Context, disposition *models.Disposition) error {
	return r.db.WithContext(ctx).Create(disposition).Error
}

func (r *repository) LinkBooking(ctx context.Context, bookingID, dispositionID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("booking_id = ?", bookingID).
		Update("disposition_id", dispositionID).Error
}

func (r *repository) UnlinkBooking(ctx context.Context, dispositionID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("disposition_id = ?", dispositionID).
		Update("disposition_id", nil).Error
}

func (r *repository) DeleteDisposition(ctx context.Context, dispositionID int64) error {
	return r.db.WithContext(ctx).
		Where("disposition_id = ?", dispositionID).
		Delete(&models.Disposition{}).Error
}

func (r *repository) FindType(ctx context.Context, code string) (*models.DispositionType, error) {
	var record models.DispositionType
	err := r.db.WithContext(ctx).
		Where("type_code = ?", code).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) ListTypes(ctx context.Context) ([]models.DispositionType, error) {
	var records []models.DispositionType
	err := r.db.WithContext(ctx).
		Order("description ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) CreateType(ctx context.Context, record *models.DispositionType) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) UpdateType(ctx context.Context, code, description string) error {
	return r.db.WithContext(ctx).
		Model(&models.DispositionType{}).
		Where("type_code = ?", code).
		Update("description", description).Error
}

func (r *repository) DeleteType(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).
		Where("type_code = ?", code).
		Delete(&models.DispositionType{}).Error
}

func (r *repository) CountByType(ctx context.Context, code string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Disposition{}).
		Where("type_code = ?", code).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
