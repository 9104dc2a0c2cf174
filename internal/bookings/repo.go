package bookings

import (
	"context"

	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a bookings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindLocation(ctx context.Context, loc LocationInput) (*models.Location, error) {
	var record models.Location
	err := r.db.WithContext(ctx).
		Where("street_number = ? AND street_name = ? AND postal_code = ? AND city = ? AND state_province = ?",
			loc.StreetNumber, loc.StreetName, loc.PostalCode, loc.City, loc.StateProvince).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) CreateLocation(ctx context.Context, loc *models.Location) error {
	return r.db.WithContext(ctx).Create(loc).Error
}

func (r *repository) FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var record models.Customer
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *repository) FindRegion(ctx context.Context, regionID int64) (*models.Region, error) {
	var record models.Region
	err := r.db.WithContext(ctx).
		Where("region_id = ?", regionID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) FindGlobalRegion(ctx context.Context) (*models.Region, error) {
	var record models.Region
	err := r.db.WithContext(ctx).
		Where("is_global = ?", true).
		Order("region_id ASC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) DispatcherRegionID(ctx context.Context, dispatcherID int64) (*int64, error) {
	var regionID *int64
	err := r.db.WithContext(ctx).
		Table("dispatchers").
		Select("teams.region_id").
		Joins("JOIN teams ON teams.team_id = dispatchers.team_id").
		Where("dispatchers.dispatcher_id = ?", dispatcherID).
		Scan(&regionID).Error
	if err != nil {
		return nil, err
	}
	return regionID, nil
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

func (r *repository) FindDispatcher(ctx context.Context, dispatcherID int64) (*models.Dispatcher, error) {
	var record models.Dispatcher
	err := r.db.WithContext(ctx).
		Where("dispatcher_id = ?", dispatcherID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) FindBooking(ctx context.Context, bookingID int64) (*models.Booking, error) {
	var record models.Booking
	err := r.db.WithContext(ctx).
		Preload("Customer.Location").
		Preload("Agent").
		Preload("Dispatcher").
		Preload("Region").
		Preload("Disposition.Type").
		Where("booking_id = ?", bookingID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) ListBookings(ctx context.Context, filter ListFilter) ([]models.Booking, error) {
	query := r.db.WithContext(ctx).
		Preload("Customer.Location").
		Preload("Agent").
		Preload("Dispatcher").
		Preload("Region").
		Preload("Disposition.Type")

	if filter.AgentID != nil {
		query = query.Where("agent_id = ?", *filter.AgentID)
	}
	if filter.RegionID != nil {
		if filter.IncludeGlobal {
			query = query.Where(
				"region_id = ? OR region_id IN (SELECT region_id FROM regions WHERE is_global = ?)",
				*filter.RegionID, true,
			)
		} else {
			query = query.Where("region_id = ?", *filter.RegionID)
		}
	}

	var records []models.Booking
	err := query.
		Order("booking_date ASC, booking_time ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) UpdateBooking(ctx context.Context, bookingID int64, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("booking_id = ?", bookingID).
		Updates(updates).Error
}

func (r *repository) DeleteBooking(ctx context.Context, bookingID int64) error {
	return r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Delete(&models.Booking{}).Error
}
