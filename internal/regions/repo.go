package regions

import (
	"context"

	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository is the persistence surface for regions.
type Repository interface {
	ListRegions(ctx context.Context) ([]models.Region, error)
	FindRegion(ctx context.Context, regionID int64) (*models.Region, error)
	FindRegionByName(ctx context.Context, name string) (*models.Region, error)
	CreateRegion(ctx context.Context, region *models.Region) error
	UpdateRegionName(ctx context.Context, regionID int64, name string) error
	DeleteRegion(ctx context.Context, regionID int64) error
	CountTeams(ctx context.Context, regionID int64) (int64, error)
	CountBookings(ctx context.Context, regionID int64) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a regions repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListRegions(ctx context.Context) ([]models.Region, error) {
	var records []models.Region
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
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

func (r *repository) FindRegionByName(ctx context.Context, name string) (*models.Region, error) {
	var record models.Region
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) CreateRegion(ctx context.Context, region *models.Region) error {
	return r.db.WithContext(ctx).Create(region).Error
}

func (r *repository) UpdateRegionName(ctx context.Context, regionID int64, name string) error {
	return r.db.WithContext(ctx).
		Model(&models.Region{}).
		Where("region_id = ?", regionID).
		Update("name", name).Error
}

func (r *repository) DeleteRegion(ctx context.Context, regionID int64) error {
	return r.db.WithContext(ctx).
		Where("region_id = ?", regionID).
		Delete(&models.Region{}).Error
}

func (r *repository) CountTeams(ctx context.Context, regionID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("region_id = ?", regionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) CountBookings(ctx context.Context, regionID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("region_id = ?", regionID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
