package agents

import (
	"context"

	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository is the persistence surface for the staff directory.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ListAgents(ctx context.Context) ([]models.FieldAgent, error)
	FindAgent(ctx context.Context, agentID int64) (*models.FieldAgent, error)
	FindAgentByEmail(ctx context.Context, email string) (*models.FieldAgent, error)
	CreateAgent(ctx context.Context, agent *models.FieldAgent) error

	ListDispatchers(ctx context.Context) ([]models.Dispatcher, error)
	FindDispatcherByEmail(ctx context.Context, email string) (*models.Dispatcher, error)
	CreateDispatcher(ctx context.Context, dispatcher *models.Dispatcher) error

	FindTeam(ctx context.Context, teamID int64) (*models.Team, error)
	FindLocation(ctx context.Context, loc LocationInput) (*models.Location, error)
	CreateLocation(ctx context.Context, loc *models.Location) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a staff repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListAgents(ctx context.Context) ([]models.FieldAgent, error) {
	var records []models.FieldAgent
	err := r.db.WithContext(ctx).
		Preload("Location").
		Order("name ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) FindAgent(ctx context.Context, agentID int64) (*models.FieldAgent, error) {
	var record models.FieldAgent
	err := r.db.WithContext(ctx).
		Preload("Location").
		Preload("Team").
		Where("agent_id = ?", agentID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) FindAgentByEmail(ctx context.Context, email string) (*models.FieldAgent, error) {
	var record models.FieldAgent
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) CreateAgent(ctx context.Context, agent *models.FieldAgent) error {
	return r.db.WithContext(ctx).Create(agent).Error
}

func (r *repository) ListDispatchers(ctx context.Context) ([]models.Dispatcher, error) {
	var records []models.Dispatcher
	err := r.db.WithContext(ctx).
		Preload("Location").
		Order("name ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) FindDispatcherByEmail(ctx context.Context, email string) (*models.Dispatcher, error) {
	var record models.Dispatcher
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) CreateDispatcher(ctx context.Context, dispatcher *models.Dispatcher) error {
	return r.db.WithContext(ctx).Create(dispatcher).Error
}

func (r *repository) FindTeam(ctx context.Context, teamID int64) (*models.Team, error) {
	var record models.Team
	err := r.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
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
