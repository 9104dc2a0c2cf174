package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fieldline/fieldline-backend/pkg/config"
	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"github.com/fieldline/fieldline-backend/pkg/enums"
	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
	"github.com/fieldline/fieldline-backend/pkg/geo"
	"github.com/fieldline/fieldline-backend/pkg/logger"
	"github.com/fieldline/fieldline-backend/pkg/security"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type geocoder interface {
	Geocode(ctx context.Context, query geo.GeocodeQuery) (*geo.Coordinates, error)
}

// Service manages the staff directory: field agents and dispatchers.
type Service interface {
	ListAgents(ctx context.Context, actorRole enums.Role) ([]AgentView, error)
	GetAgent(ctx context.Context, input GetAgentInput) (*AgentView, error)
	CreateAgent(ctx context.Context, input CreateAgentInput) (*AgentView, error)

	ListDispatchers(ctx context.Context, actorRole enums.Role) ([]DispatcherView, error)
	CreateDispatcher(ctx context.Context, input CreateDispatcherInput) (*DispatcherView, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	geocoder geocoder
	password config.PasswordConfig
	logg     *logger.Logger
}

// NewService wires the staff service dependencies. The geocoder may be nil;
// profile locations are then stored without coordinates.
func NewService(repo Repository, tx txRunner, geocoder geocoder, password config.PasswordConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("agents repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		geocoder: geocoder,
		password: password,
		logg:     logg,
	}, nil
}

func (s *service) ListAgents(ctx context.Context, actorRole enums.Role) ([]AgentView, error) {
	if actorRole == enums.RoleFieldAgent {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role may not list agents")
	}

	records, err := s.repo.ListAgents(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list agents")
	}
	return NewAgentViews(records), nil
}

func (s *service) GetAgent(ctx context.Context, input GetAgentInput) (*AgentView, error) {
	if input.AgentID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "agent id required")
	}
	if input.ActorRole == enums.RoleFieldAgent && input.ActorID != input.AgentID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "agents may only view their own profile")
	}

	record, err := s.repo.FindAgent(ctx, input.AgentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "agent not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load agent")
	}

	view := NewAgentView(*record)
	return &view, nil
}

func (s *service) CreateAgent(ctx context.Context, input CreateAgentInput) (*AgentView, error) {
	if input.ActorRole != enums.RoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role may not manage staff")
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, email and password are required")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.repo.FindAgentByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup agent email")
	}

	if err := s.validateTeam(ctx, input.TeamID); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var agentID int64
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		locationID, err := s.ensureLocation(ctx, repo, input.Location)
		if err != nil {
			return err
		}

		agent := &models.FieldAgent{
			Name:         input.Name,
			Email:        email,
			Phone:        input.Phone,
			PasswordHash: hash,
			LocationID:   locationID,
			TeamID:       input.TeamID,
		}
		if err := repo.CreateAgent(ctx, agent); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create agent")
		}
		agentID = agent.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.repo.FindAgent(ctx, agentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload agent")
	}

	view := NewAgentView(*created)
	return &view, nil
}

func (s *service) ListDispatchers(ctx context.Context, actorRole enums.Role) ([]DispatcherView, error) {
	if actorRole != enums.RoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role may not list dispatchers")
	}

	records, err := s.repo.ListDispatchers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list dispatchers")
	}
	return NewDispatcherViews(records), nil
}

func (s *service) CreateDispatcher(ctx context.Context, input CreateDispatcherInput) (*DispatcherView, error) {
	if input.ActorRole != enums.RoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role may not manage staff")
	}
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, email and password are required")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.repo.FindDispatcherByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup dispatcher email")
	}

	if err := s.validateTeam(ctx, input.TeamID); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *models.Dispatcher
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		locationID, err := s.ensureLocation(ctx, repo, input.Location)
		if err != nil {
			return err
		}

		dispatcher := &models.Dispatcher{
			Name:         input.Name,
			Email:        email,
			Phone:        input.Phone,
			PasswordHash: hash,
			LocationID:   locationID,
			TeamID:       input.TeamID,
		}
		if err := repo.CreateDispatcher(ctx, dispatcher); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create dispatcher")
		}
		created = dispatcher
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := NewDispatcherView(*created)
	return &view, nil
}

func (s *service) validateTeam(ctx context.Context, teamID *int64) error {
	if teamID == nil {
		return nil
	}
	if _, err := s.repo.FindTeam(ctx, *teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid team id")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load team")
	}
	return nil
}

func (s *service) ensureLocation(ctx context.Context, repo Repository, loc *LocationInput) (*int64, error) {
	if loc == nil {
		return nil, nil
	}

	existing, err := repo.FindLocation(ctx, *loc)
	if err == nil {
		return &existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup location")
	}

	latitude := loc.Latitude
	longitude := loc.Longitude
	if (latitude == nil || longitude == nil) && s.geocoder != nil {
		coords, geoErr := s.geocoder.Geocode(ctx, geo.GeocodeQuery{
			StreetNumber: loc.StreetNumber,
			StreetName:   loc.StreetName,
			PostalCode:   loc.PostalCode,
		})
		if geoErr != nil {
			s.logg.Warn(s.logg.WithField(ctx, "postal_code", loc.PostalCode), "geocoding failed, storing location without coordinates")
			latitude, longitude = nil, nil
		} else if coords != nil {
			latitude = &coords.Latitude
			longitude = &coords.Longitude
		} else {
			latitude, longitude = nil, nil
		}
	}

	record := &models.Location{
		Latitude:      latitude,
		Longitude:     longitude,
		StreetNumber:  loc.StreetNumber,
		StreetName:    loc.StreetName,
		PostalCode:    loc.PostalCode,
		City:          loc.City,
		StateProvince: loc.StateProvince,
		Country:       loc.Country,
	}
	if err := repo.CreateLocation(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create location")
	}
	return &record.ID, nil
}
