package regions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"github.com/fieldline/fieldline-backend/pkg/enums"
	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
	"github.com/fieldline/fieldline-backend/pkg/logger"
	"gorm.io/gorm"
)

// Service manages the region catalog dispatch scoping is built on.
type Service interface {
	List(ctx context.Context) ([]RegionView, error)
	Create(ctx context.Context, input CreateInput) (*RegionView, error)
	Update(ctx context.Context, input UpdateInput) (*RegionView, error)
	Delete(ctx context.Context, input DeleteInput) (string, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the region service dependencies.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("regions repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]RegionView, error) {
	records, err := s.repo.ListRegions(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list regions")
	}
	return NewRegionViews(records), nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*RegionView, error) {
	if input.ActorRole != enums.RoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role may not manage regions")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "region name is required")
	}

	if _, err := s.repo.FindRegionByName(ctx, name); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "region name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load region")
	}

	record := &models.Region{Name: name, IsGlobal: input.IsGlobal}
	if err := s.repo.CreateRegion(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create region")
	}

	view := NewRegionView(*record)
	return &view, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*RegionView, error) {
	if input.ActorRole != enums.RoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role may not manage regions")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "region name is required")
	}

	record, err := s.repo.FindRegion(ctx, input.RegionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "region not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load region")
	}

	if existing, err := s.repo.FindRegionByName(ctx, name); err == nil {
		if existing.ID != record.ID {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "region name already exists")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load region")
	}

	if err := s.repo.UpdateRegionName(ctx, record.ID, name); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update region")
	}

	record.Name = name
	view := NewRegionView(*record)
	return &view, nil
}

func (s *service) Delete(ctx context.Context, input DeleteInput) (string, error) {
	if input.ActorRole != enums.RoleAdmin {
		return "", pkgerrors.New(pkgerrors.CodeForbidden, "role may not manage regions")
	}

	record, err := s.repo.FindRegion(ctx, input.RegionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "region not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load region")
	}

	// The global region is the creation default; removing it would leave
	// new bookings without a home.
	if record.IsGlobal {
		return "", pkgerrors.New(pkgerrors.CodeConflict, "cannot delete a global region")
	}

	teams, err := s.repo.CountTeams(ctx, record.ID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count teams")
	}
	bookings, err := s.repo.CountBookings(ctx, record.ID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count bookings")
	}
	if teams > 0 || bookings > 0 {
		return "", pkgerrors.New(pkgerrors.CodeConflict, "region is still referenced by teams or bookings").
			WithDetails(map[string]any{"teams": teams, "bookings": bookings})
	}

	if err := s.repo.DeleteRegion(ctx, record.ID); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete region")
	}

	return fmt.Sprintf("Region '%s' deleted successfully", record.Name), nil
}
