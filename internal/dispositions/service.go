package dispositions

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"github.com/fieldline/fieldline-backend/pkg/enums"
	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
	"github.com/fieldline/fieldline-backend/pkg/logger"
	"gorm.io/gorm"
)

var typeCodePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service records booking outcomes and manages the disposition-type catalog.
type Service interface {
	Save(ctx context.Context, input SaveInput) (*DispositionView, error)
	List(ctx context.Context, input ListInput) ([]DispositionView, error)
	Get(ctx context.Context, input GetInput) (*DispositionView, error)
	Delete(ctx context.Context, input DeleteInput) (string, error)

	ListTypes(ctx context.Context) ([]TypeView, error)
	CreateType(ctx context.Context, input CreateTypeInput) (*TypeView, error)
	UpdateType(ctx context.Context, input UpdateTypeInput) (*TypeView, error)
	DeleteType(ctx context.Context, input DeleteTypeInput) (string, error)
}

type service struct {
	repo Repository
	tx   txRunner
	logg *logger.Logger
}

// NewService wires the disposition service dependencies.
func NewService(repo Repository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("dispositions repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

func (s *service) Save(ctx context.Context, input SaveInput) (*DispositionView, error) {
	if input.BookingID <= 0 || input.TypeCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id and disposition type are required")
	}

	booking, err := s.repo.FindBooking(ctx, input.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}

	// Agents only record outcomes on their own bookings; anything else
	// reads as missing rather than forbidden.
	if input.ActorRole == enums.RoleFieldAgent {
		if booking.AgentID == nil || *booking.AgentID != input.ActorID {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
	}

	if booking.Status != enums.BookingStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "disposition requires a completed booking").
			WithDetails(map[string]any{"status": booking.Status})
	}

	// The first recorded disposition wins. A second save is rejected
	// outright, never folded into an update.
	if booking.DispositionID != nil {
		return nil, pkgerrors.New(pkgerrors.CodeDuplicate, "disposition already recorded").
			WithDetails(map[string]any{"dispositionId": *booking.DispositionID})
	}

	if _, err := s.repo.FindType(ctx, input.TypeCode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid disposition type")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load disposition type")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		disposition := &models.Disposition{
			TypeCode: input.TypeCode,
			Note:     input.Note,
		}
		if err := repo.CreateDisposition(ctx, disposition); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create disposition")
		}
		if err := repo.LinkBooking(ctx, booking.ID, disposition.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "link disposition")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	saved, err := s.repo.FindBooking(ctx, booking.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload booking")
	}

	view := NewDispositionView(*saved)
	return &view, nil
}

func (s *service) List(ctx context.Context, input ListInput) ([]DispositionView, error) {
	filter := ListFilter{BookingID: input.BookingID}
	if input.ActorRole == enums.RoleFieldAgent {
		agentID := input.ActorID
		filter.AgentID = &agentID
	}

	records, err := s.repo.ListDispositions(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list dispositions")
	}
	return NewDispositionViews(records), nil
}

func (s *service) Get(ctx context.Context, input GetInput) (*DispositionView, error) {
	if input.DispositionID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "disposition id required")
	}

	booking, err := s.repo.FindBookingByDisposition(ctx, input.DispositionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "disposition not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load disposition")
	}

	if input.ActorRole == enums.RoleFieldAgent {
		if booking.AgentID == nil || *booking.AgentID != input.ActorID {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "disposition not found")
		}
	}

	view := NewDispositionView(*booking)
	return &view, nil
}

func (s *service) Delete(ctx context.Context, input DeleteInput) (string, error) {
	if !input.ActorRole.CanDelete() {
		return "", pkgerrors.New(pkgerrors.CodeForbidden, "role may not delete dispositions")
	}
	if input.DispositionID <= 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "disposition id required")
	}

	booking, err := s.repo.FindBookingByDisposition(ctx, input.DispositionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "disposition not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load disposition")
	}

	description := ""
	if booking.Disposition != nil && booking.Disposition.Type != nil {
		description = booking.Disposition.Type.Description
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UnlinkBooking(ctx, input.DispositionID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unlink disposition")
		}
		if err := repo.DeleteDisposition(ctx, input.DispositionID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete disposition")
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Disposition '%s' deleted successfully", description), nil
}

func (s *service) ListTypes(ctx context.Context) ([]TypeView, error) {
	records, err := s.repo.ListTypes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list disposition types")
	}
	return NewTypeViews(records), nil
}

func (s *service) CreateType(ctx context.Context, input CreateTypeInput) (*TypeView, error) {
	if input.ActorRole != enums.RoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role may not manage disposition types")
	}
	if input.TypeCode == "" || strings.TrimSpace(input.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "type code and description are required")
	}
	if !typeCodePattern.MatchString(input.TypeCode) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "type code must be alphanumeric with underscores only")
	}
	if len(input.TypeCode) > 50 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "type code must be 50 characters or less")
	}
	if len(input.Description) > 255 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description must be 255 characters or less")
	}

	code := strings.ToUpper(input.TypeCode)
	if _, err := s.repo.FindType(ctx, code); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "disposition type code already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load disposition type")
	}

	record := &models.DispositionType{
		TypeCode:    code,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.repo.CreateType(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create disposition type")
	}

	view := NewTypeView(*record)
	return &view, nil
}

func (s *service) UpdateType(ctx context.Context, input UpdateTypeInput) (*TypeView, error) {
	if input.ActorRole != enums.RoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role may not manage disposition types")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description is required")
	}
	if len(input.Description) > 255 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description must be 255 characters or less")
	}

	if _, err := s.repo.FindType(ctx, input.TypeCode); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "disposition type not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load disposition type")
	}

	if err := s.repo.UpdateType(ctx, input.TypeCode, strings.TrimSpace(input.Description)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update disposition type")
	}

	updated, err := s.repo.FindType(ctx, input.TypeCode)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload disposition type")
	}

	view := NewTypeView(*updated)
	return &view, nil
}

func (s *service) DeleteType(ctx context.Context, input DeleteTypeInput) (string, error) {
	if input.ActorRole != enums.RoleAdmin {
		return "", pkgerrors.New(pkgerrors.CodeForbidden, "role may not manage disposition types")
	}

	record, err := s.repo.FindType(ctx, input.TypeCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "disposition type not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load disposition type")
	}

	count, err := s.repo.CountByType(ctx, input.TypeCode)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count dispositions")
	}
	if count > 0 {
		return "", pkgerrors.New(pkgerrors.CodeConflict,
			fmt.Sprintf("cannot delete disposition type: currently used by %d disposition(s)", count)).
			WithDetails(map[string]any{"in_use": count})
	}

	if err := s.repo.DeleteType(ctx, input.TypeCode); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete disposition type")
	}

	return fmt.Sprintf("Disposition type '%s' deleted successfully", record.Description), nil
}
