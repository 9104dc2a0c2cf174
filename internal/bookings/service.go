package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldline/fieldline-backend/internal/notifications"
	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"github.com/fieldline/fieldline-backend/pkg/enums"
	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
	"github.com/fieldline/fieldline-backend/pkg/geo"
	"github.com/fieldline/fieldline-backend/pkg/logger"
	"gorm.io/gorm"
)

// GlobalRegionWarning is returned when a call-center booking targets the
// global region.
const GlobalRegionWarning = "Warning: Global region selected. This appointment will be visible to all teams, which is not recommended for optimal workflow."

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type geocoder interface {
	Geocode(ctx context.Context, query geo.GeocodeQuery) (*geo.Coordinates, error)
}

// Service defines booking lifecycle operations.
type Service interface {
	List(ctx context.Context, input ListInput) ([]BookingView, error)
	ListForAgent(ctx context.Context, input ListForAgentInput) ([]BookingView, error)
	Get(ctx context.Context, input GetInput) (*BookingView, error)
	Create(ctx context.Context, input CreateInput) (*BookingView, error)
	CreateCallCenter(ctx context.Context, input CallCenterCreateInput) (*CallCenterResult, error)
	Update(ctx context.Context, input UpdateInput) (*BookingView, error)
	Assign(ctx context.Context, input AssignInput) (*BookingView, error)
	Delete(ctx context.Context, input DeleteInput) (string, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	events   notifications.Publisher
	geocoder geocoder
	logg     *logger.Logger
}

// NewService wires the booking service dependencies.
func NewService(repo Repository, tx txRunner, events notifications.Publisher, geocoder geocoder, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bookings repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if events == nil {
		return nil, fmt.Errorf("event publisher required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		events:   events,
		geocoder: geocoder,
		logg:     logg,
	}, nil
}

func (s *service) List(ctx context.Context, input ListInput) ([]BookingView, error) {
	if input.ActorRole == enums.RoleFieldAgent {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "agents may only view their own bookings")
	}

	filter := ListFilter{}
	switch input.ActorRole {
	case enums.RoleDispatcher:
		regionID, err := s.repo.DispatcherRegionID(ctx, input.ActorID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve dispatcher region")
		}
		if regionID != nil {
			filter.RegionID = regionID
			filter.IncludeGlobal = true
		}
	case enums.RoleAdmin:
		if input.RegionID != nil {
			filter.RegionID = input.RegionID
		}
	}

	records, err := s.repo.ListBookings(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bookings")
	}
	return NewBookingViews(records), nil
}

func (s *service) ListForAgent(ctx context.Context, input ListForAgentInput) ([]BookingView, error) {
	if input.AgentID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "agent id required")
	}
	if input.ActorRole == enums.RoleFieldAgent && input.ActorID != input.AgentID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "agents may only view their own bookings")
	}

	if _, err := s.repo.FindAgent(ctx, input.AgentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "agent not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load agent")
	}

	agentID := input.AgentID
	records, err := s.repo.ListBookings(ctx, ListFilter{AgentID: &agentID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list agent bookings")
	}
	return NewBookingViews(records), nil
}

func (s *service) Get(ctx context.Context, input GetInput) (*BookingView, error) {
	if input.BookingID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id required")
	}

	booking, err := s.repo.FindBooking(ctx, input.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}

	// Agents only see bookings assigned to them; anything else reads as
	// missing rather than forbidden.
	if input.ActorRole == enums.RoleFieldAgent {
		if booking.AgentID == nil || *booking.AgentID != input.ActorID {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
	}

	view := NewBookingView(*booking)
	return &view, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*BookingView, error) {
	if !input.ActorRole.CanAssign() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role may not create bookings")
	}
	if input.Booking.BookingDate == "" || input.Booking.BookingTime == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking date and time are required")
	}

	var bookingID int64
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		regionID, err := s.resolveRegion(ctx, repo, input.Booking.RegionID)
		if err != nil {
			return err
		}

		customerID, err := s.ensureCustomer(ctx, repo, input.Customer, input.Location)
		if err != nil {
			return err
		}

		if input.Booking.AgentID != nil {
			if _, err := repo.FindAgent(ctx, *input.Booking.AgentID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeValidation, "invalid agent id")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load agent")
			}
		}

		booking := &models.Booking{
			CustomerID:  customerID,
			AgentID:     input.Booking.AgentID,
			RegionID:    regionID,
			BookingDate: input.Booking.BookingDate,
			BookingTime: input.Booking.BookingTime,
			Status:      enums.BookingStatusScheduled,
		}
		if err := repo.CreateBooking(ctx, booking); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking")
		}
		bookingID = booking.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.repo.FindBooking(ctx, bookingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload booking")
	}

	s.publishEvent(ctx, enums.BookingEventCreated, created)

	view := NewBookingView(*created)
	return &view, nil
}

func (s *service) CreateCallCenter(ctx context.Context, input CallCenterCreateInput) (*CallCenterResult, error) {
	if input.CallCenterAgent.Name == "" || input.CallCenterAgent.Email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "call center agent name and email are required")
	}
	if input.Booking.RegionID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "region selection is required for all appointments")
	}
	if input.Booking.BookingDate == "" || input.Booking.BookingTime == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking date and time are required")
	}

	var (
		bookingID int64
		warning   string
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		region, err := repo.FindRegion(ctx, *input.Booking.RegionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "invalid region id")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load region")
		}
		if region.IsGlobal {
			warning = GlobalRegionWarning
		}

		customerID, err := s.ensureCustomer(ctx, repo, input.Customer, input.Location)
		if err != nil {
			return err
		}

		name := input.CallCenterAgent.Name
		email := input.CallCenterAgent.Email
		booking := &models.Booking{
			CustomerID:           customerID,
			RegionID:             region.ID,
			BookingDate:          input.Booking.BookingDate,
			BookingTime:          input.Booking.BookingTime,
			Status:               enums.BookingStatusScheduled,
			CallCenterAgentName:  &name,
			CallCenterAgentEmail: &email,
		}
		if err := repo.CreateBooking(ctx, booking); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create booking")
		}
		bookingID = booking.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.repo.FindBooking(ctx, bookingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload booking")
	}

	s.publishEvent(ctx, enums.BookingEventCreated, created)

	view := NewBookingView(*created)
	return &CallCenterResult{Booking: &view, Warning: warning}, nil
}

func (s *service) Update(ctx context.Context, input UpdateInput) (*BookingView, error) {
	if input.BookingID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id required")
	}

	booking, err := s.repo.FindBooking(ctx, input.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}
	if input.ActorRole == enums.RoleFieldAgent {
		if booking.AgentID == nil || *booking.AgentID != input.ActorID {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
	}

	updates := map[string]any{}
	if input.BookingDate != nil && *input.BookingDate != "" {
		updates["booking_date"] = *input.BookingDate
	}
	if input.BookingTime != nil && *input.BookingTime != "" {
		updates["booking_time"] = *input.BookingTime
	}
	if input.Status != nil {
		if err := ValidateTransition(booking.Status, *input.Status); err != nil {
			return nil, err
		}
		updates["status"] = *input.Status
	}
	if input.RegionSet {
		if !input.ActorRole.CanChangeRegion() {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only admins may change a booking's region")
		}
		if input.RegionID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "region id required")
		}
		if _, err := s.repo.FindRegion(ctx, *input.RegionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid region id")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load region")
		}
		updates["region_id"] = *input.RegionID
	}

	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no valid fields to update")
	}

	if err := s.repo.UpdateBooking(ctx, input.BookingID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update booking")
	}

	updated, err := s.repo.FindBooking(ctx, input.BookingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload booking")
	}

	s.publishEvent(ctx, enums.BookingEventUpdated, updated)

	view := NewBookingView(*updated)
	return &view, nil
}

func (s *service) Assign(ctx context.Context, input AssignInput) (*BookingView, error) {
	if input.BookingID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "booking id required")
	}
	if !input.ActorRole.CanAssign() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role may not assign bookings")
	}

	if _, err := s.repo.FindBooking(ctx, input.BookingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}

	// One update sets the new assignee and clears the other field, so a
	// booking never holds both an agent and a dispatcher.
	updates := map[string]any{}
	switch input.Target {
	case TargetAgent:
		if input.AgentID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "agent id required")
		}
		if _, err := s.repo.FindAgent(ctx, *input.AgentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid agent id")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load agent")
		}
		updates["agent_id"] = *input.AgentID
		updates["dispatcher_id"] = nil
	case TargetSelf:
		if !input.ActorRole.CanSelfAssign() {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only dispatchers may self-assign")
		}
		updates["agent_id"] = nil
		updates["dispatcher_id"] = input.ActorID
	case TargetUnassigned:
		updates["agent_id"] = nil
		updates["dispatcher_id"] = nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid assignment target")
	}

	if err := s.repo.UpdateBooking(ctx, input.BookingID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update assignment")
	}

	updated, err := s.repo.FindBooking(ctx, input.BookingID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload booking")
	}

	s.publishEvent(ctx, enums.BookingEventAssigned, updated)

	view := NewBookingView(*updated)
	return &view, nil
}

func (s *service) Delete(ctx context.Context, input DeleteInput) (string, error) {
	if input.BookingID <= 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "booking id required")
	}
	if !input.ActorRole.CanDelete() {
		return "", pkgerrors.New(pkgerrors.CodeForbidden, "role may not delete bookings")
	}

	booking, err := s.repo.FindBooking(ctx, input.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "booking not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load booking")
	}

	if err := s.repo.DeleteBooking(ctx, input.BookingID); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete booking")
	}

	s.publishEvent(ctx, enums.BookingEventDeleted, booking)

	customerName := ""
	if booking.Customer != nil {
		customerName = booking.Customer.Name
	}
	return fmt.Sprintf("Booking for %s on %s deleted successfully", customerName, booking.BookingDate), nil
}

// resolveRegion validates an explicit region or falls back to the global
// default when none is given.
func (s *service) resolveRegion(ctx context.Context, repo Repository, regionID *int64) (int64, error) {
	if regionID != nil {
		region, err := repo.FindRegion(ctx, *regionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid region id")
			}
			return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load region")
		}
		return region.ID, nil
	}

	region, err := repo.FindGlobalRegion(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, pkgerrors.New(pkgerrors.CodeDependency, "default region missing")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load default region")
	}
	return region.ID, nil
}

// ensureCustomer deduplicates the location by its address fields and the
// customer by email, creating either when missing. Missing coordinates are
// geocoded just in time; a no-match leaves both coordinates unset.
func (s *service) ensureCustomer(ctx context.Context, repo Repository, customer CustomerInput, loc LocationInput) (int64, error) {
	if customer.Email == "" || customer.Name == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "customer name and email are required")
	}

	existing, err := repo.FindCustomerByEmail(ctx, customer.Email)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup customer")
	}

	locationID, err := s.ensureLocation(ctx, repo, loc)
	if err != nil {
		return 0, err
	}

	record := &models.Customer{
		Name:       customer.Name,
		Email:      customer.Email,
		Phone:      customer.Phone,
		LocationID: &locationID,
	}
	if err := repo.CreateCustomer(ctx, record); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}
	return record.ID, nil
}

func (s *service) ensureLocation(ctx context.Context, repo Repository, loc LocationInput) (int64, error) {
	existing, err := repo.FindLocation(ctx, loc)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup location")
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
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create location")
	}
	return record.ID, nil
}

// publishEvent emits a booking event best-effort; publish failures are
// logged, never surfaced to the caller.
func (s *service) publishEvent(ctx context.Context, eventType enums.BookingEventType, booking *models.Booking) {
	event := notifications.BookingEvent{
		Type:        eventType,
		BookingID:   booking.ID,
		BookingDate: booking.BookingDate,
		BookingTime: booking.BookingTime,
		Status:      booking.Status,
		OccurredAt:  time.Now().UTC(),
	}
	if booking.Customer != nil {
		event.CustomerName = booking.Customer.Name
		if booking.Customer.Email != "" {
			email := booking.Customer.Email
			event.CustomerEmail = &email
		}
		event.CustomerPhone = booking.Customer.Phone
	}
	if booking.Agent != nil {
		name := booking.Agent.Name
		event.AgentName = &name
		if booking.Agent.Email != "" {
			email := booking.Agent.Email
			event.AgentEmail = &email
		}
		event.AgentPhone = booking.Agent.Phone
	}

	if err := s.events.PublishBookingEvent(ctx, event); err != nil {
		s.logg.Error(s.logg.WithBookingID(ctx, booking.ID), "booking event publish failed", err)
	}
}
