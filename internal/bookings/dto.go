package bookings

import (
	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"github.com/fieldline/fieldline-backend/pkg/enums"
)

// LocationInput is the address block of a booking creation payload.
type LocationInput struct {
	StreetNumber  string   `json:"street_number" validate:"required"`
	StreetName    string   `json:"street_name" validate:"required"`
	PostalCode    string   `json:"postal_code" validate:"required"`
	City          string   `json:"city" validate:"required"`
	StateProvince string   `json:"state_province" validate:"required"`
	Country       string   `json:"country" validate:"required"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

// CustomerInput is the customer block of a booking creation payload.
type CustomerInput struct {
	Name  string  `json:"name" validate:"required"`
	Email string  `json:"email" validate:"required,email"`
	Phone *string `json:"phone"`
}

// BookingInput is the scheduling block of a booking creation payload.
type BookingInput struct {
	AgentID     *int64 `json:"agentId"`
	BookingDate string `json:"booking_date" validate:"required"`
	BookingTime string `json:"booking_time" validate:"required"`
	RegionID    *int64 `json:"region_id"`
}

// CreateInput carries everything needed to create a booking.
type CreateInput struct {
	Location LocationInput
	Customer CustomerInput
	Booking  BookingInput

	ActorID   int64
	ActorRole enums.Role
}

// CallCenterAgentInput identifies the intake operator on a call-center booking.
type CallCenterAgentInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// CallCenterCreateInput is the payload accepted on the call-center intake path.
// Region selection is mandatory and the booking is always left unassigned.
type CallCenterCreateInput struct {
	Location        LocationInput
	Customer        CustomerInput
	Booking         BookingInput
	CallCenterAgent CallCenterAgentInput
}

// CallCenterResult wraps the created booking plus an advisory warning when the
// global region was chosen.
type CallCenterResult struct {
	Booking *BookingView
	Warning string
}

// UpdateInput carries the partial booking update fields. Nil means "leave
// unchanged".
type UpdateInput struct {
	BookingID   int64
	BookingDate *string
	BookingTime *string
	Status      *enums.BookingStatus
	RegionID    *int64
	RegionSet   bool

	ActorID   int64
	ActorRole enums.Role
}

// AssignmentTarget names who a booking is handed to.
type AssignmentTarget string

const (
	TargetAgent      AssignmentTarget = "agent"
	TargetSelf       AssignmentTarget = "self"
	TargetUnassigned AssignmentTarget = "unassigned"
)

// AssignInput carries one assignment change. AgentID is required only for
// TargetAgent.
type AssignInput struct {
	BookingID int64
	Target    AssignmentTarget
	AgentID   *int64

	ActorID   int64
	ActorRole enums.Role
}

// ListInput scopes the booking collection query by the caller's role.
type ListInput struct {
	RegionID *int64

	ActorID   int64
	ActorRole enums.Role
}

// ListForAgentInput fetches a single agent's bookings.
type ListForAgentInput struct {
	AgentID int64

	ActorID   int64
	ActorRole enums.Role
}

// GetInput fetches one booking.
type GetInput struct {
	BookingID int64

	ActorID   int64
	ActorRole enums.Role
}

// DeleteInput removes one booking.
type DeleteInput struct {
	BookingID int64

	ActorID   int64
	ActorRole enums.Role
}

// BookingView is the read projection returned by every booking operation.
// Derived fields (names, address, region flags) are computed server-side and
// never written by callers.
type BookingView struct {
	BookingID   int64               `json:"bookingId"`
	BookingDate string              `json:"booking_date"`
	BookingTime string              `json:"booking_time"`
	Status      enums.BookingStatus `json:"status"`

	CustomerName  string  `json:"customer_name"`
	CustomerEmail *string `json:"customer_email,omitempty"`
	CustomerPhone *string `json:"customer_phone,omitempty"`

	AgentID        *int64  `json:"agentId"`
	AgentName      *string `json:"agent_name"`
	DispatcherID   *int64  `json:"dispatcherId"`
	DispatcherName *string `json:"dispatcher_name"`
	AssignedTo     *string `json:"assigned_to"`

	DispositionID          *int64  `json:"disposition_id"`
	DispositionCode        *string `json:"disposition_code"`
	DispositionNote        *string `json:"disposition_note"`
	DispositionDescription *string `json:"disposition_description"`

	CustomerLatitude  *float64 `json:"customer_latitude"`
	CustomerLongitude *float64 `json:"customer_longitude"`
	CustomerAddress   *string  `json:"customer_address"`

	RegionID       int64   `json:"regionId"`
	RegionName     *string `json:"region_name"`
	RegionIsGlobal bool    `json:"region_is_global"`

	CallCenterAgentName  *string `json:"call_center_agent_name"`
	CallCenterAgentEmail *string `json:"call_center_agent_email"`
}

// NewBookingView builds the projection from a loaded booking record.
func NewBookingView(booking models.Booking) BookingView {
	view := BookingView{
		BookingID:            booking.ID,
		BookingDate:          booking.BookingDate,
		BookingTime:          booking.BookingTime,
		Status:               booking.Status,
		AgentID:              booking.AgentID,
		DispatcherID:         booking.DispatcherID,
		RegionID:             booking.RegionID,
		CallCenterAgentName:  booking.CallCenterAgentName,
		CallCenterAgentEmail: booking.CallCenterAgentEmail,
	}

	if booking.Customer != nil {
		view.CustomerName = booking.Customer.Name
		if booking.Customer.Email != "" {
			email := booking.Customer.Email
			view.CustomerEmail = &email
		}
		view.CustomerPhone = booking.Customer.Phone
		if booking.Customer.Location != nil {
			loc := booking.Customer.Location
			view.CustomerLatitude = loc.Latitude
			view.CustomerLongitude = loc.Longitude
			address := loc.Address()
			view.CustomerAddress = &address
		}
	}

	if booking.Agent != nil {
		name := booking.Agent.Name
		view.AgentName = &name
		view.AssignedTo = &name
	}
	if booking.Dispatcher != nil {
		name := booking.Dispatcher.Name
		view.DispatcherName = &name
		if view.AssignedTo == nil {
			view.AssignedTo = &name
		}
	}

	if booking.Region != nil {
		name := booking.Region.Name
		view.RegionName = &name
		view.RegionIsGlobal = booking.Region.IsGlobal
	}

	if booking.Disposition != nil {
		view.DispositionID = &booking.Disposition.ID
		code := booking.Disposition.TypeCode
		view.DispositionCode = &code
		note := booking.Disposition.Note
		view.DispositionNote = &note
		if booking.Disposition.Type != nil {
			desc := booking.Disposition.Type.Description
			view.DispositionDescription = &desc
		}
	}

	return view
}

// NewBookingViews maps a slice of booking records.
func NewBookingViews(records []models.Booking) []BookingView {
	views := make([]BookingView, 0, len(records))
	for _, record := range records {
		views = append(views, NewBookingView(record))
	}
	return views
}
