package apiclient

import (
	"github.com/fieldline/fieldline-backend/pkg/enums"
	"github.com/fieldline/fieldline-backend/pkg/geo"
)

// Identity is the authenticated console user returned by login and verify.
type Identity struct {
	ID    int64  `json:"id"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Booking mirrors the API booking projection. Pointer fields are absent when
// the backing record has no value.
type Booking struct {
	BookingID   int64  `json:"bookingId"`
	BookingDate string `json:"booking_date"`
	BookingTime string `json:"booking_time"`
	Status      string `json:"status"`

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

// Agent is one availability search candidate.
type Agent struct {
	AgentID            int64   `json:"agentId"`
	Name               string  `json:"name"`
	Distance           float64 `json:"distance"`
	AvailabilityStatus string  `json:"availability_status"`
	UnavailableReason  *string `json:"unavailable_reason"`
	TeamID             *int64  `json:"team_id,omitempty"`
}

// DisplayDistanceKm returns the whole-kilometer distance shown to operators.
// The ceiling guarantees an agent is never presented closer than they are.
func (a Agent) DisplayDistanceKm() int {
	return geo.DisplayKm(a.Distance)
}

// IsAvailable reports whether the agent can be offered for assignment. The
// search falls back to a mixed diagnostic list when nobody is free, so the
// status must be checked before assigning.
func (a Agent) IsAvailable() bool {
	return enums.AvailabilityStatus(a.AvailabilityStatus).IsAvailable()
}

// AssignableAgents narrows search results to the agents an operator may
// assign, preserving the server's ranking order.
func AssignableAgents(agents []Agent) []Agent {
	assignable := make([]Agent, 0, len(agents))
	for _, agent := range agents {
		if agent.IsAvailable() {
			assignable = append(assignable, agent)
		}
	}
	return assignable
}

// LocationInput is the address block of a booking creation payload.
type LocationInput struct {
	StreetNumber  string   `json:"street_number"`
	StreetName    string   `json:"street_name"`
	PostalCode    string   `json:"postal_code"`
	City          string   `json:"city"`
	StateProvince string   `json:"state_province"`
	Country       string   `json:"country"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

// CustomerInput is the customer block of a booking creation payload.
type CustomerInput struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// BookingInput is the scheduling block of a booking creation payload.
type BookingInput struct {
	AgentID     *int64 `json:"agentId,omitempty"`
	BookingDate string `json:"booking_date"`
	BookingTime string `json:"booking_time"`
	RegionID    *int64 `json:"region_id,omitempty"`
}

// CreateBookingInput is the full console booking creation payload.
type CreateBookingInput struct {
	Location LocationInput `json:"location"`
	Customer CustomerInput `json:"customer"`
	Booking  BookingInput  `json:"booking"`
}

// UpdateBookingInput carries a partial booking update. Nil fields are left
// unchanged server-side.
type UpdateBookingInput struct {
	BookingDate *string `json:"booking_date,omitempty"`
	BookingTime *string `json:"booking_time,omitempty"`
	Status      *string `json:"status,omitempty"`
	RegionID    *int64  `json:"region_id,omitempty"`
}

// AssignmentTarget names who a booking is handed to.
type AssignmentTarget string

const (
	TargetAgent      AssignmentTarget = "agent"
	TargetSelf       AssignmentTarget = "self"
	TargetUnassigned AssignmentTarget = "unassigned"
)

// SearchQuery parameterizes an availability search.
type SearchQuery struct {
	Latitude    float64
	Longitude   float64
	BookingDate string
	BookingTime string
}

// Disposition is one saved visit outcome.
type Disposition struct {
	DispositionID int64  `json:"dispositionId"`
	TypeCode      string `json:"typeCode"`
	Description   string `json:"description"`
	Note          string `json:"note"`
	BookingID     *int64 `json:"bookingId"`
}

// SaveDispositionInput records the outcome of a completed booking.
type SaveDispositionInput struct {
	BookingID       int64  `json:"bookingId"`
	DispositionType string `json:"dispositionType"`
	Note            string `json:"note,omitempty"`
}
