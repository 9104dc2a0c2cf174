package dispositions

import (
	"time"

	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"github.com/fieldline/fieldline-backend/pkg/enums"
)

// SaveInput captures the disposition submitted when a booking completes.
type SaveInput struct {
	BookingID int64  `json:"bookingId" validate:"required,gt=0"`
	TypeCode  string `json:"dispositionType" validate:"required"`
	Note      string `json:"note"`

	ActorID   int64
	ActorRole enums.Role
}

// ListInput filters the disposition listing.
type ListInput struct {
	BookingID *int64

	ActorID   int64
	ActorRole enums.Role
}

// GetInput identifies a single disposition read.
type GetInput struct {
	DispositionID int64

	ActorID   int64
	ActorRole enums.Role
}

// DeleteInput identifies a disposition removal.
type DeleteInput struct {
	DispositionID int64

	ActorRole enums.Role
}

// CreateTypeInput adds a catalog entry.
type CreateTypeInput struct {
	TypeCode    string `json:"typeCode" validate:"required,max=50"`
	Description string `json:"description" validate:"required,max=255"`

	ActorRole enums.Role
}

// UpdateTypeInput rewrites a catalog entry description.
type UpdateTypeInput struct {
	TypeCode    string
	Description string `json:"description" validate:"required,max=255"`

	ActorRole enums.Role
}

// DeleteTypeInput removes a catalog entry.
type DeleteTypeInput struct {
	TypeCode string

	ActorRole enums.Role
}

// DispositionView is the API projection of a recorded disposition joined
// back to its booking.
type DispositionView struct {
	ID           int64     `json:"dispositionId"`
	TypeCode     string    `json:"typeCode"`
	Description  string    `json:"description"`
	Note         string    `json:"note"`
	BookingID    *int64    `json:"bookingId"`
	CustomerName *string   `json:"customer_name"`
	CreatedAt    time.Time `json:"created_time"`
	UpdatedAt    time.Time `json:"updated_time"`
}

// TypeView is the API projection of a catalog entry.
type TypeView struct {
	TypeCode    string    `json:"typeCode"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_time"`
	UpdatedAt   time.Time `json:"updated_time"`
}

// NewDispositionView projects a booking that carries a disposition. Bookings
// without one produce a zero view and should be filtered out by the caller.
func NewDispositionView(booking models.Booking) DispositionView {
	view := DispositionView{}
	if booking.Disposition == nil {
		return view
	}

	d := booking.Disposition
	view.ID = d.ID
	view.TypeCode = d.TypeCode
	view.Note = d.Note
	view.CreatedAt = d.CreatedAt
	view.UpdatedAt = d.UpdatedAt
	if d.Type != nil {
		view.Description = d.Type.Description
	}

	bookingID := booking.ID
	view.BookingID = &bookingID
	if booking.Customer != nil {
		name := booking.Customer.Name
		view.CustomerName = &name
	}
	return view
}

// NewDispositionViews projects bookings that carry dispositions.
func NewDispositionViews(records []models.Booking) []DispositionView {
	views := make([]DispositionView, 0, len(records))
	for _, record := range records {
		if record.Disposition == nil {
			continue
		}
		views = append(views, NewDispositionView(record))
	}
	return views
}

// NewTypeView projects a catalog entry.
func NewTypeView(record models.DispositionType) TypeView {
	return TypeView{
		TypeCode:    record.TypeCode,
		Description: record.Description,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

// NewTypeViews projects catalog entries.
func NewTypeViews(records []models.DispositionType) []TypeView {
	views := make([]TypeView, 0, len(records))
	for _, record := range records {
		views = append(views, NewTypeView(record))
	}
	return views
}
