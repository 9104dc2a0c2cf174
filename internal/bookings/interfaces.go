package bookings

import (
	"context"

	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"gorm.io/gorm"
)

// ListFilter scopes the booking collection query. RegionID with IncludeGlobal
// is the dispatcher view; AgentID is the per-agent view; all nil is the admin
// view.
type ListFilter struct {
	RegionID      *int64
	IncludeGlobal bool
	AgentID       *int64
}

// Repository defines persistence operations for bookings and the records a
// booking hangs off of.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindLocation(ctx context.Context, loc LocationInput) (*models.Location, error)
	CreateLocation(ctx context.Context, loc *models.Location) error
	FindCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, customer *models.Customer) error

	FindRegion(ctx context.Context, regionID int64) (*models.Region, error)
	FindGlobalRegion(ctx context.Context) (*models.Region, error)
	DispatcherRegionID(ctx context.Context, dispatcherID int64) (*int64, error)

	FindAgent(ctx context.Context, agentID int64) (*models.FieldAgent, error)
	FindDispatcher(ctx context.Context, dispatcherID int64) (*models.Dispatcher, error)

	CreateBooking(ctx context.Context, booking *models.Booking) error
	FindBooking(ctx context.Context, bookingID int64) (*models.Booking, error)
	ListBookings(ctx context.Context, filter ListFilter) ([]models.Booking, error)
	UpdateBooking(ctx context.Context, bookingID int64, updates map[string]any) error
	DeleteBooking(ctx context.Context, bookingID int64) error
}
