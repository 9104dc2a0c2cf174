package dispositions

import (
	"context"

	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"gorm.io/gorm"
)

// ListFilter narrows the disposition listing. Dispositions are read through
// the bookings that carry them.
type ListFilter struct {
	BookingID *int64
	AgentID   *int64
}

// Repository is the persistence surface for dispositions and their catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindBooking(ctx context.Context, id int64) (*models.Booking, error)
	FindBookingByDisposition(ctx context.Context, dispositionID int64) (*models.Booking, error)
	ListDispositions(ctx context.Context, filter ListFilter) ([]models.Booking, error)

	CreateDisposition(ctx context.Context, disposition *models.Disposition) error
	LinkBooking(ctx context.Context, bookingID, dispositionID int64) error
	UnlinkBooking(ctx context.Context, dispositionID int64) error
	DeleteDisposition(ctx context.Context, dispositionID int64) error

	FindType(ctx context.Context, code string) (*models.DispositionType, error)
	ListTypes(ctx context.Context) ([]models.DispositionType, error)
	CreateType(ctx context.Context, record *models.DispositionType) error
	UpdateType(ctx context.Context, code, description string) error
	DeleteType(ctx context.Context, code string) error
	CountByType(ctx context.Context, code string) (int64, error)
}
