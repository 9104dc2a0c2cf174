package regions

import (
	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"github.com/fieldline/fieldline-backend/pkg/enums"
)

// CreateInput adds a region.
type CreateInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	IsGlobal bool   `json:"is_global"`

	ActorRole enums.Role
}

// UpdateInput renames a region.
type UpdateInput struct {
	RegionID int64
	Name     string `json:"name" validate:"required,max=100"`

	ActorRole enums.Role
}

// DeleteInput removes a region.
type DeleteInput struct {
	RegionID int64

	ActorRole enums.Role
}

// RegionView is the API projection of a region.
type RegionView struct {
	ID       int64  `json:"regionId"`
	Name     string `json:"name"`
	IsGlobal bool   `json:"is_global"`
}

// NewRegionView projects a region record.
func NewRegionView(record models.Region) RegionView {
	return RegionView{
		ID:       record.ID,
		Name:     record.Name,
		IsGlobal: record.IsGlobal,
	}
}

// NewRegionViews projects region records.
func NewRegionViews(records []models.Region) []RegionView {
	views := make([]RegionView, 0, len(records))
	for _, record := range records {
		views = append(views, NewRegionView(record))
	}
	return views
}
