package agents

import (
	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"github.com/fieldline/fieldline-backend/pkg/enums"
)

// LocationInput is an optional street address attached to a staff profile.
type LocationInput struct {
	StreetNumber  string   `json:"street_number" validate:"required"`
	StreetName    string   `json:"street_name" validate:"required"`
	City          string   `json:"city" validate:"required"`
	StateProvince string   `json:"state_province" validate:"required"`
	PostalCode    string   `json:"postal_code" validate:"required"`
	Country       string   `json:"country"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

// CreateAgentInput provisions a field agent account.
type CreateAgentInput struct {
	Name     string         `json:"name" validate:"required"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=8"`
	Phone    *string        `json:"phone"`
	TeamID   *int64         `json:"team_id"`
	Location *LocationInput `json:"location"`

	ActorRole enums.Role
}

// CreateDispatcherInput provisions a dispatcher account.
type CreateDispatcherInput struct {
	Name     string         `json:"name" validate:"required"`
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=8"`
	Phone    *string        `json:"phone"`
	TeamID   *int64         `json:"team_id"`
	Location *LocationInput `json:"location"`

	ActorRole enums.Role
}

// GetAgentInput identifies a single agent read.
type GetAgentInput struct {
	AgentID int64

	ActorID   int64
	ActorRole enums.Role
}

// AgentView is the API projection of a field agent profile.
type AgentView struct {
	ID        int64    `json:"agentId"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     *string  `json:"phone"`
	TeamID    *int64   `json:"team_id"`
	Address   *string  `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// DispatcherView is the API projection of a dispatcher profile.
type DispatcherView struct {
	ID      int64   `json:"dispatcherId"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	TeamID  *int64  `json:"team_id"`
	Address *string `json:"address"`
}

// NewAgentView projects a field agent record.
func NewAgentView(record models.FieldAgent) AgentView {
	view := AgentView{
		ID:     record.ID,
		Name:   record.Name,
		Email:  record.Email,
		Phone:  record.Phone,
		TeamID: record.TeamID,
	}
	if record.Location != nil {
		address := record.Location.Address()
		view.Address = &address
		view.Latitude = record.Location.Latitude
		view.Longitude = record.Location.Longitude
	}
	return view
}

// NewAgentViews projects field agent records.
func NewAgentViews(records []models.FieldAgent) []AgentView {
	views := make([]AgentView, 0, len(records))
	for _, record := range records {
		views = append(views, NewAgentView(record))
	}
	return views
}

// NewDispatcherView projects a dispatcher record.
func NewDispatcherView(record models.Dispatcher) DispatcherView {
	view := DispatcherView{
		ID:     record.ID,
		Name:   record.Name,
		Email:  record.Email,
		Phone:  record.Phone,
		TeamID: record.TeamID,
	}
	if record.Location != nil {
		address := record.Location.Address()
		view.Address = &address
	}
	return view
}

// NewDispatcherViews projects dispatcher records.
func NewDispatcherViews(records []models.Dispatcher) []DispatcherView {
	views := make([]DispatcherView, 0, len(records))
	for _, record := range records {
		views = append(views, NewDispatcherView(record))
	}
	return views
}
