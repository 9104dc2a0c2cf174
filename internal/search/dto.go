package search

import "github.com/fieldline/fieldline-backend/pkg/enums"

// Query asks for agents who could serve a booking at one place and time.
type Query struct {
	Latitude    float64
	Longitude   float64
	BookingDate string
	BookingTime string
}

// AgentCandidate is one ranked search result. Distance carries one decimal
// of precision; display-side rounding is the caller's concern.
type AgentCandidate struct {
	AgentID            int64                    `json:"agentId"`
	Name               string                   `json:"name"`
	Distance           float64                  `json:"distance"`
	AvailabilityStatus enums.AvailabilityStatus `json:"availability_status"`
	UnavailableReason  *string                  `json:"unavailable_reason"`
	TeamID             *int64                   `json:"team_id,omitempty"`
}
