package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
)

// ListBookings fetches the role-scoped booking queue. A non-nil regionID
// narrows the admin view to one region.
func (c *Client) ListBookings(ctx context.Context, regionID *int64) ([]Booking, error) {
	query := url.Values{}
	if regionID != nil {
		query.Set("region_id", strconv.FormatInt(*regionID, 10))
	}

	var bookings []Booking
	if err := c.doJSON(ctx, http.MethodGet, "/api/bookings", query, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListAgentBookings fetches one agent's booking queue.
func (c *Client) ListAgentBookings(ctx context.Context, agentID int64) ([]Booking, error) {
	var bookings []Booking
	path := fmt.Sprintf("/api/agents/%d/bookings", agentID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetBooking fetches a single booking.
func (c *Client) GetBooking(ctx context.Context, bookingID int64) (*Booking, error) {
	var booking Booking
	path := fmt.Sprintf("/api/bookings/%d", bookingID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// CreateBooking creates a booking from the console.
func (c *Client) CreateBooking(ctx context.Context, input CreateBookingInput) (*Booking, error) {
	var booking Booking
	if err := c.doJSON(ctx, http.MethodPost, "/api/bookings", nil, input, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBooking applies a partial reschedule or status change.
func (c *Client) UpdateBooking(ctx context.Context, bookingID int64, input UpdateBookingInput) (*Booking, error) {
	var booking Booking
	path := fmt.Sprintf("/api/bookings/%d", bookingID)
	if err := c.doJSON(ctx, http.MethodPut, path, nil, input, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// AssignBooking hands a booking to an agent, to the calling dispatcher, or
// back to the unassigned pool. AgentID is consulted only for TargetAgent.
func (c *Client) AssignBooking(ctx context.Context, bookingID int64, target AssignmentTarget, agentID *int64) (*Booking, error) {
	body := map[string]any{}
	switch target {
	case TargetAgent:
		if agentID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "agent id is required to assign an agent")
		}
		body["agentId"] = *agentID
	case TargetSelf:
		body["assign_to_self"] = true
	case TargetUnassigned:
		body["unassign"] = true
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown assignment target").
			WithDetails(map[string]any{"target": string(target)})
	}

	var booking Booking
	path := fmt.Sprintf("/api/bookings/%d", bookingID)
	if err := c.doJSON(ctx, http.MethodPut, path, nil, body, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// DeleteBooking removes a booking.
func (c *Client) DeleteBooking(ctx context.Context, bookingID int64) error {
	path := fmt.Sprintf("/api/bookings/%d", bookingID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

// SaveDisposition records the outcome of a completed booking.
func (c *Client) SaveDisposition(ctx context.Context, input SaveDispositionInput) (*Disposition, error) {
	var disposition Disposition
	if err := c.doJSON(ctx, http.MethodPost, "/api/disposition", nil, input, &disposition); err != nil {
		return nil, err
	}
	return &disposition, nil
}
