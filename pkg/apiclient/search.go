package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
)

// SearchAgents runs the availability search. The endpoint historically
// returned a bare array; newer deployments wrap it in the standard envelope,
// so both shapes are accepted. Anything else is a dependency error, never a
// silently empty result.
func (c *Client) SearchAgents(ctx context.Context, query SearchQuery) ([]Agent, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(query.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(query.Longitude, 'f', -1, 64))
	params.Set("booking_date", query.BookingDate)
	params.Set("booking_time", query.BookingTime)

	payload, err := c.do(ctx, http.MethodGet, "/api/search", params, nil)
	if err != nil {
		return nil, err
	}
	return normalizeSearchResponse(payload)
}

func normalizeSearchResponse(payload []byte) ([]Agent, error) {
	var bare []Agent
	if err := json.Unmarshal(payload, &bare); err == nil {
		return bare, nil
	}

	var wrapped struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &wrapped); err == nil && wrapped.Success && len(wrapped.Data) > 0 {
		var agents []Agent
		if err := json.Unmarshal(wrapped.Data, &agents); err == nil {
			return agents, nil
		}
	}

	return nil, pkgerrors.New(pkgerrors.CodeDependency, "unrecognized search response shape")
}
