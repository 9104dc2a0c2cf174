package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"github.com/fieldline/fieldline-backend/pkg/enums"
	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
	"github.com/fieldline/fieldline-backend/pkg/geo"
	"github.com/fieldline/fieldline-backend/pkg/logger"
)

// conflictWindow is how far either side of the requested time an existing
// booking blocks the agent.
const conflictWindow = time.Hour

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// Service ranks agents for a booking slot.
type Service interface {
	Search(ctx context.Context, query Query) ([]AgentCandidate, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the search service dependencies.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("search repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// Search runs a strict availability pass first: agents must have an approved
// timesheet slot covering the requested time, no approved time-off, and no
// booking within the conflict window. When the strict pass is empty it falls
// back to returning every located agent with a diagnostic status so the
// caller can see why nobody qualified.
func (s *service) Search(ctx context.Context, query Query) ([]AgentCandidate, error) {
	bookingDay, err := time.Parse(dateLayout, query.BookingDate)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid booking date").
			WithDetails(map[string]any{"booking_date": query.BookingDate})
	}
	slot, err := time.Parse(timeLayout, query.BookingTime)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid booking time").
			WithDetails(map[string]any{"booking_time": query.BookingTime})
	}

	dayOfWeek := strings.ToLower(bookingDay.Weekday().String())
	weekStart := mondayOf(bookingDay).Format(dateLayout)
	fromTime, toTime := conflictBounds(slot)

	agents, err := s.repo.ListLocatedAgents(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list agents")
	}
	timeOff, err := s.repo.ApprovedTimeOff(ctx, query.BookingDate)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load time-off requests")
	}
	timesheets, err := s.repo.TimesheetsForWeek(ctx, weekStart)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load timesheets")
	}
	bookedIDs, err := s.repo.BookedAgentIDs(ctx, query.BookingDate, fromTime, toTime)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load conflicting bookings")
	}

	timeOffByAgent := map[int64]*models.TimeOffRequest{}
	for i := range timeOff {
		request := &timeOff[i]
		if coversTime(request, query.BookingTime) {
			timeOffByAgent[request.AgentID] = request
		}
	}
	timesheetByAgent := map[int64]*models.Timesheet{}
	for i := range timesheets {
		timesheetByAgent[timesheets[i].AgentID] = &timesheets[i]
	}
	booked := map[int64]bool{}
	for _, id := range bookedIDs {
		booked[id] = true
	}

	candidates := make([]AgentCandidate, 0, len(agents))
	for _, agent := range agents {
		if agent.Location == nil || !agent.Location.HasCoordinates() {
			continue
		}
		status, reason := availability(agent.ID, timeOffByAgent, timesheetByAgent, dayOfWeek, query.BookingTime)
		distance := geo.RoundKm(geo.HaversineKm(
			query.Latitude, query.Longitude,
			*agent.Location.Latitude, *agent.Location.Longitude,
		))
		candidates = append(candidates, AgentCandidate{
			AgentID:            agent.ID,
			Name:               agent.Name,
			Distance:           distance,
			AvailabilityStatus: status,
			UnavailableReason:  reason,
			TeamID:             agent.TeamID,
		})
	}

	strict := make([]AgentCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.AvailabilityStatus.IsAvailable() && !booked[candidate.AgentID] {
			strict = append(strict, candidate)
		}
	}
	if len(strict) > 0 {
		sort.SliceStable(strict, func(i, j int) bool {
			return strict[i].Distance < strict[j].Distance
		})
		return strict, nil
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"booking_date": query.BookingDate,
		"booking_time": query.BookingTime,
	}), "no agents passed strict availability, returning diagnostic list")

	sort.SliceStable(candidates, func(i, j int) bool {
		iAvailable := candidates[i].AvailabilityStatus.IsAvailable()
		jAvailable := candidates[j].AvailabilityStatus.IsAvailable()
		if iAvailable != jAvailable {
			return iAvailable
		}
		return candidates[i].Distance < candidates[j].Distance
	})
	return candidates, nil
}

// availability reproduces the diagnostic precedence: time-off beats a
// missing timesheet beats an unapproved timesheet beats a missing slot.
func availability(
	agentID int64,
	timeOffByAgent map[int64]*models.TimeOffRequest,
	timesheetByAgent map[int64]*models.Timesheet,
	dayOfWeek, bookingTime string,
) (enums.AvailabilityStatus, *string) {
	if request, ok := timeOffByAgent[agentID]; ok {
		reason := "Time-off: Full day"
		if !request.IsFullDay && request.StartTime != nil && request.EndTime != nil {
			reason = fmt.Sprintf("Time-off: %s - %s", *request.StartTime, *request.EndTime)
		}
		return enums.AvailabilityStatusTimeOff, &reason
	}

	timesheet, ok := timesheetByAgent[agentID]
	if !ok {
		reason := "No timesheet submitted"
		return enums.AvailabilityStatusNoTimesheet, &reason
	}
	if timesheet.Status != enums.TimesheetStatusApproved {
		reason := fmt.Sprintf("Timesheet status: %s", timesheet.Status)
		return enums.AvailabilityStatusTimesheetNotApproved, &reason
	}

	for _, slot := range timesheet.Slots {
		if slot.DayOfWeek == dayOfWeek && slot.StartTime <= bookingTime && slot.EndTime >= bookingTime {
			return enums.AvailabilityStatusAvailable, nil
		}
	}
	reason := "Not scheduled for this time"
	return enums.AvailabilityStatusNotScheduled, &reason
}

// coversTime reports whether an approved time-off request blocks the
// requested time of day.
func coversTime(request *models.TimeOffRequest, bookingTime string) bool {
	if request.IsFullDay {
		return true
	}
	if request.StartTime == nil || request.EndTime == nil {
		return false
	}
	return *request.StartTime <= bookingTime && *request.EndTime >= bookingTime
}

// conflictBounds widens the requested time by the conflict window, clamped
// to the same day.
func conflictBounds(slot time.Time) (string, string) {
	dayStart := time.Date(slot.Year(), slot.Month(), slot.Day(), 0, 0, 0, 0, slot.Location())
	dayEnd := time.Date(slot.Year(), slot.Month(), slot.Day(), 23, 59, 59, 0, slot.Location())

	from := slot.Add(-conflictWindow)
	if from.Before(dayStart) {
		from = dayStart
	}
	to := slot.Add(conflictWindow)
	if to.After(dayEnd) {
		to = dayEnd
	}
	return from.Format(timeLayout), to.Format(timeLayout)
}

// mondayOf returns the Monday of the week containing day.
func mondayOf(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
