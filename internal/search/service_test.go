package search

import (
	"context"
	"testing"
	"time"

	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"github.com/fieldline/fieldline-backend/pkg/enums"
	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
	"github.com/fieldline/fieldline-backend/pkg/logger"
)

type fakeRepository struct {
	agents     []models.FieldAgent
	timeOff    []models.TimeOffRequest
	timesheets []models.Timesheet
	bookedIDs  []int64

	capturedWeekStart string
	capturedFromTime  string
	capturedToTime    string
}

func (f *fakeRepository) ListLocatedAgents(ctx context.Context) ([]models.FieldAgent, error) {
	return f.agents, nil
}

func (f *fakeRepository) ApprovedTimeOff(ctx context.Context, requestDate string) ([]models.TimeOffRequest, error) {
	return f.timeOff, nil
}

func (f *fakeRepository) TimesheetsForWeek(ctx context.Context, weekStartDate string) ([]models.Timesheet, error) {
	f.capturedWeekStart = weekStartDate
	return f.timesheets, nil
}

func (f *fakeRepository) BookedAgentIDs(ctx context.Context, bookingDate, fromTime, toTime string) ([]int64, error) {
	f.capturedFromTime = fromTime
	f.capturedToTime = toTime
	return f.bookedIDs, nil
}

func locatedAgent(id int64, name string, lat, lon float64) models.FieldAgent {
	locationID := id
	return models.FieldAgent{
		ID:         id,
		Name:       name,
		Email:      name + "@example.com",
		LocationID: &locationID,
		Location:   &models.Location{ID: locationID, Latitude: &lat, Longitude: &lon},
	}
}

func approvedTimesheet(agentID int64, slots ...models.TimesheetSlot) models.Timesheet {
	return models.Timesheet{
		ID:            agentID,
		AgentID:       agentID,
		WeekStartDate: "2026-09-14",
		Status:        enums.TimesheetStatusApproved,
		Slots:         slots,
	}
}

func mondaySlot() models.TimesheetSlot {
	return models.TimesheetSlot{DayOfWeek: "monday", StartTime: "08:00:00", EndTime: "17:00:00"}
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, logger.New(logger.Options{ServiceName: "test"}))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

// 2026-09-14 is a Monday.
func mondayQuery() Query {
	return Query{
		Latitude:    52.5200,
		Longitude:   13.4050,
		BookingDate: "2026-09-14",
		BookingTime: "10:30:00",
	}
}

func TestSearch_StrictPassOrdersByDistance(t *testing.T) {
	repo := &fakeRepository{
		agents: []models.FieldAgent{
			locatedAgent(1, "far", 52.9, 13.9),
			locatedAgent(2, "near", 52.53, 13.41),
		},
		timesheets: []models.Timesheet{
			approvedTimesheet(1, mondaySlot()),
			approvedTimesheet(2, mondaySlot()),
		},
	}
	svc := newTestService(t, repo)

	results, err := svc.Search(context.Background(), mondayQuery())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(results))
	}
	if results[0].AgentID != 2 || results[1].AgentID != 1 {
		t.Fatalf("expected nearest first, got %+v", results)
	}
	for _, candidate := range results {
		if !candidate.AvailabilityStatus.IsAvailable() {
			t.Fatalf("strict pass must only return available agents, got %+v", candidate)
		}
		if candidate.UnavailableReason != nil {
			t.Fatalf("available candidate must carry no reason, got %+v", candidate)
		}
	}
}

func TestSearch_ConflictingBookingExcludesFromStrictPass(t *testing.T) {
	repo := &fakeRepository{
		agents: []models.FieldAgent{
			locatedAgent(1, "busy", 52.53, 13.41),
			locatedAgent(2, "free", 52.9, 13.9),
		},
		timesheets: []models.Timesheet{
			approvedTimesheet(1, mondaySlot()),
			approvedTimesheet(2, mondaySlot()),
		},
		bookedIDs: []int64{1},
	}
	svc := newTestService(t, repo)

	results, err := svc.Search(context.Background(), mondayQuery())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].AgentID != 2 {
		t.Fatalf("expected only the unconflicted agent, got %+v", results)
	}
	if repo.capturedFromTime != "09:30:00" || repo.capturedToTime != "11:30:00" {
		t.Fatalf("unexpected conflict window %s - %s", repo.capturedFromTime, repo.capturedToTime)
	}
}

func TestSearch_FallbackReturnsDiagnosticsOrderedAvailableFirst(t *testing.T) {
	startTime := "09:00:00"
	endTime := "12:00:00"
	repo := &fakeRepository{
		agents: []models.FieldAgent{
			locatedAgent(1, "timeoff", 52.53, 13.41),
			locatedAgent(2, "notimesheet", 52.54, 13.42),
			locatedAgent(3, "pending", 52.55, 13.43),
			locatedAgent(4, "noslot", 52.56, 13.44),
		},
		timeOff: []models.TimeOffRequest{{
			ID:        1,
			AgentID:   1,
			IsFullDay: false,
			StartTime: &startTime,
			EndTime:   &endTime,
			Status:    enums.TimeOffStatusApproved,
		}},
		timesheets: []models.Timesheet{
			{AgentID: 3, Status: enums.TimesheetStatusPending, Slots: []models.TimesheetSlot{mondaySlot()}},
			{AgentID: 4, Status: enums.TimesheetStatusApproved, Slots: []models.TimesheetSlot{
				{DayOfWeek: "tuesday", StartTime: "08:00:00", EndTime: "17:00:00"},
			}},
		},
	}
	svc := newTestService(t, repo)

	results, err := svc.Search(context.Background(), mondayQuery())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected all 4 agents in fallback, got %d", len(results))
	}

	byID := map[int64]AgentCandidate{}
	for _, candidate := range results {
		byID[candidate.AgentID] = candidate
	}

	cases := []struct {
		agentID int64
		status  enums.AvailabilityStatus
		reason  string
	}{
		{1, enums.AvailabilityStatusTimeOff, "Time-off: 09:00:00 - 12:00:00"},
		{2, enums.AvailabilityStatusNoTimesheet, "No timesheet submitted"},
		{3, enums.AvailabilityStatusTimesheetNotApproved, "Timesheet status: pending"},
		{4, enums.AvailabilityStatusNotScheduled, "Not scheduled for this time"},
	}
	for _, tc := range cases {
		candidate := byID[tc.agentID]
		if candidate.AvailabilityStatus != tc.status {
			t.Errorf("agent %d: status %q, want %q", tc.agentID, candidate.AvailabilityStatus, tc.status)
		}
		if candidate.UnavailableReason == nil || *candidate.UnavailableReason != tc.reason {
			t.Errorf("agent %d: reason %v, want %q", tc.agentID, candidate.UnavailableReason, tc.reason)
		}
	}
}

func TestSearch_FallbackPutsAvailableButBookedFirst(t *testing.T) {
	repo := &fakeRepository{
		agents: []models.FieldAgent{
			locatedAgent(1, "booked", 52.9, 13.9),
			locatedAgent(2, "notimesheet", 52.53, 13.41),
		},
		timesheets: []models.Timesheet{approvedTimesheet(1, mondaySlot())},
		bookedIDs:  []int64{1},
	}
	svc := newTestService(t, repo)

	results, err := svc.Search(context.Background(), mondayQuery())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 fallback candidates, got %d", len(results))
	}
	// The booked agent still shows as available in the diagnostic list and
	// sorts ahead of unavailable agents despite being farther away.
	if results[0].AgentID != 1 || !results[0].AvailabilityStatus.IsAvailable() {
		t.Fatalf("expected available-first ordering, got %+v", results)
	}
}

func TestSearch_FullDayTimeOffReason(t *testing.T) {
	repo := &fakeRepository{
		agents: []models.FieldAgent{locatedAgent(1, "off", 52.53, 13.41)},
		timeOff: []models.TimeOffRequest{{
			ID:        1,
			AgentID:   1,
			IsFullDay: true,
			Status:    enums.TimeOffStatusApproved,
		}},
	}
	svc := newTestService(t, repo)

	results, err := svc.Search(context.Background(), mondayQuery())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(results))
	}
	if results[0].UnavailableReason == nil || *results[0].UnavailableReason != "Time-off: Full day" {
		t.Fatalf("unexpected reason %v", results[0].UnavailableReason)
	}
}

func TestSearch_WeekStartIsMonday(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(t, repo)

	// 2026-09-20 is a Sunday; its week starts on Monday the 14th.
	query := mondayQuery()
	query.BookingDate = "2026-09-20"
	if _, err := svc.Search(context.Background(), query); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if repo.capturedWeekStart != "2026-09-14" {
		t.Fatalf("expected week start 2026-09-14, got %s", repo.capturedWeekStart)
	}
}

func TestSearch_ConflictWindowClampedToDay(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(t, repo)

	query := mondayQuery()
	query.BookingTime = "00:30:00"
	if _, err := svc.Search(context.Background(), query); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if repo.capturedFromTime != "00:00:00" || repo.capturedToTime != "01:30:00" {
		t.Fatalf("unexpected clamped window %s - %s", repo.capturedFromTime, repo.capturedToTime)
	}

	query.BookingTime = "23:45:00"
	if _, err := svc.Search(context.Background(), query); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if repo.capturedFromTime != "22:45:00" || repo.capturedToTime != "23:59:59" {
		t.Fatalf("unexpected clamped window %s - %s", repo.capturedFromTime, repo.capturedToTime)
	}
}

func TestSearch_RejectsMalformedInput(t *testing.T) {
	svc := newTestService(t, &fakeRepository{})

	_, err := svc.Search(context.Background(), Query{BookingDate: "14/09/2026", BookingTime: "10:30:00"})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}

	_, err = svc.Search(context.Background(), Query{BookingDate: "2026-09-14", BookingTime: "10:30"})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bad time, got %v", err)
	}
}

func TestMondayOf(t *testing.T) {
	cases := []struct {
		day  string
		want string
	}{
		{"2026-09-14", "2026-09-14"},
		{"2026-09-16", "2026-09-14"},
		{"2026-09-20", "2026-09-14"},
		{"2026-09-21", "2026-09-21"},
	}
	for _, tc := range cases {
		day, err := time.Parse(dateLayout, tc.day)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.day, err)
		}
		if got := mondayOf(day).Format(dateLayout); got != tc.want {
			t.Errorf("mondayOf(%s) = %s, want %s", tc.day, got, tc.want)
		}
	}
}
