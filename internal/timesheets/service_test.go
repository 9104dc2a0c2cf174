package timesheets

import (
	"context"
	"testing"
	"time"

	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"github.com/fieldline/fieldline-backend/pkg/enums"
	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
	"github.com/fieldline/fieldline-backend/pkg/logger"
	"gorm.io/gorm"
)

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeRepository struct {
	findAgentFn             func(ctx context.Context, agentID int64) (*models.FieldAgent, error)
	dispatcherTeamIDFn      func(ctx context.Context, dispatcherID int64) (*int64, error)
	findTimesheetFn         func(ctx context.Context, agentID int64, weekStart string) (*models.Timesheet, error)
	findTimesheetByIDFn     func(ctx context.Context, timesheetID int64) (*models.Timesheet, error)
	listPendingFn           func(ctx context.Context, teamID *int64) ([]models.Timesheet, error)
	findTimeOffFn           func(ctx context.Context, requestID int64) (*models.TimeOffRequest, error)
	listTimeOffFn           func(ctx context.Context, filter TimeOffFilter) ([]models.TimeOffRequest, error)
	hasOverlappingTimeOffFn func(ctx context.Context, agentID int64, date string, start, end *string) (bool, error)

	createdTimesheet   *models.Timesheet
	deletedTimesheetID int64
	timesheetStatus    enums.TimesheetStatus
	createdTimeOff     *models.TimeOffRequest
	timeOffStatus      enums.TimeOffStatus
	capturedTeamID     *int64
	capturedFilter     TimeOffFilter
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) FindAgent(ctx context.Context, agentID int64) (*models.FieldAgent, error) {
	if f.findAgentFn != nil {
		return f.findAgentFn(ctx, agentID)
	}
	teamID := int64(4)
	return &models.FieldAgent{ID: agentID, Name: "Dana Wells", TeamID: &teamID}, nil
}

func (f *fakeRepository) DispatcherTeamID(ctx context.Context, dispatcherID int64) (*int64, error) {
	if f.dispatcherTeamIDFn != nil {
		return f.dispatcherTeamIDFn(ctx, dispatcherID)
	}
	teamID := int64(4)
	return &teamID, nil
}

func (f *fakeRepository) FindTimesheet(ctx context.Context, agentID int64, weekStart string) (*models.Timesheet, error) {
	if f.findTimesheetFn != nil {
		return f.findTimesheetFn(ctx, agentID, weekStart)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) FindTimesheetByID(ctx context.Context, timesheetID int64) (*models.Timesheet, error) {
	if f.findTimesheetByIDFn != nil {
		return f.findTimesheetByIDFn(ctx, timesheetID)
	}
	if f.createdTimesheet != nil && f.createdTimesheet.ID == timesheetID {
		return f.createdTimesheet, nil
	}
	return pendingTimesheet(timesheetID, 5), nil
}

func (f *fakeRepository) CreateTimesheet(ctx context.Context, timesheet *models.Timesheet) error {
	timesheet.ID = 11
	if timesheet.Agent == nil {
		teamID := int64(4)
		timesheet.Agent = &models.FieldAgent{ID: timesheet.AgentID, Name: "Dana Wells", TeamID: &teamID}
	}
	f.createdTimesheet = timesheet
	return nil
}

func (f *fakeRepository) DeleteTimesheet(ctx context.Context, timesheetID int64) error {
	f.deletedTimesheetID = timesheetID
	return nil
}

func (f *fakeRepository) ListPendingTimesheets(ctx context.Context, teamID *int64) ([]models.Timesheet, error) {
	f.capturedTeamID = teamID
	if f.listPendingFn != nil {
		return f.listPendingFn(ctx, teamID)
	}
	return []models.Timesheet{*pendingTimesheet(1, 5)}, nil
}

func (f *fakeRepository) UpdateTimesheetStatus(ctx context.Context, timesheetID int64, status enums.TimesheetStatus) error {
	f.timesheetStatus = status
	return nil
}

func (f *fakeRepository) CreateTimeOff(ctx context.Context, request *models.TimeOffRequest) error {
	request.ID = 9
	f.createdTimeOff = request
	return nil
}

func (f *fakeRepository) FindTimeOff(ctx context.Context, requestID int64) (*models.TimeOffRequest, error) {
	if f.findTimeOffFn != nil {
		return f.findTimeOffFn(ctx, requestID)
	}
	return pendingTimeOff(requestID, 5), nil
}

func (f *fakeRepository) ListTimeOff(ctx context.Context, filter TimeOffFilter) ([]models.TimeOffRequest, error) {
	f.capturedFilter = filter
	if f.listTimeOffFn != nil {
		return f.listTimeOffFn(ctx, filter)
	}
	return []models.TimeOffRequest{*pendingTimeOff(9, 5)}, nil
}

func (f *fakeRepository) UpdateTimeOffStatus(ctx context.Context, requestID int64, status enums.TimeOffStatus) error {
	f.timeOffStatus = status
	return nil
}

func (f *fakeRepository) HasOverlappingTimeOff(ctx context.Context, agentID int64, date string, start, end *string) (bool, error) {
	if f.hasOverlappingTimeOffFn != nil {
		return f.hasOverlappingTimeOffFn(ctx, agentID, date, start, end)
	}
	return false, nil
}

func pendingTimesheet(id, agentID int64) *models.Timesheet {
	teamID := int64(4)
	return &models.Timesheet{
		ID:            id,
		AgentID:       agentID,
		WeekStartDate: "2026-08-31",
		Status:        enums.TimesheetStatusPending,
		Agent:         &models.FieldAgent{ID: agentID, Name: "Dana Wells", TeamID: &teamID},
		Slots: []models.TimesheetSlot{
			{DayOfWeek: "monday", StartTime: "10:00:00", EndTime: "12:00:00"},
		},
	}
}

func pendingTimeOff(id, agentID int64) *models.TimeOffRequest {
	teamID := int64(4)
	return &models.TimeOffRequest{
		ID:          id,
		AgentID:     agentID,
		RequestDate: "2026-09-14",
		IsFullDay:   true,
		Status:      enums.TimeOffStatusPending,
		Agent:       &models.FieldAgent{ID: agentID, Name: "Dana Wells", TeamID: &teamID},
	}
}

// midweek is Wednesday 2026-09-02 12:00, inside the current-week window.
func midweek() time.Time {
	return time.Date(2026, time.September, 2, 12, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T, repo *fakeRepository, now func() time.Time) Service {
	t.Helper()
	if now == nil {
		now = midweek
	}
	svc, err := NewService(repo, fakeTxRunner{}, logger.New(logger.Options{ServiceName: "test"}), WithClock(now))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected *errors.Error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s (%v)", code, typed.Code(), err)
	}
}

func agentSlots() []SlotInput {
	return []SlotInput{
		{DayOfWeek: "monday", StartTime: "10:00", EndTime: "12:00"},
		{DayOfWeek: "friday", StartTime: "14:00", EndTime: "16:00"},
	}
}

func TestSubmit_CreatesCurrentWeekTimesheet(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(t, repo, nil)

	view, err := svc.Submit(context.Background(), SubmitInput{
		Slots:     agentSlots(),
		ActorID:   5,
		ActorRole: enums.RoleFieldAgent,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if repo.createdTimesheet == nil {
		t.Fatal("expected a timesheet to be created")
	}
	if repo.createdTimesheet.WeekStartDate != "2026-08-31" {
		t.Fatalf("expected current Monday, got %s", repo.createdTimesheet.WeekStartDate)
	}
	if repo.createdTimesheet.Slots[0].StartTime != "10:00:00" {
		t.Fatalf("expected normalized slot time, got %s", repo.createdTimesheet.Slots[0].StartTime)
	}
	if view.TargetWeekType != "current" {
		t.Fatalf("expected current week target, got %s", view.TargetWeekType)
	}
	if view.Status != enums.TimesheetStatusPending {
		t.Fatalf("expected pending status, got %s", view.Status)
	}
}

func TestSubmit_TargetsNextWeekOnceApproved(t *testing.T) {
	repo := &fakeRepository{}
	repo.findTimesheetFn = func(ctx context.Context, agentID int64, weekStart string) (*models.Timesheet, error) {
		if weekStart == "2026-08-31" {
			approved := pendingTimesheet(3, agentID)
			approved.Status = enums.TimesheetStatusApproved
			return approved, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
	svc := newTestService(t, repo, nil)

	view, err := svc.Submit(context.Background(), SubmitInput{
		Slots:     agentSlots(),
		ActorID:   5,
		ActorRole: enums.RoleFieldAgent,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if repo.createdTimesheet.WeekStartDate != "2026-09-07" {
		t.Fatalf("expected next Monday, got %s", repo.createdTimesheet.WeekStartDate)
	}
	if view.TargetWeekType != "next" {
		t.Fatalf("expected next week target, got %s", view.TargetWeekType)
	}
}

func TestSubmit_ReplacesPendingTimesheet(t *testing.T) {
	repo := &fakeRepository{}
	repo.findTimesheetFn = func(ctx context.Context, agentID int64, weekStart string) (*models.Timesheet, error) {
		if weekStart == "2026-08-31" {
			return pendingTimesheet(3, agentID), nil
		}
		return nil, gorm.ErrRecordNotFound
	}
	svc := newTestService(t, repo, nil)

	_, err := svc.Submit(context.Background(), SubmitInput{
		Slots:     agentSlots(),
		ActorID:   5,
		ActorRole: enums.RoleFieldAgent,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if repo.deletedTimesheetID != 3 {
		t.Fatalf("expected pending timesheet 3 replaced, deleted %d", repo.deletedTimesheetID)
	}
	if repo.createdTimesheet == nil {
		t.Fatal("expected a replacement timesheet")
	}
}

func TestSubmit_RejectsApprovedNextWeek(t *testing.T) {
	repo := &fakeRepository{}
	repo.findTimesheetFn = func(ctx context.Context, agentID int64, weekStart string) (*models.Timesheet, error) {
		approved := pendingTimesheet(3, agentID)
		approved.WeekStartDate = weekStart
		approved.Status = enums.TimesheetStatusApproved
		return approved, nil
	}
	svc := newTestService(t, repo, nil)

	_, err := svc.Submit(context.Background(), SubmitInput{
		Slots:     agentSlots(),
		ActorID:   5,
		ActorRole: enums.RoleFieldAgent,
	})
	expectCode(t, err, pkgerrors.CodeStateConflict)
}

func TestSubmit_DeadlinePassed(t *testing.T) {
	// Sunday 2026-09-06 19:30 is past the 7 PM cutoff.
	lateSunday := func() time.Time {
		return time.Date(2026, time.September, 6, 19, 30, 0, 0, time.UTC)
	}
	repo := &fakeRepository{}
	svc := newTestService(t, repo, lateSunday)

	_, err := svc.Submit(context.Background(), SubmitInput{
		Slots:     agentSlots(),
		ActorID:   5,
		ActorRole: enums.RoleFieldAgent,
	})
	expectCode(t, err, pkgerrors.CodeValidation)
	if repo.createdTimesheet != nil {
		t.Fatal("expected no timesheet past the deadline")
	}
}

func TestSubmit_SlotValidation(t *testing.T) {
	cases := []struct {
		name string
		slot SlotInput
	}{
		{"unknown day", SlotInput{DayOfWeek: "funday", StartTime: "10:00", EndTime: "12:00"}},
		{"before opening", SlotInput{DayOfWeek: "monday", StartTime: "08:00", EndTime: "10:00"}},
		{"after closing", SlotInput{DayOfWeek: "monday", StartTime: "19:00", EndTime: "21:00"}},
		{"inverted window", SlotInput{DayOfWeek: "monday", StartTime: "14:00", EndTime: "12:00"}},
		{"wrong duration", SlotInput{DayOfWeek: "monday", StartTime: "10:00", EndTime: "13:00"}},
		{"bad format", SlotInput{DayOfWeek: "monday", StartTime: "ten", EndTime: "12:00"}},
	}
	svc := newTestService(t, &fakeRepository{}, nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), SubmitInput{
				Slots:     []SlotInput{tc.slot},
				ActorID:   5,
				ActorRole: enums.RoleFieldAgent,
			})
			expectCode(t, err, pkgerrors.CodeValidation)
		})
	}

	_, err := svc.Submit(context.Background(), SubmitInput{ActorID: 5, ActorRole: enums.RoleFieldAgent})
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestSubmit_RequiresTeamAndAgentRole(t *testing.T) {
	repo := &fakeRepository{}
	repo.findAgentFn = func(ctx context.Context, agentID int64) (*models.FieldAgent, error) {
		return &models.FieldAgent{ID: agentID, Name: "Dana Wells"}, nil
	}
	svc := newTestService(t, repo, nil)

	_, err := svc.Submit(context.Background(), SubmitInput{
		Slots:     agentSlots(),
		ActorID:   5,
		ActorRole: enums.RoleFieldAgent,
	})
	expectCode(t, err, pkgerrors.CodeValidation)

	_, err = svc.Submit(context.Background(), SubmitInput{
		Slots:     agentSlots(),
		ActorID:   2,
		ActorRole: enums.RoleDispatcher,
	})
	expectCode(t, err, pkgerrors.CodeForbidden)
}

func TestCurrent_NoTimesheetYields(t *testing.T) {
	svc := newTestService(t, &fakeRepository{}, nil)

	view, err := svc.Current(context.Background(), CurrentInput{
		ActorID:   5,
		ActorRole: enums.RoleFieldAgent,
	})
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if view != nil {
		t.Fatalf("expected no timesheet, got %+v", view)
	}
}

func TestCurrent_ReturnsTargetWeek(t *testing.T) {
	repo := &fakeRepository{}
	repo.findTimesheetFn = func(ctx context.Context, agentID int64, weekStart string) (*models.Timesheet, error) {
		if weekStart == "2026-08-31" {
			return pendingTimesheet(3, agentID), nil
		}
		return nil, gorm.ErrRecordNotFound
	}
	svc := newTestService(t, repo, nil)

	view, err := svc.Current(context.Background(), CurrentInput{
		ActorID:   5,
		ActorRole: enums.RoleFieldAgent,
	})
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if view == nil || view.ID != 3 || view.TargetWeekType != "current" {
		t.Fatalf("unexpected view %+v", view)
	}
}

func TestListPending_ScopesDispatcherToTeam(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(t, repo, nil)

	_, err := svc.ListPending(context.Background(), ListPendingInput{
		ActorID:   2,
		ActorRole: enums.RoleDispatcher,
	})
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if repo.capturedTeamID == nil || *repo.capturedTeamID != 4 {
		t.Fatalf("expected team scope 4, got %v", repo.capturedTeamID)
	}

	repo.dispatcherTeamIDFn = func(ctx context.Context, dispatcherID int64) (*int64, error) {
		return nil, nil
	}
	views, err := svc.ListPending(context.Background(), ListPendingInput{
		ActorID:   2,
		ActorRole: enums.RoleDispatcher,
	})
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected empty list for teamless dispatcher, got %d", len(views))
	}

	_, err = svc.ListPending(context.Background(), ListPendingInput{
		ActorID:   5,
		ActorRole: enums.RoleFieldAgent,
	})
	expectCode(t, err, pkgerrors.CodeForbidden)
}

func TestReview_ApprovesPendingTimesheet(t *testing.T) {
	repo := &fakeRepository{}
	repo.findTimesheetByIDFn = func(ctx context.Context, timesheetID int64) (*models.Timesheet, error) {
		return pendingTimesheet(timesheetID, 5), nil
	}
	svc := newTestService(t, repo, nil)

	view, err := svc.Review(context.Background(), ReviewInput{
		TimesheetID: 3,
		Action:      "approve",
		ActorID:     2,
		ActorRole:   enums.RoleDispatcher,
	})
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if repo.timesheetStatus != enums.TimesheetStatusApproved {
		t.Fatalf("expected approved write, got %s", repo.timesheetStatus)
	}
	if view.Status != enums.TimesheetStatusApproved {
		t.Fatalf("expected approved view, got %s", view.Status)
	}
}

func TestReview_DispatcherCrossTeamForbidden(t *testing.T) {
	repo := &fakeRepository{}
	repo.dispatcherTeamIDFn = func(ctx context.Context, dispatcherID int64) (*int64, error) {
		other := int64(9)
		return &other, nil
	}
	svc := newTestService(t, repo, nil)

	_, err := svc.Review(context.Background(), ReviewInput{
		TimesheetID: 3,
		Action:      "approve",
		ActorID:     2,
		ActorRole:   enums.RoleDispatcher,
	})
	expectCode(t, err, pkgerrors.CodeForbidden)
}

func TestReview_AlreadyReviewed(t *testing.T) {
	repo := &fakeRepository{}
	repo.findTimesheetByIDFn = func(ctx context.Context, timesheetID int64) (*models.Timesheet, error) {
		approved := pendingTimesheet(timesheetID, 5)
		approved.Status = enums.TimesheetStatusApproved
		return approved, nil
	}
	svc := newTestService(t, repo, nil)

	_, err := svc.Review(context.Background(), ReviewInput{
		TimesheetID: 3,
		Action:      "reject",
		ActorID:     1,
		ActorRole:   enums.RoleAdmin,
	})
	expectCode(t, err, pkgerrors.CodeStateConflict)

	_, err = svc.Review(context.Background(), ReviewInput{
		TimesheetID: 3,
		Action:      "archive",
		ActorID:     1,
		ActorRole:   enums.RoleAdmin,
	})
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestRequestTimeOff_FullDay(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(t, repo, nil)

	view, err := svc.RequestTimeOff(context.Background(), TimeOffInput{
		RequestDate: "2026-09-14",
		IsFullDay:   true,
		ActorID:     5,
		ActorRole:   enums.RoleFieldAgent,
	})
	if err != nil {
		t.Fatalf("RequestTimeOff: %v", err)
	}
	if repo.createdTimeOff == nil || !repo.createdTimeOff.IsFullDay {
		t.Fatal("expected a full-day request")
	}
	if view.Status != enums.TimeOffStatusPending {
		t.Fatalf("expected pending status, got %s", view.Status)
	}
	if view.AgentName != "Dana Wells" {
		t.Fatalf("expected agent name on view, got %q", view.AgentName)
	}
}

func TestRequestTimeOff_PartialWindow(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(t, repo, nil)
	start, end := "14:00", "16:00"

	_, err := svc.RequestTimeOff(context.Background(), TimeOffInput{
		RequestDate: "2026-09-14",
		StartTime:   &start,
		EndTime:     &end,
		ActorID:     5,
		ActorRole:   enums.RoleFieldAgent,
	})
	if err != nil {
		t.Fatalf("RequestTimeOff: %v", err)
	}
	if repo.createdTimeOff.StartTime == nil || *repo.createdTimeOff.StartTime != "14:00:00" {
		t.Fatalf("expected normalized start time, got %v", repo.createdTimeOff.StartTime)
	}
}

func TestRequestTimeOff_Validation(t *testing.T) {
	svc := newTestService(t, &fakeRepository{}, nil)
	short := "14:00"
	shortEnd := "15:00"

	cases := []struct {
		name  string
		input TimeOffInput
	}{
		{"missing date", TimeOffInput{IsFullDay: true}},
		{"bad date", TimeOffInput{RequestDate: "14-09-2026", IsFullDay: true}},
		{"past date", TimeOffInput{RequestDate: "2026-08-30", IsFullDay: true}},
		{"today", TimeOffInput{RequestDate: "2026-09-02", IsFullDay: true}},
		{"missing window", TimeOffInput{RequestDate: "2026-09-14"}},
		{"wrong duration", TimeOffInput{RequestDate: "2026-09-14", StartTime: &short, EndTime: &shortEnd}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.input.ActorID = 5
			tc.input.ActorRole = enums.RoleFieldAgent
			_, err := svc.RequestTimeOff(context.Background(), tc.input)
			expectCode(t, err, pkgerrors.CodeValidation)
		})
	}
}

func TestRequestTimeOff_OverlapConflict(t *testing.T) {
	repo := &fakeRepository{}
	repo.hasOverlappingTimeOffFn = func(ctx context.Context, agentID int64, date string, start, end *string) (bool, error) {
		return true, nil
	}
	svc := newTestService(t, repo, nil)

	_, err := svc.RequestTimeOff(context.Background(), TimeOffInput{
		RequestDate: "2026-09-14",
		IsFullDay:   true,
		ActorID:     5,
		ActorRole:   enums.RoleFieldAgent,
	})
	expectCode(t, err, pkgerrors.CodeConflict)
	if repo.createdTimeOff != nil {
		t.Fatal("expected no request on overlap")
	}
}

func TestListTimeOff_Scoping(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(t, repo, nil)

	if _, err := svc.ListTimeOff(context.Background(), ListTimeOffInput{
		ActorID:   5,
		ActorRole: enums.RoleFieldAgent,
	}); err != nil {
		t.Fatalf("ListTimeOff: %v", err)
	}
	if repo.capturedFilter.AgentID == nil || *repo.capturedFilter.AgentID != 5 {
		t.Fatalf("expected agent scope, got %+v", repo.capturedFilter)
	}

	if _, err := svc.ListTimeOff(context.Background(), ListTimeOffInput{
		ActorID:   2,
		ActorRole: enums.RoleDispatcher,
	}); err != nil {
		t.Fatalf("ListTimeOff: %v", err)
	}
	if repo.capturedFilter.TeamID == nil || *repo.capturedFilter.TeamID != 4 {
		t.Fatalf("expected team scope, got %+v", repo.capturedFilter)
	}

	repo.capturedFilter = TimeOffFilter{}
	if _, err := svc.ListTimeOff(context.Background(), ListTimeOffInput{
		ActorID:   1,
		ActorRole: enums.RoleAdmin,
	}); err != nil {
		t.Fatalf("ListTimeOff: %v", err)
	}
	if repo.capturedFilter.AgentID != nil || repo.capturedFilter.TeamID != nil {
		t.Fatalf("expected unscoped admin listing, got %+v", repo.capturedFilter)
	}
}

func TestReviewTimeOff_RejectsPendingRequest(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(t, repo, nil)

	view, err := svc.ReviewTimeOff(context.Background(), ReviewTimeOffInput{
		RequestID: 9,
		Action:    "reject",
		ActorID:   2,
		ActorRole: enums.RoleDispatcher,
	})
	if err != nil {
		t.Fatalf("ReviewTimeOff: %v", err)
	}
	if repo.timeOffStatus != enums.TimeOffStatusRejected {
		t.Fatalf("expected rejected write, got %s", repo.timeOffStatus)
	}
	if view.Status != enums.TimeOffStatusRejected {
		t.Fatalf("expected rejected view, got %s", view.Status)
	}
}
