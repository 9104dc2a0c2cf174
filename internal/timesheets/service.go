package timesheets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"github.com/fieldline/fieldline-backend/pkg/enums"
	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
	"github.com/fieldline/fieldline-backend/pkg/logger"
	"gorm.io/gorm"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	businessStartMinutes = 10 * 60
	businessEndMinutes   = 20 * 60
	slotDurationMinutes  = 120

	deadlineHour = 19

	weekCurrent = "current"
	weekNext    = "next"
)

var validDays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service manages weekly availability timesheets and time-off requests.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*TimesheetView, error)
	Current(ctx context.Context, input CurrentInput) (*TimesheetView, error)
	ListPending(ctx context.Context, input ListPendingInput) ([]TimesheetView, error)
	Review(ctx context.Context, input ReviewInput) (*TimesheetView, error)

	RequestTimeOff(ctx context.Context, input TimeOffInput) (*TimeOffView, error)
	ListTimeOff(ctx context.Context, input ListTimeOffInput) ([]TimeOffView, error)
	ReviewTimeOff(ctx context.Context, input ReviewTimeOffInput) (*TimeOffView, error)
}

type service struct {
	repo Repository
	tx   txRunner
	logg *logger.Logger
	now  func() time.Time
}

// Option adjusts service construction.
type Option func(*service)

// WithClock overrides the wall clock used for week and deadline math.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the timesheet service dependencies.
func NewService(repo Repository, tx txRunner, logg *logger.Logger, opts ...Option) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("timesheets repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	svc := &service{repo: repo, tx: tx, logg: logg, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*TimesheetView, error) {
	if input.ActorRole != enums.RoleFieldAgent {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only agents may submit timesheets")
	}
	if err := validateSlots(input.Slots); err != nil {
		return nil, err
	}

	agent, err := s.repo.FindAgent(ctx, input.ActorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "agent not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load agent")
	}
	if agent.TeamID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "you must be assigned to a team to submit timesheets")
	}

	weekStart, weekType, existing, err := s.targetWeek(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	if !s.withinDeadline(weekType) {
		if weekType == weekCurrent {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "timesheet submission deadline for this week has passed (Sunday 7PM)")
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "timesheet submission deadline has passed, contact your dispatcher")
	}

	if existing != nil && existing.Status == enums.TimesheetStatusApproved {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cannot modify an approved timesheet")
	}

	var timesheetID int64
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if existing != nil {
			if err := repo.DeleteTimesheet(ctx, existing.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace timesheet")
			}
		}

		timesheet := &models.Timesheet{
			AgentID:       input.ActorID,
			WeekStartDate: weekStart,
			Status:        enums.TimesheetStatusPending,
			Slots:         make([]models.TimesheetSlot, 0, len(input.Slots)),
		}
		for _, slot := range input.Slots {
			timesheet.Slots = append(timesheet.Slots, models.TimesheetSlot{
				DayOfWeek: slot.DayOfWeek,
				StartTime: normalizeTime(slot.StartTime),
				EndTime:   normalizeTime(slot.EndTime),
			})
		}
		if err := repo.CreateTimesheet(ctx, timesheet); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create timesheet")
		}
		timesheetID = timesheet.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	created, err := s.repo.FindTimesheetByID(ctx, timesheetID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload timesheet")
	}

	view := NewTimesheetView(*created)
	view.TargetWeekType = weekType
	return &view, nil
}

func (s *service) Current(ctx context.Context, input CurrentInput) (*TimesheetView, error) {
	agentID := input.ActorID
	if input.ActorRole != enums.RoleFieldAgent && input.AgentID != nil {
		agentID = *input.AgentID
	}

	weekStart, weekType, existing, err := s.targetWeek(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	timesheet, err := s.repo.FindTimesheet(ctx, agentID, weekStart)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load timesheet")
	}

	view := NewTimesheetView(*timesheet)
	view.TargetWeekType = weekType
	return &view, nil
}

func (s *service) ListPending(ctx context.Context, input ListPendingInput) ([]TimesheetView, error) {
	teamID, err := s.reviewScope(ctx, input.ActorID, input.ActorRole)
	if err != nil {
		return nil, err
	}
	if input.ActorRole == enums.RoleDispatcher && teamID == nil {
		return []TimesheetView{}, nil
	}

	records, err := s.repo.ListPendingTimesheets(ctx, teamID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending timesheets")
	}
	return NewTimesheetViews(records), nil
}

func (s *service) Review(ctx context.Context, input ReviewInput) (*TimesheetView, error) {
	status, err := reviewStatus(input.Action)
	if err != nil {
		return nil, err
	}
	teamID, err := s.reviewScope(ctx, input.ActorID, input.ActorRole)
	if err != nil {
		return nil, err
	}

	timesheet, err := s.repo.FindTimesheetByID(ctx, input.TimesheetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "timesheet not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load timesheet")
	}

	if input.ActorRole == enums.RoleDispatcher {
		if timesheet.Agent == nil || timesheet.Agent.TeamID == nil || teamID == nil || *timesheet.Agent.TeamID != *teamID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you can only review timesheets from your team")
		}
	}
	if timesheet.Status != enums.TimesheetStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "timesheet has already been reviewed").
			WithDetails(map[string]any{"status": timesheet.Status})
	}

	if err := s.repo.UpdateTimesheetStatus(ctx, timesheet.ID, status.timesheet); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update timesheet")
	}

	timesheet.Status = status.timesheet
	view := NewTimesheetView(*timesheet)
	return &view, nil
}

func (s *service) RequestTimeOff(ctx context.Context, input TimeOffInput) (*TimeOffView, error) {
	if input.ActorRole != enums.RoleFieldAgent {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only agents may request time off")
	}
	if err := s.validateTimeOff(input); err != nil {
		return nil, err
	}

	agent, err := s.repo.FindAgent(ctx, input.ActorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "agent not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load agent")
	}
	if agent.TeamID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "you must be assigned to a team to request time off")
	}

	var start, end *string
	if !input.IsFullDay {
		startTime := normalizeTime(*input.StartTime)
		endTime := normalizeTime(*input.EndTime)
		start, end = &startTime, &endTime
	}

	overlap, err := s.repo.HasOverlappingTimeOff(ctx, input.ActorID, input.RequestDate, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check overlapping time off")
	}
	if overlap {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "you already have a time-off request for this date")
	}

	record := &models.TimeOffRequest{
		AgentID:     input.ActorID,
		RequestDate: input.RequestDate,
		IsFullDay:   input.IsFullDay,
		StartTime:   start,
		EndTime:     end,
		Reason:      input.Reason,
		Status:      enums.TimeOffStatusPending,
	}
	if err := s.repo.CreateTimeOff(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create time-off request")
	}

	record.Agent = agent
	view := NewTimeOffView(*record)
	return &view, nil
}

func (s *service) ListTimeOff(ctx context.Context, input ListTimeOffInput) ([]TimeOffView, error) {
	filter := TimeOffFilter{}
	switch input.ActorRole {
	case enums.RoleFieldAgent:
		agentID := input.ActorID
		filter.AgentID = &agentID
	case enums.RoleDispatcher:
		teamID, err := s.repo.DispatcherTeamID(ctx, input.ActorID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve dispatcher team")
		}
		if teamID == nil {
			return []TimeOffView{}, nil
		}
		filter.TeamID = teamID
	}

	records, err := s.repo.ListTimeOff(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list time-off requests")
	}
	return NewTimeOffViews(records), nil
}

func (s *service) ReviewTimeOff(ctx context.Context, input ReviewTimeOffInput) (*TimeOffView, error) {
	status, err := reviewStatus(input.Action)
	if err != nil {
		return nil, err
	}
	teamID, err := s.reviewScope(ctx, input.ActorID, input.ActorRole)
	if err != nil {
		return nil, err
	}

	request, err := s.repo.FindTimeOff(ctx, input.RequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "time-off request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load time-off request")
	}

	if input.ActorRole == enums.RoleDispatcher {
		if request.Agent == nil || request.Agent.TeamID == nil || teamID == nil || *request.Agent.TeamID != *teamID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "you can only review requests from your team")
		}
	}
	if request.Status != enums.TimeOffStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "request has already been reviewed").
			WithDetails(map[string]any{"status": request.Status})
	}

	if err := s.repo.UpdateTimeOffStatus(ctx, request.ID, status.timeOff); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update time-off request")
	}

	request.Status = status.timeOff
	view := NewTimeOffView(*request)
	return &view, nil
}

// targetWeek resolves which week a submission or read targets: the current
// week until its timesheet is approved, then the next week.
func (s *service) targetWeek(ctx context.Context, agentID int64) (string, string, *models.Timesheet, error) {
	currentMonday := mondayOf(s.now()).Format(dateLayout)

	current, err := s.repo.FindTimesheet(ctx, agentID, currentMonday)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return currentMonday, weekCurrent, nil, nil
		}
		return "", "", nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load timesheet")
	}

	if current.Status == enums.TimesheetStatusApproved {
		nextMonday := mondayOf(s.now()).AddDate(0, 0, 7).Format(dateLayout)
		next, err := s.repo.FindTimesheet(ctx, agentID, nextMonday)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nextMonday, weekNext, nil, nil
			}
			return "", "", nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load timesheet")
		}
		return nextMonday, weekNext, next, nil
	}
	return currentMonday, weekCurrent, current, nil
}

// withinDeadline enforces the Sunday 7 PM cutoff for the covered week.
func (s *service) withinDeadline(weekType string) bool {
	now := s.now()
	if weekType == weekCurrent {
		sunday := mondayOf(now).AddDate(0, 0, 6)
		deadline := time.Date(sunday.Year(), sunday.Month(), sunday.Day(), deadlineHour, 0, 0, 0, now.Location())
		return !now.After(deadline)
	}
	return !(now.Weekday() == time.Sunday && now.Hour() >= deadlineHour)
}

func (s *service) reviewScope(ctx context.Context, actorID int64, actorRole enums.Role) (*int64, error) {
	switch actorRole {
	case enums.RoleAdmin:
		return nil, nil
	case enums.RoleDispatcher:
		teamID, err := s.repo.DispatcherTeamID(ctx, actorID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve dispatcher team")
		}
		return teamID, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role may not review submissions")
	}
}

func (s *service) validateTimeOff(input TimeOffInput) error {
	if input.RequestDate == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "request date is required")
	}
	requestDate, err := time.Parse(dateLayout, input.RequestDate)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid date format, use YYYY-MM-DD")
	}
	today := s.now()
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if !requestDate.After(todayDate) {
		return pkgerrors.New(pkgerrors.CodeValidation, "cannot request time off for today or past dates")
	}

	if input.IsFullDay {
		return nil
	}
	if input.StartTime == nil || input.EndTime == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "start time and end time are required for partial day requests")
	}
	return validateWindow(*input.StartTime, *input.EndTime, "time-off")
}

type reviewOutcome struct {
	timesheet enums.TimesheetStatus
	timeOff   enums.TimeOffStatus
}

func reviewStatus(action string) (reviewOutcome, error) {
	switch action {
	case "approve":
		return reviewOutcome{enums.TimesheetStatusApproved, enums.TimeOffStatusApproved}, nil
	case "reject":
		return reviewOutcome{enums.TimesheetStatusRejected, enums.TimeOffStatusRejected}, nil
	default:
		return reviewOutcome{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid action").
			WithDetails(map[string]any{"action": action})
	}
}

func validateSlots(slots []SlotInput) error {
	if len(slots) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one time slot is required")
	}
	for _, slot := range slots {
		if !validDays[slot.DayOfWeek] {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid day_of_week: %s", slot.DayOfWeek))
		}
		if err := validateWindow(slot.StartTime, slot.EndTime, "time slot"); err != nil {
			return err
		}
	}
	return nil
}

// validateWindow enforces business hours (10:00-20:00) and the exact
// two-hour window rule shared by slots and partial-day time off.
func validateWindow(start, end, label string) error {
	startMinutes, err := parseMinutes(start)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid time format, use HH:MM")
	}
	endMinutes, err := parseMinutes(end)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid time format, use HH:MM")
	}

	if startMinutes < businessStartMinutes || endMinutes > businessEndMinutes {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s must be within business hours (10:00 AM - 8:00 PM)", label))
	}
	if startMinutes >= endMinutes {
		return pkgerrors.New(pkgerrors.CodeValidation, "end time must be after start time")
	}
	if endMinutes-startMinutes != slotDurationMinutes {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("each %s must be exactly 2 hours", label))
	}
	return nil
}

func parseMinutes(value string) (int, error) {
	parsed, err := time.Parse(timeLayout, value)
	if err != nil {
		return 0, err
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

func normalizeTime(value string) string {
	return value + ":00"
}

func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}
