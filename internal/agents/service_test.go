package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/fieldline/fieldline-backend/pkg/config"
	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"github.com/fieldline/fieldline-backend/pkg/enums"
	pkgerrors "github.com/fieldline/fieldline-backend/pkg/errors"
	"github.com/fieldline/fieldline-backend/pkg/geo"
	"github.com/fieldline/fieldline-backend/pkg/logger"
	"gorm.io/gorm"
)

type fakeRepository struct {
	listAgentsFn       func(ctx context.Context) ([]models.FieldAgent, error)
	findAgentFn        func(ctx context.Context, agentID int64) (*models.FieldAgent, error)
	findAgentEmailFn   func(ctx context.Context, email string) (*models.FieldAgent, error)
	createAgentFn      func(ctx context.Context, agent *models.FieldAgent) error
	listDispatchersFn  func(ctx context.Context) ([]models.Dispatcher, error)
	findDispEmailFn    func(ctx context.Context, email string) (*models.Dispatcher, error)
	createDispatcherFn func(ctx context.Context, dispatcher *models.Dispatcher) error
	findTeamFn         func(ctx context.Context, teamID int64) (*models.Team, error)
	findLocationFn     func(ctx context.Context, loc LocationInput) (*models.Location, error)
	createLocationFn   func(ctx context.Context, loc *models.Location) error
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) ListAgents(ctx context.Context) ([]models.FieldAgent, error) {
	if f.listAgentsFn != nil {
		return f.listAgentsFn(ctx)
	}
	return nil, nil
}

func (f *fakeRepository) FindAgent(ctx context.Context, agentID int64) (*models.FieldAgent, error) {
	if f.findAgentFn != nil {
		return f.findAgentFn(ctx, agentID)
	}
	return &models.FieldAgent{ID: agentID, Name: "Marco Ito", Email: "marco@example.com"}, nil
}

func (f *fakeRepository) FindAgentByEmail(ctx context.Context, email string) (*models.FieldAgent, error) {
	if f.findAgentEmailFn != nil {
		return f.findAgentEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) CreateAgent(ctx context.Context, agent *models.FieldAgent) error {
	if f.createAgentFn != nil {
		return f.createAgentFn(ctx, agent)
	}
	agent.ID = 11
	return nil
}

func (f *fakeRepository) ListDispatchers(ctx context.Context) ([]models.Dispatcher, error) {
	if f.listDispatchersFn != nil {
		return f.listDispatchersFn(ctx)
	}
	return nil, nil
}

func (f *fakeRepository) FindDispatcherByEmail(ctx context.Context, email string) (*models.Dispatcher, error) {
	if f.findDispEmailFn != nil {
		return f.findDispEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) CreateDispatcher(ctx context.Context, dispatcher *models.Dispatcher) error {
	if f.createDispatcherFn != nil {
		return f.createDispatcherFn(ctx, dispatcher)
	}
	dispatcher.ID = 3
	return nil
}

func (f *fakeRepository) FindTeam(ctx context.Context, teamID int64) (*models.Team, error) {
	if f.findTeamFn != nil {
		return f.findTeamFn(ctx, teamID)
	}
	return &models.Team{ID: teamID, Name: "North Team"}, nil
}

func (f *fakeRepository) FindLocation(ctx context.Context, loc LocationInput) (*models.Location, error) {
	if f.findLocationFn != nil {
		return f.findLocationFn(ctx, loc)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) CreateLocation(ctx context.Context, loc *models.Location) error {
	if f.createLocationFn != nil {
		return f.createLocationFn(ctx, loc)
	}
	loc.ID = 21
	return nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeGeocoder struct {
	coords *geo.Coordinates
	err    error
	calls  int
}

func (f *fakeGeocoder) Geocode(ctx context.Context, query geo.GeocodeQuery) (*geo.Coordinates, error) {
	f.calls++
	return f.coords, f.err
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func newTestService(t *testing.T, repo *fakeRepository, geocoder geocoder) Service {
	t.Helper()
	svc, err := NewService(repo, fakeTxRunner{}, geocoder, testPasswordConfig(), logger.New(logger.Options{ServiceName: "test"}))
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

func TestListAgents_FieldAgentForbidden(t *testing.T) {
	svc := newTestService(t, &fakeRepository{}, nil)

	_, err := svc.ListAgents(context.Background(), enums.RoleFieldAgent)
	expectCode(t, err, pkgerrors.CodeForbidden)

	if _, err := svc.ListAgents(context.Background(), enums.RoleDispatcher); err != nil {
		t.Fatalf("ListAgents: %v", err)
	}
}

func TestGetAgent_SelfScopeForAgents(t *testing.T) {
	svc := newTestService(t, &fakeRepository{}, nil)

	_, err := svc.GetAgent(context.Background(), GetAgentInput{AgentID: 4, ActorID: 9, ActorRole: enums.RoleFieldAgent})
	expectCode(t, err, pkgerrors.CodeForbidden)

	view, err := svc.GetAgent(context.Background(), GetAgentInput{AgentID: 9, ActorID: 9, ActorRole: enums.RoleFieldAgent})
	if err != nil {
		t.Fatalf("GetAgent: %v", err)
	}
	if view.ID != 9 {
		t.Fatalf("expected agent 9, got %d", view.ID)
	}
}

func TestCreateAgent_HashesPasswordAndGeocodes(t *testing.T) {
	var created *models.FieldAgent
	var location *models.Location
	repo := &fakeRepository{
		createAgentFn: func(ctx context.Context, agent *models.FieldAgent) error {
			agent.ID = 11
			created = agent
			return nil
		},
		createLocationFn: func(ctx context.Context, loc *models.Location) error {
			loc.ID = 21
			location = loc
			return nil
		},
	}
	geocoder := &fakeGeocoder{coords: &geo.Coordinates{Latitude: 52.52, Longitude: 13.405}}
	svc := newTestService(t, repo, geocoder)

	view, err := svc.CreateAgent(context.Background(), CreateAgentInput{
		Name:     "Marco Ito",
		Email:    " Marco@Example.com ",
		Password: "solid-password",
		Location: &LocationInput{
			StreetNumber:  "12",
			StreetName:    "Hauptstrasse",
			City:          "Berlin",
			StateProvince: "BE",
			PostalCode:    "10115",
			Country:       "DE",
		},
		ActorRole: enums.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("CreateAgent: %v", err)
	}
	if created.Email != "marco@example.com" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}
	if created.PasswordHash == "" || created.PasswordHash == "solid-password" {
		t.Fatal("password must be stored hashed")
	}
	if !strings.HasPrefix(created.PasswordHash, "$argon2id$") {
		t.Fatalf("unexpected hash format %q", created.PasswordHash)
	}
	if geocoder.calls != 1 {
		t.Fatalf("expected one geocode call, got %d", geocoder.calls)
	}
	if location == nil || !location.HasCoordinates() {
		t.Fatalf("expected geocoded location, got %+v", location)
	}
	if created.LocationID == nil || *created.LocationID != 21 {
		t.Fatalf("expected location 21 attached, got %v", created.LocationID)
	}
	if view.ID != 11 {
		t.Fatalf("unexpected view id %d", view.ID)
	}
}

func TestCreateAgent_AdminOnlyAndDuplicateEmail(t *testing.T) {
	svc := newTestService(t, &fakeRepository{}, nil)

	_, err := svc.CreateAgent(context.Background(), CreateAgentInput{
		Name: "X", Email: "x@example.com", Password: "pw-long-enough",
		ActorRole: enums.RoleDispatcher,
	})
	expectCode(t, err, pkgerrors.CodeForbidden)

	repo := &fakeRepository{
		findAgentEmailFn: func(ctx context.Context, email string) (*models.FieldAgent, error) {
			return &models.FieldAgent{ID: 1, Email: email}, nil
		},
	}
	svc = newTestService(t, repo, nil)
	_, err = svc.CreateAgent(context.Background(), CreateAgentInput{
		Name: "X", Email: "x@example.com", Password: "pw-long-enough",
		ActorRole: enums.RoleAdmin,
	})
	expectCode(t, err, pkgerrors.CodeConflict)
}

func TestCreateAgent_InvalidTeam(t *testing.T) {
	teamID := int64(42)
	repo := &fakeRepository{
		findTeamFn: func(ctx context.Context, id int64) (*models.Team, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newTestService(t, repo, nil)

	_, err := svc.CreateAgent(context.Background(), CreateAgentInput{
		Name: "X", Email: "x@example.com", Password: "pw-long-enough",
		TeamID:    &teamID,
		ActorRole: enums.RoleAdmin,
	})
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateDispatcher_AdminOnly(t *testing.T) {
	svc := newTestService(t, &fakeRepository{}, nil)

	_, err := svc.CreateDispatcher(context.Background(), CreateDispatcherInput{
		Name: "Priya Shah", Email: "priya@example.com", Password: "pw-long-enough",
		ActorRole: enums.RoleDispatcher,
	})
	expectCode(t, err, pkgerrors.CodeForbidden)

	view, err := svc.CreateDispatcher(context.Background(), CreateDispatcherInput{
		Name: "Priya Shah", Email: "priya@example.com", Password: "pw-long-enough",
		ActorRole: enums.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("CreateDispatcher: %v", err)
	}
	if view.ID != 3 || view.Name != "Priya Shah" {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestListDispatchers_AdminOnly(t *testing.T) {
	svc := newTestService(t, &fakeRepository{}, nil)

	_, err := svc.ListDispatchers(context.Background(), enums.RoleDispatcher)
	expectCode(t, err, pkgerrors.CodeForbidden)

	if _, err := svc.ListDispatchers(context.Background(), enums.RoleAdmin); err != nil {
		t.Fatalf("ListDispatchers: %v", err)
	}
}
