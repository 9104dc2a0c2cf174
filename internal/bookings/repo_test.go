package bookings

import (
	"context"
	"testing"

	"github.com/fieldline/fieldline-backend/pkg/db/models"
	"github.com/fieldline/fieldline-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupBookingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE IF NOT EXISTS locations (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  latitude REAL,
  longitude REAL,
  street_number TEXT NOT NULL,
  street_name TEXT NOT NULL,
  postal_code TEXT NOT NULL,
  city TEXT NOT NULL,
  state_province TEXT NOT NULL,
  country TEXT NOT NULL
);`,
		`CREATE TABLE IF NOT EXISTS regions (
  region_id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  is_global INTEGER NOT NULL DEFAULT 0
);`,
		`CREATE TABLE IF NOT EXISTS teams (
  team_id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  region_id INTEGER
);`,
		`CREATE TABLE IF NOT EXISTS customers (
  customer_id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  phone TEXT,
  location_id INTEGER
);`,
		`CREATE TABLE IF NOT EXISTS field_agents (
  agent_id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  phone TEXT,
  password_hash TEXT NOT NULL DEFAULT '',
  location_id INTEGER,
  team_id INTEGER
);`,
		`CREATE TABLE IF NOT EXISTS dispatchers (
  dispatcher_id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  phone TEXT,
  password_hash TEXT NOT NULL DEFAULT '',
  location_id INTEGER,
  team_id INTEGER
);`,
		`CREATE TABLE IF NOT EXISTS disposition_types (
  type_code TEXT PRIMARY KEY,
  description TEXT NOT NULL,
  created_time DATETIME,
  updated_time DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS dispositions (
  disposition_id INTEGER PRIMARY KEY AUTOINCREMENT,
  type_code TEXT NOT NULL,
  note TEXT,
  created_time DATETIME,
  updated_time DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS bookings (
  booking_id INTEGER PRIMARY KEY AUTOINCREMENT,
  customer_id INTEGER NOT NULL,
  agent_id INTEGER,
  dispatcher_id INTEGER,
  region_id INTEGER NOT NULL,
  booking_date TEXT NOT NULL,
  booking_time TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'scheduled',
  disposition_id INTEGER,
  call_center_agent_name TEXT,
  call_center_agent_email TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	for _, table := range []string{"bookings", "dispositions", "dispatchers", "field_agents", "customers", "teams", "regions", "locations"} {
		require.NoError(t, db.Exec("DELETE FROM "+table).Error)
	}

	return db
}

func TestRepository_LocationDedupe(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	loc := &models.Location{
		StreetNumber:  "12",
		StreetName:    "Main St",
		PostalCode:    "10115",
		City:          "Berlin",
		StateProvince: "BE",
		Country:       "DE",
	}
	require.NoError(t, repo.CreateLocation(ctx, loc))

	found, err := repo.FindLocation(ctx, LocationInput{
		StreetNumber:  "12",
		StreetName:    "Main St",
		PostalCode:    "10115",
		City:          "Berlin",
		StateProvince: "BE",
	})
	require.NoError(t, err)
	assert.Equal(t, loc.ID, found.ID)

	_, err = repo.FindLocation(ctx, LocationInput{
		StreetNumber:  "12",
		StreetName:    "Main St",
		PostalCode:    "20095",
		City:          "Hamburg",
		StateProvince: "HH",
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_ListBookings_RegionScope(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	north := models.Region{Name: "North"}
	global := models.Region{Name: "Global", IsGlobal: true}
	south := models.Region{Name: "South"}
	require.NoError(t, db.Create(&north).Error)
	require.NoError(t, db.Create(&global).Error)
	require.NoError(t, db.Create(&south).Error)

	customer := models.Customer{Name: "Dana Wells", Email: "dana@example.com"}
	require.NoError(t, db.Create(&customer).Error)

	mk := func(regionID int64, date, tm string) models.Booking {
		b := models.Booking{
			CustomerID:  customer.ID,
			RegionID:    regionID,
			BookingDate: date,
			BookingTime: tm,
			Status:      enums.BookingStatusScheduled,
		}
		require.NoError(t, repo.CreateBooking(ctx, &b))
		return b
	}
	inNorth := mk(north.ID, "2026-09-15", "09:00:00")
	inGlobal := mk(global.ID, "2026-09-14", "10:00:00")
	mk(south.ID, "2026-09-14", "08:00:00")

	scoped, err := repo.ListBookings(ctx, ListFilter{RegionID: &north.ID, IncludeGlobal: true})
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	// Ordered by date then time: the global booking on the 14th leads.
	assert.Equal(t, inGlobal.ID, scoped[0].ID)
	assert.Equal(t, inNorth.ID, scoped[1].ID)

	strict, err := repo.ListBookings(ctx, ListFilter{RegionID: &north.ID})
	require.NoError(t, err)
	require.Len(t, strict, 1)
	assert.Equal(t, inNorth.ID, strict[0].ID)

	all, err := repo.ListBookings(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRepository_ListBookings_AgentFilter(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	region := models.Region{Name: "West"}
	require.NoError(t, db.Create(&region).Error)
	customer := models.Customer{Name: "Omar Haddad", Email: "omar@example.com"}
	require.NoError(t, db.Create(&customer).Error)
	agent := models.FieldAgent{Name: "Marco Ito", Email: "marco@example.com"}
	require.NoError(t, db.Create(&agent).Error)

	mine := models.Booking{
		CustomerID:  customer.ID,
		AgentID:     &agent.ID,
		RegionID:    region.ID,
		BookingDate: "2026-09-14",
		BookingTime: "10:00:00",
		Status:      enums.BookingStatusScheduled,
	}
	require.NoError(t, repo.CreateBooking(ctx, &mine))
	other := models.Booking{
		CustomerID:  customer.ID,
		RegionID:    region.ID,
		BookingDate: "2026-09-14",
		BookingTime: "11:00:00",
		Status:      enums.BookingStatusScheduled,
	}
	require.NoError(t, repo.CreateBooking(ctx, &other))

	rows, err := repo.ListBookings(ctx, ListFilter{AgentID: &agent.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, mine.ID, rows[0].ID)
	require.NotNil(t, rows[0].Agent)
	assert.Equal(t, "Marco Ito", rows[0].Agent.Name)
}

func TestRepository_UpdateBooking_AssignmentExclusivity(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	region := models.Region{Name: "East"}
	require.NoError(t, db.Create(&region).Error)
	customer := models.Customer{Name: "Lena Sorg", Email: "lena@example.com"}
	require.NoError(t, db.Create(&customer).Error)
	agent := models.FieldAgent{Name: "Agent", Email: "agent@example.com"}
	require.NoError(t, db.Create(&agent).Error)
	dispatcher := models.Dispatcher{Name: "Dispatcher", Email: "dispatcher@example.com"}
	require.NoError(t, db.Create(&dispatcher).Error)

	booking := models.Booking{
		CustomerID:  customer.ID,
		AgentID:     &agent.ID,
		RegionID:    region.ID,
		BookingDate: "2026-09-14",
		BookingTime: "10:00:00",
		Status:      enums.BookingStatusScheduled,
	}
	require.NoError(t, repo.CreateBooking(ctx, &booking))

	require.NoError(t, repo.UpdateBooking(ctx, booking.ID, map[string]any{
		"agent_id":      nil,
		"dispatcher_id": dispatcher.ID,
	}))

	reloaded, err := repo.FindBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.AgentID)
	require.NotNil(t, reloaded.DispatcherID)
	assert.Equal(t, dispatcher.ID, *reloaded.DispatcherID)
}

func TestRepository_DispatcherRegionID(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	region := models.Region{Name: "Central"}
	require.NoError(t, db.Create(&region).Error)
	team := models.Team{Name: "Crew A", RegionID: &region.ID}
	require.NoError(t, db.Create(&team).Error)
	assigned := models.Dispatcher{Name: "With Team", Email: "with-team@example.com", TeamID: &team.ID}
	require.NoError(t, db.Create(&assigned).Error)
	floating := models.Dispatcher{Name: "No Team", Email: "no-team@example.com"}
	require.NoError(t, db.Create(&floating).Error)

	got, err := repo.DispatcherRegionID(ctx, assigned.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, region.ID, *got)

	none, err := repo.DispatcherRegionID(ctx, floating.ID)
	require.NoError(t, err)
	assert.Nil(t, none)
}
