package poll

import (
	"testing"

	"github.com/fieldline/fieldline-backend/pkg/apiclient"
)

func boardBooking(id int64, status string, global bool) apiclient.Booking {
	booking := testBooking(id, status)
	booking.RegionIsGlobal = global
	return booking
}

func TestCategorizeSplitsGlobalAndTeamByStatus(t *testing.T) {
	set := Categorize([]apiclient.Booking{
		boardBooking(1, "scheduled", true),
		boardBooking(2, "scheduled", false),
		boardBooking(3, "enroute", false),
		boardBooking(4, "on-site", true),
		boardBooking(5, "completed", false),
		boardBooking(6, "scheduled", false),
	})

	if got := set.Global.Len(); got != 2 {
		t.Fatalf("expected 2 global bookings, got %d", got)
	}
	if len(set.Global.Scheduled) != 1 || set.Global.Scheduled[0].BookingID != 1 {
		t.Fatalf("unexpected global scheduled %+v", set.Global.Scheduled)
	}
	if len(set.Global.OnSite) != 1 || set.Global.OnSite[0].BookingID != 4 {
		t.Fatalf("unexpected global on-site %+v", set.Global.OnSite)
	}

	if got := set.Team.Len(); got != 4 {
		t.Fatalf("expected 4 team bookings, got %d", got)
	}
	if len(set.Team.Scheduled) != 2 || set.Team.Scheduled[0].BookingID != 2 || set.Team.Scheduled[1].BookingID != 6 {
		t.Fatalf("expected team scheduled order kept, got %+v", set.Team.Scheduled)
	}
	if len(set.Team.Enroute) != 1 || len(set.Team.Completed) != 1 {
		t.Fatalf("unexpected team queues %+v", set.Team)
	}
}

func TestCategorizeDropsUnknownStatus(t *testing.T) {
	set := Categorize([]apiclient.Booking{
		boardBooking(1, "cancelled", false),
		boardBooking(2, "scheduled", false),
	})
	if got := set.Team.Len() + set.Global.Len(); got != 1 {
		t.Fatalf("expected unknown status dropped, got %d bookings", got)
	}
}
