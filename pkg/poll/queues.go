package poll

import (
	"github.com/fieldline/fieldline-backend/pkg/apiclient"
	"github.com/fieldline/fieldline-backend/pkg/enums"
)

// StatusQueues holds one column per lifecycle status, in fetch order.
type StatusQueues struct {
	Scheduled []apiclient.Booking
	Enroute   []apiclient.Booking
	OnSite    []apiclient.Booking
	Completed []apiclient.Booking
}

func (q *StatusQueues) add(booking apiclient.Booking) bool {
	switch enums.BookingStatus(booking.Status) {
	case enums.BookingStatusScheduled:
		q.Scheduled = append(q.Scheduled, booking)
	case enums.BookingStatusEnroute:
		q.Enroute = append(q.Enroute, booking)
	case enums.BookingStatusOnSite:
		q.OnSite = append(q.OnSite, booking)
	case enums.BookingStatusCompleted:
		q.Completed = append(q.Completed, booking)
	default:
		return false
	}
	return true
}

// Len is the number of bookings across all four columns.
func (q StatusQueues) Len() int {
	return len(q.Scheduled) + len(q.Enroute) + len(q.OnSite) + len(q.Completed)
}

// QueueSet is the board layout: the global pool above the team's regional
// queues, each split by status.
type QueueSet struct {
	Global StatusQueues
	Team   StatusQueues
}

// Categorize splits bookings into the board queues. Bookings in a global
// region land in the global pool; everything else is team work. Bookings
// with an unrecognized status are dropped. Relative fetch order is kept
// within every column.
func Categorize(bookings []apiclient.Booking) QueueSet {
	var set QueueSet
	for _, booking := range bookings {
		if booking.RegionIsGlobal {
			set.Global.add(booking)
			continue
		}
		set.Team.add(booking)
	}
	return set
}
