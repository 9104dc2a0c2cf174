package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/fieldline/fieldline-backend/pkg/enums"
	"github.com/fieldline/fieldline-backend/pkg/kafka"
	"github.com/fieldline/fieldline-backend/pkg/logger"
)

func strPtr(v string) *string { return &v }

func createdEvent() BookingEvent {
	return BookingEvent{
		Type:          enums.BookingEventCreated,
		BookingID:     42,
		CustomerName:  "Dana Wells",
		CustomerEmail: strPtr("dana@example.com"),
		CustomerPhone: strPtr("+15550001111"),
		AgentName:     strPtr("Marco Ito"),
		AgentEmail:    strPtr("marco@example.com"),
		AgentPhone:    strPtr("+15550002222"),
		BookingDate:   "2026-09-14",
		BookingTime:   "10:30:00",
		Status:        enums.BookingStatusScheduled,
		OccurredAt:    time.Now().UTC(),
	}
}

func TestBuildMessages_CreatedNotifiesCustomerAndAgent(t *testing.T) {
	messages := BuildMessages(createdEvent())
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}

	if messages[0].Channel != ChannelEmail || messages[0].Recipient != "dana@example.com" {
		t.Fatalf("unexpected first message: %+v", messages[0])
	}
	if messages[0].Subject != "Booking Confirmation" {
		t.Fatalf("unexpected customer subject %q", messages[0].Subject)
	}
	if messages[2].Subject != "New Booking Assigned" {
		t.Fatalf("unexpected agent subject %q", messages[2].Subject)
	}
	if messages[1].Channel != ChannelSMS || messages[3].Channel != ChannelSMS {
		t.Fatalf("expected sms messages at positions 1 and 3")
	}
}

func TestBuildMessages_UnassignedCreateSkipsAgent(t *testing.T) {
	event := createdEvent()
	event.AgentName = nil
	event.AgentEmail = nil
	event.AgentPhone = nil

	messages := BuildMessages(event)
	if len(messages) != 2 {
		t.Fatalf("expected 2 customer messages, got %d", len(messages))
	}
	for _, msg := range messages {
		if msg.Recipient != "dana@example.com" && msg.Recipient != "+15550001111" {
			t.Fatalf("unexpected recipient %q", msg.Recipient)
		}
	}
}

func TestBuildMessages_UpdateUsesStatusWording(t *testing.T) {
	event := createdEvent()
	event.Type = enums.BookingEventUpdated
	event.Status = enums.BookingStatusEnroute

	messages := BuildMessages(event)
	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	if messages[0].Subject != "Booking Status Updated" {
		t.Fatalf("unexpected subject %q", messages[0].Subject)
	}
	want := "updated to 'enroute'"
	if !contains(messages[1].Body, want) {
		t.Fatalf("sms body %q missing %q", messages[1].Body, want)
	}
}

func TestBuildMessages_DeletedProducesNothing(t *testing.T) {
	event := createdEvent()
	event.Type = enums.BookingEventDeleted
	if messages := BuildMessages(event); len(messages) != 0 {
		t.Fatalf("expected no messages, got %d", len(messages))
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

type recordingSender struct {
	sent []Message
	err  error
}

func (r *recordingSender) Send(ctx context.Context, msg Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func TestBookingEventHandler_DeliversMessages(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	sender := &recordingSender{}
	handler := NewBookingEventHandler(sender, logg)

	payload, err := EncodeBookingEvent(createdEvent())
	if err != nil {
		t.Fatalf("encode event: %v", err)
	}

	if err := handler(context.Background(), kafka.Message{Key: "42", Value: payload}); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if len(sender.sent) != 4 {
		t.Fatalf("expected 4 deliveries, got %d", len(sender.sent))
	}
}

func TestBookingEventHandler_DropsMalformedPayload(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test"})
	sender := &recordingSender{}
	handler := NewBookingEventHandler(sender, logg)

	if err := handler(context.Background(), kafka.Message{Key: "x", Value: []byte("not json")}); err != nil {
		t.Fatalf("malformed payload should be dropped, got error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no deliveries, got %d", len(sender.sent))
	}
}
