package notifications

import (
	"fmt"

	"github.com/fieldline/fieldline-backend/pkg/enums"
)

// Channel is the delivery mechanism for one outbound message.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Message is one outbound notification ready for a sender.
type Message struct {
	Channel   Channel
	Recipient string
	Subject   string
	Body      string
}

// BuildMessages expands a booking event into the customer and agent
// notifications it implies. Deleted bookings produce no messages.
func BuildMessages(event BookingEvent) []Message {
	if event.Type == enums.BookingEventDeleted {
		return nil
	}

	isUpdate := event.Type == enums.BookingEventUpdated

	var customerBody, agentBody string
	if isUpdate {
		customerBody = fmt.Sprintf(
			"Hi %s, the status of your booking on %s at %s has been updated to '%s'.",
			event.CustomerName, event.BookingDate, event.BookingTime, event.Status,
		)
		if event.AgentName != nil {
			agentBody = fmt.Sprintf(
				"Hi %s, the status of booking with %s on %s at %s has been updated to '%s'.",
				*event.AgentName, event.CustomerName, event.BookingDate, event.BookingTime, event.Status,
			)
		}
	} else {
		if event.AgentName != nil {
			customerBody = fmt.Sprintf(
				"Hi %s, your booking with %s on %s at %s has been confirmed.",
				event.CustomerName, *event.AgentName, event.BookingDate, event.BookingTime,
			)
			agentBody = fmt.Sprintf(
				"Hi %s, you have a new booking with %s on %s at %s.",
				*event.AgentName, event.CustomerName, event.BookingDate, event.BookingTime,
			)
		} else {
			customerBody = fmt.Sprintf(
				"Hi %s, your booking on %s at %s has been confirmed.",
				event.CustomerName, event.BookingDate, event.BookingTime,
			)
		}
	}

	customerSubject := "Booking Confirmation"
	agentSubject := "New Booking Assigned"
	if isUpdate {
		customerSubject = "Booking Status Updated"
		agentSubject = "Booking Status Updated"
	}

	var messages []Message
	if event.CustomerEmail != nil && *event.CustomerEmail != "" {
		messages = append(messages, Message{
			Channel:   ChannelEmail,
			Recipient: *event.CustomerEmail,
			Subject:   customerSubject,
			Body:      fmt.Sprintf("<p>%s</p>", customerBody),
		})
	}
	if event.CustomerPhone != nil && *event.CustomerPhone != "" {
		messages = append(messages, Message{
			Channel:   ChannelSMS,
			Recipient: *event.CustomerPhone,
			Body:      customerBody,
		})
	}

	if event.AgentName == nil || agentBody == "" {
		return messages
	}
	if event.AgentEmail != nil && *event.AgentEmail != "" {
		messages = append(messages, Message{
			Channel:   ChannelEmail,
			Recipient: *event.AgentEmail,
			Subject:   agentSubject,
			Body:      fmt.Sprintf("<p>%s</p>", agentBody),
		})
	}
	if event.AgentPhone != nil && *event.AgentPhone != "" {
		messages = append(messages, Message{
			Channel:   ChannelSMS,
			Recipient: *event.AgentPhone,
			Body:      agentBody,
		})
	}

	return messages
}
