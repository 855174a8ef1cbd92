package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/anisgadi/roombooking/internal/dto"
	"github.com/anisgadi/roombooking/internal/models"
	"github.com/anisgadi/roombooking/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
)

// BookingConsumer turns booking lifecycle events into notifications for the
// room owner and the client.
type BookingConsumer struct {
	notificationRepo repository.NotificationRepository
}

func NewBookingConsumer(notificationRepo repository.NotificationRepository) *BookingConsumer {
	return &BookingConsumer{notificationRepo: notificationRepo}
}

// Start listens for messages until the channel closes.
func (bc *BookingConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			bc.handleMessage(msg)
		}
		log.Println("[BookingConsumer] channel closed, stopping consumer")
	}()
}

func (bc *BookingConsumer) handleMessage(msg amqp.Delivery) {
	var event dto.BookingEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("[BookingConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}

	ctx := context.Background()
	for _, n := range notificationsFor(event) {
		if err := bc.notificationRepo.Create(ctx, &n); err != nil {
			log.Printf("[BookingConsumer] failed to store notification for booking %d: %v", event.BookingID, err)
			msg.Nack(false, true) // requeue
			return
		}
	}

	log.Printf("[BookingConsumer] processed booking %d (%s)", event.BookingID, event.Status)
	msg.Ack(false)
}

func notificationsFor(event dto.BookingEvent) []models.Notification {
	window := fmt.Sprintf("%s to %s",
		event.StartAt.Format("2006-01-02 15:04"),
		event.EndAt.Format("2006-01-02 15:04"),
	)

	switch event.Status {
	case models.BookingPending:
		return []models.Notification{{
			UserID:    event.OwnerID,
			BookingID: event.BookingID,
			Message:   fmt.Sprintf("New booking request for %q, %s", event.RoomTitle, window),
		}}
	case models.BookingConfirmed:
		return []models.Notification{
			{
				UserID:    event.ClientID,
				BookingID: event.BookingID,
				Message:   fmt.Sprintf("Your booking for %q (%s) is confirmed", event.RoomTitle, window),
			},
			{
				UserID:    event.OwnerID,
				BookingID: event.BookingID,
				Message:   fmt.Sprintf("Booking confirmed for %q, %s", event.RoomTitle, window),
			},
		}
	case models.BookingRefused:
		return []models.Notification{{
			UserID:    event.ClientID,
			BookingID: event.BookingID,
			Message:   fmt.Sprintf("Your booking request for %q (%s) was refused", event.RoomTitle, window),
		}}
	case models.BookingCancelled:
		return []models.Notification{{
			UserID:    event.OwnerID,
			BookingID: event.BookingID,
			Message:   fmt.Sprintf("Booking for %q (%s) was cancelled by the client", event.RoomTitle, window),
		}}
	default:
		return nil
	}
}
