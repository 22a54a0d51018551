package messaging

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/model"
	"github.com/triautami12/aplikasi-lapor-fasilkom/internal/repository"
)

const (
	maxRetryAttempts = 3
	initialDelay     = 1 * time.Second
	maxDelay         = 30 * time.Second
)

// EventConsumer consumes the service's own report events and turns them into
// live SSE pushes. New-report events additionally create a notification for
// the admin identity, which is not covered by the synchronous author-facing
// dispatch.
type EventConsumer struct {
	rmq              *RabbitMQ
	notificationRepo *repository.NotificationRepository
	sseHub           *SSEHub
	adminIdentifier  string
	done             chan struct{}
}

func NewEventConsumer(rmq *RabbitMQ, notificationRepo *repository.NotificationRepository, sseHub *SSEHub, adminIdentifier string) *EventConsumer {
	return &EventConsumer{
		rmq:              rmq,
		notificationRepo: notificationRepo,
		sseHub:           sseHub,
		adminIdentifier:  adminIdentifier,
		done:             make(chan struct{}),
	}
}

func (c *EventConsumer) Start() {
	go c.consume()
}

func (c *EventConsumer) consume() {
	for {
		select {
		case <-c.done:
			return
		default:
			msgs, err := c.rmq.Consume()
			if err != nil {
				log.Printf("consumer: %v, retrying...", err)
				time.Sleep(5 * time.Second)
				continue
			}

			c.processMessages(msgs)
		}
	}
}

func (c *EventConsumer) processMessages(msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-c.done:
			return
		case msg, ok := <-msgs:
			if !ok {
				log.Println("consumer: channel closed, reconnecting...")
				return
			}
			c.handleMessage(msg)
		}
	}
}

func (c *EventConsumer) handleMessage(msg amqp.Delivery) {
	var handler func(amqp.Delivery) error

	switch msg.RoutingKey {
	case RoutingKeyReportCreated:
		handler = c.handleReportCreated
	case RoutingKeyStatusUpdate:
		handler = c.handleStatusUpdate
	case RoutingKeyCommentAdded:
		handler = c.handleCommentAdded
	default:
		msg.Nack(false, false)
		return
	}

	err := retry.Do(
		func() error { return handler(msg) },
		retry.Attempts(maxRetryAttempts),
		retry.Delay(initialDelay),
		retry.MaxDelay(maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.OnRetry(func(n uint, err error) {
			log.Printf("consumer %s: retry %d: %v", msg.RoutingKey, n+1, err)
		}),
	)
	if err != nil {
		log.Printf("consumer %s: giving up: %v", msg.RoutingKey, err)
		msg.Nack(false, false)
		return
	}

	msg.Ack(false)
}

// handleReportCreated notifies the admin identity about the new report.
func (c *EventConsumer) handleReportCreated(msg amqp.Delivery) error {
	var event model.ReportCreatedMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("report_created: bad json: %v", err)
		return nil
	}

	notification := model.Notification{
		ID:             uuid.New(),
		UserIdentifier: c.adminIdentifier,
		Message:        fmt.Sprintf("Laporan baru %q di %q dari %s (urgensi: %s).", event.Category, event.Location, event.ReporterName, event.Urgency),
		Kind:           model.KindInfo,
		IsRead:         false,
		Timestamp:      time.Now(),
	}
	c.notificationRepo.Create(notification)
	c.sseHub.SendToUser(&notification)
	return nil
}

// handleStatusUpdate streams the status change to the reporter. The stored
// notification record was already created by the mutation itself.
func (c *EventConsumer) handleStatusUpdate(msg amqp.Delivery) error {
	var event model.StatusUpdateMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("status_update: bad json: %v", err)
		return nil
	}

	if event.ReporterID == "" {
		return nil
	}
	c.sseHub.SendToUser(&model.Notification{
		ID:             uuid.New(),
		UserIdentifier: event.ReporterID,
		Message:        fmt.Sprintf("Status laporan %q Anda telah diperbarui menjadi: %s", event.Category, event.NewStatus),
		Kind:           model.KindInfo,
		IsRead:         false,
		Timestamp:      time.Now(),
	})
	return nil
}

// handleCommentAdded streams an admin response to the reporter. Non-admin
// comments never notify, so the publisher only emits admin ones.
func (c *EventConsumer) handleCommentAdded(msg amqp.Delivery) error {
	var event model.CommentAddedMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("comment_added: bad json: %v", err)
		return nil
	}

	if event.ReporterID == "" {
		return nil
	}
	c.sseHub.SendToUser(&model.Notification{
		ID:             uuid.New(),
		UserIdentifier: event.ReporterID,
		Message:        fmt.Sprintf("Admin menanggapi laporan %q: %q", event.Category, event.Preview),
		Kind:           model.KindInfo,
		IsRead:         false,
		Timestamp:      time.Now(),
	})
	return nil
}

func (c *EventConsumer) Stop() {
	close(c.done)
}
