package produce

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	SubmissionExchange          = "submission.events"
	SubmissionCreatedRoutingKey = "submission.created"
)

// SubmissionCreatedMessage is published after a submission tree has been
// committed. Consumers (notifications, reporting) are outside this service.
type SubmissionCreatedMessage struct {
	SubmissionID string `json:"submission_id"`
	GuardianName string `json:"guardian_name"`
	Turma        string `json:"turma"`
	ChildCount   int    `json:"child_count"`
	PhotoCount   int    `json:"photo_count"`
	Timestamp    int64  `json:"timestamp"`
}

type SubmissionEventService struct {
	channel *amqp.Channel
}

func InitSubmissionEventService(channel *amqp.Channel) *SubmissionEventService {
	return &SubmissionEventService{
		channel: channel,
	}
}

func (s *SubmissionEventService) PublishSubmissionCreated(ctx context.Context, message SubmissionCreatedMessage) error {
	if message.Timestamp == 0 {
		message.Timestamp = time.Now().Unix()
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal submission event: %w", err)
	}

	err = s.channel.ExchangeDeclare(SubmissionExchange, "topic", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare submission exchange: %w", err)
	}

	err = s.channel.PublishWithContext(ctx, SubmissionExchange, SubmissionCreatedRoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to publish submission event: %w", err)
	}

	return nil
}
