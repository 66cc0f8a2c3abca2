package produce

import amqp "github.com/rabbitmq/amqp091-go"

type Produce struct {
	SubmissionEvents *SubmissionEventService
}

var produceInstance *Produce

func InitProduce(channel *amqp.Channel) *Produce {
	if produceInstance != nil {
		return produceInstance
	}

	submissionEvents := InitSubmissionEventService(channel)
	if submissionEvents == nil {
		panic("Failed to initialize Submission event service")
	}

	produceInstance = &Produce{
		SubmissionEvents: submissionEvents,
	}

	return produceInstance
}
