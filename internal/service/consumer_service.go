package service

import (
	"context"
	"encoding/json"
	"log"

	"livelabs-be/internal/config"
	"livelabs-be/internal/dto"
	"livelabs-be/internal/pkg/mailer"
	"livelabs-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the notification topic and mails participants about
// outdated and deleted runs. Mail failures are logged and acked; the sweep
// already stamped the run, so retrying would double-notify on the next pass
// anyway.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	mail       mailer.IEmailService
	challenge  config.ChallengeConfig
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	mail mailer.IEmailService,
	challenge config.ChallengeConfig,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		mail:       mail,
		challenge:  challenge,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.NotifyRunMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal notify message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	switch payload.Kind {
	case dto.NotifyKindOutdated:
		if !cs.challenge.SendEmailRunOutdated {
			msg.Ack()
			return
		}
	case dto.NotifyKindDeleted:
		if !cs.challenge.SendEmailRunDeleted {
			msg.Ack()
			return
		}
	default:
		log.Printf("[ERROR] Unknown notify kind %q", payload.Kind)
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	participant, err := uow.ParticipantRepository().FindByID(ctx, payload.ParticipantId)
	if err != nil {
		log.Printf("[ERROR] Failed to load participant %s: %v", payload.ParticipantId, err)
		msg.Nack() // Retriable store error
		return
	}
	if participant == nil {
		log.Printf("[WARN] Participant %s gone, dropping %s notice", payload.ParticipantId, payload.Kind)
		msg.Ack()
		return
	}

	switch payload.Kind {
	case dto.NotifyKindOutdated:
		err = cs.mail.SendRunOutdated(
			participant.Email, participant.TeamName,
			payload.QueryId, payload.RunLabel,
			cs.challenge.CompetitionName, cs.challenge.DashboardRunsURL,
		)
	case dto.NotifyKindDeleted:
		err = cs.mail.SendRunDeleted(
			participant.Email, participant.TeamName,
			payload.QueryId, payload.RunLabel,
			cs.challenge.CompetitionName,
		)
	}
	if err != nil {
		log.Printf("[ERROR] Failed to mail %s notice to %s: %v", payload.Kind, participant.Email, err)
	}
	msg.Ack()
}
