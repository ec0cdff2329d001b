package service

import (
	"context"
	"fmt"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/push"
	"skillswap-backend/internal/repository"
)

type exchangeService struct {
	msgRepo    repository.MessageRepository
	skillRepo  repository.SkillRepository
	userRepo   repository.UserRepository
	noteRepo   repository.NotificationRepository
	settlement *settlementOrchestrator
	emailSvc   EmailService
	publisher  push.Publisher
}

func NewExchangeService(
	msgRepo repository.MessageRepository,
	skillRepo repository.SkillRepository,
	userRepo repository.UserRepository,
	ledgerRepo repository.LedgerRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	publisher push.Publisher,
) ExchangeService {
	return &exchangeService{
		msgRepo:    msgRepo,
		skillRepo:  skillRepo,
		userRepo:   userRepo,
		noteRepo:   noteRepo,
		settlement: newSettlementOrchestrator(ledgerRepo),
		emailSvc:   emailSvc,
		publisher:  publisher,
	}
}

func (s *exchangeService) CreateProposal(ctx context.Context, senderID, recipientID, requestedSkillID, offeredSkillID int32, note string) (*domain.Message, error) {
	if senderID == recipientID {
		return nil, &domain.InvalidProposalError{Reason: "cannot propose an exchange with yourself"}
	}

	recipient, err := s.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrInvalidRecipient
		}
		return nil, err
	}

	proposal, err := s.buildProposal(ctx, senderID, recipientID, requestedSkillID, offeredSkillID, note)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		SenderID:        senderID,
		RecipientID:     recipientID,
		ConversationKey: domain.ConversationKey(senderID, recipientID),
		Kind:            domain.MessageKindExchange,
		Proposal:        proposal,
		Status:          domain.MessageStatusPending,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}

	if err := s.publisher.Publish(ctx, push.NewEvent(push.EventMessageCreated, msg)); err != nil {
		logger.Warn("Failed to publish proposal event", "message_id", msg.ID, "error", err)
	}

	// Notifications are best effort; the proposal is already committed.
	sender, _ := s.userRepo.GetByID(ctx, senderID)
	if sender != nil {
		_ = s.emailSvc.SendProposalReceivedNotification(ctx, recipient.Email, recipient.Name, sender.Name,
			proposal.SkillRequested.Name, proposal.SkillOffered.Name)

		notif := &domain.Notification{
			UserID:  recipientID,
			Title:   "New Exchange Proposal",
			Message: fmt.Sprintf("%s wants to learn %s and offers %s in return", sender.Name, proposal.SkillRequested.Name, proposal.SkillOffered.Name),
			Attributes: map[string]string{
				"type":       "EXCHANGE_PROPOSED",
				"message_id": fmt.Sprintf("%d", msg.ID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}

	return msg, nil
}

// buildProposal validates both skill references and snapshots their name and
// rate into the proposal payload.
func (s *exchangeService) buildProposal(ctx context.Context, senderID, recipientID, requestedSkillID, offeredSkillID int32, note string) (*domain.ExchangeProposal, error) {
	requested, err := s.resolveSkill(ctx, requestedSkillID, recipientID, "requested")
	if err != nil {
		return nil, err
	}
	offered, err := s.resolveSkill(ctx, offeredSkillID, senderID, "offered")
	if err != nil {
		return nil, err
	}
	return &domain.ExchangeProposal{
		SkillRequested: *requested,
		SkillOffered:   *offered,
		Note:           note,
	}, nil
}

func (s *exchangeService) resolveSkill(ctx context.Context, skillID, ownerID int32, side string) (*domain.SkillRef, error) {
	skill, err := s.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, &domain.InvalidProposalError{Reason: fmt.Sprintf("%s skill %d does not exist", side, skillID)}
		}
		return nil, err
	}
	if skill.UserID != ownerID || skill.Kind != domain.SkillKindOffered {
		return nil, &domain.InvalidProposalError{Reason: fmt.Sprintf("%s skill %d is not offered by user %d", side, skillID, ownerID)}
	}
	if skill.Rate < 1 {
		return nil, &domain.InvalidProposalError{Reason: fmt.Sprintf("%s skill %d has a non-positive rate", side, skillID)}
	}
	return &domain.SkillRef{SkillID: skill.ID, Name: skill.Name, Rate: skill.Rate}, nil
}

func (s *exchangeService) Respond(ctx context.Context, actorID, messageID int32, decision domain.MessageStatus) (*domain.Message, error) {
	if decision != domain.MessageStatusAccepted && decision != domain.MessageStatusDeclined {
		return nil, fmt.Errorf("unsupported decision %q", decision)
	}

	msg, err := s.msgRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.RecipientID != actorID {
		return nil, domain.ErrForbidden
	}
	if !msg.IsProposal() || msg.Status != domain.MessageStatusPending {
		return nil, domain.ErrAlreadyResolved
	}

	if decision == domain.MessageStatusDeclined {
		return s.decline(ctx, msg)
	}
	return s.accept(ctx, msg)
}

func (s *exchangeService) decline(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	ok, err := s.msgRepo.TransitionStatus(ctx, msg.ID, domain.MessageStatusPending, domain.MessageStatusDeclined)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAlreadyResolved
	}
	msg.Status = domain.MessageStatusDeclined

	s.announceResolution(ctx, msg, false)
	return msg, nil
}

// accept claims the proposal with a pending→accepted transition before
// settling, so concurrent responders cannot double-settle. If settlement
// fails the claim is reverted and the proposal stays pending for a retry.
func (s *exchangeService) accept(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	ok, err := s.msgRepo.TransitionStatus(ctx, msg.ID, domain.MessageStatusPending, domain.MessageStatusAccepted)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAlreadyResolved
	}

	if err := s.settlement.Settle(ctx, msg); err != nil {
		if _, revertErr := s.msgRepo.TransitionStatus(ctx, msg.ID, domain.MessageStatusAccepted, domain.MessageStatusPending); revertErr != nil {
			logger.ErrorContext(ctx, "Failed to revert proposal after settlement failure",
				"message_id", msg.ID, "error", revertErr)
		}
		return nil, err
	}
	msg.Status = domain.MessageStatusAccepted

	s.announceResolution(ctx, msg, true)
	return msg, nil
}

func (s *exchangeService) announceResolution(ctx context.Context, msg *domain.Message, accepted bool) {
	if err := s.publisher.Publish(ctx, push.NewEvent(push.EventStatusChanged, msg)); err != nil {
		logger.Warn("Failed to publish status event", "message_id", msg.ID, "error", err)
	}

	sender, _ := s.userRepo.GetByID(ctx, msg.SenderID)
	recipient, _ := s.userRepo.GetByID(ctx, msg.RecipientID)
	if sender == nil || recipient == nil {
		return
	}

	requested := msg.Proposal.SkillRequested.Name
	if accepted {
		_ = s.emailSvc.SendProposalAcceptedNotification(ctx, sender.Email, sender.Name, recipient.Name, requested)
	} else {
		_ = s.emailSvc.SendProposalDeclinedNotification(ctx, sender.Email, sender.Name, recipient.Name, requested)
	}

	title, verb, notifType := "Exchange Declined", "declined", "EXCHANGE_DECLINED"
	if accepted {
		title, verb, notifType = "Exchange Accepted", "accepted", "EXCHANGE_ACCEPTED"
	}
	notif := &domain.Notification{
		UserID:  msg.SenderID,
		Title:   title,
		Message: fmt.Sprintf("%s %s your proposal to learn %s", recipient.Name, verb, requested),
		Attributes: map[string]string{
			"type":       notifType,
			"message_id": fmt.Sprintf("%d", msg.ID),
		},
	}
	_ = s.noteRepo.Create(ctx, notif)
}
