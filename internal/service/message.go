package service

import (
	"context"
	"fmt"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/push"
	"skillswap-backend/internal/repository"
)

type messageService struct {
	msgRepo   repository.MessageRepository
	userRepo  repository.UserRepository
	publisher push.Publisher
}

func NewMessageService(msgRepo repository.MessageRepository, userRepo repository.UserRepository, publisher push.Publisher) MessageService {
	return &messageService{msgRepo: msgRepo, userRepo: userRepo, publisher: publisher}
}

func (s *messageService) SendChatMessage(ctx context.Context, senderID, recipientID int32, body string) (*domain.Message, error) {
	if senderID == recipientID {
		return nil, fmt.Errorf("cannot message yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		if err == domain.ErrNotFound {
			return nil, domain.ErrInvalidRecipient
		}
		return nil, err
	}

	// Plain chat carries no negotiation, so it is created already terminal.
	msg := &domain.Message{
		SenderID:        senderID,
		RecipientID:     recipientID,
		ConversationKey: domain.ConversationKey(senderID, recipientID),
		Kind:            domain.MessageKindChat,
		Body:            body,
		Status:          domain.MessageStatusCompleted,
	}
	if err := s.msgRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	if err := s.publisher.Publish(ctx, push.NewEvent(push.EventMessageCreated, msg)); err != nil {
		logger.Warn("Failed to publish chat event", "message_id", msg.ID, "error", err)
	}
	return msg, nil
}

func (s *messageService) GetConversation(ctx context.Context, userID, partnerID int32) ([]domain.Message, error) {
	key := domain.ConversationKey(userID, partnerID)
	return s.msgRepo.ListByConversation(ctx, key)
}

func (s *messageService) ListConversations(ctx context.Context, userID int32) ([]domain.Conversation, error) {
	return s.msgRepo.ListConversations(ctx, userID)
}

func (s *messageService) MarkRead(ctx context.Context, userID, messageID int32) (*domain.Message, error) {
	msg, err := s.msgRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	// Only the recipient's read action flips the flag.
	if msg.RecipientID != userID {
		return nil, domain.ErrForbidden
	}
	if msg.IsRead {
		return msg, nil
	}
	if err := s.msgRepo.MarkRead(ctx, messageID); err != nil {
		return nil, err
	}
	msg.IsRead = true
	return msg, nil
}

func (s *messageService) UnreadCount(ctx context.Context, userID int32) (int32, error) {
	return s.msgRepo.UnreadCount(ctx, userID)
}
