package service

import (
	"context"

	"skillswap-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID int32, name, bio, avatarURL string) (*domain.User, error)
}

type SkillService interface {
	AddSkill(ctx context.Context, userID int32, skill *domain.Skill) error
	RemoveSkill(ctx context.Context, userID, skillID int32) error
	ListSkills(ctx context.Context, userID int32, kind domain.SkillKind) ([]domain.Skill, error)
	BrowseMarketplace(ctx context.Context, userID int32, page, pageSize int32) ([]domain.MarketplaceSkill, int32, error)
}

// ExchangeService is the negotiation state machine: proposals enter pending
// and only the recipient moves them to accepted or declined. Accepting
// settles credits first; a failed settlement leaves the proposal pending.
type ExchangeService interface {
	CreateProposal(ctx context.Context, senderID, recipientID, requestedSkillID, offeredSkillID int32, note string) (*domain.Message, error)
	Respond(ctx context.Context, actorID, messageID int32, decision domain.MessageStatus) (*domain.Message, error)
}

type MessageService interface {
	SendChatMessage(ctx context.Context, senderID, recipientID int32, body string) (*domain.Message, error)
	GetConversation(ctx context.Context, userID, partnerID int32) ([]domain.Message, error)
	ListConversations(ctx context.Context, userID int32) ([]domain.Conversation, error)
	MarkRead(ctx context.Context, userID, messageID int32) (*domain.Message, error)
	UnreadCount(ctx context.Context, userID int32) (int32, error)
}

type LedgerService interface {
	GetBalance(ctx context.Context, userID int32) (int32, error)
	GetEntries(ctx context.Context, userID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendProposalReceivedNotification(ctx context.Context, recipientEmail, recipientName, senderName, requestedSkill, offeredSkill string) error
	SendProposalAcceptedNotification(ctx context.Context, senderEmail, senderName, recipientName, requestedSkill string) error
	SendProposalDeclinedNotification(ctx context.Context, senderEmail, senderName, recipientName, requestedSkill string) error
	SendProposalExpiredNotification(ctx context.Context, senderEmail, senderName, requestedSkill string) error
	SendProposalReminderNotification(ctx context.Context, recipientEmail, recipientName, senderName string, pendingDays int32) error
}
