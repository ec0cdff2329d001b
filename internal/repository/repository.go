package repository

import (
	"context"
	"time"

	"skillswap-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SkillRepository interface {
	Create(ctx context.Context, skill *domain.Skill) error
	GetByID(ctx context.Context, id int32) (*domain.Skill, error)
	ListByUser(ctx context.Context, userID int32, kind domain.SkillKind) ([]domain.Skill, error)
	Delete(ctx context.Context, id, userID int32) error
	ListMarketplace(ctx context.Context, excludeUserID int32, page, pageSize int32) ([]domain.MarketplaceSkill, int32, error)
}

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
	GetByID(ctx context.Context, id int32) (*domain.Message, error)
	// TransitionStatus flips a message from one status to another. It
	// returns false when the message was not in the expected status, which
	// is how concurrent responders lose the race.
	TransitionStatus(ctx context.Context, id int32, from, to domain.MessageStatus) (bool, error)
	MarkRead(ctx context.Context, id int32) error
	ListByConversation(ctx context.Context, conversationKey string) ([]domain.Message, error)
	ListConversations(ctx context.Context, userID int32) ([]domain.Conversation, error)
	UnreadCount(ctx context.Context, userID int32) (int32, error)
	// ListStalePending returns proposal messages still pending after the
	// cutoff, for the expiry and reminder jobs.
	ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.Message, error)
}

type LedgerRepository interface {
	GetBalance(ctx context.Context, userID int32) (int32, error)
	// Debit atomically subtracts amount from the user's balance and records
	// a ledger entry. Returns domain.InsufficientCreditsError when the
	// balance cannot cover the amount; no mutation happens in that case.
	Debit(ctx context.Context, userID, amount int32, relatedMessageID *int32, description string) error
	// Credit adds amount to the user's balance and records a ledger entry
	// of the given type.
	Credit(ctx context.Context, userID, amount int32, entryType domain.EntryType, relatedMessageID *int32, description string) error
	ListEntries(ctx context.Context, userID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
