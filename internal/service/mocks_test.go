package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/push"
	"skillswap-backend/internal/security"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockSkillRepo
type MockSkillRepo struct {
	mock.Mock
}

func (m *MockSkillRepo) Create(ctx context.Context, skill *domain.Skill) error {
	args := m.Called(ctx, skill)
	return args.Error(0)
}
func (m *MockSkillRepo) GetByID(ctx context.Context, id int32) (*domain.Skill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Skill), args.Error(1)
}
func (m *MockSkillRepo) ListByUser(ctx context.Context, userID int32, kind domain.SkillKind) ([]domain.Skill, error) {
	args := m.Called(ctx, userID, kind)
	return args.Get(0).([]domain.Skill), args.Error(1)
}
func (m *MockSkillRepo) Delete(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
func (m *MockSkillRepo) ListMarketplace(ctx context.Context, excludeUserID int32, page, pageSize int32) ([]domain.MarketplaceSkill, int32, error) {
	args := m.Called(ctx, excludeUserID, page, pageSize)
	return args.Get(0).([]domain.MarketplaceSkill), args.Get(1).(int32), args.Error(2)
}

// MockMessageRepo
type MockMessageRepo struct {
	mock.Mock
}

func (m *MockMessageRepo) Create(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockMessageRepo) GetByID(ctx context.Context, id int32) (*domain.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}
func (m *MockMessageRepo) TransitionStatus(ctx context.Context, id int32, from, to domain.MessageStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}
func (m *MockMessageRepo) MarkRead(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockMessageRepo) ListByConversation(ctx context.Context, conversationKey string) ([]domain.Message, error) {
	args := m.Called(ctx, conversationKey)
	return args.Get(0).([]domain.Message), args.Error(1)
}
func (m *MockMessageRepo) ListConversations(ctx context.Context, userID int32) ([]domain.Conversation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Conversation), args.Error(1)
}
func (m *MockMessageRepo) UnreadCount(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockMessageRepo) ListStalePending(ctx context.Context, olderThan time.Time) ([]domain.Message, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).([]domain.Message), args.Error(1)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) GetBalance(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockLedgerRepo) Debit(ctx context.Context, userID, amount int32, relatedMessageID *int32, description string) error {
	args := m.Called(ctx, userID, amount, relatedMessageID, description)
	return args.Error(0)
}
func (m *MockLedgerRepo) Credit(ctx context.Context, userID, amount int32, entryType domain.EntryType, relatedMessageID *int32, description string) error {
	args := m.Called(ctx, userID, amount, entryType, relatedMessageID, description)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListEntries(ctx context.Context, userID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.LedgerEntry), args.Get(1).(int32), args.Error(2)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendProposalReceivedNotification(ctx context.Context, recipientEmail, recipientName, senderName, requestedSkill, offeredSkill string) error {
	args := m.Called(ctx, recipientEmail, recipientName, senderName, requestedSkill, offeredSkill)
	return args.Error(0)
}
func (m *MockEmailService) SendProposalAcceptedNotification(ctx context.Context, senderEmail, senderName, recipientName, requestedSkill string) error {
	args := m.Called(ctx, senderEmail, senderName, recipientName, requestedSkill)
	return args.Error(0)
}
func (m *MockEmailService) SendProposalDeclinedNotification(ctx context.Context, senderEmail, senderName, recipientName, requestedSkill string) error {
	args := m.Called(ctx, senderEmail, senderName, recipientName, requestedSkill)
	return args.Error(0)
}
func (m *MockEmailService) SendProposalExpiredNotification(ctx context.Context, senderEmail, senderName, requestedSkill string) error {
	args := m.Called(ctx, senderEmail, senderName, requestedSkill)
	return args.Error(0)
}
func (m *MockEmailService) SendProposalReminderNotification(ctx context.Context, recipientEmail, recipientName, senderName string, pendingDays int32) error {
	args := m.Called(ctx, recipientEmail, recipientName, senderName, pendingDays)
	return args.Error(0)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event push.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(userID int32, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) GenerateRefreshToken(userID int32, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.UserClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.UserClaims), args.Error(1)
}
