package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"skillswap-backend/internal/domain"
)

func newMessageFixture() (*MockMessageRepo, *MockUserRepo, *MockPublisher, MessageService) {
	msgRepo := new(MockMessageRepo)
	userRepo := new(MockUserRepo)
	publisher := new(MockPublisher)
	svc := NewMessageService(msgRepo, userRepo, publisher)
	return msgRepo, userRepo, publisher, svc
}

func TestMessageService_SendChatMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		msgRepo, userRepo, publisher, svc := newMessageFixture()

		userRepo.On("GetByID", ctx, int32(2)).Return(&domain.User{ID: 2}, nil)
		msgRepo.On("Create", ctx, mock.AnythingOfType("*domain.Message")).Return(nil)
		publisher.On("Publish", ctx, mock.AnythingOfType("push.Event")).Return(nil)

		msg, err := svc.SendChatMessage(ctx, 5, 2, "see you at 7")
		assert.NoError(t, err)
		assert.Equal(t, domain.MessageKindChat, msg.Kind)
		assert.Equal(t, domain.MessageStatusCompleted, msg.Status)
		assert.Equal(t, "2_5", msg.ConversationKey)
		assert.Nil(t, msg.Proposal)
	})

	t.Run("Unknown Recipient", func(t *testing.T) {
		_, userRepo, _, svc := newMessageFixture()

		userRepo.On("GetByID", ctx, int32(99)).Return(nil, domain.ErrNotFound)

		msg, err := svc.SendChatMessage(ctx, 5, 99, "hello?")
		assert.Nil(t, msg)
		assert.ErrorIs(t, err, domain.ErrInvalidRecipient)
	})

	t.Run("Self Message", func(t *testing.T) {
		_, _, _, svc := newMessageFixture()

		msg, err := svc.SendChatMessage(ctx, 5, 5, "note to self")
		assert.Nil(t, msg)
		assert.Error(t, err)
	})
}

func TestMessageService_GetConversation(t *testing.T) {
	ctx := context.Background()
	msgRepo, _, _, svc := newMessageFixture()

	history := []domain.Message{
		{ID: 1, SenderID: 2, RecipientID: 5, Kind: domain.MessageKindChat, Body: "hi"},
		{ID: 2, SenderID: 5, RecipientID: 2, Kind: domain.MessageKindChat, Body: "hey"},
	}
	// The repo is keyed on the normalized pair regardless of argument order.
	msgRepo.On("ListByConversation", ctx, "2_5").Return(history, nil)

	got, err := svc.GetConversation(ctx, 5, 2)
	assert.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.GetConversation(ctx, 2, 5)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestMessageService_MarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("Recipient Marks Read", func(t *testing.T) {
		msgRepo, _, _, svc := newMessageFixture()
		msg := &domain.Message{ID: 9, SenderID: 2, RecipientID: 5, Kind: domain.MessageKindChat}

		msgRepo.On("GetByID", ctx, int32(9)).Return(msg, nil)
		msgRepo.On("MarkRead", ctx, int32(9)).Return(nil)

		res, err := svc.MarkRead(ctx, 5, 9)
		assert.NoError(t, err)
		assert.True(t, res.IsRead)
	})

	t.Run("Sender Cannot Mark Read", func(t *testing.T) {
		msgRepo, _, _, svc := newMessageFixture()
		msg := &domain.Message{ID: 9, SenderID: 2, RecipientID: 5, Kind: domain.MessageKindChat}

		msgRepo.On("GetByID", ctx, int32(9)).Return(msg, nil)

		res, err := svc.MarkRead(ctx, 2, 9)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		msgRepo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
	})

	t.Run("Idempotent On Already Read", func(t *testing.T) {
		msgRepo, _, _, svc := newMessageFixture()
		msg := &domain.Message{ID: 9, SenderID: 2, RecipientID: 5, Kind: domain.MessageKindChat, IsRead: true}

		msgRepo.On("GetByID", ctx, int32(9)).Return(msg, nil)

		res, err := svc.MarkRead(ctx, 5, 9)
		assert.NoError(t, err)
		assert.True(t, res.IsRead)
		msgRepo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
	})
}

func TestMessageService_ListConversations(t *testing.T) {
	ctx := context.Background()
	msgRepo, _, _, svc := newMessageFixture()

	convs := []domain.Conversation{
		{Partner: &domain.User{ID: 2, Name: "Bob"}, LastMessage: &domain.Message{ID: 30}, UnreadCount: 2},
		{Partner: &domain.User{ID: 3, Name: "Cat"}, LastMessage: &domain.Message{ID: 12}, UnreadCount: 0},
	}
	msgRepo.On("ListConversations", ctx, int32(5)).Return(convs, nil)

	got, err := svc.ListConversations(ctx, 5)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int32(2), got[0].UnreadCount)
}

func TestMessageService_UnreadCount(t *testing.T) {
	ctx := context.Background()
	msgRepo, _, _, svc := newMessageFixture()

	msgRepo.On("UnreadCount", ctx, int32(5)).Return(int32(4), nil)

	n, err := svc.UnreadCount(ctx, 5)
	assert.NoError(t, err)
	assert.Equal(t, int32(4), n)
}
