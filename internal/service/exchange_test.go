package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"skillswap-backend/internal/domain"
)

func newExchangeFixture() (*MockMessageRepo, *MockSkillRepo, *MockUserRepo, *MockLedgerRepo, *MockNotificationRepo, *MockEmailService, *MockPublisher, ExchangeService) {
	msgRepo := new(MockMessageRepo)
	skillRepo := new(MockSkillRepo)
	userRepo := new(MockUserRepo)
	ledgerRepo := new(MockLedgerRepo)
	noteRepo := new(MockNotificationRepo)
	emailSvc := new(MockEmailService)
	publisher := new(MockPublisher)
	svc := NewExchangeService(msgRepo, skillRepo, userRepo, ledgerRepo, noteRepo, emailSvc, publisher)
	return msgRepo, skillRepo, userRepo, ledgerRepo, noteRepo, emailSvc, publisher, svc
}

func pendingProposal(id int32) *domain.Message {
	return &domain.Message{
		ID:              id,
		SenderID:        1,
		RecipientID:     2,
		ConversationKey: domain.ConversationKey(1, 2),
		Kind:            domain.MessageKindExchange,
		Proposal: &domain.ExchangeProposal{
			SkillRequested: domain.SkillRef{SkillID: 20, Name: "Guitar", Rate: 5},
			SkillOffered:   domain.SkillRef{SkillID: 10, Name: "Spanish", Rate: 3},
		},
		Status: domain.MessageStatusPending,
	}
}

func TestExchangeService_CreateProposal(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		msgRepo, skillRepo, userRepo, _, noteRepo, emailSvc, publisher, svc := newExchangeFixture()

		userRepo.On("GetByID", ctx, int32(2)).Return(&domain.User{ID: 2, Email: "bob@test.com", Name: "Bob"}, nil)
		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "ann@test.com", Name: "Ann"}, nil)
		skillRepo.On("GetByID", ctx, int32(20)).Return(&domain.Skill{ID: 20, UserID: 2, Kind: domain.SkillKindOffered, Name: "Guitar", Rate: 5}, nil)
		skillRepo.On("GetByID", ctx, int32(10)).Return(&domain.Skill{ID: 10, UserID: 1, Kind: domain.SkillKindOffered, Name: "Spanish", Rate: 3}, nil)
		msgRepo.On("Create", ctx, mock.AnythingOfType("*domain.Message")).Return(nil)
		publisher.On("Publish", ctx, mock.AnythingOfType("push.Event")).Return(nil)
		emailSvc.On("SendProposalReceivedNotification", ctx, "bob@test.com", "Bob", "Ann", "Guitar", "Spanish").Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		msg, err := svc.CreateProposal(ctx, 1, 2, 20, 10, "evenings work best")
		assert.NoError(t, err)
		assert.NotNil(t, msg)
		assert.Equal(t, domain.MessageKindExchange, msg.Kind)
		assert.Equal(t, domain.MessageStatusPending, msg.Status)
		assert.Equal(t, "1_2", msg.ConversationKey)
		// Rates are snapshotted at creation time.
		assert.Equal(t, int32(5), msg.Proposal.SkillRequested.Rate)
		assert.Equal(t, int32(3), msg.Proposal.SkillOffered.Rate)
		assert.Equal(t, "evenings work best", msg.Proposal.Note)
	})

	t.Run("Self Proposal", func(t *testing.T) {
		_, _, _, _, _, _, _, svc := newExchangeFixture()

		msg, err := svc.CreateProposal(ctx, 1, 1, 20, 10, "")
		assert.Nil(t, msg)
		var invalid *domain.InvalidProposalError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("Unknown Recipient", func(t *testing.T) {
		_, _, userRepo, _, _, _, _, svc := newExchangeFixture()

		userRepo.On("GetByID", ctx, int32(99)).Return(nil, domain.ErrNotFound)

		msg, err := svc.CreateProposal(ctx, 1, 99, 20, 10, "")
		assert.Nil(t, msg)
		assert.ErrorIs(t, err, domain.ErrInvalidRecipient)
	})

	t.Run("Requested Skill Not Owned By Recipient", func(t *testing.T) {
		_, skillRepo, userRepo, _, _, _, _, svc := newExchangeFixture()

		userRepo.On("GetByID", ctx, int32(2)).Return(&domain.User{ID: 2}, nil)
		skillRepo.On("GetByID", ctx, int32(20)).Return(&domain.Skill{ID: 20, UserID: 7, Kind: domain.SkillKindOffered, Rate: 5}, nil)

		msg, err := svc.CreateProposal(ctx, 1, 2, 20, 10, "")
		assert.Nil(t, msg)
		var invalid *domain.InvalidProposalError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("Offered Skill Is A Wanted Entry", func(t *testing.T) {
		_, skillRepo, userRepo, _, _, _, _, svc := newExchangeFixture()

		userRepo.On("GetByID", ctx, int32(2)).Return(&domain.User{ID: 2}, nil)
		skillRepo.On("GetByID", ctx, int32(20)).Return(&domain.Skill{ID: 20, UserID: 2, Kind: domain.SkillKindOffered, Rate: 5}, nil)
		skillRepo.On("GetByID", ctx, int32(10)).Return(&domain.Skill{ID: 10, UserID: 1, Kind: domain.SkillKindWanted, Rate: 3}, nil)

		msg, err := svc.CreateProposal(ctx, 1, 2, 20, 10, "")
		assert.Nil(t, msg)
		var invalid *domain.InvalidProposalError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestExchangeService_Respond_Accept(t *testing.T) {
	ctx := context.Background()

	t.Run("Settles Both Legs", func(t *testing.T) {
		msgRepo, _, userRepo, ledgerRepo, noteRepo, emailSvc, publisher, svc := newExchangeFixture()
		proposal := pendingProposal(42)

		msgRepo.On("GetByID", ctx, int32(42)).Return(proposal, nil)
		msgRepo.On("TransitionStatus", ctx, int32(42), domain.MessageStatusPending, domain.MessageStatusAccepted).Return(true, nil)
		ledgerRepo.On("GetBalance", ctx, int32(1)).Return(int32(10), nil)
		ledgerRepo.On("GetBalance", ctx, int32(2)).Return(int32(10), nil)
		// Sender pays for the skill they requested; recipient for the one offered.
		ledgerRepo.On("Debit", ctx, int32(1), int32(5), mock.AnythingOfType("*int32"), mock.AnythingOfType("string")).Return(nil)
		ledgerRepo.On("Debit", ctx, int32(2), int32(3), mock.AnythingOfType("*int32"), mock.AnythingOfType("string")).Return(nil)
		publisher.On("Publish", ctx, mock.AnythingOfType("push.Event")).Return(nil)
		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "ann@test.com", Name: "Ann"}, nil)
		userRepo.On("GetByID", ctx, int32(2)).Return(&domain.User{ID: 2, Email: "bob@test.com", Name: "Bob"}, nil)
		emailSvc.On("SendProposalAcceptedNotification", ctx, "ann@test.com", "Ann", "Bob", "Guitar").Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		res, err := svc.Respond(ctx, 2, 42, domain.MessageStatusAccepted)
		assert.NoError(t, err)
		assert.Equal(t, domain.MessageStatusAccepted, res.Status)
		ledgerRepo.AssertNumberOfCalls(t, "Debit", 2)
		ledgerRepo.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Insufficient Credits Leaves Proposal Pending", func(t *testing.T) {
		msgRepo, _, _, ledgerRepo, _, _, _, svc := newExchangeFixture()
		proposal := pendingProposal(42)

		msgRepo.On("GetByID", ctx, int32(42)).Return(proposal, nil)
		msgRepo.On("TransitionStatus", ctx, int32(42), domain.MessageStatusPending, domain.MessageStatusAccepted).Return(true, nil)
		msgRepo.On("TransitionStatus", ctx, int32(42), domain.MessageStatusAccepted, domain.MessageStatusPending).Return(true, nil)
		ledgerRepo.On("GetBalance", ctx, int32(1)).Return(int32(2), nil) // needs 5

		res, err := svc.Respond(ctx, 2, 42, domain.MessageStatusAccepted)
		assert.Nil(t, res)
		var insufficient *domain.InsufficientCreditsError
		assert.ErrorAs(t, err, &insufficient)
		assert.Equal(t, int32(1), insufficient.UserID)
		// No balance was touched and the claim was rolled back.
		ledgerRepo.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		msgRepo.AssertCalled(t, "TransitionStatus", ctx, int32(42), domain.MessageStatusAccepted, domain.MessageStatusPending)
	})

	t.Run("Lost The Claim Race", func(t *testing.T) {
		msgRepo, _, _, ledgerRepo, _, _, _, svc := newExchangeFixture()
		proposal := pendingProposal(42)

		msgRepo.On("GetByID", ctx, int32(42)).Return(proposal, nil)
		msgRepo.On("TransitionStatus", ctx, int32(42), domain.MessageStatusPending, domain.MessageStatusAccepted).Return(false, nil)

		res, err := svc.Respond(ctx, 2, 42, domain.MessageStatusAccepted)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrAlreadyResolved)
		ledgerRepo.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestExchangeService_Respond_Decline(t *testing.T) {
	ctx := context.Background()

	t.Run("No Ledger Activity", func(t *testing.T) {
		msgRepo, _, userRepo, ledgerRepo, noteRepo, emailSvc, publisher, svc := newExchangeFixture()
		proposal := pendingProposal(42)

		msgRepo.On("GetByID", ctx, int32(42)).Return(proposal, nil)
		msgRepo.On("TransitionStatus", ctx, int32(42), domain.MessageStatusPending, domain.MessageStatusDeclined).Return(true, nil)
		publisher.On("Publish", ctx, mock.AnythingOfType("push.Event")).Return(nil)
		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "ann@test.com", Name: "Ann"}, nil)
		userRepo.On("GetByID", ctx, int32(2)).Return(&domain.User{ID: 2, Email: "bob@test.com", Name: "Bob"}, nil)
		emailSvc.On("SendProposalDeclinedNotification", ctx, "ann@test.com", "Ann", "Bob", "Guitar").Return(nil)
		noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

		res, err := svc.Respond(ctx, 2, 42, domain.MessageStatusDeclined)
		assert.NoError(t, err)
		assert.Equal(t, domain.MessageStatusDeclined, res.Status)
		ledgerRepo.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		ledgerRepo.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		ledgerRepo.AssertNotCalled(t, "GetBalance", mock.Anything, mock.Anything)
	})
}

func TestExchangeService_Respond_Guards(t *testing.T) {
	ctx := context.Background()

	t.Run("Only Recipient May Respond", func(t *testing.T) {
		msgRepo, _, _, _, _, _, _, svc := newExchangeFixture()
		proposal := pendingProposal(42)

		msgRepo.On("GetByID", ctx, int32(42)).Return(proposal, nil)

		res, err := svc.Respond(ctx, 1, 42, domain.MessageStatusAccepted)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Already Resolved", func(t *testing.T) {
		msgRepo, _, _, _, _, _, _, svc := newExchangeFixture()
		proposal := pendingProposal(42)
		proposal.Status = domain.MessageStatusDeclined

		msgRepo.On("GetByID", ctx, int32(42)).Return(proposal, nil)

		res, err := svc.Respond(ctx, 2, 42, domain.MessageStatusAccepted)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrAlreadyResolved)
	})

	t.Run("Plain Chat Is Not Negotiable", func(t *testing.T) {
		msgRepo, _, _, _, _, _, _, svc := newExchangeFixture()
		chat := &domain.Message{
			ID: 7, SenderID: 1, RecipientID: 2,
			Kind: domain.MessageKindChat, Body: "hi",
			Status: domain.MessageStatusCompleted,
		}

		msgRepo.On("GetByID", ctx, int32(7)).Return(chat, nil)

		res, err := svc.Respond(ctx, 2, 7, domain.MessageStatusAccepted)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrAlreadyResolved)
	})

	t.Run("Unsupported Decision", func(t *testing.T) {
		_, _, _, _, _, _, _, svc := newExchangeFixture()

		res, err := svc.Respond(ctx, 2, 42, domain.MessageStatusCompleted)
		assert.Nil(t, res)
		assert.Error(t, err)
	})

	t.Run("Unknown Message", func(t *testing.T) {
		msgRepo, _, _, _, _, _, _, svc := newExchangeFixture()

		msgRepo.On("GetByID", ctx, int32(404)).Return(nil, domain.ErrNotFound)

		res, err := svc.Respond(ctx, 2, 404, domain.MessageStatusAccepted)
		assert.Nil(t, res)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// The push transport is best effort: a dead publisher must never fail the
// proposal itself.
func TestExchangeService_PublishFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	msgRepo, skillRepo, userRepo, _, noteRepo, emailSvc, publisher, svc := newExchangeFixture()

	userRepo.On("GetByID", ctx, int32(2)).Return(&domain.User{ID: 2, Email: "bob@test.com", Name: "Bob"}, nil)
	userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Email: "ann@test.com", Name: "Ann"}, nil)
	skillRepo.On("GetByID", ctx, int32(20)).Return(&domain.Skill{ID: 20, UserID: 2, Kind: domain.SkillKindOffered, Name: "Guitar", Rate: 5}, nil)
	skillRepo.On("GetByID", ctx, int32(10)).Return(&domain.Skill{ID: 10, UserID: 1, Kind: domain.SkillKindOffered, Name: "Spanish", Rate: 3}, nil)
	msgRepo.On("Create", ctx, mock.AnythingOfType("*domain.Message")).Return(nil)
	publisher.On("Publish", ctx, mock.AnythingOfType("push.Event")).Return(errors.New("redis down"))
	emailSvc.On("SendProposalReceivedNotification", ctx, "bob@test.com", "Bob", "Ann", "Guitar", "Spanish").Return(nil)
	noteRepo.On("Create", ctx, mock.AnythingOfType("*domain.Notification")).Return(nil)

	msg, err := svc.CreateProposal(ctx, 1, 2, 20, 10, "")
	assert.NoError(t, err)
	assert.NotNil(t, msg)
}
