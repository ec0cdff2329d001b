package service

import (
	"context"
	"errors"
	"fmt"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/repository"
)

// settlementOrchestrator executes the two-sided credit transfer implied by an
// accepted proposal. Each side pays for the skill it receives: the sender is
// debited the requested skill's rate, the recipient the offered skill's rate.
// Both legs apply or neither does.
type settlementOrchestrator struct {
	ledgerRepo repository.LedgerRepository
}

func newSettlementOrchestrator(ledgerRepo repository.LedgerRepository) *settlementOrchestrator {
	return &settlementOrchestrator{ledgerRepo: ledgerRepo}
}

// Settle runs the transfer for msg, which must be a pending-claimed exchange
// proposal. On any failure no net balance change remains: a partially applied
// first leg is compensated with a REVERSAL credit before the error returns.
func (s *settlementOrchestrator) Settle(ctx context.Context, msg *domain.Message) error {
	proposal := msg.Proposal
	senderPays := proposal.SkillRequested.Rate
	recipientPays := proposal.SkillOffered.Rate

	// Precondition: both balances must cover their side before any mutation.
	if err := s.checkBalance(ctx, msg.SenderID, senderPays); err != nil {
		return err
	}
	if err := s.checkBalance(ctx, msg.RecipientID, recipientPays); err != nil {
		return err
	}

	// First leg: sender pays for the skill they are receiving.
	err := s.ledgerRepo.Debit(ctx, msg.SenderID, senderPays, &msg.ID,
		fmt.Sprintf("Exchange: learning %s", proposal.SkillRequested.Name))
	if err != nil {
		return s.asSettlementError(msg.ID, err)
	}

	// Second leg: recipient pays for the offered skill. If the balance raced
	// away between the precondition check and here, undo the first leg.
	err = s.ledgerRepo.Debit(ctx, msg.RecipientID, recipientPays, &msg.ID,
		fmt.Sprintf("Exchange: learning %s", proposal.SkillOffered.Name))
	if err != nil {
		if compErr := s.ledgerRepo.Credit(ctx, msg.SenderID, senderPays, domain.EntryTypeReversal, &msg.ID,
			fmt.Sprintf("Reversal: exchange for %s not settled", proposal.SkillRequested.Name)); compErr != nil {
			// The compensating credit itself failed. This needs an operator:
			// the sender's debit is stranded until it is replayed.
			logger.ErrorContext(ctx, "Compensating credit failed after second settlement leg",
				"message_id", msg.ID, "sender_id", msg.SenderID, "amount", senderPays, "error", compErr)
			return &domain.SettlementError{MessageID: msg.ID, Err: compErr}
		}
		return s.asSettlementError(msg.ID, err)
	}

	return nil
}

func (s *settlementOrchestrator) checkBalance(ctx context.Context, userID, required int32) error {
	available, err := s.ledgerRepo.GetBalance(ctx, userID)
	if err != nil {
		return err
	}
	if available < required {
		return &domain.InsufficientCreditsError{UserID: userID, Required: required, Available: available}
	}
	return nil
}

// asSettlementError keeps InsufficientCreditsError intact for the caller and
// wraps anything else.
func (s *settlementOrchestrator) asSettlementError(messageID int32, err error) error {
	var insufficient *domain.InsufficientCreditsError
	if errors.As(err, &insufficient) {
		return err
	}
	return &domain.SettlementError{MessageID: messageID, Err: err}
}
