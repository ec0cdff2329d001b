package jobs

import (
	"context"
	"fmt"
	"time"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/logger"
)

// ExpireStaleProposals declines exchange proposals that have sat pending
// longer than the configured TTL and tells the sender. Declining keeps the
// status set closed; an expired proposal looks like any other declined one
// apart from its notification.
func (jr *JobRunner) ExpireStaleProposals() {
	jr.runWithRecovery("ExpireStaleProposals", func() {
		ttlDays := jr.config.Exchange.ProposalTTLDays
		if ttlDays < 0 {
			logger.Info("Proposal expiry disabled")
			return
		}

		ctx := context.Background()
		cutoff := time.Now().UTC().AddDate(0, 0, -int(ttlDays))
		stale, err := jr.store.MessageRepository.ListStalePending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale proposals", "error", err)
			return
		}

		expired := 0
		for _, msg := range stale {
			ok, err := jr.store.MessageRepository.TransitionStatus(ctx, msg.ID, domain.MessageStatusPending, domain.MessageStatusDeclined)
			if err != nil {
				logger.Error("Failed to expire proposal", "message_id", msg.ID, "error", err)
				continue
			}
			if !ok {
				// Resolved between listing and here; nothing to do.
				continue
			}
			expired++

			sender, _ := jr.store.UserRepository.GetByID(ctx, msg.SenderID)
			if sender != nil && msg.Proposal != nil {
				_ = jr.services.Email.SendProposalExpiredNotification(ctx, sender.Email, sender.Name, msg.Proposal.SkillRequested.Name)

				notif := &domain.Notification{
					UserID:  msg.SenderID,
					Title:   "Exchange Proposal Expired",
					Message: fmt.Sprintf("Your proposal to learn %s went unanswered and has expired", msg.Proposal.SkillRequested.Name),
					Attributes: map[string]string{
						"type":       "EXCHANGE_EXPIRED",
						"message_id": fmt.Sprintf("%d", msg.ID),
					},
				}
				_ = jr.store.NotificationRepository.Create(ctx, notif)
			}
		}
		logger.Info("Stale proposals expired", "candidates", len(stale), "expired", expired)
	})
}

// SendProposalReminders emails recipients of proposals still pending after
// the reminder threshold but not yet old enough to expire.
func (jr *JobRunner) SendProposalReminders() {
	jr.runWithRecovery("SendProposalReminders", func() {
		afterDays := jr.config.Exchange.ReminderAfterDays
		if afterDays < 0 {
			logger.Info("Proposal reminders disabled")
			return
		}

		ctx := context.Background()
		cutoff := time.Now().UTC().AddDate(0, 0, -int(afterDays))
		stale, err := jr.store.MessageRepository.ListStalePending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list pending proposals", "error", err)
			return
		}

		sent := 0
		for _, msg := range stale {
			recipient, err := jr.store.UserRepository.GetByID(ctx, msg.RecipientID)
			if err != nil {
				continue
			}
			sender, err := jr.store.UserRepository.GetByID(ctx, msg.SenderID)
			if err != nil {
				continue
			}

			pendingDays := afterDays
			if createdOn, err := time.Parse(time.RFC3339, msg.CreatedOn); err == nil {
				pendingDays = int32(time.Since(createdOn).Hours() / 24)
			}

			if err := jr.services.Email.SendProposalReminderNotification(ctx, recipient.Email, recipient.Name, sender.Name, pendingDays); err != nil {
				logger.Error("Failed to send proposal reminder", "message_id", msg.ID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Proposal reminders sent", "candidates", len(stale), "sent", sent)
	})
}
