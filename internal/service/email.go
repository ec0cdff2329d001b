package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"skillswap-backend/internal/logger"
)

type emailService struct {
	apiKey   string
	from     string
	fromName string
}

func NewEmailService(apiKey, from, fromName string) EmailService {
	return &emailService{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
	}
}

func (s *emailService) send(to, toName, subject, body string) error {
	if s.apiKey == "" {
		logger.Debug("Email disabled, dropping message", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendProposalReceivedNotification(ctx context.Context, recipientEmail, recipientName, senderName, requestedSkill, offeredSkill string) error {
	subject := "New skill exchange proposal"
	body := fmt.Sprintf("Hello %s,\n\n%s wants to learn %s from you and offers %s in return.\n\nOpen your messages to accept or decline.\n\nThe SkillSwap Team",
		recipientName, senderName, requestedSkill, offeredSkill)
	return s.send(recipientEmail, recipientName, subject, body)
}

func (s *emailService) SendProposalAcceptedNotification(ctx context.Context, senderEmail, senderName, recipientName, requestedSkill string) error {
	subject := "Your exchange proposal was accepted"
	body := fmt.Sprintf("Hello %s,\n\n%s accepted your proposal to learn %s. Credits for both sides have been settled.\n\nThe SkillSwap Team",
		senderName, recipientName, requestedSkill)
	return s.send(senderEmail, senderName, subject, body)
}

func (s *emailService) SendProposalDeclinedNotification(ctx context.Context, senderEmail, senderName, recipientName, requestedSkill string) error {
	subject := "Your exchange proposal was declined"
	body := fmt.Sprintf("Hello %s,\n\n%s declined your proposal to learn %s. No credits were moved.\n\nThe SkillSwap Team",
		senderName, recipientName, requestedSkill)
	return s.send(senderEmail, senderName, subject, body)
}

func (s *emailService) SendProposalExpiredNotification(ctx context.Context, senderEmail, senderName, requestedSkill string) error {
	subject := "Your exchange proposal expired"
	body := fmt.Sprintf("Hello %s,\n\nYour proposal to learn %s went unanswered and has expired. You can send a new one any time.\n\nThe SkillSwap Team",
		senderName, requestedSkill)
	return s.send(senderEmail, senderName, subject, body)
}

func (s *emailService) SendProposalReminderNotification(ctx context.Context, recipientEmail, recipientName, senderName string, pendingDays int32) error {
	subject := "You have a pending exchange proposal"
	body := fmt.Sprintf("Hello %s,\n\n%s sent you an exchange proposal %d days ago that is still waiting for your answer.\n\nThe SkillSwap Team",
		recipientName, senderName, pendingDays)
	return s.send(recipientEmail, recipientName, subject, body)
}
