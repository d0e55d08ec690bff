package core

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/loverprompt/loverprompt-backend/internal/models"
	"github.com/loverprompt/loverprompt-backend/pkg/mailer"
)

type emailService struct {
	mailer      mailer.Mailer
	compliments ComplimentService
	users       UserService
	logger      *zap.Logger
}

// NewEmailService creates a new EmailService instance.
func NewEmailService(m mailer.Mailer, compliments ComplimentService, users UserService, logger *zap.Logger) EmailService {
	return &emailService{mailer: m, compliments: compliments, users: users, logger: logger}
}

// ShareCompliment emails a compliment the sender may read to req.To.
func (s *emailService) ShareCompliment(ctx context.Context, senderID, complimentID string, req models.ShareEmailRequest) error {
	c, err := s.compliments.Get(ctx, senderID, complimentID)
	if err != nil {
		return err
	}
	sender, err := s.users.GetProfile(ctx, senderID)
	if err != nil {
		return err
	}

	name := singleLine(sender.DisplayName)
	if name == "" {
		name = "Someone"
	}
	var b strings.Builder
	if msg := strings.TrimSpace(req.Message); msg != "" {
		b.WriteString(msg)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "\"%s\"\n\nSent with love through LoverPrompt.", c.Content)

	if err := s.mailer.Send(ctx, req.To, fmt.Sprintf("%s sent you a compliment", name), b.String()); err != nil {
		return fmt.Errorf("failed to email compliment: %w", err)
	}
	s.logger.Info("Compliment shared by email", zap.String("compliment_id", complimentID), zap.String("uid", senderID))
	return nil
}

func (s *emailService) SendReminder(ctx context.Context, to string, r models.Reminder) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", r.Title, r.Date.UTC().Format("Monday, January 2, 2006 at 15:04 MST"))
	if r.Location != "" {
		fmt.Fprintf(&b, "Where: %s\n", r.Location)
	}
	if r.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", r.Description)
	}
	if err := s.mailer.Send(ctx, to, "Reminder: "+singleLine(r.Title), b.String()); err != nil {
		return fmt.Errorf("failed to email reminder '%s': %w", r.ID, err)
	}
	return nil
}

// singleLine collapses whitespace, line breaks included, so user text is safe in a header.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
