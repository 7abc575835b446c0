package sender

import (
	"context"
	"errors"
	"fmt"

	"herald/internal/domain"
	"herald/internal/models"
)

// ErrNoAddress means the recipient has no address on file for the channel.
var ErrNoAddress = errors.New("no address on file")

// Mailer is the outbound mail transport consumed by the email sender.
type Mailer interface {
	Send(ctx context.Context, to, subject, plainBody, htmlBody string) error
}

type Email struct {
	mail Mailer
}

func NewEmail(mail Mailer) *Email {
	return &Email{mail: mail}
}

func (s *Email) Channel() string {
	return domain.ChannelEmail
}

func (s *Email) Send(ctx context.Context, user *models.User, n *models.Notification) error {
	if user.Email == "" {
		return fmt.Errorf("email: %w", ErrNoAddress)
	}
	html, err := RenderEmailBody(n)
	if err != nil {
		return fmt.Errorf("render email body: %w", err)
	}
	return s.mail.Send(ctx, user.Email, n.Title, n.Body, html)
}
