package sender

import (
	"context"
	"fmt"
	"strings"

	"herald/internal/domain"
	"herald/internal/models"
)

// Texter is the SMS transport consumed by the SMS sender. to is expected in
// international form.
type Texter interface {
	Send(ctx context.Context, to, message string) error
}

type SMS struct {
	gateway     Texter
	countryCode string
}

func NewSMS(gateway Texter, defaultCountryCode string) *SMS {
	return &SMS{gateway: gateway, countryCode: defaultCountryCode}
}

func (s *SMS) Channel() string {
	return domain.ChannelSMS
}

func (s *SMS) Send(ctx context.Context, user *models.User, n *models.Notification) error {
	if user.Phone == "" {
		return fmt.Errorf("sms: %w", ErrNoAddress)
	}
	to := NormalizePhone(user.Phone, s.countryCode)
	message := n.Title + ": " + n.Body
	return s.gateway.Send(ctx, to, message)
}

// NormalizePhone strips formatting characters and forces an E.164-like form,
// applying the default country code to local numbers.
func NormalizePhone(raw, countryCode string) string {
	var b strings.Builder
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	num := b.String()
	switch {
	case num == "":
		return ""
	case strings.HasPrefix(num, "+"):
		return num
	case strings.HasPrefix(num, "00"):
		return "+" + num[2:]
	case strings.HasPrefix(num, "0"):
		return "+" + countryCode + num[1:]
	case strings.HasPrefix(num, countryCode):
		return "+" + num
	default:
		return "+" + countryCode + num
	}
}
