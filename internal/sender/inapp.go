package sender

import (
	"context"

	"herald/internal/domain"
	"herald/internal/models"
)

// InApp needs no external transport: the notification row is already
// persisted and queryable by the time delivery runs, which is all in-app
// delivery means.
type InApp struct{}

func NewInApp() *InApp {
	return &InApp{}
}

func (s *InApp) Channel() string {
	return domain.ChannelInApp
}

func (s *InApp) Send(ctx context.Context, user *models.User, n *models.Notification) error {
	return nil
}
