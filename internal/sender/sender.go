package sender

import (
	"context"

	"herald/internal/models"
)

// Sender delivers one notification to one recipient over a single channel.
// Implementations report success or failure only; the orchestrator folds the
// per-channel results into the notification's final status.
type Sender interface {
	Channel() string
	Send(ctx context.Context, user *models.User, n *models.Notification) error
}
