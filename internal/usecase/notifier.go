package usecase

import (
	"context"

	"github.com/riskibarqy/tennispal/internal/domain/user"
)

// Notifier delivers a message to a user over their external channels.
// Implementations decide the channels from the recipient's preferences
// and must not block the calling request path.
type Notifier interface {
	Notify(ctx context.Context, recipient user.User, subject, message string)
}

// NopNotifier discards every message. Used when outbound channels are
// disabled by configuration.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, user.User, string, string) {}
