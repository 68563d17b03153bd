package invite

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/availability"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// Invite is a direct play proposal from one user to another. Accepting it
// creates a scheduled match and records the match id on the invite.
type Invite struct {
	ID         string
	FromUserID string
	ToUserID   string
	PlayDate   time.Time
	StartTime  string
	EndTime    string
	Location   string
	Status     Status
	MatchID    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (i Invite) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("invite id is required")
	}
	if strings.TrimSpace(i.FromUserID) == "" {
		return fmt.Errorf("invite sender is required")
	}
	if strings.TrimSpace(i.ToUserID) == "" {
		return fmt.Errorf("invite recipient is required")
	}
	if i.FromUserID == i.ToUserID {
		return fmt.Errorf("invite cannot target its sender")
	}
	if i.PlayDate.IsZero() {
		return fmt.Errorf("invite play date is required")
	}

	start, err := availability.MinuteOfDay(i.StartTime)
	if err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	end, err := availability.MinuteOfDay(i.EndTime)
	if err != nil {
		return fmt.Errorf("end_time: %w", err)
	}
	if end <= start {
		return fmt.Errorf("end_time must be after start_time")
	}

	return nil
}
