package post

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/tennispal/internal/domain/availability"
)

// Post is an open "looking to play" announcement any other user can claim.
// Claiming a post creates a scheduled match between poster and claimer.
type Post struct {
	ID          string
	UserID      string
	PlayDate    time.Time
	StartTime   string
	EndTime     string
	Location    string
	Notes       string
	ClaimedByID string
	MatchID     string
	CreatedAt   time.Time
}

func (p Post) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("post id is required")
	}
	if strings.TrimSpace(p.UserID) == "" {
		return fmt.Errorf("post owner is required")
	}
	if p.PlayDate.IsZero() {
		return fmt.Errorf("post play date is required")
	}

	start, err := availability.MinuteOfDay(p.StartTime)
	if err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	end, err := availability.MinuteOfDay(p.EndTime)
	if err != nil {
		return fmt.Errorf("end_time: %w", err)
	}
	if end <= start {
		return fmt.Errorf("end_time must be after start_time")
	}

	return nil
}

// IsExpired reports whether the proposed play date has already passed.
func (p Post) IsExpired(now time.Time) bool {
	return p.PlayDate.Before(now.Truncate(24 * time.Hour))
}

// IsActive reports whether the post is still open for claiming.
func (p Post) IsActive(now time.Time) bool {
	return p.ClaimedByID == "" && !p.IsExpired(now)
}
