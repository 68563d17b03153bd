package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Slot is a weekly recurring availability window owned by one user.
// Times are HH:MM wall-clock strings with no timezone attached.
type Slot struct {
	ID        string
	UserID    string
	DayOfWeek int
	StartTime string
	EndTime   string
	CreatedAt time.Time
}

func (s Slot) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("availability id is required")
	}
	if strings.TrimSpace(s.UserID) == "" {
		return fmt.Errorf("availability user id is required")
	}
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return fmt.Errorf("day_of_week must be between 0 and 6")
	}

	start, err := MinuteOfDay(s.StartTime)
	if err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	end, err := MinuteOfDay(s.EndTime)
	if err != nil {
		return fmt.Errorf("end_time: %w", err)
	}
	if end <= start {
		return fmt.Errorf("end_time must be after start_time")
	}

	return nil
}

// MinuteOfDay converts an HH:MM string into minutes since midnight.
func MinuteOfDay(v string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(v), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", v)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", v, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", v, err)
	}
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("hour out of range in %q", v)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("minute out of range in %q", v)
	}

	return hour*60 + minute, nil
}

// OverlapMinutes returns the overlapping minutes between two slots on the
// same day of week, comparing the windows as linear minute-of-day intervals.
// Slots on different days or with unparsable times overlap zero minutes.
func OverlapMinutes(a, b Slot) int {
	if a.DayOfWeek != b.DayOfWeek {
		return 0
	}

	aStart, err := MinuteOfDay(a.StartTime)
	if err != nil {
		return 0
	}
	aEnd, err := MinuteOfDay(a.EndTime)
	if err != nil {
		return 0
	}
	bStart, err := MinuteOfDay(b.StartTime)
	if err != nil {
		return 0
	}
	bEnd, err := MinuteOfDay(b.EndTime)
	if err != nil {
		return 0
	}

	start := aStart
	if bStart > start {
		start = bStart
	}
	end := aEnd
	if bEnd < end {
		end = bEnd
	}
	if end <= start {
		return 0
	}

	return end - start
}
