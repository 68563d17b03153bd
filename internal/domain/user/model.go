package user

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultElo is the rating assigned to every newly registered player.
const DefaultElo = 1200

const (
	NTRPMin = 1.0
	NTRPMax = 7.0
)

var ErrDuplicateIdentifier = errors.New("duplicate registration identifier")

// User is a registered tennis player.
type User struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	NTRP        *float64
	Elo         int
	NotifySMS   bool
	NotifyEmail bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Principal identifies the authenticated caller of a request.
type Principal struct {
	UserID string
	Email  string
}

func (u User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("user name is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("user email is required")
	}
	if u.NTRP != nil && (*u.NTRP < NTRPMin || *u.NTRP > NTRPMax) {
		return fmt.Errorf("ntrp rating must be between %.1f and %.1f", NTRPMin, NTRPMax)
	}

	return nil
}
