package match

import "time"

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

var AllStatuses = map[Status]struct{}{
	StatusScheduled: {},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

type Type string

const (
	TypeSingles Type = "singles"
	TypeDoubles Type = "doubles"
)

var AllTypes = map[Type]struct{}{
	TypeSingles: {},
	TypeDoubles: {},
}

type Format string

const (
	FormatBestOfThree Format = "best_of_3"
	FormatBestOfFive  Format = "best_of_5"
	FormatProSet      Format = "pro_set"
)

var AllFormats = map[Format]struct{}{
	FormatBestOfThree: {},
	FormatBestOfFive:  {},
	FormatProSet:      {},
}

// Side identifies one of the two positional players of a match.
type Side int

const (
	SideNone Side = 0
	SideOne  Side = 1
	SideTwo  Side = 2
)

// TiebreakScore records both players' points of a 7-6 set tiebreak.
type TiebreakScore struct {
	P1Points int
	P2Points int
}

// SetScore is one set of a structured score submission.
type SetScore struct {
	P1Games  int
	P2Games  int
	Tiebreak *TiebreakScore
}

// Match is the central entity: a scheduled meeting of two players and,
// once played, its submitted and mutually confirmed result.
type Match struct {
	ID               string
	Player1ID        string
	Player2ID        string
	PlayDate         time.Time
	Location         string
	MatchType        Type
	Format           Format
	Status           Status
	Score            string
	Sets             []SetScore
	WinnerID         string
	ScoreSubmittedBy string
	ScoreConfirmed   bool
	ScoreDisputed    bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (m Match) HasParticipant(userID string) bool {
	return userID != "" && (userID == m.Player1ID || userID == m.Player2ID)
}

// Opponent returns the other participant, or "" when userID is not a participant.
func (m Match) Opponent(userID string) string {
	switch userID {
	case m.Player1ID:
		return m.Player2ID
	case m.Player2ID:
		return m.Player1ID
	default:
		return ""
	}
}

// IsTerminal reports whether no further lifecycle transition is possible.
func (m Match) IsTerminal() bool {
	if m.Status == StatusCancelled || m.Status == StatusNoShow {
		return true
	}
	return m.Status == StatusCompleted && m.ScoreConfirmed
}
