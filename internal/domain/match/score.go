package match

import (
	"fmt"
	"regexp"
	"strings"
)

// Score validation rule violations. Use errors.Is to classify.
var (
	ErrUnknownFormat          = fmt.Errorf("unknown match format")
	ErrNoSets                 = fmt.Errorf("score must contain at least one set")
	ErrSetCount               = fmt.Errorf("set count not allowed for format")
	ErrGamesOutOfRange        = fmt.Errorf("games out of range")
	ErrTiedSet                = fmt.Errorf("set cannot be tied")
	ErrInvalidSetScore        = fmt.Errorf("invalid set score")
	ErrMissingTiebreak        = fmt.Errorf("7-6 set requires a tiebreak")
	ErrUnexpectedTiebreak     = fmt.Errorf("tiebreak not allowed for set score")
	ErrInvalidTiebreak        = fmt.Errorf("invalid tiebreak score")
	ErrTiebreakWinnerMismatch = fmt.Errorf("tiebreak winner must match set winner")
	ErrTooManySets            = fmt.Errorf("too many sets")
	ErrIncompleteScore        = fmt.Errorf("score does not decide the match")
	ErrInvalidLegacyScore     = fmt.Errorf("invalid score text")
	ErrWinnerNotParticipant   = fmt.Errorf("winner must be a participant")
)

const maxLegacyScoreLen = 100

var legacyScorePattern = regexp.MustCompile(`^[0-9()\-,\s]+$`)

func setCountBounds(format Format) (min, max int, err error) {
	switch format {
	case FormatProSet:
		return 1, 1, nil
	case FormatBestOfThree:
		return 2, 3, nil
	case FormatBestOfFive:
		return 3, 5, nil
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// setsToWin is the first-to count deciding the match for the format.
func setsToWin(format Format) int {
	switch format {
	case FormatBestOfFive:
		return 3
	case FormatProSet:
		return 1
	default:
		return 2
	}
}

// validateProSet checks a single pro set. The winner reaches at least eight
// games; the usual 0-7 bound does not apply.
func validateProSet(s SetScore) (Side, error) {
	if s.P1Games < 0 || s.P2Games < 0 {
		return SideNone, fmt.Errorf("%w: %d-%d", ErrGamesOutOfRange, s.P1Games, s.P2Games)
	}
	if s.P1Games == s.P2Games {
		return SideNone, fmt.Errorf("%w: %d-%d", ErrTiedSet, s.P1Games, s.P2Games)
	}
	if s.Tiebreak != nil {
		return SideNone, fmt.Errorf("%w: %d-%d", ErrUnexpectedTiebreak, s.P1Games, s.P2Games)
	}

	winner, loser := s.P1Games, s.P2Games
	side := SideOne
	if s.P2Games > s.P1Games {
		winner, loser = s.P2Games, s.P1Games
		side = SideTwo
	}
	if winner < 8 {
		return SideNone, fmt.Errorf("%w: %d-%d", ErrInvalidSetScore, s.P1Games, s.P2Games)
	}
	_ = loser

	return side, nil
}

// validateStandardSet checks one set of a best-of-three or best-of-five
// match and returns the side that won it.
func validateStandardSet(s SetScore) (Side, error) {
	if s.P1Games == s.P2Games {
		return SideNone, fmt.Errorf("%w: %d-%d", ErrTiedSet, s.P1Games, s.P2Games)
	}
	if s.P1Games < 0 || s.P1Games > 7 || s.P2Games < 0 || s.P2Games > 7 {
		return SideNone, fmt.Errorf("%w: %d-%d", ErrGamesOutOfRange, s.P1Games, s.P2Games)
	}

	winner, loser := s.P1Games, s.P2Games
	side := SideOne
	if s.P2Games > s.P1Games {
		winner, loser = s.P2Games, s.P1Games
		side = SideTwo
	}

	switch winner {
	case 6:
		if loser > 4 {
			return SideNone, fmt.Errorf("%w: %d-%d", ErrInvalidSetScore, s.P1Games, s.P2Games)
		}
	case 7:
		if loser != 5 && loser != 6 {
			return SideNone, fmt.Errorf("%w: %d-%d", ErrInvalidSetScore, s.P1Games, s.P2Games)
		}
	default:
		return SideNone, fmt.Errorf("%w: %d-%d", ErrInvalidSetScore, s.P1Games, s.P2Games)
	}

	if winner == 7 && loser == 6 {
		if s.Tiebreak == nil {
			return SideNone, fmt.Errorf("%w: %d-%d", ErrMissingTiebreak, s.P1Games, s.P2Games)
		}
		if err := validateTiebreak(*s.Tiebreak, side); err != nil {
			return SideNone, err
		}
	} else if s.Tiebreak != nil {
		return SideNone, fmt.Errorf("%w: %d-%d", ErrUnexpectedTiebreak, s.P1Games, s.P2Games)
	}

	return side, nil
}

// validateTiebreak checks that the tiebreak has a clear winner with at
// least seven points and that the winning side matches the set's winner.
func validateTiebreak(tb TiebreakScore, setWinner Side) error {
	if tb.P1Points < 0 || tb.P2Points < 0 {
		return fmt.Errorf("%w: %d-%d", ErrInvalidTiebreak, tb.P1Points, tb.P2Points)
	}
	if tb.P1Points == tb.P2Points {
		return fmt.Errorf("%w: %d-%d", ErrInvalidTiebreak, tb.P1Points, tb.P2Points)
	}

	tbWinner := SideOne
	winning := tb.P1Points
	if tb.P2Points > tb.P1Points {
		tbWinner = SideTwo
		winning = tb.P2Points
	}
	if winning < 7 {
		return fmt.Errorf("%w: %d-%d", ErrInvalidTiebreak, tb.P1Points, tb.P2Points)
	}
	if tbWinner != setWinner {
		return fmt.Errorf("%w: %d-%d", ErrTiebreakWinnerMismatch, tb.P1Points, tb.P2Points)
	}

	return nil
}

// ValidateScore checks a structured score against the format and returns
// the canonical score string plus the winning side. Validation stops at
// the first violated rule.
func ValidateScore(sets []SetScore, format Format) (string, Side, error) {
	minSets, maxSets, err := setCountBounds(format)
	if err != nil {
		return "", SideNone, err
	}
	if len(sets) == 0 {
		return "", SideNone, ErrNoSets
	}
	if len(sets) < minSets || len(sets) > maxSets {
		return "", SideNone, fmt.Errorf("%w: got %d sets for %s", ErrSetCount, len(sets), format)
	}

	target := setsToWin(format)
	var p1Sets, p2Sets int
	parts := make([]string, 0, len(sets))

	for _, s := range sets {
		// A decided match accepts no further sets.
		if p1Sets == target || p2Sets == target {
			return "", SideNone, fmt.Errorf("%w: match already decided after %d sets", ErrTooManySets, p1Sets+p2Sets)
		}

		var side Side
		if format == FormatProSet {
			side, err = validateProSet(s)
		} else {
			side, err = validateStandardSet(s)
		}
		if err != nil {
			return "", SideNone, err
		}

		if side == SideOne {
			p1Sets++
		} else {
			p2Sets++
		}

		part := fmt.Sprintf("%d-%d", s.P1Games, s.P2Games)
		if s.Tiebreak != nil {
			loserPoints := s.Tiebreak.P1Points
			if s.Tiebreak.P2Points < loserPoints {
				loserPoints = s.Tiebreak.P2Points
			}
			part += fmt.Sprintf("(%d)", loserPoints)
		}
		parts = append(parts, part)
	}

	var winner Side
	switch {
	case p1Sets == target:
		winner = SideOne
	case p2Sets == target:
		winner = SideTwo
	default:
		return "", SideNone, fmt.Errorf("%w: %d-%d in sets", ErrIncompleteScore, p1Sets, p2Sets)
	}

	return strings.Join(parts, ", "), winner, nil
}

// ValidateLegacyScore checks a free-text score as older clients submit it.
// The text is only shape-checked, never interpreted, so callers must name
// the winner explicitly.
func ValidateLegacyScore(text, winnerID, player1ID, player2ID string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty text", ErrInvalidLegacyScore)
	}
	if len(trimmed) > maxLegacyScoreLen {
		return "", fmt.Errorf("%w: text exceeds %d characters", ErrInvalidLegacyScore, maxLegacyScoreLen)
	}
	if !legacyScorePattern.MatchString(trimmed) {
		return "", fmt.Errorf("%w: text contains forbidden characters", ErrInvalidLegacyScore)
	}
	if winnerID != player1ID && winnerID != player2ID {
		return "", fmt.Errorf("%w: %q", ErrWinnerNotParticipant, winnerID)
	}

	return trimmed, nil
}
