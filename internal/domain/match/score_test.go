package match

import (
	"errors"
	"strings"
	"testing"
)

func tb(p1, p2 int) *TiebreakScore {
	return &TiebreakScore{P1Points: p1, P2Points: p2}
}

func TestValidateScoreAccepts(t *testing.T) {
	cases := []struct {
		name       string
		sets       []SetScore
		format     Format
		wantScore  string
		wantWinner Side
	}{
		{
			name:       "straight sets",
			sets:       []SetScore{{P1Games: 6, P2Games: 4}, {P1Games: 6, P2Games: 3}},
			format:     FormatBestOfThree,
			wantScore:  "6-4, 6-3",
			wantWinner: SideOne,
		},
		{
			name: "comeback with tiebreak",
			sets: []SetScore{
				{P1Games: 6, P2Games: 7, Tiebreak: tb(4, 7)},
				{P1Games: 6, P2Games: 4},
				{P1Games: 4, P2Games: 6},
			},
			format:     FormatBestOfThree,
			wantScore:  "6-7(4), 6-4, 4-6",
			wantWinner: SideTwo,
		},
		{
			name:       "seven five set",
			sets:       []SetScore{{P1Games: 7, P2Games: 5}, {P1Games: 6, P2Games: 0}},
			format:     FormatBestOfThree,
			wantScore:  "7-5, 6-0",
			wantWinner: SideOne,
		},
		{
			name: "tiebreak loser points from winning side",
			sets: []SetScore{
				{P1Games: 7, P2Games: 6, Tiebreak: tb(10, 8)},
				{P1Games: 6, P2Games: 2},
			},
			format:     FormatBestOfThree,
			wantScore:  "7-6(8), 6-2",
			wantWinner: SideOne,
		},
		{
			name: "best of five in four",
			sets: []SetScore{
				{P1Games: 4, P2Games: 6},
				{P1Games: 6, P2Games: 3},
				{P1Games: 7, P2Games: 6, Tiebreak: tb(7, 3)},
				{P1Games: 6, P2Games: 4},
			},
			format:     FormatBestOfFive,
			wantScore:  "4-6, 6-3, 7-6(3), 6-4",
			wantWinner: SideOne,
		},
		{
			name:       "pro set",
			sets:       []SetScore{{P1Games: 8, P2Games: 5}},
			format:     FormatProSet,
			wantScore:  "8-5",
			wantWinner: SideOne,
		},
		{
			name:       "extended pro set",
			sets:       []SetScore{{P1Games: 9, P2Games: 11}},
			format:     FormatProSet,
			wantScore:  "9-11",
			wantWinner: SideTwo,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, winner, err := ValidateScore(tc.sets, tc.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if score != tc.wantScore {
				t.Errorf("score = %q, want %q", score, tc.wantScore)
			}
			if winner != tc.wantWinner {
				t.Errorf("winner = %d, want %d", winner, tc.wantWinner)
			}
		})
	}
}

func TestValidateScoreRejects(t *testing.T) {
	cases := []struct {
		name    string
		sets    []SetScore
		format  Format
		wantErr error
	}{
		{
			name:    "six five is not a set",
			sets:    []SetScore{{P1Games: 6, P2Games: 5}, {P1Games: 6, P2Games: 4}},
			format:  FormatBestOfThree,
			wantErr: ErrInvalidSetScore,
		},
		{
			name:    "six all is tied",
			sets:    []SetScore{{P1Games: 6, P2Games: 6}, {P1Games: 6, P2Games: 4}},
			format:  FormatBestOfThree,
			wantErr: ErrTiedSet,
		},
		{
			name:    "seven six without tiebreak",
			sets:    []SetScore{{P1Games: 7, P2Games: 6}, {P1Games: 6, P2Games: 4}},
			format:  FormatBestOfThree,
			wantErr: ErrMissingTiebreak,
		},
		{
			name: "tiebreak winner mismatch",
			sets: []SetScore{
				{P1Games: 7, P2Games: 6, Tiebreak: tb(3, 7)},
				{P1Games: 6, P2Games: 4},
			},
			format:  FormatBestOfThree,
			wantErr: ErrTiebreakWinnerMismatch,
		},
		{
			name: "tiebreak below seven points",
			sets: []SetScore{
				{P1Games: 7, P2Games: 6, Tiebreak: tb(6, 4)},
				{P1Games: 6, P2Games: 4},
			},
			format:  FormatBestOfThree,
			wantErr: ErrInvalidTiebreak,
		},
		{
			name: "tiebreak on plain set",
			sets: []SetScore{
				{P1Games: 6, P2Games: 4, Tiebreak: tb(7, 5)},
				{P1Games: 6, P2Games: 4},
			},
			format:  FormatBestOfThree,
			wantErr: ErrUnexpectedTiebreak,
		},
		{
			name:    "games beyond seven",
			sets:    []SetScore{{P1Games: 8, P2Games: 6}, {P1Games: 6, P2Games: 4}},
			format:  FormatBestOfThree,
			wantErr: ErrGamesOutOfRange,
		},
		{
			name:    "negative games",
			sets:    []SetScore{{P1Games: -1, P2Games: 6}, {P1Games: 6, P2Games: 4}},
			format:  FormatBestOfThree,
			wantErr: ErrGamesOutOfRange,
		},
		{
			name: "third set after straight sets win",
			sets: []SetScore{
				{P1Games: 6, P2Games: 4},
				{P1Games: 6, P2Games: 3},
				{P1Games: 6, P2Games: 2},
			},
			format:  FormatBestOfThree,
			wantErr: ErrTooManySets,
		},
		{
			name:    "one set is not best of three",
			sets:    []SetScore{{P1Games: 6, P2Games: 4}},
			format:  FormatBestOfThree,
			wantErr: ErrSetCount,
		},
		{
			name:    "two sets are not best of five",
			sets:    []SetScore{{P1Games: 6, P2Games: 4}, {P1Games: 6, P2Games: 3}},
			format:  FormatBestOfFive,
			wantErr: ErrSetCount,
		},
		{
			name:    "split best of three never decided",
			sets:    []SetScore{{P1Games: 6, P2Games: 4}, {P1Games: 4, P2Games: 6}},
			format:  FormatBestOfThree,
			wantErr: ErrIncompleteScore,
		},
		{
			name:    "pro set below eight games",
			sets:    []SetScore{{P1Games: 7, P2Games: 5}},
			format:  FormatProSet,
			wantErr: ErrInvalidSetScore,
		},
		{
			name:    "pro set cannot tie",
			sets:    []SetScore{{P1Games: 8, P2Games: 8}},
			format:  FormatProSet,
			wantErr: ErrTiedSet,
		},
		{
			name:    "pro set rejects tiebreak",
			sets:    []SetScore{{P1Games: 8, P2Games: 6, Tiebreak: tb(7, 2)}},
			format:  FormatProSet,
			wantErr: ErrUnexpectedTiebreak,
		},
		{
			name:    "no sets",
			sets:    nil,
			format:  FormatBestOfThree,
			wantErr: ErrNoSets,
		},
		{
			name:    "unknown format",
			sets:    []SetScore{{P1Games: 6, P2Games: 4}},
			format:  Format("exhibition"),
			wantErr: ErrUnknownFormat,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ValidateScore(tc.sets, tc.format)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidateLegacyScore(t *testing.T) {
	got, err := ValidateLegacyScore(" 6-4, 7-6(3) ", "u-2", "u-1", "u-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "6-4, 7-6(3)" {
		t.Errorf("score = %q, want trimmed text", got)
	}

	cases := []struct {
		name    string
		text    string
		winner  string
		wantErr error
	}{
		{name: "empty", text: "   ", winner: "u-1", wantErr: ErrInvalidLegacyScore},
		{name: "letters", text: "six-four", winner: "u-1", wantErr: ErrInvalidLegacyScore},
		{name: "too long", text: strings.Repeat("6-4, ", 25), winner: "u-1", wantErr: ErrInvalidLegacyScore},
		{name: "outsider winner", text: "6-4, 6-3", winner: "u-3", wantErr: ErrWinnerNotParticipant},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateLegacyScore(tc.text, tc.winner, "u-1", "u-2")
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
