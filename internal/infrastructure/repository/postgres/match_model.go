package postgres

import (
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/tennispal/internal/domain/match"
)

type matchTableModel struct {
	ID               string     `db:"id"`
	Player1ID        string     `db:"player1_id"`
	Player2ID        string     `db:"player2_id"`
	PlayDate         time.Time  `db:"play_date"`
	Location         *string    `db:"location"`
	MatchType        string     `db:"match_type"`
	Format           string     `db:"format"`
	Status           string     `db:"status"`
	Score            *string    `db:"score"`
	Sets             []byte     `db:"sets"`
	WinnerID         *string    `db:"winner_id"`
	ScoreSubmittedBy *string    `db:"score_submitted_by"`
	ScoreConfirmed   bool       `db:"score_confirmed"`
	ScoreDisputed    bool       `db:"score_disputed"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
	DeletedAt        *time.Time `db:"deleted_at"`
}

func (m matchTableModel) toDomain() (match.Match, error) {
	var sets []match.SetScore
	if len(m.Sets) > 0 {
		if err := sonic.Unmarshal(m.Sets, &sets); err != nil {
			return match.Match{}, fmt.Errorf("unmarshal match sets: %w", err)
		}
	}

	return match.Match{
		ID:               m.ID,
		Player1ID:        m.Player1ID,
		Player2ID:        m.Player2ID,
		PlayDate:         m.PlayDate,
		Location:         stringFromNullable(m.Location),
		MatchType:        match.Type(m.MatchType),
		Format:           match.Format(m.Format),
		Status:           match.Status(m.Status),
		Score:            stringFromNullable(m.Score),
		Sets:             sets,
		WinnerID:         stringFromNullable(m.WinnerID),
		ScoreSubmittedBy: stringFromNullable(m.ScoreSubmittedBy),
		ScoreConfirmed:   m.ScoreConfirmed,
		ScoreDisputed:    m.ScoreDisputed,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}, nil
}

func marshalSets(sets []match.SetScore) ([]byte, error) {
	if len(sets) == 0 {
		return nil, nil
	}
	encoded, err := sonic.Marshal(sets)
	if err != nil {
		return nil, fmt.Errorf("marshal match sets: %w", err)
	}
	return encoded, nil
}
