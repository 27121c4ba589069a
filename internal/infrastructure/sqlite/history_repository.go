package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quizhost/buzzkit/internal/history"
)

// historyRepository implements history.Repository using SQLite.
// Timestamps are stored as Unix seconds.
type historyRepository struct {
	db *sql.DB
}

func newHistoryRepository(db *sql.DB) *historyRepository {
	return &historyRepository{db: db}
}

var _ history.Repository = (*historyRepository)(nil)

func (r *historyRepository) StartMatch(players int) (history.Match, error) {
	m := history.Match{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC().Truncate(time.Second),
		Players:   players,
	}
	_, err := r.db.Exec(
		`INSERT INTO matches (id, started_at, players) VALUES (?, ?, ?)`,
		m.ID, m.StartedAt.Unix(), m.Players,
	)
	if err != nil {
		return history.Match{}, fmt.Errorf("inserting match: %w", err)
	}
	return m, nil
}

func (r *historyRepository) RecordJudgment(j history.Judgment) error {
	if j.JudgedAt.IsZero() {
		j.JudgedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(
		`INSERT INTO judgments (match_id, seq, player, verdict, judged_at, score_after)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		j.MatchID, j.Seq, j.Player, j.Verdict, j.JudgedAt.Unix(), j.ScoreAfter,
	)
	if err != nil {
		return fmt.Errorf("inserting judgment: %w", err)
	}
	return nil
}

func (r *historyRepository) RecentMatches(limit int) ([]history.Match, error) {
	rows, err := r.db.Query(
		`SELECT id, started_at, players FROM matches ORDER BY started_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying matches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var matches []history.Match
	for rows.Next() {
		var m history.Match
		var startedAt int64
		if err := rows.Scan(&m.ID, &startedAt, &m.Players); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		m.StartedAt = time.Unix(startedAt, 0).UTC()
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating matches: %w", err)
	}
	return matches, nil
}

func (r *historyRepository) Judgments(matchID string) ([]history.Judgment, error) {
	var exists int
	err := r.db.QueryRow(`SELECT 1 FROM matches WHERE id = ?`, matchID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, &history.MatchNotFoundError{ID: matchID}
	}
	if err != nil {
		return nil, fmt.Errorf("looking up match: %w", err)
	}

	rows, err := r.db.Query(
		`SELECT match_id, seq, player, verdict, judged_at, score_after
		 FROM judgments WHERE match_id = ? ORDER BY seq`,
		matchID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying judgments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var judgments []history.Judgment
	for rows.Next() {
		var j history.Judgment
		var judgedAt int64
		if err := rows.Scan(&j.MatchID, &j.Seq, &j.Player, &j.Verdict, &judgedAt, &j.ScoreAfter); err != nil {
			return nil, fmt.Errorf("scanning judgment: %w", err)
		}
		j.JudgedAt = time.Unix(judgedAt, 0).UTC()
		judgments = append(judgments, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating judgments: %w", err)
	}
	return judgments, nil
}
