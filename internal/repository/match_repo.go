package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"spiegelmatch/internal/domain"
)

type MatchRepository interface {
	Create(ctx context.Context, match domain.MatchResult) error
	ListByUserID(ctx context.Context, userID string, limit int) ([]domain.MatchResult, error)
}

type PgMatchRepository struct {
	pool *pgxpool.Pool
}

func NewPgMatchRepository(pool *pgxpool.Pool) *PgMatchRepository {
	return &PgMatchRepository{pool: pool}
}

func (r *PgMatchRepository) Create(ctx context.Context, match domain.MatchResult) error {
	scores, err := json.Marshal(match.Scores)
	if err != nil {
		return fmt.Errorf("encode match %s: %w", match.MatchID, err)
	}
	const query = `
		INSERT INTO matches (id, user1_id, user2_id, character1_id, character2_id, overall, scores, compatibility_level, recommendation, calculated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = r.pool.Exec(ctx, query,
		match.MatchID,
		match.User1ID,
		match.User2ID,
		match.Character1ID,
		match.Character2ID,
		match.Scores.Overall,
		scores,
		match.CompatibilityLevel,
		match.Recommendation,
		match.CalculatedAt,
	)
	return err
}

// ListByUserID devuelve los matches donde participa userID, mejores primero.
func (r *PgMatchRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]domain.MatchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
		SELECT id, user1_id, user2_id, character1_id, character2_id, scores, compatibility_level, recommendation, calculated_at
		FROM matches
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY overall DESC, calculated_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMatches(rows)
}

func scanMatches(rows pgxRows) ([]domain.MatchResult, error) {
	matches := []domain.MatchResult{}
	for rows.Next() {
		var m domain.MatchResult
		var scores []byte
		if err := rows.Scan(
			&m.MatchID,
			&m.User1ID,
			&m.User2ID,
			&m.Character1ID,
			&m.Character2ID,
			&scores,
			&m.CompatibilityLevel,
			&m.Recommendation,
			&m.CalculatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(scores, &m.Scores); err != nil {
			return nil, fmt.Errorf("decode match %s: %w", m.MatchID, err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}
