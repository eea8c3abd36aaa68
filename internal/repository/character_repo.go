package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"spiegelmatch/internal/domain"
)

type CharacterRepository interface {
	Create(ctx context.Context, character domain.CharacterProfile) error
	Update(ctx context.Context, character domain.CharacterProfile) error
	GetByID(ctx context.Context, id string) (domain.CharacterProfile, error)
	ListByUserID(ctx context.Context, userID string) ([]domain.CharacterProfile, error)
	GetLatestByUserID(ctx context.Context, userID string) (domain.CharacterProfile, error)
}

type PgCharacterRepository struct {
	pool *pgxpool.Pool
}

func NewPgCharacterRepository(pool *pgxpool.Pool) *PgCharacterRepository {
	return &PgCharacterRepository{pool: pool}
}

const characterColumns = `id, user_id, username, tags, tags_summary, big5, personality, lifestyle, archetype, generated_profile, adjustments, created_at, updated_at`

func (r *PgCharacterRepository) Create(ctx context.Context, character domain.CharacterProfile) error {
	row, err := encodeCharacter(character)
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO characters (` + characterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = r.pool.Exec(ctx, query,
		character.ID,
		character.UserID,
		character.Username,
		row.tags,
		row.summary,
		row.big5,
		row.personality,
		row.lifestyle,
		row.archetype,
		row.generated,
		row.adjustments,
		character.CreatedAt,
		character.UpdatedAt,
	)
	return err
}

// Update reescribe las columnas derivadas; user_id y created_at no cambian.
func (r *PgCharacterRepository) Update(ctx context.Context, character domain.CharacterProfile) error {
	row, err := encodeCharacter(character)
	if err != nil {
		return err
	}
	const query = `
		UPDATE characters
		SET username = $1, tags = $2, tags_summary = $3, big5 = $4, personality = $5, lifestyle = $6,
			archetype = $7, generated_profile = $8, adjustments = $9, updated_at = $10
		WHERE id = $11
	`
	_, err = r.pool.Exec(ctx, query,
		character.Username,
		row.tags,
		row.summary,
		row.big5,
		row.personality,
		row.lifestyle,
		row.archetype,
		row.generated,
		row.adjustments,
		character.UpdatedAt,
		character.ID,
	)
	return err
}

func (r *PgCharacterRepository) GetByID(ctx context.Context, id string) (domain.CharacterProfile, error) {
	const query = `SELECT ` + characterColumns + ` FROM characters WHERE id = $1`
	return scanCharacter(r.pool.QueryRow(ctx, query, id))
}

func (r *PgCharacterRepository) ListByUserID(ctx context.Context, userID string) ([]domain.CharacterProfile, error) {
	const query = `
		SELECT ` + characterColumns + `
		FROM characters
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCharacters(rows)
}

func (r *PgCharacterRepository) GetLatestByUserID(ctx context.Context, userID string) (domain.CharacterProfile, error) {
	const query = `
		SELECT ` + characterColumns + `
		FROM characters
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanCharacter(r.pool.QueryRow(ctx, query, userID))
}

type characterRow struct {
	tags        []byte
	summary     []byte
	big5        pgvector.Vector
	personality []byte
	lifestyle   []byte
	archetype   []byte
	generated   []byte
	adjustments []byte
}

func encodeCharacter(c domain.CharacterProfile) (characterRow, error) {
	var row characterRow
	var err error
	tags := c.Tags
	if tags == nil {
		tags = []domain.TagSelection{}
	}
	fields := []struct {
		dst *[]byte
		src any
	}{
		{&row.tags, tags},
		{&row.summary, c.TagsSummary},
		{&row.personality, c.Personality},
		{&row.lifestyle, c.Lifestyle},
		{&row.archetype, c.Archetype},
		{&row.generated, c.GeneratedProfile},
		{&row.adjustments, c.Adjustments},
	}
	for _, f := range fields {
		if *f.dst, err = json.Marshal(f.src); err != nil {
			return characterRow{}, fmt.Errorf("encode character %s: %w", c.ID, err)
		}
	}
	row.big5 = TraitsToVector(c.Big5)
	return row, nil
}

func decodeCharacter(c *domain.CharacterProfile, row characterRow) error {
	fields := []struct {
		src []byte
		dst any
	}{
		{row.tags, &c.Tags},
		{row.summary, &c.TagsSummary},
		{row.personality, &c.Personality},
		{row.lifestyle, &c.Lifestyle},
		{row.archetype, &c.Archetype},
		{row.generated, &c.GeneratedProfile},
		{row.adjustments, &c.Adjustments},
	}
	for _, f := range fields {
		if len(f.src) == 0 {
			continue
		}
		if err := json.Unmarshal(f.src, f.dst); err != nil {
			return fmt.Errorf("decode character %s: %w", c.ID, err)
		}
	}
	if c.Tags == nil {
		c.Tags = []domain.TagSelection{}
	}
	big5, ok := VectorToTraits(row.big5)
	if !ok {
		return fmt.Errorf("decode character %s: big5 vector has %d dimensions", c.ID, len(row.big5.Slice()))
	}
	c.Big5 = big5
	return nil
}

// TraitsToVector guarda Big5 como vector(5) en el orden de domain.TraitNames.
func TraitsToVector(b domain.Big5Scores) pgvector.Vector {
	values := b.Values()
	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(v)
	}
	return pgvector.NewVector(out)
}

func VectorToTraits(v pgvector.Vector) (domain.Big5Scores, bool) {
	raw := v.Slice()
	values := make([]float64, len(raw))
	for i, f := range raw {
		values[i] = float64(f)
	}
	return domain.Big5FromValues(values)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCharacter(row rowScanner) (domain.CharacterProfile, error) {
	var c domain.CharacterProfile
	var raw characterRow
	if err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Username,
		&raw.tags,
		&raw.summary,
		&raw.big5,
		&raw.personality,
		&raw.lifestyle,
		&raw.archetype,
		&raw.generated,
		&raw.adjustments,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return domain.CharacterProfile{}, err
	}
	if err := decodeCharacter(&c, raw); err != nil {
		return domain.CharacterProfile{}, err
	}
	return c, nil
}

func scanCharacters(rows pgxRows) ([]domain.CharacterProfile, error) {
	chars := []domain.CharacterProfile{}
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		chars = append(chars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return chars, nil
}

// pgxRows is a minimal interface to allow scanning from pgx rows and simplify testing.
type pgxRows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
	Close()
}
