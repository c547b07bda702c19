package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jewarner57/CodingChallengeCompendium/internal/common"
	"github.com/jewarner57/CodingChallengeCompendium/internal/domain/model"
)

// ChallengeFilter is a locally-scoped, value-typed filter for listing
// challenges. Empty fields impose no constraint.
type ChallengeFilter struct {
	Name       string // case-insensitive substring match against name
	Difficulty *int   // exact match
}

type ChallengeRepository interface {
	Create(ctx context.Context, tx *sql.Tx, challenge *model.Challenge) error
	Update(ctx context.Context, challenge *model.Challenge) error
	FindByID(ctx context.Context, id string) (*model.Challenge, error)
	List(ctx context.Context, filter ChallengeFilter) ([]model.Challenge, error)
	Delete(ctx context.Context, tx *sql.Tx, id string) error
}

type pgChallengeRepository struct {
	db *sql.DB
}

func NewPgChallengeRepository(db *sql.DB) ChallengeRepository {
	return &pgChallengeRepository{db: db}
}

func (r *pgChallengeRepository) Create(ctx context.Context, tx *sql.Tx, c *model.Challenge) error {
	testCases, err := json.Marshal(c.TestCases)
	if err != nil {
		return fmt.Errorf("pgChallengeRepository.Create marshal testcases: %w", err)
	}

	query := `INSERT INTO challenges (id, name, slug, difficulty, description, hint, testcases, solution_id, author_id)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, c.ID, c.Name, c.Slug, c.Difficulty, c.Description, c.Hint, testCases, c.SolutionID, c.AuthorID)
	} else {
		_, err = r.db.ExecContext(ctx, query, c.ID, c.Name, c.Slug, c.Difficulty, c.Description, c.Hint, testCases, c.SolutionID, c.AuthorID)
	}
	if err != nil {
		return fmt.Errorf("pgChallengeRepository.Create: %w", err)
	}
	return nil
}

func (r *pgChallengeRepository) Update(ctx context.Context, c *model.Challenge) error {
	testCases, err := json.Marshal(c.TestCases)
	if err != nil {
		return fmt.Errorf("pgChallengeRepository.Update marshal testcases: %w", err)
	}

	query := `UPDATE challenges SET
	            name = $1, slug = $2, difficulty = $3, description = $4,
	            hint = $5, testcases = $6, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Slug, c.Difficulty, c.Description, c.Hint, testCases, c.ID)
	if err != nil {
		return fmt.Errorf("pgChallengeRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgChallengeRepository) FindByID(ctx context.Context, id string) (*model.Challenge, error) {
	query := `SELECT id, name, slug, difficulty, description, hint, testcases, solution_id, author_id, created_at, updated_at
	          FROM challenges WHERE id = $1`

	c := &model.Challenge{}
	var testCases []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Slug, &c.Difficulty, &c.Description, &c.Hint,
		&testCases, &c.SolutionID, &c.AuthorID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgChallengeRepository.FindByID: %w", err)
	}
	if err := json.Unmarshal(testCases, &c.TestCases); err != nil {
		return nil, fmt.Errorf("pgChallengeRepository.FindByID unmarshal testcases: %w", err)
	}
	return c, nil
}

func (r *pgChallengeRepository) List(ctx context.Context, filter ChallengeFilter) ([]model.Challenge, error) {
	var query strings.Builder
	query.WriteString(`SELECT id, name, slug, difficulty, description, hint, testcases, solution_id, author_id, created_at, updated_at
	                   FROM challenges`)

	var conditions []string
	var args []interface{}
	argID := 1

	if filter.Name != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argID))
		args = append(args, "%"+filter.Name+"%")
		argID++
	}
	if filter.Difficulty != nil {
		conditions = append(conditions, fmt.Sprintf("difficulty = $%d", argID))
		args = append(args, *filter.Difficulty)
		argID++
	}
	if len(conditions) > 0 {
		query.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	query.WriteString(" ORDER BY created_at DESC")

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("pgChallengeRepository.List query: %w", err)
	}
	defer rows.Close()

	challenges := []model.Challenge{}
	for rows.Next() {
		var c model.Challenge
		var testCases []byte
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Difficulty, &c.Description, &c.Hint,
			&testCases, &c.SolutionID, &c.AuthorID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgChallengeRepository.List scan: %w", err)
		}
		if err := json.Unmarshal(testCases, &c.TestCases); err != nil {
			return nil, fmt.Errorf("pgChallengeRepository.List unmarshal testcases: %w", err)
		}
		challenges = append(challenges, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgChallengeRepository.List rows.Err: %w", err)
	}
	return challenges, nil
}

func (r *pgChallengeRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	query := `DELETE FROM challenges WHERE id = $1`
	var res sql.Result
	var err error
	if tx != nil {
		res, err = tx.ExecContext(ctx, query, id)
	} else {
		res, err = r.db.ExecContext(ctx, query, id)
	}
	if err != nil {
		return fmt.Errorf("pgChallengeRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
