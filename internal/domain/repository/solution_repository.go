package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jewarner57/CodingChallengeCompendium/internal/common"
	"github.com/jewarner57/CodingChallengeCompendium/internal/domain/model"
)

type SolutionRepository interface {
	Create(ctx context.Context, tx *sql.Tx, solution *model.Solution) error
	FindByID(ctx context.Context, id string) (*model.Solution, error)
	Delete(ctx context.Context, tx *sql.Tx, id string) error
}

type pgSolutionRepository struct {
	db *sql.DB
}

func NewPgSolutionRepository(db *sql.DB) SolutionRepository {
	return &pgSolutionRepository{db: db}
}

func (r *pgSolutionRepository) Create(ctx context.Context, tx *sql.Tx, s *model.Solution) error {
	testSolutions, err := json.Marshal(s.TestSolutions)
	if err != nil {
		return fmt.Errorf("pgSolutionRepository.Create marshal testsolutions: %w", err)
	}

	query := `INSERT INTO solutions (id, testsolutions) VALUES ($1, $2)`
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, s.ID, testSolutions)
	} else {
		_, err = r.db.ExecContext(ctx, query, s.ID, testSolutions)
	}
	if err != nil {
		return fmt.Errorf("pgSolutionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgSolutionRepository) FindByID(ctx context.Context, id string) (*model.Solution, error) {
	query := `SELECT id, testsolutions, created_at FROM solutions WHERE id = $1`

	s := &model.Solution{}
	var testSolutions []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &testSolutions, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSolutionRepository.FindByID: %w", err)
	}
	if err := json.Unmarshal(testSolutions, &s.TestSolutions); err != nil {
		return nil, fmt.Errorf("pgSolutionRepository.FindByID unmarshal testsolutions: %w", err)
	}
	return s, nil
}

func (r *pgSolutionRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	query := `DELETE FROM solutions WHERE id = $1`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, id)
	} else {
		_, err = r.db.ExecContext(ctx, query, id)
	}
	if err != nil {
		return fmt.Errorf("pgSolutionRepository.Delete: %w", err)
	}
	return nil
}
