package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jewarner57/CodingChallengeCompendium/internal/common"
	"github.com/jewarner57/CodingChallengeCompendium/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	UpdateEmail(ctx context.Context, id, email string) error
	Delete(ctx context.Context, id string) error

	// AddSolvedChallenge appends the challenge to the user's solved-set using
	// the database's atomic set-add (ON CONFLICT DO NOTHING). It reports
	// whether a new row was inserted, so callers can distinguish a first
	// solve from an idempotent repeat.
	AddSolvedChallenge(ctx context.Context, userID, challengeID string) (bool, error)
	GetSolvedChallengeIDs(ctx context.Context, userID string) ([]string, error)
	GetCreatedChallengeIDs(ctx context.Context, userID string) ([]string, error)
	CountSolvedChallenges(ctx context.Context, userID string) (int, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, email, hashed_password)
	          VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.HashedPassword)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, email, hashed_password, created_at, updated_at
	          FROM users WHERE email = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.HashedPassword, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByEmail: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT id, email, hashed_password, created_at, updated_at
	          FROM users WHERE id = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.HashedPassword, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) UpdateEmail(ctx context.Context, id, email string) error {
	query := `UPDATE users SET email = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, email, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("email already in use: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.UpdateEmail: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgUserRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) AddSolvedChallenge(ctx context.Context, userID, challengeID string) (bool, error) {
	query := `INSERT INTO solved_challenges (user_id, challenge_id)
	          VALUES ($1, $2)
	          ON CONFLICT (user_id, challenge_id) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, userID, challengeID)
	if err != nil {
		return false, fmt.Errorf("pgUserRepository.AddSolvedChallenge: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgUserRepository.AddSolvedChallenge rows: %w", err)
	}
	return n > 0, nil
}

func (r *pgUserRepository) GetSolvedChallengeIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT challenge_id FROM solved_challenges WHERE user_id = $1 ORDER BY solved_at ASC`
	return r.queryIDs(ctx, query, userID, "GetSolvedChallengeIDs")
}

func (r *pgUserRepository) GetCreatedChallengeIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT id FROM challenges WHERE author_id = $1 ORDER BY created_at ASC`
	return r.queryIDs(ctx, query, userID, "GetCreatedChallengeIDs")
}

func (r *pgUserRepository) CountSolvedChallenges(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM solved_challenges WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgUserRepository.CountSolvedChallenges: %w", err)
	}
	return count, nil
}

func (r *pgUserRepository) queryIDs(ctx context.Context, query, arg, caller string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.%s query: %w", caller, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("pgUserRepository.%s scan: %w", caller, err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.%s rows.Err: %w", caller, err)
	}
	return ids, nil
}
