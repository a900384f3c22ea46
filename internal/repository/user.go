package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/social-scores/internal/model"
)

const userColumns = `u.id, u.supervisor_id, u.name, u.profile_image, u.created_at, u.updated_at`

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, supervisorID int64, name, profileImage string) (*model.User, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO users AS u (supervisor_id, name, profile_image)
		VALUES (@supervisor_id, @name, @profile_image)
		RETURNING `+userColumns,
		namedArgs{"supervisor_id": supervisorID, "name": name, "profile_image": profileImage},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user for supervisor %d: %w", supervisorID, err)
	}
	return one[model.User](rows, "users")
}

// GetOwned returns the user only if it belongs to supervisorID.
func (r *UserRepository) GetOwned(ctx context.Context, supervisorID, userID int64) (*model.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users u
		WHERE u.id = $1 AND u.supervisor_id = $2`, userID, supervisorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user %d: %w", userID, err)
	}
	return one[model.User](rows, "users")
}

// ListBySupervisors returns the users of every given supervisor, ordered by id.
func (r *UserRepository) ListBySupervisors(ctx context.Context, supervisorIDs []int64) ([]model.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns+`
		FROM users u
		WHERE u.supervisor_id = ANY($1)
		ORDER BY u.id`, supervisorIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return many[model.User](rows)
}

// DeleteOwned removes the user and, by cascade, its accounts and scores.
func (r *UserRepository) DeleteOwned(ctx context.Context, supervisorID, userID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1 AND supervisor_id = $2`, userID, supervisorID)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", userID, err)
	}
	return affected(tag, "users")
}
