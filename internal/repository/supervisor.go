package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/social-scores/internal/model"
)

const supervisorColumns = `id, email, hashed_password, is_admin, created_at, updated_at`

type SupervisorRepository struct {
	db DBTX
}

func NewSupervisorRepository(db DBTX) *SupervisorRepository {
	return &SupervisorRepository{db: db}
}

func (r *SupervisorRepository) Create(ctx context.Context, email, hashedPassword string) (*model.Supervisor, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO supervisors (email, hashed_password)
		VALUES (@email, @hashed_password)
		RETURNING `+supervisorColumns,
		namedArgs{"email": email, "hashed_password": hashedPassword},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert supervisor %s: %w", email, err)
	}
	return one[model.Supervisor](rows, "supervisors")
}

func (r *SupervisorRepository) GetByID(ctx context.Context, id int64) (*model.Supervisor, error) {
	rows, err := r.db.Query(ctx, `SELECT `+supervisorColumns+` FROM supervisors WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query supervisor %d: %w", id, err)
	}
	return one[model.Supervisor](rows, "supervisors")
}

func (r *SupervisorRepository) GetByEmail(ctx context.Context, email string) (*model.Supervisor, error) {
	rows, err := r.db.Query(ctx, `SELECT `+supervisorColumns+` FROM supervisors WHERE email = $1`, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query supervisor %s: %w", email, err)
	}
	return one[model.Supervisor](rows, "supervisors")
}

func (r *SupervisorRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE supervisors
		SET hashed_password = $2, updated_at = now()
		WHERE id = $1`, id, hashedPassword)
	if err != nil {
		return fmt.Errorf("failed to update password of supervisor %d: %w", id, err)
	}
	return affected(tag, "supervisors")
}

func (r *SupervisorRepository) List(ctx context.Context) ([]model.Supervisor, error) {
	rows, err := r.db.Query(ctx, `SELECT `+supervisorColumns+` FROM supervisors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list supervisors: %w", err)
	}
	return many[model.Supervisor](rows)
}
