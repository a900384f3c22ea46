// Package service holds the business operations of the API.
//
// Services speak schema records to their callers and model records to the
// repositories. Every operation below the supervisor level is scoped to the
// authenticated supervisor: records owned by someone else are reported as
// not found.
package service

import (
	"context"
	"errors"

	"github.com/deppfellow/social-scores/internal/errs"
	"github.com/deppfellow/social-scores/internal/model"
	"github.com/deppfellow/social-scores/internal/schema"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
)

// SupervisorStore persists supervisors.
type SupervisorStore interface {
	Create(ctx context.Context, email, hashedPassword string) (*model.Supervisor, error)
	GetByID(ctx context.Context, id int64) (*model.Supervisor, error)
	GetByEmail(ctx context.Context, email string) (*model.Supervisor, error)
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error
	List(ctx context.Context) ([]model.Supervisor, error)
}

// UserStore persists users.
type UserStore interface {
	Create(ctx context.Context, supervisorID int64, name, profileImage string) (*model.User, error)
	GetOwned(ctx context.Context, supervisorID, userID int64) (*model.User, error)
	ListBySupervisors(ctx context.Context, supervisorIDs []int64) ([]model.User, error)
	DeleteOwned(ctx context.Context, supervisorID, userID int64) error
}

// SocialNetworkStore persists linked accounts.
type SocialNetworkStore interface {
	Create(ctx context.Context, sn model.SocialNetwork) (*model.SocialNetwork, error)
	GetOwned(ctx context.Context, supervisorID, socialNetworkID int64) (*model.SocialNetwork, error)
	ListByUsers(ctx context.Context, userIDs []int64) ([]model.SocialNetwork, error)
	DeleteOwned(ctx context.Context, supervisorID, socialNetworkID int64) error
}

// ScoreStore persists scores.
type ScoreStore interface {
	Create(ctx context.Context, score model.Score) (*model.Score, error)
	ListBySocialNetworks(ctx context.Context, socialNetworkIDs []int64) ([]model.Score, error)
}

// TaskEnqueuer schedules background jobs. *asynq.Client satisfies it.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// isNotFound reports whether err means the row is absent.
func isNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// publicError turns a failure to build a public record from stored data
// into a 500; stored rows that break the field rules are a server fault.
func publicError(err error) error {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		return errs.NewInternalServerError()
	}
	return err
}
