package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/social-scores/internal/errs"
	"github.com/deppfellow/social-scores/internal/lib/job"
	"github.com/deppfellow/social-scores/internal/model"
	"github.com/deppfellow/social-scores/internal/schema"
	"github.com/deppfellow/social-scores/internal/security"
	"github.com/rs/zerolog"
)

const msgBadCredentials = "Incorrect email or password"

type AuthService struct {
	supervisors SupervisorStore
	hasher      *security.Hasher
	tokens      *security.Tokens
	jobs        TaskEnqueuer
	logger      *zerolog.Logger
}

func NewAuthService(
	supervisors SupervisorStore,
	hasher *security.Hasher,
	tokens *security.Tokens,
	jobs TaskEnqueuer,
	logger *zerolog.Logger,
) *AuthService {
	return &AuthService{
		supervisors: supervisors,
		hasher:      hasher,
		tokens:      tokens,
		jobs:        jobs,
		logger:      logger,
	}
}

// Register creates a supervisor and schedules the welcome email. A failure
// to enqueue the email is logged and does not fail the registration.
func (s *AuthService) Register(ctx context.Context, in schema.SupervisorCreate) (schema.Supervisor, error) {
	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return schema.Supervisor{}, fmt.Errorf("hashing password: %w", err)
	}

	sup, err := s.supervisors.Create(ctx, in.Email, hashed)
	if err != nil {
		return schema.Supervisor{}, err
	}
	sup.Users = []model.User{}

	s.enqueueWelcome(ctx, sup)

	out, err := schema.SupervisorFromModel(*sup)
	if err != nil {
		return schema.Supervisor{}, publicError(err)
	}
	return out, nil
}

func (s *AuthService) enqueueWelcome(ctx context.Context, sup *model.Supervisor) {
	task, err := job.NewWelcomeEmailTask(sup.Email)
	if err == nil {
		_, err = s.jobs.EnqueueContext(ctx, task)
	}
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("supervisor_id", sup.ID).
			Str("task", job.TaskWelcome).
			Msg("failed to enqueue welcome email")
	}
}

// Login checks the credentials and issues an access token. Unknown emails
// and wrong passwords get the same answer.
func (s *AuthService) Login(ctx context.Context, email, password string) (schema.Token, error) {
	start := time.Now()

	sup, err := s.supervisors.GetByEmail(ctx, email)
	if isNotFound(err) {
		return schema.Token{}, errs.NewUnauthorizedError(msgBadCredentials, true)
	}
	if err != nil {
		return schema.Token{}, err
	}

	if err := s.hasher.Compare(sup.HashedPassword, password); err != nil {
		if errors.Is(err, security.ErrMismatchedPassword) {
			s.logger.Warn().
				Int64("supervisor_id", sup.ID).
				Dur("duration", time.Since(start)).
				Msg("login rejected")
			return schema.Token{}, errs.NewUnauthorizedError(msgBadCredentials, true)
		}
		return schema.Token{}, fmt.Errorf("comparing password: %w", err)
	}

	return s.tokens.Issue(sup.ID)
}

// ChangePassword replaces the supervisor's password.
func (s *AuthService) ChangePassword(ctx context.Context, supervisorID int64, in schema.SupervisorUpdate) error {
	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.supervisors.UpdatePassword(ctx, supervisorID, hashed)
}

// Authenticate resolves an access token to its supervisor.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*model.Supervisor, error) {
	payload, err := s.tokens.Parse(accessToken)
	if err != nil {
		return nil, errs.NewUnauthorizedError("Could not validate credentials", true)
	}

	sup, err := s.supervisors.GetByID(ctx, *payload.Sub)
	if isNotFound(err) {
		return nil, errs.NewUnauthorizedError("Could not validate credentials", true)
	}
	if err != nil {
		return nil, err
	}
	return sup, nil
}
