package service

import (
	"fmt"

	"github.com/deppfellow/social-scores/internal/lib/job"
	"github.com/deppfellow/social-scores/internal/repository"
	"github.com/deppfellow/social-scores/internal/security"
	"github.com/deppfellow/social-scores/internal/server"
)

type Services struct {
	Auth          *AuthService
	Supervisor    *SupervisorService
	User          *UserService
	SocialNetwork *SocialNetworkService
	Score         *ScoreService
	Job           *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	sealer, err := security.NewSealer(s.Config.Auth.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to build credential sealer: %w", err)
	}

	tree := NewTreeLoader(repos.User, repos.SocialNetwork, repos.Score)

	authService := NewAuthService(
		repos.Supervisor,
		security.NewHasher(s.Config.Auth.BcryptCost),
		security.NewTokens(s.Config.Auth.SecretKey, s.Config.Auth.AccessTokenTTL),
		s.Job.Client,
		s.Logger,
	)

	return &Services{
		Auth:          authService,
		Supervisor:    NewSupervisorService(repos.Supervisor, tree),
		User:          NewUserService(repos.User, tree),
		SocialNetwork: NewSocialNetworkService(repos.User, repos.SocialNetwork, sealer, tree),
		Score:         NewScoreService(repos.SocialNetwork, repos.Score),
		Job:           s.Job,
	}, nil
}
