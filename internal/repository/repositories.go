package repository

import (
	"github.com/deppfellow/social-scores/internal/server"
	"github.com/jackc/pgx/v5"
)

type namedArgs = pgx.NamedArgs

type Repositories struct {
	Supervisor    *SupervisorRepository
	User          *UserRepository
	SocialNetwork *SocialNetworkRepository
	Score         *ScoreRepository
}

func NewRepositories(s *server.Server) *Repositories {
	return New(s.DB.Pool)
}

// New builds every repository on db, which may be a pool or a transaction.
func New(db DBTX) *Repositories {
	return &Repositories{
		Supervisor:    NewSupervisorRepository(db),
		User:          NewUserRepository(db),
		SocialNetwork: NewSocialNetworkRepository(db),
		Score:         NewScoreRepository(db),
	}
}
