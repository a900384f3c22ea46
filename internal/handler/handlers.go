package handler

import (
	"github.com/deppfellow/social-scores/internal/server"
	"github.com/deppfellow/social-scores/internal/service"
)

type Handlers struct {
	Auth          *AuthHandler
	Supervisor    *SupervisorHandler
	User          *UserHandler
	SocialNetwork *SocialNetworkHandler
	Score         *ScoreHandler
	Health        *HealthHandler
	OpenAPI       *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Auth:          NewAuthHandler(s, services.Auth),
		Supervisor:    NewSupervisorHandler(s, services.Supervisor, services.Auth),
		User:          NewUserHandler(s, services.User),
		SocialNetwork: NewSocialNetworkHandler(s, services.SocialNetwork),
		Score:         NewScoreHandler(s, services.Score),
		Health:        NewHealthHandler(s),
		OpenAPI:       NewOpenAPIHandler(s),
	}
}
