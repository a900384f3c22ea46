package handler

import (
	"context"
	"net/http"

	"github.com/deppfellow/social-scores/internal/schema"
	"github.com/deppfellow/social-scores/internal/server"
	"github.com/labstack/echo/v4"
)

type SocialNetworkService interface {
	Create(ctx context.Context, supervisorID, userID int64, in schema.SocialNetworkCreate) (schema.SocialNetwork, error)
	List(ctx context.Context, supervisorID, userID int64) ([]schema.SocialNetwork, error)
	Delete(ctx context.Context, supervisorID, socialNetworkID int64) error
}

type SocialNetworkHandler struct {
	Handler
	socialNetworks SocialNetworkService
}

func NewSocialNetworkHandler(s *server.Server, socialNetworks SocialNetworkService) *SocialNetworkHandler {
	return &SocialNetworkHandler{
		Handler:        NewHandler(s),
		socialNetworks: socialNetworks,
	}
}

func (h *SocialNetworkHandler) Create() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *CreateSocialNetworkRequest) (schema.SocialNetwork, error) {
		sup, err := currentSupervisor(c)
		if err != nil {
			return schema.SocialNetwork{}, err
		}
		return h.socialNetworks.Create(c.Request().Context(), sup.ID, req.UserID, req.SocialNetworkCreate)
	}, http.StatusCreated)
}

func (h *SocialNetworkHandler) List() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *UserPathRequest) ([]schema.SocialNetwork, error) {
		sup, err := currentSupervisor(c)
		if err != nil {
			return nil, err
		}
		return h.socialNetworks.List(c.Request().Context(), sup.ID, req.UserID)
	}, http.StatusOK)
}

func (h *SocialNetworkHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(func(c echo.Context, req *SocialNetworkPathRequest) error {
		sup, err := currentSupervisor(c)
		if err != nil {
			return err
		}
		return h.socialNetworks.Delete(c.Request().Context(), sup.ID, req.SocialNetworkID)
	}, http.StatusNoContent)
}
