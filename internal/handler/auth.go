package handler

import (
	"context"
	"net/http"

	"github.com/deppfellow/social-scores/internal/model"
	"github.com/deppfellow/social-scores/internal/schema"
	"github.com/deppfellow/social-scores/internal/server"
	"github.com/labstack/echo/v4"
)

type AuthService interface {
	Register(ctx context.Context, in schema.SupervisorCreate) (schema.Supervisor, error)
	Login(ctx context.Context, email, password string) (schema.Token, error)
	ChangePassword(ctx context.Context, supervisorID int64, in schema.SupervisorUpdate) error
}

type SupervisorService interface {
	Me(ctx context.Context, supervisorID int64) (schema.Supervisor, error)
	List(ctx context.Context, caller *model.Supervisor) ([]schema.Supervisor, error)
}

type AuthHandler struct {
	Handler
	auth AuthService
}

func NewAuthHandler(s *server.Server, auth AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

func (h *AuthHandler) Register() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *RegisterRequest) (schema.Supervisor, error) {
		return h.auth.Register(c.Request().Context(), req.SupervisorCreate)
	}, http.StatusCreated)
}

func (h *AuthHandler) Token() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *LoginRequest) (schema.Token, error) {
		return h.auth.Login(c.Request().Context(), req.Email, req.Password)
	}, http.StatusOK)
}

type SupervisorHandler struct {
	Handler
	supervisors SupervisorService
	auth        AuthService
}

func NewSupervisorHandler(s *server.Server, supervisors SupervisorService, auth AuthService) *SupervisorHandler {
	return &SupervisorHandler{
		Handler:     NewHandler(s),
		supervisors: supervisors,
		auth:        auth,
	}
}

func (h *SupervisorHandler) Me() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *EmptyRequest) (schema.Supervisor, error) {
		sup, err := currentSupervisor(c)
		if err != nil {
			return schema.Supervisor{}, err
		}
		return h.supervisors.Me(c.Request().Context(), sup.ID)
	}, http.StatusOK)
}

func (h *SupervisorHandler) ChangePassword() echo.HandlerFunc {
	return HandleNoContent(func(c echo.Context, req *ChangePasswordRequest) error {
		sup, err := currentSupervisor(c)
		if err != nil {
			return err
		}
		return h.auth.ChangePassword(c.Request().Context(), sup.ID, req.SupervisorUpdate)
	}, http.StatusNoContent)
}

func (h *SupervisorHandler) List() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *EmptyRequest) ([]schema.Supervisor, error) {
		sup, err := currentSupervisor(c)
		if err != nil {
			return nil, err
		}
		return h.supervisors.List(c.Request().Context(), sup)
	}, http.StatusOK)
}
