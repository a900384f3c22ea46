package handler

import (
	"context"
	"net/http"

	"github.com/deppfellow/social-scores/internal/schema"
	"github.com/deppfellow/social-scores/internal/server"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	Create(ctx context.Context, supervisorID int64, in schema.UserCreate) (schema.User, error)
	List(ctx context.Context, supervisorID int64) ([]schema.User, error)
	Get(ctx context.Context, supervisorID, userID int64) (schema.User, error)
	Delete(ctx context.Context, supervisorID, userID int64) error
}

type UserHandler struct {
	Handler
	users UserService
}

func NewUserHandler(s *server.Server, users UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

func (h *UserHandler) Create() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *CreateUserRequest) (schema.User, error) {
		sup, err := currentSupervisor(c)
		if err != nil {
			return schema.User{}, err
		}
		return h.users.Create(c.Request().Context(), sup.ID, req.UserCreate)
	}, http.StatusCreated)
}

func (h *UserHandler) List() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *EmptyRequest) ([]schema.User, error) {
		sup, err := currentSupervisor(c)
		if err != nil {
			return nil, err
		}
		return h.users.List(c.Request().Context(), sup.ID)
	}, http.StatusOK)
}

func (h *UserHandler) Get() echo.HandlerFunc {
	return Handle(func(c echo.Context, req *UserPathRequest) (schema.User, error) {
		sup, err := currentSupervisor(c)
		if err != nil {
			return schema.User{}, err
		}
		return h.users.Get(c.Request().Context(), sup.ID, req.UserID)
	}, http.StatusOK)
}

func (h *UserHandler) Delete() echo.HandlerFunc {
	return HandleNoContent(func(c echo.Context, req *UserPathRequest) error {
		sup, err := currentSupervisor(c)
		if err != nil {
			return err
		}
		return h.users.Delete(c.Request().Context(), sup.ID, req.UserID)
	}, http.StatusNoContent)
}
