package service

import (
	"context"

	"github.com/deppfellow/social-scores/internal/model"
	"github.com/deppfellow/social-scores/internal/schema"
)

type UserService struct {
	users UserStore
	tree  TreeLoader
}

func NewUserService(users UserStore, tree TreeLoader) *UserService {
	return &UserService{users: users, tree: tree}
}

func (s *UserService) Create(ctx context.Context, supervisorID int64, in schema.UserCreate) (schema.User, error) {
	u, err := s.users.Create(ctx, supervisorID, in.Name, in.ProfileImage)
	if err != nil {
		return schema.User{}, err
	}
	u.SocialNetworks = []model.SocialNetwork{}
	return toPublicUser(*u)
}

// List returns the supervisor's users with their accounts and scores.
func (s *UserService) List(ctx context.Context, supervisorID int64) ([]schema.User, error) {
	users, err := s.users.ListBySupervisors(ctx, []int64{supervisorID})
	if err != nil {
		return nil, err
	}
	if err := s.tree.loadUsers(ctx, users); err != nil {
		return nil, err
	}

	out := make([]schema.User, 0, len(users))
	for _, u := range users {
		p, err := toPublicUser(u)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, supervisorID, userID int64) (schema.User, error) {
	u, err := s.users.GetOwned(ctx, supervisorID, userID)
	if err != nil {
		return schema.User{}, err
	}

	users := []model.User{*u}
	if err := s.tree.loadUsers(ctx, users); err != nil {
		return schema.User{}, err
	}
	return toPublicUser(users[0])
}

// Delete removes the user together with its accounts and scores.
func (s *UserService) Delete(ctx context.Context, supervisorID, userID int64) error {
	return s.users.DeleteOwned(ctx, supervisorID, userID)
}

func toPublicUser(m model.User) (schema.User, error) {
	u, err := schema.UserFromModel(m)
	if err != nil {
		return schema.User{}, publicError(err)
	}
	return u, nil
}
