package service

import (
	"context"

	"github.com/deppfellow/social-scores/internal/model"
)

// TreeLoader fills in the nested children of the supervisor hierarchy with
// one query per level.
type TreeLoader struct {
	users          UserStore
	socialNetworks SocialNetworkStore
	scores         ScoreStore
}

func NewTreeLoader(users UserStore, socialNetworks SocialNetworkStore, scores ScoreStore) TreeLoader {
	return TreeLoader{users: users, socialNetworks: socialNetworks, scores: scores}
}

func (l TreeLoader) loadSupervisors(ctx context.Context, sups []model.Supervisor) error {
	if len(sups) == 0 {
		return nil
	}
	ids := make([]int64, len(sups))
	for i, s := range sups {
		ids[i] = s.ID
	}

	users, err := l.users.ListBySupervisors(ctx, ids)
	if err != nil {
		return err
	}
	if err := l.loadUsers(ctx, users); err != nil {
		return err
	}

	bySupervisor := make(map[int64][]model.User, len(sups))
	for _, u := range users {
		bySupervisor[u.SupervisorID] = append(bySupervisor[u.SupervisorID], u)
	}
	for i := range sups {
		sups[i].Users = nonNil(bySupervisor[sups[i].ID])
	}
	return nil
}

func (l TreeLoader) loadUsers(ctx context.Context, users []model.User) error {
	if len(users) == 0 {
		return nil
	}
	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	networks, err := l.socialNetworks.ListByUsers(ctx, ids)
	if err != nil {
		return err
	}
	if err := l.loadSocialNetworks(ctx, networks); err != nil {
		return err
	}

	byUser := make(map[int64][]model.SocialNetwork, len(users))
	for _, sn := range networks {
		byUser[sn.UserID] = append(byUser[sn.UserID], sn)
	}
	for i := range users {
		users[i].SocialNetworks = nonNil(byUser[users[i].ID])
	}
	return nil
}

func (l TreeLoader) loadSocialNetworks(ctx context.Context, networks []model.SocialNetwork) error {
	if len(networks) == 0 {
		return nil
	}
	ids := make([]int64, len(networks))
	for i, sn := range networks {
		ids[i] = sn.ID
	}

	scores, err := l.scores.ListBySocialNetworks(ctx, ids)
	if err != nil {
		return err
	}

	byNetwork := make(map[int64][]model.Score, len(networks))
	for _, s := range scores {
		byNetwork[s.SocialNetworkID] = append(byNetwork[s.SocialNetworkID], s)
	}
	for i := range networks {
		networks[i].Scores = nonNil(byNetwork[networks[i].ID])
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
