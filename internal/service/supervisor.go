package service

import (
	"context"

	"github.com/deppfellow/social-scores/internal/errs"
	"github.com/deppfellow/social-scores/internal/model"
	"github.com/deppfellow/social-scores/internal/schema"
)

type SupervisorService struct {
	supervisors SupervisorStore
	tree        TreeLoader
}

func NewSupervisorService(supervisors SupervisorStore, tree TreeLoader) *SupervisorService {
	return &SupervisorService{supervisors: supervisors, tree: tree}
}

// Me returns the supervisor with all of its users, accounts and scores.
func (s *SupervisorService) Me(ctx context.Context, supervisorID int64) (schema.Supervisor, error) {
	sup, err := s.supervisors.GetByID(ctx, supervisorID)
	if err != nil {
		return schema.Supervisor{}, err
	}

	sups := []model.Supervisor{*sup}
	if err := s.tree.loadSupervisors(ctx, sups); err != nil {
		return schema.Supervisor{}, err
	}

	out, err := schema.SupervisorFromModel(sups[0])
	if err != nil {
		return schema.Supervisor{}, publicError(err)
	}
	return out, nil
}

// List returns every supervisor with its hierarchy. Only admins may call it.
func (s *SupervisorService) List(ctx context.Context, caller *model.Supervisor) ([]schema.Supervisor, error) {
	if caller == nil || !caller.IsAdmin {
		return nil, errs.NewForbiddenError("Admin privileges required", true)
	}

	sups, err := s.supervisors.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.tree.loadSupervisors(ctx, sups); err != nil {
		return nil, err
	}

	out := make([]schema.Supervisor, 0, len(sups))
	for _, m := range sups {
		p, err := schema.SupervisorFromModel(m)
		if err != nil {
			return nil, publicError(err)
		}
		out = append(out, p)
	}
	return out, nil
}
