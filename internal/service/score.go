package service

import (
	"context"

	"github.com/deppfellow/social-scores/internal/model"
	"github.com/deppfellow/social-scores/internal/schema"
)

type ScoreService struct {
	socialNetworks SocialNetworkStore
	scores         ScoreStore
}

func NewScoreService(socialNetworks SocialNetworkStore, scores ScoreStore) *ScoreService {
	return &ScoreService{socialNetworks: socialNetworks, scores: scores}
}

// Create records today's score for one of the supervisor's accounts.
func (s *ScoreService) Create(ctx context.Context, supervisorID, socialNetworkID int64, in schema.ScoreCreate) (schema.Score, error) {
	if _, err := s.socialNetworks.GetOwned(ctx, supervisorID, socialNetworkID); err != nil {
		return schema.Score{}, err
	}

	score, err := s.scores.Create(ctx, model.Score{
		SocialNetworkID: socialNetworkID,
		Score1:          in.Score1,
		Score2:          in.Score2,
		Score3:          in.Score3,
		Score4:          in.Score4,
		Date:            schema.Today().Time,
	})
	if err != nil {
		return schema.Score{}, err
	}

	out, err := schema.ScoreFromModel(*score)
	if err != nil {
		return schema.Score{}, publicError(err)
	}
	return out, nil
}

// List returns the scores of one of the supervisor's accounts, oldest first.
func (s *ScoreService) List(ctx context.Context, supervisorID, socialNetworkID int64) ([]schema.Score, error) {
	if _, err := s.socialNetworks.GetOwned(ctx, supervisorID, socialNetworkID); err != nil {
		return nil, err
	}

	scores, err := s.scores.ListBySocialNetworks(ctx, []int64{socialNetworkID})
	if err != nil {
		return nil, err
	}

	out := make([]schema.Score, 0, len(scores))
	for _, m := range scores {
		p, err := schema.ScoreFromModel(m)
		if err != nil {
			return nil, publicError(err)
		}
		out = append(out, p)
	}
	return out, nil
}
