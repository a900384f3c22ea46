package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/social-scores/internal/model"
)

const scoreColumns = `s.id, s.social_network_id, s.score_1, s.score_2, s.score_3, s.score_4, s.date, s.created_at`

type ScoreRepository struct {
	db DBTX
}

func NewScoreRepository(db DBTX) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) Create(ctx context.Context, score model.Score) (*model.Score, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO scores AS s (social_network_id, score_1, score_2, score_3, score_4, date)
		VALUES (@social_network_id, @score_1, @score_2, @score_3, @score_4, @date)
		RETURNING `+scoreColumns,
		namedArgs{
			"social_network_id": score.SocialNetworkID,
			"score_1":           score.Score1,
			"score_2":           score.Score2,
			"score_3":           score.Score3,
			"score_4":           score.Score4,
			"date":              score.Date,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert score for social network %d: %w", score.SocialNetworkID, err)
	}
	return one[model.Score](rows, "scores")
}

// ListBySocialNetworks returns the scores of every given account, oldest
// date first.
func (r *ScoreRepository) ListBySocialNetworks(ctx context.Context, socialNetworkIDs []int64) ([]model.Score, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+scoreColumns+`
		FROM scores s
		WHERE s.social_network_id = ANY($1)
		ORDER BY s.date, s.id`, socialNetworkIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	return many[model.Score](rows)
}
