package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/social-scores/internal/model"
)

const socialNetworkColumns = `sn.id, sn.user_id, sn.name, sn.email, sn.encrypted_password, sn.created_at, sn.updated_at`

type SocialNetworkRepository struct {
	db DBTX
}

func NewSocialNetworkRepository(db DBTX) *SocialNetworkRepository {
	return &SocialNetworkRepository{db: db}
}

func (r *SocialNetworkRepository) Create(ctx context.Context, sn model.SocialNetwork) (*model.SocialNetwork, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO social_networks AS sn (user_id, name, email, encrypted_password)
		VALUES (@user_id, @name, @email, @encrypted_password)
		RETURNING `+socialNetworkColumns,
		namedArgs{
			"user_id":            sn.UserID,
			"name":               sn.Name,
			"email":              sn.Email,
			"encrypted_password": sn.EncryptedPassword,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert social network for user %d: %w", sn.UserID, err)
	}
	return one[model.SocialNetwork](rows, "social_networks")
}

// GetOwned returns the account only if its user belongs to supervisorID.
func (r *SocialNetworkRepository) GetOwned(ctx context.Context, supervisorID, socialNetworkID int64) (*model.SocialNetwork, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+socialNetworkColumns+`
		FROM social_networks sn
		JOIN users u ON u.id = sn.user_id
		WHERE sn.id = $1 AND u.supervisor_id = $2`, socialNetworkID, supervisorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query social network %d: %w", socialNetworkID, err)
	}
	return one[model.SocialNetwork](rows, "social_networks")
}

// ListByUsers returns the accounts of every given user, ordered by id.
func (r *SocialNetworkRepository) ListByUsers(ctx context.Context, userIDs []int64) ([]model.SocialNetwork, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+socialNetworkColumns+`
		FROM social_networks sn
		WHERE sn.user_id = ANY($1)
		ORDER BY sn.id`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list social networks: %w", err)
	}
	return many[model.SocialNetwork](rows)
}

// DeleteOwned removes the account and, by cascade, its scores.
func (r *SocialNetworkRepository) DeleteOwned(ctx context.Context, supervisorID, socialNetworkID int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM social_networks sn
		USING users u
		WHERE sn.id = $1 AND u.id = sn.user_id AND u.supervisor_id = $2`, socialNetworkID, supervisorID)
	if err != nil {
		return fmt.Errorf("failed to delete social network %d: %w", socialNetworkID, err)
	}
	return affected(tag, "social_networks")
}
