package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/deppfellow/social-scores/internal/model"
	"github.com/deppfellow/social-scores/internal/schema"
	"github.com/deppfellow/social-scores/internal/security"
)

type SocialNetworkService struct {
	users          UserStore
	socialNetworks SocialNetworkStore
	sealer         *security.Sealer
	tree           TreeLoader
}

func NewSocialNetworkService(users UserStore, socialNetworks SocialNetworkStore, sealer *security.Sealer, tree TreeLoader) *SocialNetworkService {
	return &SocialNetworkService{
		users:          users,
		socialNetworks: socialNetworks,
		sealer:         sealer,
		tree:           tree,
	}
}

// ownerData binds a sealed password to the user that owns the account.
func ownerData(userID int64) []byte {
	return []byte("user:" + strconv.FormatInt(userID, 10))
}

// Create links an account to one of the supervisor's users. The password
// is sealed before it is stored.
func (s *SocialNetworkService) Create(ctx context.Context, supervisorID, userID int64, in schema.SocialNetworkCreate) (schema.SocialNetwork, error) {
	if _, err := s.users.GetOwned(ctx, supervisorID, userID); err != nil {
		return schema.SocialNetwork{}, err
	}

	sealed, err := s.sealer.Seal([]byte(in.Password), ownerData(userID))
	if err != nil {
		return schema.SocialNetwork{}, fmt.Errorf("sealing password: %w", err)
	}

	sn, err := s.socialNetworks.Create(ctx, model.SocialNetwork{
		UserID:            userID,
		Name:              string(in.Name),
		Email:             in.Email,
		EncryptedPassword: sealed,
	})
	if err != nil {
		return schema.SocialNetwork{}, err
	}
	sn.Scores = []model.Score{}

	return toPublicSocialNetwork(*sn)
}

// List returns the accounts of one of the supervisor's users.
func (s *SocialNetworkService) List(ctx context.Context, supervisorID, userID int64) ([]schema.SocialNetwork, error) {
	if _, err := s.users.GetOwned(ctx, supervisorID, userID); err != nil {
		return nil, err
	}

	networks, err := s.socialNetworks.ListByUsers(ctx, []int64{userID})
	if err != nil {
		return nil, err
	}
	if err := s.tree.loadSocialNetworks(ctx, networks); err != nil {
		return nil, err
	}

	out := make([]schema.SocialNetwork, 0, len(networks))
	for _, sn := range networks {
		p, err := toPublicSocialNetwork(sn)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Delete unlinks the account and drops its scores.
func (s *SocialNetworkService) Delete(ctx context.Context, supervisorID, socialNetworkID int64) error {
	return s.socialNetworks.DeleteOwned(ctx, supervisorID, socialNetworkID)
}

// Credential returns the plain password of an account, for the jobs that
// collect scores from the network.
func (s *SocialNetworkService) Credential(ctx context.Context, supervisorID, socialNetworkID int64) (string, error) {
	sn, err := s.socialNetworks.GetOwned(ctx, supervisorID, socialNetworkID)
	if err != nil {
		return "", err
	}

	db, err := schema.SocialNetworkDBFromModel(*sn)
	if err != nil {
		return "", publicError(err)
	}

	plain, err := s.sealer.Open(db.EncryptedPassword, ownerData(db.UserID))
	if err != nil {
		return "", fmt.Errorf("opening credential of social network %d: %w", db.ID, err)
	}
	return string(plain), nil
}

func toPublicSocialNetwork(m model.SocialNetwork) (schema.SocialNetwork, error) {
	sn, err := schema.SocialNetworkFromModel(m)
	if err != nil {
		return schema.SocialNetwork{}, publicError(err)
	}
	return sn, nil
}
