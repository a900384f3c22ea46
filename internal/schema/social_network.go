package schema

import (
	"fmt"

	"github.com/deppfellow/social-scores/internal/model"
)

// SocialNetworkType names a supported network.
type SocialNetworkType string

const (
	SocialNetworkTwitter   SocialNetworkType = "twitter"
	SocialNetworkInstagram SocialNetworkType = "instagram"
)

// SocialNetworkTypes lists every supported network.
func SocialNetworkTypes() []SocialNetworkType {
	return []SocialNetworkType{SocialNetworkTwitter, SocialNetworkInstagram}
}

// SocialNetworkBase holds the fields a client may set on a linked account.
type SocialNetworkBase struct {
	Name  SocialNetworkType `json:"name"`
	Email string            `json:"email"`
}

// SocialNetworkCreate is the input shape for linking an account. Password is
// the plain credential; it is encrypted before it reaches the repository.
type SocialNetworkCreate struct {
	SocialNetworkBase
	Password string `json:"password"`
}

// SocialNetwork is the public view of a linked account.
type SocialNetwork struct {
	SocialNetworkBase
	ID     int64   `json:"id"`
	Scores []Score `json:"scores"`
}

// SocialNetworkDB is the stored shape of a linked account. It must never be
// written to a client; use Public.
type SocialNetworkDB struct {
	ID                int64             `json:"id"`
	UserID            int64             `json:"user_id"`
	Name              SocialNetworkType `json:"name"`
	Email             string            `json:"email"`
	EncryptedPassword []byte            `json:"-"`
	Scores            []Score           `json:"scores"`
}

// Public returns the client view, without the encrypted password.
func (s SocialNetworkDB) Public() SocialNetwork {
	scores := make([]Score, len(s.Scores))
	copy(scores, s.Scores)
	return SocialNetwork{
		SocialNetworkBase: SocialNetworkBase{Name: s.Name, Email: s.Email},
		ID:                s.ID,
		Scores:            scores,
	}
}

func parseSocialNetworkBase(d *decoder) SocialNetworkBase {
	b := SocialNetworkBase{
		Name:  SocialNetworkType(d.str("name")),
		Email: d.str("email"),
	}
	b.check(d)
	return b
}

func (b SocialNetworkBase) check(d *decoder) {
	d.check("name", string(b.Name), ruleNetworkName)
	d.check("email", b.Email, ruleEmail)
}

// ParseSocialNetworkCreate validates a raw account-link request.
func ParseSocialNetworkCreate(raw map[string]any) (SocialNetworkCreate, error) {
	d := newDecoder("SocialNetworkCreate", raw)
	s := SocialNetworkCreate{
		SocialNetworkBase: parseSocialNetworkBase(d),
		Password:          d.str("password"),
	}
	return s, d.err()
}

// ParseSocialNetwork validates a raw public account, including its scores.
func ParseSocialNetwork(raw map[string]any) (SocialNetwork, error) {
	d := newDecoder("SocialNetwork", raw)
	s := parseSocialNetwork(d)
	return s, d.err()
}

func parseSocialNetwork(d *decoder) SocialNetwork {
	s := SocialNetwork{
		SocialNetworkBase: parseSocialNetworkBase(d),
		ID:                d.int("id"),
		Scores:            []Score{},
	}
	d.check("id", s.ID, rulePositive)
	d.list("scores", func(cd *decoder) {
		s.Scores = append(s.Scores, parseScore(cd))
	})
	return s
}

// SocialNetworkFromModel builds the public view of a stored account.
func SocialNetworkFromModel(m model.SocialNetwork) (SocialNetwork, error) {
	db, err := SocialNetworkDBFromModel(m)
	if err != nil {
		err.(*ValidationError).Schema = "SocialNetwork"
		return SocialNetwork{}, err
	}
	return db.Public(), nil
}

// SocialNetworkDBFromModel builds the stored shape of an account.
func SocialNetworkDBFromModel(m model.SocialNetwork) (SocialNetworkDB, error) {
	d := newDecoder("SocialNetworkDB", nil)
	s := socialNetworkDBFromModel(d, m)
	return s, d.err()
}

func socialNetworkDBFromModel(d *decoder, m model.SocialNetwork) SocialNetworkDB {
	s := SocialNetworkDB{
		ID:                m.ID,
		UserID:            m.UserID,
		Name:              SocialNetworkType(m.Name),
		Email:             m.Email,
		EncryptedPassword: m.EncryptedPassword,
		Scores:            make([]Score, 0, len(m.Scores)),
	}
	SocialNetworkBase{Name: s.Name, Email: s.Email}.check(d)
	d.check("id", s.ID, rulePositive)
	for i, sm := range m.Scores {
		s.Scores = append(s.Scores, scoreFromModel(d.child(fmt.Sprintf("scores[%d]", i), nil), sm))
	}
	return s
}
