package schema

import (
	"fmt"

	"github.com/deppfellow/social-scores/internal/model"
)

// DefaultProfileImage is used when a user is created without a picture.
const DefaultProfileImage = "default.png"

// UserBase holds the fields a supervisor may set on a user.
type UserBase struct {
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image"`
}

// UserCreate is the input shape for adding a user.
type UserCreate struct {
	UserBase
}

// User is the public view of a user and its linked accounts.
type User struct {
	UserBase
	ID             int64           `json:"id"`
	SupervisorID   int64           `json:"supervisor_id"`
	SocialNetworks []SocialNetwork `json:"social_networks"`
}

func parseUserBase(d *decoder) UserBase {
	return UserBase{
		Name:         d.str("name"),
		ProfileImage: d.strOr("profile_image", DefaultProfileImage),
	}
}

// ParseUserCreate validates a raw user creation request.
func ParseUserCreate(raw map[string]any) (UserCreate, error) {
	d := newDecoder("UserCreate", raw)
	u := UserCreate{UserBase: parseUserBase(d)}
	return u, d.err()
}

// ParseUser validates a raw public user, including nested accounts.
func ParseUser(raw map[string]any) (User, error) {
	d := newDecoder("User", raw)
	u := parseUser(d)
	return u, d.err()
}

func parseUser(d *decoder) User {
	u := User{
		UserBase:       parseUserBase(d),
		ID:             d.int("id"),
		SupervisorID:   d.int("supervisor_id"),
		SocialNetworks: []SocialNetwork{},
	}
	u.check(d)
	d.list("social_networks", func(cd *decoder) {
		u.SocialNetworks = append(u.SocialNetworks, parseSocialNetwork(cd))
	})
	return u
}

func (u User) check(d *decoder) {
	d.check("id", u.ID, ruleNonNegative)
	d.check("supervisor_id", u.SupervisorID, ruleNonNegative)
}

// UserFromModel builds the public view of a stored user and its accounts.
func UserFromModel(m model.User) (User, error) {
	d := newDecoder("User", nil)
	u := userFromModel(d, m)
	return u, d.err()
}

func userFromModel(d *decoder, m model.User) User {
	image := m.ProfileImage
	if image == "" {
		image = DefaultProfileImage
	}
	u := User{
		UserBase:       UserBase{Name: m.Name, ProfileImage: image},
		ID:             m.ID,
		SupervisorID:   m.SupervisorID,
		SocialNetworks: make([]SocialNetwork, 0, len(m.SocialNetworks)),
	}
	u.check(d)
	for i, sn := range m.SocialNetworks {
		db := socialNetworkDBFromModel(d.child(fmt.Sprintf("social_networks[%d]", i), nil), sn)
		u.SocialNetworks = append(u.SocialNetworks, db.Public())
	}
	return u
}
