package schema

import (
	"fmt"

	"github.com/deppfellow/social-scores/internal/model"
)

// SupervisorBase holds the fields shared by every supervisor shape.
type SupervisorBase struct {
	Email string `json:"email"`
}

// SupervisorCreate is the registration input.
type SupervisorCreate struct {
	SupervisorBase
	Password string `json:"password"`
}

// SupervisorUpdate is the password change input.
type SupervisorUpdate struct {
	Password string `json:"password"`
}

// Supervisor is the public view of a supervisor and the users it manages.
type Supervisor struct {
	SupervisorBase
	ID      int64  `json:"id"`
	IsAdmin bool   `json:"is_admin"`
	Users   []User `json:"users"`
}

// SupervisorDB is the stored shape of a supervisor. It must never be written
// to a client; use Public.
type SupervisorDB struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	IsAdmin        bool   `json:"is_admin"`
	HashedPassword string `json:"-"`
	Users          []User `json:"users"`
}

// Public returns the client view, without the password hash.
func (s SupervisorDB) Public() Supervisor {
	users := make([]User, len(s.Users))
	copy(users, s.Users)
	return Supervisor{
		SupervisorBase: SupervisorBase{Email: s.Email},
		ID:             s.ID,
		IsAdmin:        s.IsAdmin,
		Users:          users,
	}
}

func parseSupervisorBase(d *decoder) SupervisorBase {
	b := SupervisorBase{Email: d.str("email")}
	d.check("email", b.Email, ruleEmail)
	return b
}

// ParseSupervisorCreate validates a raw registration request.
func ParseSupervisorCreate(raw map[string]any) (SupervisorCreate, error) {
	d := newDecoder("SupervisorCreate", raw)
	s := SupervisorCreate{
		SupervisorBase: parseSupervisorBase(d),
		Password:       d.str("password"),
	}
	return s, d.err()
}

// ParseSupervisorUpdate validates a raw password change request.
func ParseSupervisorUpdate(raw map[string]any) (SupervisorUpdate, error) {
	d := newDecoder("SupervisorUpdate", raw)
	s := SupervisorUpdate{Password: d.str("password")}
	return s, d.err()
}

// ParseSupervisor validates a raw public supervisor, including its users.
func ParseSupervisor(raw map[string]any) (Supervisor, error) {
	d := newDecoder("Supervisor", raw)
	s := Supervisor{
		SupervisorBase: parseSupervisorBase(d),
		ID:             d.int("id"),
		IsAdmin:        d.boolOr("is_admin", false),
		Users:          []User{},
	}
	d.check("id", s.ID, rulePositive)
	d.list("users", func(cd *decoder) {
		s.Users = append(s.Users, parseUser(cd))
	})
	return s, d.err()
}

// SupervisorFromModel builds the public view of a stored supervisor and
// its nested users, accounts and scores.
func SupervisorFromModel(m model.Supervisor) (Supervisor, error) {
	db, err := SupervisorDBFromModel(m)
	if err != nil {
		err.(*ValidationError).Schema = "Supervisor"
		return Supervisor{}, err
	}
	return db.Public(), nil
}

// SupervisorDBFromModel builds the stored shape of a supervisor.
func SupervisorDBFromModel(m model.Supervisor) (SupervisorDB, error) {
	d := newDecoder("SupervisorDB", nil)
	s := SupervisorDB{
		ID:             m.ID,
		Email:          m.Email,
		IsAdmin:        m.IsAdmin,
		HashedPassword: m.HashedPassword,
		Users:          make([]User, 0, len(m.Users)),
	}
	d.check("email", s.Email, ruleEmail)
	d.check("id", s.ID, rulePositive)
	for i, um := range m.Users {
		s.Users = append(s.Users, userFromModel(d.child(fmt.Sprintf("users[%d]", i), nil), um))
	}
	return s, d.err()
}
