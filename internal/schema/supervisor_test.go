package schema

import (
	"encoding/json"
	"testing"

	"github.com/deppfellow/social-scores/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSupervisorCreate(t *testing.T) {
	s, err := ParseSupervisorCreate(map[string]any{"email": "boss@example.com", "password": "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "boss@example.com", s.Email)
	assert.Equal(t, "hunter2", s.Password)

	_, err = ParseSupervisorCreate(map[string]any{"email": "boss@"})
	assert.Equal(t, []string{"email", "password"}, violations(t, err).Fields())
}

func TestParseSupervisorUpdate(t *testing.T) {
	s, err := ParseSupervisorUpdate(map[string]any{"password": "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", s.Password)

	_, err = ParseSupervisorUpdate(map[string]any{"password": 1234})
	assert.Equal(t, []string{"password"}, violations(t, err).Fields())
}

func TestParseSupervisor(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s, err := ParseSupervisor(map[string]any{"email": "boss@example.com", "id": 1})
		require.NoError(t, err)
		assert.False(t, s.IsAdmin)
		require.NotNil(t, s.Users)
		assert.Empty(t, s.Users)
	})

	t.Run("id must be positive", func(t *testing.T) {
		_, err := ParseSupervisor(map[string]any{"email": "boss@example.com", "id": 0})
		verr := violations(t, err)
		require.Len(t, verr.Violations, 1)
		assert.Equal(t, "id", verr.Violations[0].Field)
		assert.Equal(t, "gt", verr.Violations[0].Constraint)
	})

	t.Run("is_admin must be a boolean", func(t *testing.T) {
		s, err := ParseSupervisor(map[string]any{"email": "boss@example.com", "id": 1, "is_admin": true})
		require.NoError(t, err)
		assert.True(t, s.IsAdmin)

		_, err = ParseSupervisor(map[string]any{"email": "boss@example.com", "id": 1, "is_admin": "maybe"})
		assert.Equal(t, []string{"is_admin"}, violations(t, err).Fields())
	})

	t.Run("nested users", func(t *testing.T) {
		_, err := ParseSupervisor(map[string]any{
			"email": "boss@example.com", "id": 1,
			"users": []any{map[string]any{"id": 1, "supervisor_id": 1}},
		})
		assert.Equal(t, []string{"users[0].name"}, violations(t, err).Fields())
	})
}

func TestSupervisorDB(t *testing.T) {
	stored := model.Supervisor{
		ID:             1,
		Email:          "boss@example.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		IsAdmin:        true,
		Users: []model.User{{
			ID: 2, SupervisorID: 1, Name: "Ada", ProfileImage: "ada.png",
			SocialNetworks: []model.SocialNetwork{{
				ID: 3, UserID: 2, Name: "twitter", Email: "ada@example.com",
				EncryptedPassword: []byte("sealed"),
			}},
		}},
	}

	db, err := SupervisorDBFromModel(stored)
	require.NoError(t, err)
	assert.Equal(t, stored.HashedPassword, db.HashedPassword)

	t.Run("public view drops every secret", func(t *testing.T) {
		b, err := json.Marshal(db.Public())
		require.NoError(t, err)
		body := string(b)
		assert.NotContains(t, body, "hashed_password")
		assert.NotContains(t, body, "encrypted_password")
		assert.NotContains(t, body, stored.HashedPassword)
		assert.NotContains(t, body, "sealed")
		assert.Contains(t, body, `"is_admin":true`)
	})

	t.Run("stored shape uses the public field names", func(t *testing.T) {
		b, err := json.Marshal(db)
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(b, &fields))
		assert.ElementsMatch(t, []string{"id", "email", "is_admin", "users"}, keys(fields))
		assert.NotContains(t, string(b), stored.HashedPassword)
	})

	t.Run("public view from model", func(t *testing.T) {
		s, err := SupervisorFromModel(stored)
		require.NoError(t, err)
		require.Len(t, s.Users, 1)
		require.Len(t, s.Users[0].SocialNetworks, 1)
		assert.Equal(t, "ada@example.com", s.Users[0].SocialNetworks[0].Email)
	})

	t.Run("public copy does not alias the stored slice", func(t *testing.T) {
		pub := db.Public()
		pub.Users[0].Name = "changed"
		assert.Equal(t, "Ada", db.Users[0].Name)
	})

	t.Run("nested violations keep their path", func(t *testing.T) {
		bad := stored
		bad.ID = 0
		bad.Users = []model.User{{ID: -1, SupervisorID: 0, Name: "x"}}

		_, err := SupervisorFromModel(bad)
		verr := violations(t, err)
		assert.Equal(t, "Supervisor", verr.Schema)
		assert.Equal(t, []string{"id", "users[0].id"}, verr.Fields())
	})
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
