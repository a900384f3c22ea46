package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/social-scores/internal/errs"
	"github.com/deppfellow/social-scores/internal/lib/job"
	"github.com/deppfellow/social-scores/internal/schema"
	"github.com/deppfellow/social-scores/internal/security"
	"github.com/deppfellow/social-scores/internal/sqlerr"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	testKey    = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
)

type fixture struct {
	store  *memStore
	queue  *fakeQueue
	sealer *security.Sealer

	auth           *AuthService
	supervisors    *SupervisorService
	users          *UserService
	socialNetworks *SocialNetworkService
	scores         *ScoreService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	queue := &fakeQueue{}
	sealer, err := security.NewSealer(testKey)
	require.NoError(t, err)
	log := zerolog.Nop()

	sups := memSupervisors{store}
	users := memUsers{store}
	sns := memSocialNetworks{store}
	scores := memScores{store}
	tree := NewTreeLoader(users, sns, scores)

	return &fixture{
		store:          store,
		queue:          queue,
		sealer:         sealer,
		auth:           NewAuthService(sups, security.NewHasher(bcrypt.MinCost), security.NewTokens(testSecret, time.Hour), queue, &log),
		supervisors:    NewSupervisorService(sups, tree),
		users:          NewUserService(users, tree),
		socialNetworks: NewSocialNetworkService(users, sns, sealer, tree),
		scores:         NewScoreService(sns, scores),
	}
}

func (f *fixture) register(t *testing.T, email string) schema.Supervisor {
	t.Helper()
	in := schema.SupervisorCreate{SupervisorBase: schema.SupervisorBase{Email: email}, Password: "pw-" + email}
	sup, err := f.auth.Register(context.Background(), in)
	require.NoError(t, err)
	return sup
}

// status maps err the way the HTTP layer does.
func status(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	var httpErr *errs.HTTPError
	require.True(t, errors.As(sqlerr.HandleError(err), &httpErr))
	return httpErr.Status
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	sup := f.register(t, "boss@example.com")
	assert.Positive(t, sup.ID)
	assert.Equal(t, "boss@example.com", sup.Email)
	assert.False(t, sup.IsAdmin)
	assert.Equal(t, []schema.User{}, sup.Users)

	stored := f.store.supervisors[sup.ID]
	assert.NotEqual(t, "pw-boss@example.com", stored.HashedPassword)

	require.Len(t, f.queue.tasks, 1)
	assert.Equal(t, job.TaskWelcome, f.queue.tasks[0].Type())
	var payload job.WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(f.queue.tasks[0].Payload(), &payload))
	assert.Equal(t, "boss@example.com", payload.To)

	_, err := f.auth.Register(context.Background(), schema.SupervisorCreate{
		SupervisorBase: schema.SupervisorBase{Email: "boss@example.com"},
		Password:       "x",
	})
	assert.Equal(t, http.StatusConflict, status(t, err))
}

func TestRegisterSurvivesQueueOutage(t *testing.T) {
	f := newFixture(t)
	f.queue.err = errors.New("redis down")

	sup := f.register(t, "boss@example.com")
	assert.Positive(t, sup.ID)
}

func TestLoginAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sup := f.register(t, "boss@example.com")

	token, err := f.auth.Login(ctx, "boss@example.com", "pw-boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, schema.TokenTypeBearer, token.TokenType)

	who, err := f.auth.Authenticate(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, sup.ID, who.ID)

	_, err = f.auth.Login(ctx, "boss@example.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, status(t, err))

	_, err = f.auth.Login(ctx, "nobody@example.com", "pw")
	assert.Equal(t, http.StatusUnauthorized, status(t, err))

	_, err = f.auth.Authenticate(ctx, "garbage")
	assert.Equal(t, http.StatusUnauthorized, status(t, err))

	delete(f.store.supervisors, sup.ID)
	_, err = f.auth.Authenticate(ctx, token.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, status(t, err))
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sup := f.register(t, "boss@example.com")

	require.NoError(t, f.auth.ChangePassword(ctx, sup.ID, schema.SupervisorUpdate{Password: "new-pass"}))

	_, err := f.auth.Login(ctx, "boss@example.com", "pw-boss@example.com")
	assert.Error(t, err)
	_, err = f.auth.Login(ctx, "boss@example.com", "new-pass")
	assert.NoError(t, err)
}

func TestHierarchy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sup := f.register(t, "boss@example.com")

	user, err := f.users.Create(ctx, sup.ID, schema.UserCreate{UserBase: schema.UserBase{Name: "Ana", ProfileImage: schema.DefaultProfileImage}})
	require.NoError(t, err)
	assert.Equal(t, sup.ID, user.SupervisorID)
	assert.Equal(t, []schema.SocialNetwork{}, user.SocialNetworks)

	sn, err := f.socialNetworks.Create(ctx, sup.ID, user.ID, schema.SocialNetworkCreate{
		SocialNetworkBase: schema.SocialNetworkBase{Name: schema.SocialNetworkTwitter, Email: "ana@example.com"},
		Password:          "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, []schema.Score{}, sn.Scores)
	assert.NotContains(t, string(f.store.socialNetworks[sn.ID].EncryptedPassword), "hunter2")

	plain, err := f.socialNetworks.Credential(ctx, sup.ID, sn.ID)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", plain)

	score, err := f.scores.Create(ctx, sup.ID, sn.ID, schema.ScoreCreate{ScoreBase: schema.ScoreBase{Score1: 1, Score4: 4.5}})
	require.NoError(t, err)
	assert.Equal(t, sn.ID, score.SocialNetworkID)
	assert.Equal(t, schema.Today(), score.Date)
	assert.Equal(t, 4.5, score.Score4)

	me, err := f.supervisors.Me(ctx, sup.ID)
	require.NoError(t, err)
	require.Len(t, me.Users, 1)
	require.Len(t, me.Users[0].SocialNetworks, 1)
	require.Len(t, me.Users[0].SocialNetworks[0].Scores, 1)
	assert.Equal(t, score.ID, me.Users[0].SocialNetworks[0].Scores[0].ID)

	users, err := f.users.List(ctx, sup.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Len(t, users[0].SocialNetworks, 1)

	got, err := f.users.Get(ctx, sup.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, users[0], got)

	networks, err := f.socialNetworks.List(ctx, sup.ID, user.ID)
	require.NoError(t, err)
	require.Len(t, networks, 1)
	assert.Len(t, networks[0].Scores, 1)

	scores, err := f.scores.List(ctx, sup.ID, sn.ID)
	require.NoError(t, err)
	assert.Equal(t, []schema.Score{score}, scores)

	require.NoError(t, f.socialNetworks.Delete(ctx, sup.ID, sn.ID))
	assert.Empty(t, f.store.scores)

	require.NoError(t, f.users.Delete(ctx, sup.ID, user.ID))
	me, err = f.supervisors.Me(ctx, sup.ID)
	require.NoError(t, err)
	assert.Equal(t, []schema.User{}, me.Users)
}

func TestOwnershipIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice@example.com")
	bob := f.register(t, "bob@example.com")

	user, err := f.users.Create(ctx, alice.ID, schema.UserCreate{UserBase: schema.UserBase{Name: "Ana"}})
	require.NoError(t, err)
	sn, err := f.socialNetworks.Create(ctx, alice.ID, user.ID, schema.SocialNetworkCreate{
		SocialNetworkBase: schema.SocialNetworkBase{Name: schema.SocialNetworkInstagram, Email: "ana@example.com"},
		Password:          "pw",
	})
	require.NoError(t, err)

	_, err = f.users.Get(ctx, bob.ID, user.ID)
	assert.Equal(t, http.StatusNotFound, status(t, err))

	assert.Equal(t, http.StatusNotFound, status(t, f.users.Delete(ctx, bob.ID, user.ID)))

	_, err = f.socialNetworks.Create(ctx, bob.ID, user.ID, schema.SocialNetworkCreate{
		SocialNetworkBase: schema.SocialNetworkBase{Name: schema.SocialNetworkTwitter, Email: "x@example.com"},
	})
	assert.Equal(t, http.StatusNotFound, status(t, err))

	_, err = f.socialNetworks.List(ctx, bob.ID, user.ID)
	assert.Equal(t, http.StatusNotFound, status(t, err))

	_, err = f.socialNetworks.Credential(ctx, bob.ID, sn.ID)
	assert.Equal(t, http.StatusNotFound, status(t, err))

	_, err = f.scores.Create(ctx, bob.ID, sn.ID, schema.ScoreCreate{})
	assert.Equal(t, http.StatusNotFound, status(t, err))

	_, err = f.scores.List(ctx, bob.ID, sn.ID)
	assert.Equal(t, http.StatusNotFound, status(t, err))

	assert.Equal(t, http.StatusNotFound, status(t, f.socialNetworks.Delete(ctx, bob.ID, sn.ID)))

	bobView, err := f.supervisors.Me(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobView.Users)
}

func TestListSupervisorsRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.register(t, "admin@example.com")
	f.register(t, "other@example.com")

	caller := f.store.supervisors[admin.ID]
	_, err := f.supervisors.List(ctx, &caller)
	assert.Equal(t, http.StatusForbidden, status(t, err))

	caller.IsAdmin = true
	all, err := f.supervisors.List(ctx, &caller)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "admin@example.com", all[0].Email)
	assert.Equal(t, []schema.User{}, all[1].Users)
}

func TestCorruptStoredRowIsServerError(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sup := f.register(t, "boss@example.com")

	user, err := f.users.Create(ctx, sup.ID, schema.UserCreate{UserBase: schema.UserBase{Name: "Ana"}})
	require.NoError(t, err)
	sn, err := f.socialNetworks.Create(ctx, sup.ID, user.ID, schema.SocialNetworkCreate{
		SocialNetworkBase: schema.SocialNetworkBase{Name: schema.SocialNetworkTwitter, Email: "ana@example.com"},
	})
	require.NoError(t, err)

	row := f.store.socialNetworks[sn.ID]
	row.Name = "myspace"
	f.store.socialNetworks[sn.ID] = row

	_, err = f.supervisors.Me(ctx, sup.ID)
	assert.Equal(t, http.StatusInternalServerError, status(t, err))
}
