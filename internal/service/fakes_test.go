package service

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/deppfellow/social-scores/internal/model"
	"github.com/deppfellow/social-scores/internal/sqlerr"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgconn"
)

// memStore is an in-memory stand-in for the four repositories. It follows
// the same ownership and cascade rules as the SQL schema.
type memStore struct {
	mu             sync.Mutex
	seq            int64
	supervisors    map[int64]model.Supervisor
	users          map[int64]model.User
	socialNetworks map[int64]model.SocialNetwork
	scores         map[int64]model.Score
}

func newMemStore() *memStore {
	return &memStore{
		supervisors:    map[int64]model.Supervisor{},
		users:          map[int64]model.User{},
		socialNetworks: map[int64]model.SocialNetwork{},
		scores:         map[int64]model.Score{},
	}
}

func (m *memStore) next() int64 {
	m.seq++
	return m.seq
}

func sortedValues[T any](src map[int64]T, keep func(T) bool) []T {
	ids := make([]int64, 0, len(src))
	for id, v := range src {
		if keep(v) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, src[id])
	}
	return out
}

type memSupervisors struct{ *memStore }

func (s memSupervisors) Create(_ context.Context, email, hashedPassword string) (*model.Supervisor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sup := range s.supervisors {
		if sup.Email == email {
			return nil, &pgconn.PgError{Code: "23505", TableName: "supervisors", ConstraintName: "unique_supervisors_email"}
		}
	}
	now := time.Now()
	sup := model.Supervisor{ID: s.next(), Email: email, HashedPassword: hashedPassword, CreatedAt: now, UpdatedAt: now}
	s.supervisors[sup.ID] = sup
	return &sup, nil
}

func (s memSupervisors) GetByID(_ context.Context, id int64) (*model.Supervisor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sup, ok := s.supervisors[id]
	if !ok {
		return nil, sqlerr.NotFound("supervisors")
	}
	return &sup, nil
}

func (s memSupervisors) GetByEmail(_ context.Context, email string) (*model.Supervisor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sup := range s.supervisors {
		if sup.Email == email {
			return &sup, nil
		}
	}
	return nil, sqlerr.NotFound("supervisors")
}

func (s memSupervisors) UpdatePassword(_ context.Context, id int64, hashedPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sup, ok := s.supervisors[id]
	if !ok {
		return sqlerr.NotFound("supervisors")
	}
	sup.HashedPassword = hashedPassword
	s.supervisors[id] = sup
	return nil
}

func (s memSupervisors) List(context.Context) ([]model.Supervisor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.supervisors, func(model.Supervisor) bool { return true }), nil
}

type memUsers struct{ *memStore }

func (s memUsers) Create(_ context.Context, supervisorID int64, name, profileImage string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.supervisors[supervisorID]; !ok {
		return nil, &pgconn.PgError{Code: "23503", TableName: "users", ColumnName: "supervisor_id"}
	}
	u := model.User{ID: s.next(), SupervisorID: supervisorID, Name: name, ProfileImage: profileImage}
	s.users[u.ID] = u
	return &u, nil
}

func (s memUsers) GetOwned(_ context.Context, supervisorID, userID int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok || u.SupervisorID != supervisorID {
		return nil, sqlerr.NotFound("users")
	}
	return &u, nil
}

func (s memUsers) ListBySupervisors(_ context.Context, supervisorIDs []int64) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.users, func(u model.User) bool { return slices.Contains(supervisorIDs, u.SupervisorID) }), nil
}

func (s memUsers) DeleteOwned(_ context.Context, supervisorID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok || u.SupervisorID != supervisorID {
		return sqlerr.NotFound("users")
	}
	delete(s.users, userID)
	for id, sn := range s.socialNetworks {
		if sn.UserID == userID {
			s.deleteSocialNetwork(id)
		}
	}
	return nil
}

func (m *memStore) deleteSocialNetwork(id int64) {
	delete(m.socialNetworks, id)
	for sid, sc := range m.scores {
		if sc.SocialNetworkID == id {
			delete(m.scores, sid)
		}
	}
}

type memSocialNetworks struct{ *memStore }

func (s memSocialNetworks) Create(_ context.Context, sn model.SocialNetwork) (*model.SocialNetwork, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[sn.UserID]; !ok {
		return nil, &pgconn.PgError{Code: "23503", TableName: "social_networks", ColumnName: "user_id"}
	}
	sn.ID = s.next()
	s.socialNetworks[sn.ID] = sn
	return &sn, nil
}

func (s memSocialNetworks) GetOwned(_ context.Context, supervisorID, socialNetworkID int64) (*model.SocialNetwork, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sn, ok := s.socialNetworks[socialNetworkID]
	if !ok || s.users[sn.UserID].SupervisorID != supervisorID {
		return nil, sqlerr.NotFound("social_networks")
	}
	return &sn, nil
}

func (s memSocialNetworks) ListByUsers(_ context.Context, userIDs []int64) ([]model.SocialNetwork, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedValues(s.socialNetworks, func(sn model.SocialNetwork) bool { return slices.Contains(userIDs, sn.UserID) }), nil
}

func (s memSocialNetworks) DeleteOwned(_ context.Context, supervisorID, socialNetworkID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sn, ok := s.socialNetworks[socialNetworkID]
	if !ok || s.users[sn.UserID].SupervisorID != supervisorID {
		return sqlerr.NotFound("social_networks")
	}
	s.deleteSocialNetwork(socialNetworkID)
	return nil
}

type memScores struct{ *memStore }

func (s memScores) Create(_ context.Context, score model.Score) (*model.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	score.ID = s.next()
	score.CreatedAt = time.Now()
	s.scores[score.ID] = score
	return &score, nil
}

func (s memScores) ListBySocialNetworks(_ context.Context, socialNetworkIDs []int64) ([]model.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := sortedValues(s.scores, func(sc model.Score) bool { return slices.Contains(socialNetworkIDs, sc.SocialNetworkID) })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// fakeQueue records enqueued tasks.
type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}
