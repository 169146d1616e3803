// Package memory is an in-process Store for development and tests. For more
// than one instance, use the postgres store.
package memory

import (
	"context"
	"sync"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
)

type state struct {
	users       map[domain.UserID]domain.User
	projects    map[domain.ProjectID]domain.Project
	memberships map[domain.MembershipID]domain.Membership
	tasks       map[domain.TaskID]domain.Task
	invitations map[domain.InvitationID]domain.Invitation
}

func newState() *state {
	return &state{
		users:       make(map[domain.UserID]domain.User),
		projects:    make(map[domain.ProjectID]domain.Project),
		memberships: make(map[domain.MembershipID]domain.Membership),
		tasks:       make(map[domain.TaskID]domain.Task),
		invitations: make(map[domain.InvitationID]domain.Invitation),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.projects {
		c.projects[k] = v
	}
	for k, v := range s.memberships {
		c.memberships[k] = v
	}
	for k, v := range s.tasks {
		c.tasks[k] = v
	}
	for k, v := range s.invitations {
		c.invitations[k] = v
	}
	return c
}

// Store keeps every entity in maps guarded by one mutex. A transaction holds
// the mutex for its whole run and works on a copy that replaces the live state
// only on success.
type Store struct {
	mu       sync.Mutex
	state    *state
	sessions map[string]ports.Session
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{state: newState(), sessions: make(map[string]ports.Session)}
}

// PutSession registers a session token, standing in for the auth service.
func (s *Store) PutSession(token string, session ports.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = session
}

func (s *Store) LookupSession(ctx context.Context, token string) (*ports.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

// PutUser inserts or replaces a user. Users are owned by the auth service, so
// this is the only way they get here.
func (s *Store) PutUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.users[u.ID] = u
}

func (s *Store) Repos() ports.Repositories {
	return repositories(view{store: s})
}

func (s *Store) WithinTx(ctx context.Context, fn func(ports.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.state.clone()
	if err := fn(repositories(view{store: s, tx: tx})); err != nil {
		return err
	}
	s.state = tx
	return nil
}

func repositories(v view) ports.Repositories {
	return ports.Repositories{
		Users:       &userRepo{v},
		Projects:    &projectRepo{v},
		Memberships: &membershipRepo{v},
		Tasks:       &taskRepo{v},
		Invitations: &invitationRepo{v},
	}
}

// view runs each operation either against the open transaction copy or,
// outside a transaction, against the live state under the mutex.
type view struct {
	store *Store
	tx    *state
}

func (v view) read(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.state)
}

// write applies fn atomically: a failing fn leaves the state untouched.
func (v view) write(ctx context.Context, fn func(*state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	next := v.store.state.clone()
	if err := fn(next); err != nil {
		return err
	}
	v.store.state = next
	return nil
}

var (
	_ ports.Store        = (*Store)(nil)
	_ ports.SessionStore = (*Store)(nil)
)
