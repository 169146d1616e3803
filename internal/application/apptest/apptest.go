// Package apptest holds fixtures shared by the use-case tests.
package apptest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
)

// Epoch is the fixed start time of every test clock.
var Epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// Clock is a settable test clock.
type Clock struct{ now time.Time }

// NewClock returns a clock stopped at Epoch.
func NewClock() *Clock { return &Clock{now: Epoch} }

// Now returns the current test time.
func (c *Clock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Func adapts the clock to ports.Clock.
func (c *Clock) Func() ports.Clock { return c.Now }

// UserSeeder is a store that accepts users directly.
type UserSeeder interface {
	PutUser(domain.User)
}

// User seeds a user into store and returns it.
func User(store UserSeeder, name string) domain.User {
	u := domain.User{
		ID:        domain.NewUserID(uuid.New()),
		Name:      name,
		Email:     name + "@example.com",
		CreatedAt: Epoch,
		UpdatedAt: Epoch,
	}
	store.PutUser(u)
	return u
}

// ErrInjected is returned by FailingStore's broken repositories.
var ErrInjected = errors.New("injected failure")

// FailingStore wraps a store and lets a test swap in broken repositories.
type FailingStore struct {
	ports.Store
	// Wrap, if set, rewrites the repositories handed to WithinTx and Repos.
	Wrap func(ports.Repositories) ports.Repositories
}

func (s *FailingStore) Repos() ports.Repositories {
	r := s.Store.Repos()
	if s.Wrap != nil {
		r = s.Wrap(r)
	}
	return r
}

func (s *FailingStore) WithinTx(ctx context.Context, fn func(ports.Repositories) error) error {
	return s.Store.WithinTx(ctx, func(r ports.Repositories) error {
		if s.Wrap != nil {
			r = s.Wrap(r)
		}
		return fn(r)
	})
}

// FailingMemberships fails every membership insert.
type FailingMemberships struct {
	ports.MembershipRepository
}

func (FailingMemberships) Create(context.Context, *domain.Membership) error {
	return ErrInjected
}
