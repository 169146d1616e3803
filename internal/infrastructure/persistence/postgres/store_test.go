package postgres

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/application/ports"
	"github.com/ssatriya/sp-fs-muhammad-yusuf-donny-satriyo/internal/domain"
)

const insertUserSQL = `INSERT INTO users (id, name, email) VALUES ($1, $2, $3)`

// newTestStore connects to TEST_DATABASE_URL and skips when it is unset.
func newTestStore(t *testing.T) (*Store, *pgxpool.Pool) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(pool.Close)
	store := NewStore(pool)
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store, pool
}

func insertUser(t *testing.T, pool *pgxpool.Pool, name string) domain.UserID {
	t.Helper()
	id := uuid.New()
	if _, err := pool.Exec(context.Background(), insertUserSQL, id, name, name+"-"+id.String()+"@example.com"); err != nil {
		t.Fatal(err)
	}
	return domain.NewUserID(id)
}

func TestStoreProjectLifecycle(t *testing.T) {
	store, pool := newTestStore(t)
	ctx := context.Background()
	owner := insertUser(t, pool, "ann")
	member := insertUser(t, pool, "bob_%")
	now := time.Now().UTC().Truncate(time.Microsecond)

	p := &domain.Project{ID: domain.NewProjectID(uuid.New()), Name: "Launch", OwnerID: owner, CreatedAt: now, UpdatedAt: now}
	err := store.WithinTx(ctx, func(r ports.Repositories) error {
		if err := r.Projects.Create(ctx, p); err != nil {
			return err
		}
		for _, m := range []*domain.Membership{
			{ID: domain.NewMembershipID(uuid.New()), UserID: owner, ProjectID: p.ID, Role: domain.RoleOwner, CreatedAt: now, UpdatedAt: now},
			{ID: domain.NewMembershipID(uuid.New()), UserID: member, ProjectID: p.ID, Role: domain.RoleMember, CreatedAt: now, UpdatedAt: now},
		} {
			if err := r.Memberships.Create(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	repos := store.Repos()

	dup := &domain.Membership{ID: domain.NewMembershipID(uuid.New()), UserID: member, ProjectID: p.ID, Role: domain.RoleMember, CreatedAt: now, UpdatedAt: now}
	if err := repos.Memberships.Create(ctx, dup); !errors.Is(err, ports.ErrDuplicate) {
		t.Errorf("duplicate membership err = %v", err)
	}

	users, err := repos.Users.SearchProjectMembers(ctx, p.ID, "_%", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 1 || users[0].ID != member {
		t.Errorf("wildcard search = %+v, want only bob_%%", users)
	}

	desc := "draft"
	task := &domain.Task{ID: domain.NewTaskID(uuid.New()), Title: "Write", Description: &desc, Status: domain.TaskTodo, ProjectID: p.ID, AssignedID: &member, CreatedAt: now, UpdatedAt: now}
	if err := repos.Tasks.Create(ctx, task); err != nil {
		t.Fatal(err)
	}
	list, err := repos.Tasks.ListByProject(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Assignee == nil || list[0].Assignee.ID != member || *list[0].Description != "draft" {
		t.Fatalf("tasks = %+v", list)
	}

	inv := domain.NewInvitation(owner, insertUser(t, pool, "carl"), p.ID, now)
	if err := repos.Invitations.Create(ctx, inv); err != nil {
		t.Fatal(err)
	}
	if ok, err := repos.Invitations.Resolve(ctx, inv.ID, domain.InvitationDeclined, now); err != nil || !ok {
		t.Fatalf("resolve = %v, %v", ok, err)
	}
	if ok, _ := repos.Invitations.Resolve(ctx, inv.ID, domain.InvitationAccepted, now); ok {
		t.Error("resolved a non-pending invitation")
	}

	if err := repos.Projects.Delete(ctx, p.ID); err != nil {
		t.Fatal(err)
	}
	if got, _ := repos.Tasks.GetByID(ctx, task.ID); got != nil {
		t.Error("task survived project delete")
	}
	if got, _ := repos.Projects.GetByID(ctx, p.ID); got != nil {
		t.Error("project survived delete")
	}
}

func TestUserSearch(t *testing.T) {
	store, pool := newTestStore(t)
	ctx := context.Background()
	tag := uuid.NewString()[:8]
	literal := insertUser(t, pool, "carol_%"+tag)
	plain := insertUser(t, pool, "carolx"+tag)
	users := store.Repos().Users

	got, err := users.Search(ctx, "_%"+tag, domain.UserID{}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != literal {
		t.Errorf("wildcard search = %+v, want only carol_%%", got)
	}

	got, err = users.Search(ctx, strings.ToUpper(tag), literal, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != plain {
		t.Errorf("search excluding caller = %+v, want only carolx", got)
	}
}
