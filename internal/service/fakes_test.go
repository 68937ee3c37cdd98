package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/taskforge/taskmanager/internal/domain"
	"github.com/taskforge/taskmanager/internal/repository"
)

var errBoom = errors.New("boom")

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	nextID    uint
	getErr    error
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.users[user.Username]; ok {
		return repository.ErrDuplicate
	}
	r.nextID++
	user.ID = r.nextID
	stored := *user
	r.users[user.Username] = &stored
	return nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	user, ok := r.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

type fakeTaskRepo struct {
	mu      sync.Mutex
	tasks   []*domain.Task
	nextID  uint
	err     error
	filters []repository.TaskFilter
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, t := range r.tasks {
		if t.Title == task.Title {
			return repository.ErrDuplicate
		}
	}
	r.nextID++
	task.ID = r.nextID
	stored := *task
	r.tasks = append(r.tasks, &stored)
	return nil
}

// stored returns a copy of the task with id, bypassing the interface.
func (r *fakeTaskRepo) stored(id uint) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tasks {
		if t.ID == id {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters = append(r.filters, filter)
	if r.err != nil {
		return nil, r.err
	}

	var out []*domain.Task
	for _, t := range r.tasks {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		if filter.DueDate != nil && (t.DueDate == nil || !t.DueDate.Equal(*filter.DueDate)) {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			desc := ""
			if t.Description != nil {
				desc = *t.Description
			}
			if !strings.Contains(strings.ToLower(t.Title), needle) && !strings.Contains(strings.ToLower(desc), needle) {
				continue
			}
		}
		copied := *t
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, t := range r.tasks {
		if t.Title == task.Title && t.ID != task.ID {
			return repository.ErrDuplicate
		}
	}
	for i, t := range r.tasks {
		if t.ID == task.ID {
			task.UserID = t.UserID
			task.CreatedAt = t.CreatedAt
			stored := *task
			r.tasks[i] = &stored
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for i, t := range r.tasks {
		if t.ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error)  { return "", errBoom }
func (failingHasher) Compare(string, string) error { return errBoom }

type fixedIssuer struct{}

func (fixedIssuer) Issue(username string) (string, error) { return "token-for-" + username, nil }
