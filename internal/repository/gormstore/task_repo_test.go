package gormstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskmanager/internal/domain"
	"github.com/taskforge/taskmanager/internal/repository"
	"github.com/taskforge/taskmanager/internal/repository/gormstore"
	"github.com/taskforge/taskmanager/internal/testutil"
)

func titles(tasks []*domain.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

func TestTaskRepository_Create(t *testing.T) {
	forEachBackend(t, func(t *testing.T, testDB *testutil.TestDB) {
		repo := gormstore.NewTaskRepository(testDB.DB)
		ctx := context.Background()
		owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		desc := "write it"
		task := &domain.Task{
			Title:       "Report",
			Description: &desc,
			Status:      domain.TaskStatusTodo,
			Priority:    domain.TaskPriorityHigh,
			UserID:      owner.ID,
		}
		require.NoError(t, repo.Create(ctx, task))
		assert.NotZero(t, task.ID)
		assert.False(t, task.CreatedAt.IsZero())

		got := loadTask(t, testDB, task.ID)
		assert.Equal(t, "Report", got.Title)
		require.NotNil(t, got.Description)
		assert.Equal(t, "write it", *got.Description)
		assert.Equal(t, owner.ID, got.UserID)

		dup := &domain.Task{Title: "Report", Status: domain.TaskStatusDone, Priority: domain.TaskPriorityLow, UserID: owner.ID}
		assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrDuplicate)
	})
}

func TestTaskRepository_List(t *testing.T) {
	forEachBackend(t, func(t *testing.T, testDB *testutil.TestDB) {
		repo := gormstore.NewTaskRepository(testDB.DB)
		ctx := context.Background()
		owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		due := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)

		testutil.NewTaskBuilder(owner).WithTitle("Foo in title").Build(t, testDB.DB)
		testutil.NewTaskBuilder(owner).WithTitle("plain").WithDescription("mentions FOO here").
			WithPriority(domain.TaskPriorityHigh).WithDueDate(due).Build(t, testDB.DB)
		testutil.NewTaskBuilder(owner).WithTitle("foo but done").WithStatus(domain.TaskStatusDone).Build(t, testDB.DB)
		testutil.NewTaskBuilder(owner).WithTitle("nothing").WithDescription("irrelevant").Build(t, testDB.DB)
		testutil.NewTaskBuilder(owner).WithTitle("100% sure").Build(t, testDB.DB)
		testutil.NewTaskBuilder(owner).WithTitle("Élan vital").Build(t, testDB.DB)

		tests := []struct {
			name   string
			filter repository.TaskFilter
			want   []string
		}{
			{
				name:   "no filters returns everything",
				filter: repository.TaskFilter{},
				want:   []string{"Foo in title", "plain", "foo but done", "nothing", "100% sure", "Élan vital"},
			},
			{
				name:   "status and search combine with AND",
				filter: repository.TaskFilter{Status: domain.TaskStatusTodo, Search: "foo"},
				want:   []string{"Foo in title", "plain"},
			},
			{
				name:   "priority",
				filter: repository.TaskFilter{Priority: domain.TaskPriorityHigh},
				want:   []string{"plain"},
			},
			{
				name:   "due date equality",
				filter: repository.TaskFilter{DueDate: &due},
				want:   []string{"plain"},
			},
			{
				name:   "wildcards in search are literal",
				filter: repository.TaskFilter{Search: "0%"},
				want:   []string{"100% sure"},
			},
			{
				name:   "non-ASCII term matches its own case",
				filter: repository.TaskFilter{Search: "Élan"},
				want:   []string{"Élan vital"},
			},
			{
				name:   "underscore is not a wildcard",
				filter: repository.TaskFilter{Search: "o_"},
				want:   []string{},
			},
			{
				name:   "injection attempt is inert",
				filter: repository.TaskFilter{Status: domain.TaskStatus("' OR '1'='1"), Search: "' OR '1'='1"},
				want:   []string{},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := repo.List(ctx, tt.filter)
				require.NoError(t, err)
				assert.ElementsMatch(t, tt.want, titles(got))
			})
		}

		all, err := repo.List(ctx, repository.TaskFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 6, "listing must not modify data")
	})
}

func TestTaskRepository_Update(t *testing.T) {
	forEachBackend(t, func(t *testing.T, testDB *testutil.TestDB) {
		repo := gormstore.NewTaskRepository(testDB.DB)
		ctx := context.Background()
		owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		original := testutil.NewTaskBuilder(owner).
			WithTitle("Original").
			WithDescription("old description").
			WithDueDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).
			Build(t, testDB.DB)
		other := testutil.NewTaskBuilder(owner).WithTitle("Other").Build(t, testDB.DB)

		replacement := &domain.Task{
			ID:       original.ID,
			Title:    "Replaced",
			Status:   domain.TaskStatusDone,
			Priority: domain.TaskPriorityLow,
		}
		require.NoError(t, repo.Update(ctx, replacement))

		got := loadTask(t, testDB, original.ID)
		assert.Equal(t, "Replaced", got.Title)
		assert.Equal(t, domain.TaskStatusDone, got.Status)
		assert.Nil(t, got.Description, "description is replaced with NULL")
		assert.Nil(t, got.DueDate)
		assert.Equal(t, owner.ID, got.UserID)

		missing := &domain.Task{ID: 999999, Title: "x", Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityLow}
		assert.ErrorIs(t, repo.Update(ctx, missing), repository.ErrNotFound)

		clash := &domain.Task{ID: other.ID, Title: "Replaced", Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityLow}
		assert.ErrorIs(t, repo.Update(ctx, clash), repository.ErrDuplicate)
	})
}

func TestTaskRepository_Delete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, testDB *testutil.TestDB) {
		repo := gormstore.NewTaskRepository(testDB.DB)
		ctx := context.Background()
		owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
		task := testutil.NewTaskBuilder(owner).Build(t, testDB.DB)

		require.NoError(t, repo.Delete(ctx, task.ID))
		assert.ErrorIs(t, repo.Delete(ctx, task.ID), repository.ErrNotFound)
	})
}

func TestNewConnection_UnknownDriver(t *testing.T) {
	_, err := gormstore.NewConnection("oracle", "", 1)
	assert.Error(t, err)
}
