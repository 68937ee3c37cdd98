package gormstore_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskmanager/internal/domain"
	"github.com/taskforge/taskmanager/internal/testutil"
)

// forEachBackend runs fn against in-memory sqlite and, outside -short mode,
// a PostgreSQL container.
func forEachBackend(t *testing.T, fn func(t *testing.T, testDB *testutil.TestDB)) {
	t.Run("sqlite", func(t *testing.T) {
		fn(t, testutil.NewMemoryDB(t))
	})
	t.Run("postgres", func(t *testing.T) {
		fn(t, testutil.NewTestDB(t))
	})
}

func loadTask(t *testing.T, testDB *testutil.TestDB, id uint) *domain.Task {
	t.Helper()
	var task domain.Task
	require.NoError(t, testDB.DB.First(&task, "id = ?", id).Error)
	return &task
}
