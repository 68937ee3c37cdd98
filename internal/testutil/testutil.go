package testutil

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/taskmanager/internal/api"
	"github.com/taskforge/taskmanager/internal/config"
	"github.com/taskforge/taskmanager/internal/repository"
	"github.com/taskforge/taskmanager/internal/repository/gormstore"
	"github.com/taskforge/taskmanager/internal/service"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB is a bootstrapped database for one test.
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
	Driver    string
}

// NewTestDB starts a PostgreSQL testcontainer. It is skipped in -short mode.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_tasks"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	testDB := &TestDB{Container: container, Driver: config.DriverPostgres}
	t.Cleanup(func() {
		testDB.Cleanup()
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}
	testDB.DSN = dsn

	testDB.DB, err = gormstore.NewConnection(config.DriverPostgres, dsn, logger.Silent)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	return testDB
}

// NewMemoryDB opens a private in-memory sqlite database.
func NewMemoryDB(t *testing.T) *TestDB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gormstore.NewConnection(config.DriverSQLite, dsn, logger.Silent)
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}

	// One connection keeps the in-memory database alive and serializes writers.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	testDB := &TestDB{DB: db, DSN: dsn, Driver: config.DriverSQLite}
	t.Cleanup(func() {
		testDB.Cleanup()
	})
	return testDB
}

// Cleanup closes the connection and terminates the container, if any.
func (tdb *TestDB) Cleanup() {
	if tdb.DB != nil {
		if sqlDB, err := tdb.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if tdb.Container != nil {
		tdb.Container.Terminate(context.Background())
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	if tdb.Driver == config.DriverPostgres {
		if err := tdb.DB.Exec("TRUNCATE TABLE tasks, users RESTART IDENTITY CASCADE").Error; err != nil {
			t.Fatalf("failed to truncate tables: %v", err)
		}
		return
	}

	for _, table := range []string{"tasks", "users"} {
		if err := tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Fatalf("failed to clear %s: %v", table, err)
		}
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		Environment:        "test",
		CORSOrigins:        []string{"*"},
		DatabaseDriver:     config.DriverSQLite,
		JWTSecret:          "test-jwt-secret-key-for-testing-only",
		JWTExpirationHours: 1,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Config   *config.Config
}

// NewTestServer wires the full stack over an in-memory sqlite database.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	return NewTestServerWith(t, NewMemoryDB(t), TestConfig())
}

// NewTestServerWith wires the full stack over testDB using cfg.
func NewTestServerWith(t *testing.T, testDB *TestDB, cfg *config.Config) *TestServer {
	t.Helper()

	repos := gormstore.NewRepositories(testDB.DB)
	services := service.NewServices(repos, cfg)
	server := httptest.NewServer(api.NewRouter(services, cfg))

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full URL for path under the configured prefix.
func (ts *TestServer) APIURL(path string) string {
	return ts.Server.URL + ts.Config.APIPrefix + path
}
