package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/taskmanager/internal/api/handlers"
	"github.com/taskforge/taskmanager/internal/domain"
	"github.com/taskforge/taskmanager/internal/security"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password: "testpassword123",
	}
}

func (b *UserBuilder) WithUsername(name string) *UserBuilder {
	b.username = name
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), security.WorkFactor)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		Username:     b.username,
		PasswordHash: string(hashedPassword),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// BuildAndRegister registers the user through the API and returns the issued token.
func (b *UserBuilder) BuildAndRegister(t *testing.T, ts *TestServer) (string, string) {
	t.Helper()

	resp := PostJSON(t, ts.APIURL("/register"), map[string]string{
		"username": b.username,
		"password": b.password,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var tokenResp handlers.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	return b.username, tokenResp.Token
}

// TaskBuilder creates test tasks with a builder pattern
type TaskBuilder struct {
	owner       *domain.User
	title       string
	description *string
	status      domain.TaskStatus
	priority    domain.TaskPriority
	dueDate     *time.Time
}

func NewTaskBuilder(owner *domain.User) *TaskBuilder {
	return &TaskBuilder{
		owner:    owner,
		title:    fmt.Sprintf("task_%s", uuid.New().String()[:8]),
		status:   domain.TaskStatusTodo,
		priority: domain.TaskPriorityMedium,
	}
}

func (b *TaskBuilder) WithTitle(title string) *TaskBuilder {
	b.title = title
	return b
}

func (b *TaskBuilder) WithDescription(description string) *TaskBuilder {
	b.description = &description
	return b
}

func (b *TaskBuilder) WithStatus(status domain.TaskStatus) *TaskBuilder {
	b.status = status
	return b
}

func (b *TaskBuilder) WithPriority(priority domain.TaskPriority) *TaskBuilder {
	b.priority = priority
	return b
}

func (b *TaskBuilder) WithDueDate(due time.Time) *TaskBuilder {
	due = due.UTC()
	b.dueDate = &due
	return b
}

// Build inserts the task directly into the database.
func (b *TaskBuilder) Build(t *testing.T, db *gorm.DB) *domain.Task {
	t.Helper()

	task := &domain.Task{
		Title:       b.title,
		Description: b.description,
		Status:      b.status,
		Priority:    b.priority,
		DueDate:     b.dueDate,
		UserID:      b.owner.ID,
	}
	if err := db.Omit("User").Create(task).Error; err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return task
}

// PostJSON posts body as JSON to url.
func PostJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	return DoJSON(t, http.MethodPost, url, body)
}

// DoJSON sends body as JSON with method. A nil body sends no payload.
func DoJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, url, err)
	}
	return resp
}
