package service

import (
	"context"
	"errors"

	"github.com/taskforge/taskmanager/internal/domain"
	"github.com/taskforge/taskmanager/internal/repository"
)

const (
	createTaskRequired = "Title, status, priority, and username are required"
	updateTaskRequired = "Title, status, and priority are required"
)

type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

type TaskFields struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Status      string  `json:"status" validate:"required,taskstatus"`
	Priority    string  `json:"priority" validate:"required,taskpriority"`
	DueDate     *string `json:"due_date" validate:"omitempty,duedate"`
}

type CreateTaskInput struct {
	TaskFields
	Username string `json:"username" validate:"required"`
}

type UpdateTaskInput struct {
	TaskFields
}

type ListTasksInput struct {
	Status   string
	Priority string
	DueDate  string
	Search   string
}

func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	if err := validateInput(input, createTaskRequired); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("User not found")
		}
		return nil, domain.Storage("Database query failed", err)
	}

	task := input.TaskFields.toTask()
	task.UserID = user.ID

	if err := s.taskRepo.Create(ctx, task); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.Conflict("Task title already exists")
		}
		return nil, domain.Storage("Database insertion failed", err)
	}

	return task, nil
}

// List returns every task matching all supplied filters.
func (s *TaskService) List(ctx context.Context, input ListTasksInput) ([]*domain.Task, error) {
	filter := repository.TaskFilter{
		Status:   domain.TaskStatus(input.Status),
		Priority: domain.TaskPriority(input.Priority),
		Search:   input.Search,
	}
	if input.DueDate != "" {
		due, err := domain.ParseDueDate(input.DueDate)
		if err != nil {
			return nil, domain.Validation("Invalid dueDate")
		}
		filter.DueDate = &due
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, domain.Storage("Database query failed", err)
	}
	return tasks, nil
}

// Update replaces all client-owned fields of task id. Omitted optional
// fields are cleared, not kept.
func (s *TaskService) Update(ctx context.Context, id uint, input UpdateTaskInput) error {
	if err := validateInput(input, updateTaskRequired); err != nil {
		return err
	}

	task := input.TaskFields.toTask()
	task.ID = id

	if err := s.taskRepo.Update(ctx, task); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return domain.NotFound("Task not found")
		case errors.Is(err, repository.ErrDuplicate):
			return domain.Conflict("Task title already exists")
		}
		return domain.Storage("Database update failed", err)
	}
	return nil
}

func (s *TaskService) Delete(ctx context.Context, id uint) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NotFound("Task not found")
		}
		return domain.Storage("Database deletion failed", err)
	}
	return nil
}

// toTask assumes f has passed validation.
func (f TaskFields) toTask() *domain.Task {
	task := &domain.Task{
		Title:       f.Title,
		Description: f.Description,
		Status:      domain.TaskStatus(f.Status),
		Priority:    domain.TaskPriority(f.Priority),
	}
	if f.DueDate != nil && *f.DueDate != "" {
		if due, err := domain.ParseDueDate(*f.DueDate); err == nil {
			task.DueDate = &due
		}
	}
	return task
}
