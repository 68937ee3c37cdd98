package gormstore

import (
	"context"
	"time"

	"github.com/taskforge/taskmanager/internal/domain"
	"github.com/taskforge/taskmanager/internal/repository"
	"gorm.io/gorm"
)

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *taskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	return translate("taskRepository.Create", r.db.WithContext(ctx).Omit("User").Create(task).Error)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]*domain.Task, error) {
	query := r.db.WithContext(ctx).Model(&domain.Task{})
	if where, args := filter.Where(); where != "" {
		query = query.Where(where, args...)
	}

	tasks := []*domain.Task{}
	if err := query.Find(&tasks).Error; err != nil {
		return nil, translate("taskRepository.List", err)
	}
	return tasks, nil
}

// Update replaces every client-owned column of the row with task's values,
// including NULLs for absent optional fields.
func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	task.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"status":      string(task.Status),
			"priority":    string(task.Priority),
			"due_date":    task.DueDate,
			"updated_at":  task.UpdatedAt,
		})
	if result.Error != nil {
		return translate("taskRepository.Update", result.Error)
	}
	if result.RowsAffected == 0 {
		return translate("taskRepository.Update", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id)
	if result.Error != nil {
		return translate("taskRepository.Delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return translate("taskRepository.Delete", gorm.ErrRecordNotFound)
	}
	return nil
}
