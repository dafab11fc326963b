package services

import (
	"errors"

	"taskhive/taskhive/database"
	"taskhive/taskhive/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// TaskPage is one page of a user's tasks plus the pagination metadata
// reported back to the caller.
type TaskPage struct {
	Tasks    []models.Task
	Total    int64
	Page     int
	PerPage  int
	LastPage int
}

type TaskServiceInterface interface {
	CreateTask(user models.User, title, description string) (models.Task, error)
	GetTasks(user models.User, page, limit int) (TaskPage, error)
	UpdateTaskStatus(id uuid.UUID, status models.TaskStatus, user models.User) (models.Task, error)
	DeleteTask(id uuid.UUID, user models.User) (int64, error)
}

type TaskService struct {
	db *database.Database
}

func NewTaskService(db *database.Database) *TaskService {
	return &TaskService{db: db}
}

// CreateTask persists a new task owned by user. Status is always TODO on
// creation regardless of input.
func (s *TaskService) CreateTask(user models.User, title, description string) (models.Task, error) {
	if title == "" {
		return models.Task{}, ErrInvalidInput
	}

	task := models.Task{
		ID:          uuid.New(),
		UserID:      user.ID,
		Title:       title,
		Description: description,
		Status:      models.TaskStatusTodo,
	}

	if err := s.db.DB.Create(&task).Error; err != nil {
		return models.Task{}, err
	}

	return task, nil
}

// GetTasks returns one page of the user's tasks, newest first. Page and limit
// fall back to their defaults when out of range, and limit is capped at
// MaxPerPage no matter what was requested.
func (s *TaskService) GetTasks(user models.User, page, limit int) (TaskPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultPerPage
	}
	if limit > MaxPerPage {
		limit = MaxPerPage
	}

	var total int64
	if err := s.db.DB.Model(&models.Task{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		return TaskPage{}, err
	}

	var tasks []models.Task
	err := s.db.DB.
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&tasks).Error
	if err != nil {
		return TaskPage{}, err
	}

	lastPage := int((total + int64(limit) - 1) / int64(limit))
	if lastPage < 1 {
		lastPage = 1
	}

	return TaskPage{
		Tasks:    tasks,
		Total:    total,
		Page:     page,
		PerPage:  limit,
		LastPage: lastPage,
	}, nil
}

// UpdateTaskStatus overwrites the status of the task matching id and owner.
// A task belonging to another user is reported as not found, never as
// forbidden, so existence of foreign tasks does not leak.
func (s *TaskService) UpdateTaskStatus(id uuid.UUID, status models.TaskStatus, user models.User) (models.Task, error) {
	if !status.IsValid() {
		return models.Task{}, ErrInvalidInput
	}

	var task models.Task
	if err := s.db.DB.First(&task, "id = ? AND user_id = ?", id, user.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	task.Status = status
	if err := s.db.DB.Model(&task).Update("status", status).Error; err != nil {
		return models.Task{}, err
	}

	return task, nil
}

// DeleteTask removes the task matching id and owner and reports how many rows
// were affected. Deleting a missing or foreign task affects zero rows and is
// not an error.
func (s *TaskService) DeleteTask(id uuid.UUID, user models.User) (int64, error) {
	result := s.db.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Task{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
