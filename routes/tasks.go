package routes

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"taskhive/taskhive/middleware"
	"taskhive/taskhive/models"
	"taskhive/taskhive/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type updateTaskStatusRequest struct {
	Status models.TaskStatus `json:"status" binding:"required,oneof=TODO IN_PROGRESS DONE"`
}

type taskResponse struct {
	ID        uuid.UUID         `json:"id"`
	Title     string            `json:"title"`
	Status    models.TaskStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

type listTasksMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
	LastPage int   `json:"last_page"`
}

type listTasksResponse struct {
	Data []taskResponse `json:"data"`
	Meta listTasksMeta  `json:"meta"`
}

func RegisterTaskRoutes(group *gin.RouterGroup, taskService services.TaskServiceInterface) {
	group.GET("", func(c *gin.Context) { GetTasks(c, taskService) })
	group.POST("", func(c *gin.Context) { CreateTask(c, taskService) })
	group.PATCH("/:id", func(c *gin.Context) { UpdateTaskStatus(c, taskService) })
	group.DELETE("/:id", func(c *gin.Context) { DeleteTask(c, taskService) })
}

// currentUser returns the user resolved by the auth middleware. Handlers on
// the task group can rely on it being present; a missing user means the
// middleware did not run, which is reported as unauthorized.
func currentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(middleware.CurrentUserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return models.User{}, false
	}
	return value.(models.User), true
}

func CreateTask(c *gin.Context, taskService services.TaskServiceInterface) {
	var request createTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	task, err := taskService.CreateTask(user, request.Title, request.Description)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, taskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Status:    task.Status,
		CreatedAt: task.CreatedAt,
	})
}

func GetTasks(c *gin.Context, taskService services.TaskServiceInterface) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	// Unparseable values fall back to the defaults rather than failing.
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = services.DefaultPage
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = services.DefaultPerPage
	}

	result, err := taskService.GetTasks(user, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	data := make([]taskResponse, 0, len(result.Tasks))
	for _, task := range result.Tasks {
		data = append(data, taskResponse{
			ID:        task.ID,
			Title:     task.Title,
			Status:    task.Status,
			CreatedAt: task.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, listTasksResponse{
		Data: data,
		Meta: listTasksMeta{
			Total:    result.Total,
			Page:     result.Page,
			PerPage:  result.PerPage,
			LastPage: result.LastPage,
		},
	})
}

func UpdateTaskStatus(c *gin.Context, taskService services.TaskServiceInterface) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task id must be a valid UUID"})
		return
	}

	var request updateTaskStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	task, err := taskService.UpdateTaskStatus(id, request.Status, user)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": task.ID, "status": task.Status})
}

func DeleteTask(c *gin.Context, taskService services.TaskServiceInterface) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task id must be a valid UUID"})
		return
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	// Deleting a missing or foreign task affects zero rows; the response is
	// the same success message either way.
	if _, err := taskService.DeleteTask(id, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
