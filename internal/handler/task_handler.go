package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"taskhub/internal/auth"
	"taskhub/internal/errors"
	"taskhub/internal/service"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a single task creation request.
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=500"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"omitempty,max=50"`
}

// UpdateTaskRequest is a sparse update: absent fields stay unchanged, present
// fields are assigned even when set to a zero value.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category" validate:"omitempty,max=50"`
	Completed   *bool   `json:"completed"`
}

// BulkTaskItem is a single element of a bulk creation request.
type BulkTaskItem struct {
	Title       string `json:"title" validate:"required,max=500"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"omitempty,max=50"`
	Completed   bool   `json:"completed"`
}

// BulkCreateRequest represents a bulk task creation request.
type BulkCreateRequest struct {
	Tasks []BulkTaskItem `json:"tasks" validate:"dive"`
}

// BulkCreateResponse represents a bulk creation response.
type BulkCreateResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// DeleteResponse represents a delete confirmation.
type DeleteResponse struct {
	Message string `json:"message"`
}

func (h *TaskHandler) mapError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// taskID parses the path parameter. An unparseable id behaves like an absent
// task so the response leaks nothing about what ids exist.
func taskID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.ErrTaskNotFound
	}
	return id, nil
}

// ListTasks godoc
// @Summary List the current user's tasks, newest first
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return h.mapError(err)
	}

	tasks, err := h.taskService.List(c.Request().Context(), userID)
	if err != nil {
		return h.mapError(err)
	}

	return c.JSON(http.StatusOK, tasks)
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task data"
// @Success 201 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return h.mapError(err)
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	task, err := h.taskService.Create(c.Request().Context(), userID, service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		return h.mapError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

// UpdateTask godoc
// @Summary Apply a sparse update to an owned task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to change"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return h.mapError(err)
	}
	id, err := taskID(c)
	if err != nil {
		return h.mapError(err)
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	task, err := h.taskService.Update(c.Request().Context(), userID, id, service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Completed:   req.Completed,
	})
	if err != nil {
		return h.mapError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete an owned task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} DeleteResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return h.mapError(err)
	}
	id, err := taskID(c)
	if err != nil {
		return h.mapError(err)
	}

	if err := h.taskService.Delete(c.Request().Context(), userID, id); err != nil {
		return h.mapError(err)
	}

	return c.JSON(http.StatusOK, DeleteResponse{Message: "task deleted successfully"})
}

// BulkCreateTasks godoc
// @Summary Create a batch of tasks as one atomic unit
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BulkCreateRequest true "Tasks to create"
// @Success 201 {object} BulkCreateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/bulk [post]
func (h *TaskHandler) BulkCreateTasks(c echo.Context) error {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return h.mapError(err)
	}

	var req BulkCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	inputs := make([]service.TaskInput, 0, len(req.Tasks))
	for _, item := range req.Tasks {
		inputs = append(inputs, service.TaskInput{
			Title:       item.Title,
			Description: item.Description,
			Category:    item.Category,
			Completed:   item.Completed,
		})
	}

	count, err := h.taskService.BulkCreate(c.Request().Context(), userID, inputs)
	if err != nil {
		return h.mapError(err)
	}

	return c.JSON(http.StatusCreated, BulkCreateResponse{
		Message: "tasks created successfully",
		Count:   count,
	})
}
