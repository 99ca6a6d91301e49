package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskhub/internal/auth"
	"taskhub/internal/errors"
	"taskhub/internal/service"
)

// AIHandler handles task generation endpoints.
type AIHandler struct {
	generationService service.GenerationService
}

// NewAIHandler creates a new AI handler.
func NewAIHandler(generationService service.GenerationService) *AIHandler {
	return &AIHandler{generationService: generationService}
}

// GenerateTasksRequest represents a task generation request.
type GenerateTasksRequest struct {
	Topic string `json:"topic" validate:"required,min=1,max=200"`
}

// GenerateTasksResponse carries the ephemeral suggestion batch. Nothing is
// persisted until the client submits titles to the bulk create endpoint.
type GenerateTasksResponse struct {
	Tasks []string `json:"tasks"`
	Topic string   `json:"topic"`
}

// GenerateTasks godoc
// @Summary Generate suggested task titles for a topic
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateTasksRequest true "Topic"
// @Success 200 {object} GenerateTasksResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /ai/generate-tasks [post]
func (h *AIHandler) GenerateTasks(c echo.Context) error {
	if _, err := auth.CurrentUserID(c); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	var req GenerateTasksRequest
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

	tasks, err := h.generationService.GenerateTasks(c.Request().Context(), req.Topic)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, GenerateTasksResponse{Tasks: tasks, Topic: req.Topic})
}
