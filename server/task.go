package server

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/taskhub/internal/resolver"
)

// optionalString distinguishes an absent JSON field from an explicit
// null. Needed for due dates, where null means "clear".
type optionalString struct {
	present bool
	value   *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.present = true
	if string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, &o.value)
}

type createTaskRequest struct {
	ProjectID    string   `json:"project_id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Priority     string   `json:"priority"`
	DueDate      string   `json:"due_date"`
	TagIDs       []string `json:"tag_ids"`
	AssignedUser string   `json:"assigned_user"`
}

type updateTaskRequest struct {
	Title        *string        `json:"title"`
	Description  *string        `json:"description"`
	Status       *string        `json:"status"`
	Priority     *string        `json:"priority"`
	DueDate      optionalString `json:"due_date"`
	TagIDs       *[]string      `json:"tag_ids"`
	AssignedUser *string        `json:"assigned_user"`
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	task, err := s.resolver.CreateTask(c.Request().Context(), callerID(c), resolver.CreateTaskInput{
		ProjectID:    req.ProjectID,
		Title:        req.Title,
		Description:  req.Description,
		Priority:     req.Priority,
		DueDate:      req.DueDate,
		TagIDs:       req.TagIDs,
		AssignedUser: req.AssignedUser,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	update := resolver.TaskUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		TagIDs:       req.TagIDs,
		AssignedUser: req.AssignedUser,
	}
	if req.DueDate.present {
		if req.DueDate.value == nil {
			update.ClearDueDate = true
		} else {
			update.DueDate = req.DueDate.value
		}
	}

	task, err := s.resolver.UpdateTask(c.Request().Context(), callerID(c), c.Param("id"), update)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	ok, err := s.resolver.DeleteTask(c.Request().Context(), callerID(c), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": ok})
}

func (s *Server) handleListTasks(c echo.Context) error {
	tasks, err := s.resolver.TasksByProject(c.Request().Context(), callerID(c), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}
