package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/taskhub/internal/resolver"
)

type createTemplateRequest struct {
	ProjectID   string   `json:"project_id"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	TagIDs      []string `json:"tag_ids"`
	IsPublic    bool     `json:"is_public"`
}

type updateTemplateRequest struct {
	Name        *string   `json:"name"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Priority    *string   `json:"priority"`
	TagIDs      *[]string `json:"tag_ids"`
	IsPublic    *bool     `json:"is_public"`
}

type instantiateTemplateRequest struct {
	DueDate string `json:"due_date"`
}

func (s *Server) handleCreateTemplate(c echo.Context) error {
	var req createTemplateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	tpl, err := s.resolver.CreateTemplate(c.Request().Context(), callerID(c), resolver.CreateTemplateInput{
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		TagIDs:      req.TagIDs,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, tpl)
}

func (s *Server) handleUpdateTemplate(c echo.Context) error {
	var req updateTemplateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	tpl, err := s.resolver.UpdateTemplate(c.Request().Context(), callerID(c), c.Param("id"), resolver.TemplateUpdate{
		Name:        req.Name,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		TagIDs:      req.TagIDs,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, tpl)
}

func (s *Server) handleDeleteTemplate(c echo.Context) error {
	ok, err := s.resolver.DeleteTemplate(c.Request().Context(), callerID(c), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": ok})
}

func (s *Server) handleListTemplates(c echo.Context) error {
	templates, err := s.resolver.TemplatesByProject(c.Request().Context(), callerID(c), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, templates)
}

func (s *Server) handleGetTemplate(c echo.Context) error {
	tpl, err := s.resolver.Template(c.Request().Context(), callerID(c), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, tpl)
}

func (s *Server) handleCreateTaskFromTemplate(c echo.Context) error {
	var req instantiateTemplateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	task, err := s.resolver.CreateTaskFromTemplate(c.Request().Context(), callerID(c), c.Param("id"), req.DueDate)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}
