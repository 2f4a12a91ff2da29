package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type createProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleCreateProject(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	project, err := s.resolver.CreateProject(c.Request().Context(), callerID(c), req.Title, req.Description)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (s *Server) handleListProjects(c echo.Context) error {
	projects, err := s.resolver.Projects(c.Request().Context(), callerID(c))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, projects)
}

func (s *Server) handleListArchivedProjects(c echo.Context) error {
	projects, err := s.resolver.ArchivedProjects(c.Request().Context(), callerID(c))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, projects)
}

func (s *Server) handleGetProject(c echo.Context) error {
	project, err := s.resolver.Project(c.Request().Context(), callerID(c), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (s *Server) handleArchiveProject(c echo.Context) error {
	project, err := s.resolver.ArchiveProject(c.Request().Context(), callerID(c), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (s *Server) handleUnarchiveProject(c echo.Context) error {
	project, err := s.resolver.UnarchiveProject(c.Request().Context(), callerID(c), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	ok, err := s.resolver.DeleteProject(c.Request().Context(), callerID(c), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": ok})
}
