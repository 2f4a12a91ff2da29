package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/taskhub/internal/resolver"
)

type createTagRequest struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
}

type updateTagRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func (s *Server) handleCreateTag(c echo.Context) error {
	var req createTagRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	tag, err := s.resolver.CreateTag(c.Request().Context(), callerID(c), req.ProjectID, req.Name, req.Color)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, tag)
}

func (s *Server) handleUpdateTag(c echo.Context) error {
	var req updateTagRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	tag, err := s.resolver.UpdateTag(c.Request().Context(), callerID(c), c.Param("id"), resolver.TagUpdate{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, tag)
}

func (s *Server) handleDeleteTag(c echo.Context) error {
	ok, err := s.resolver.DeleteTag(c.Request().Context(), callerID(c), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": ok})
}

func (s *Server) handleListTags(c echo.Context) error {
	tags, err := s.resolver.TagsByProject(c.Request().Context(), callerID(c), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, tags)
}
