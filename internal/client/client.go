// Package client is the HTTP client for the TaskHub API, used by the
// CLI. The session token is persisted under ~/.taskhub so commands
// stay logged in between invocations.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/existflow/taskhub/internal/model"
	"github.com/existflow/taskhub/internal/resolver"
)

// Session is what the CLI persists between invocations.
type Session struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
}

// Client talks to a TaskHub server.
type Client struct {
	session     *Session
	sessionPath string
	httpClient  *http.Client
}

// New creates a client, loading any persisted session.
func New() (*Client, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	c := &Client{
		sessionPath: filepath.Join(home, ".taskhub", "session.json"),
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
	c.loadSession()

	return c, nil
}

func (c *Client) loadSession() {
	data, err := os.ReadFile(c.sessionPath)
	if err != nil {
		c.session = &Session{ServerURL: "http://localhost:8080"}
		return
	}

	c.session = &Session{}
	if json.Unmarshal(data, c.session) != nil || c.session.ServerURL == "" {
		c.session.ServerURL = "http://localhost:8080"
	}
}

func (c *Client) saveSession() error {
	if err := os.MkdirAll(filepath.Dir(c.sessionPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c.session, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.sessionPath, data, 0600)
}

// SetServer sets the server URL.
func (c *Client) SetServer(url string) error {
	c.session.ServerURL = url
	return c.saveSession()
}

// ServerURL returns the configured server URL.
func (c *Client) ServerURL() string {
	return c.session.ServerURL
}

// IsLoggedIn returns true if a session token is present.
func (c *Client) IsLoggedIn() bool {
	return c.session.Token != ""
}

// Email returns the logged-in account's email, if any.
func (c *Client) Email() string {
	return c.session.Email
}

// do performs a JSON request against the API, decoding the response
// into out when non-nil. API errors come back as their message.
func (c *Client) do(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.session.ServerURL+"/api/v1"+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Register creates an account and stores the session.
func (c *Client) Register(name, email, password string) error {
	var result resolver.AuthResult
	err := c.do(http.MethodPost, "/register", map[string]string{
		"name": name, "email": email, "password": password,
	}, &result)
	if err != nil {
		return err
	}

	c.session.Token = result.Token
	c.session.UserID = result.User.ID
	c.session.Email = result.User.Email
	return c.saveSession()
}

// Login authenticates and stores the session.
func (c *Client) Login(email, password string) error {
	var result resolver.AuthResult
	err := c.do(http.MethodPost, "/login", map[string]string{
		"email": email, "password": password,
	}, &result)
	if err != nil {
		return err
	}

	c.session.Token = result.Token
	c.session.UserID = result.User.ID
	c.session.Email = result.User.Email
	return c.saveSession()
}

// Logout invalidates the session server-side and clears it locally.
func (c *Client) Logout() error {
	if c.session.Token != "" {
		// Best effort; the local session is cleared regardless.
		c.do(http.MethodPost, "/logout", nil, nil)
	}
	c.session.Token = ""
	c.session.UserID = ""
	c.session.Email = ""
	return c.saveSession()
}

// Me fetches the logged-in user.
func (c *Client) Me() (*model.User, error) {
	var user *model.User
	if err := c.do(http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return user, nil
}

// Projects lists active projects.
func (c *Client) Projects() ([]resolver.ProjectView, error) {
	var projects []resolver.ProjectView
	err := c.do(http.MethodGet, "/projects", nil, &projects)
	return projects, err
}

// ArchivedProjects lists archived projects.
func (c *Client) ArchivedProjects() ([]resolver.ProjectView, error) {
	var projects []resolver.ProjectView
	err := c.do(http.MethodGet, "/projects/archived", nil, &projects)
	return projects, err
}

// CreateProject creates a project.
func (c *Client) CreateProject(title, description string) (*resolver.ProjectView, error) {
	var project resolver.ProjectView
	err := c.do(http.MethodPost, "/projects", map[string]string{
		"title": title, "description": description,
	}, &project)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ArchiveProject archives a project.
func (c *Client) ArchiveProject(id string) error {
	return c.do(http.MethodPost, "/projects/"+id+"/archive", nil, nil)
}

// UnarchiveProject unarchives a project.
func (c *Client) UnarchiveProject(id string) error {
	return c.do(http.MethodPost, "/projects/"+id+"/unarchive", nil, nil)
}

// DeleteProject deletes a project and its tasks.
func (c *Client) DeleteProject(id string) error {
	return c.do(http.MethodDelete, "/projects/"+id, nil, nil)
}

// Tasks lists a project's tasks.
func (c *Client) Tasks(projectID string) ([]resolver.TaskView, error) {
	var tasks []resolver.TaskView
	err := c.do(http.MethodGet, "/projects/"+projectID+"/tasks", nil, &tasks)
	return tasks, err
}

// CreateTask creates a task.
func (c *Client) CreateTask(req map[string]interface{}) (*resolver.TaskView, error) {
	var task resolver.TaskView
	if err := c.do(http.MethodPost, "/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update; only fields present in req
// change.
func (c *Client) UpdateTask(id string, req map[string]interface{}) (*resolver.TaskView, error) {
	var task resolver.TaskView
	if err := c.do(http.MethodPatch, "/tasks/"+id, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(id string) error {
	return c.do(http.MethodDelete, "/tasks/"+id, nil, nil)
}

// Tags lists a project's tags.
func (c *Client) Tags(projectID string) ([]model.Tag, error) {
	var tags []model.Tag
	err := c.do(http.MethodGet, "/projects/"+projectID+"/tags", nil, &tags)
	return tags, err
}

// CreateTag creates a tag.
func (c *Client) CreateTag(projectID, name, color string) (*model.Tag, error) {
	var tag model.Tag
	err := c.do(http.MethodPost, "/tags", map[string]string{
		"project_id": projectID, "name": name, "color": color,
	}, &tag)
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// DeleteTag deletes a tag and pulls it from tasks and templates.
func (c *Client) DeleteTag(id string) error {
	return c.do(http.MethodDelete, "/tags/"+id, nil, nil)
}

// Templates lists a project's templates visible to the caller.
func (c *Client) Templates(projectID string) ([]resolver.TemplateView, error) {
	var templates []resolver.TemplateView
	err := c.do(http.MethodGet, "/projects/"+projectID+"/templates", nil, &templates)
	return templates, err
}

// CreateTemplate creates a task template.
func (c *Client) CreateTemplate(req map[string]interface{}) (*resolver.TemplateView, error) {
	var tpl resolver.TemplateView
	if err := c.do(http.MethodPost, "/templates", req, &tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// DeleteTemplate deletes a template.
func (c *Client) DeleteTemplate(id string) error {
	return c.do(http.MethodDelete, "/templates/"+id, nil, nil)
}

// InstantiateTemplate creates a task from a template.
func (c *Client) InstantiateTemplate(id, dueDate string) (*resolver.TaskView, error) {
	body := map[string]string{}
	if dueDate != "" {
		body["due_date"] = dueDate
	}
	var task resolver.TaskView
	if err := c.do(http.MethodPost, "/templates/"+id+"/tasks", body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
