package admin

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/kbukum/consoleapi/httpclient"
	"github.com/kbukum/consoleapi/validation"
)

func userPath(email string) string {
	return httpclient.JoinPath("/api/users", email)
}

func projectPath(id uuid.UUID, segments ...string) string {
	return httpclient.JoinPath("/api/projects", append([]string{id.String()}, segments...)...)
}

// AddUser creates an account.
func (c *Client) AddUser(ctx context.Context, u NewUser) (User, error) {
	if err := validation.Validate(u); err != nil {
		return User{}, err
	}
	return fetchInto[User](ctx, c, http.MethodPost, "/api/users", "", u)
}

// GetUser fetches an account and its projects by email.
func (c *Client) GetUser(ctx context.Context, email string) (UserInfo, error) {
	if err := validation.Required("email", email); err != nil {
		return UserInfo{}, err
	}
	return fetchInto[UserInfo](ctx, c, http.MethodGet, userPath(email), "", nil)
}

// UpdateUser changes an account's fields.
func (c *Client) UpdateUser(ctx context.Context, email string, u UpdatedUser) error {
	if err := validation.Required("email", email); err != nil {
		return err
	}
	if err := validation.Validate(u); err != nil {
		return err
	}
	_, err := c.Fetch(ctx, http.MethodPut, userPath(email), "", u)
	return err
}

// DeleteUser deletes an account.
func (c *Client) DeleteUser(ctx context.Context, email string) error {
	if err := validation.Required("email", email); err != nil {
		return err
	}
	_, err := c.Fetch(ctx, http.MethodDelete, userPath(email), "", nil)
	return err
}

// AddProject creates a project for an owner.
func (c *Client) AddProject(ctx context.Context, p NewProject) (CreatedProject, error) {
	if err := validation.New().RequiredUUID("ownerId", p.OwnerID).Required("projectName", p.ProjectName).Validate(); err != nil {
		return CreatedProject{}, err
	}
	return fetchInto[CreatedProject](ctx, c, http.MethodPost, "/api/projects", "", p)
}

// GetProject fetches a project.
func (c *Client) GetProject(ctx context.Context, id uuid.UUID) (Project, error) {
	return fetchInto[Project](ctx, c, http.MethodGet, projectPath(id), "", nil)
}

// RenameProject changes a project's name and description.
func (c *Client) RenameProject(ctx context.Context, id uuid.UUID, p RenamedProject) error {
	if err := validation.Validate(p); err != nil {
		return err
	}
	_, err := c.Fetch(ctx, http.MethodPut, projectPath(id), "", p)
	return err
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, id uuid.UUID) error {
	_, err := c.Fetch(ctx, http.MethodDelete, projectPath(id), "", nil)
	return err
}

// GetProjectLimit fetches a project's limits.
func (c *Client) GetProjectLimit(ctx context.Context, id uuid.UUID) (ProjectLimits, error) {
	return fetchInto[ProjectLimits](ctx, c, http.MethodGet, projectPath(id, "limit"), "", nil)
}

// UpdateProjectLimit changes the limits that are set in u.
func (c *Client) UpdateProjectLimit(ctx context.Context, id uuid.UUID, u ProjectLimitUpdate) error {
	v := validation.New()
	q := url.Values{}
	if u.Usage != nil {
		v.Min("usage", *u.Usage, 0)
		q.Set("usage", strconv.FormatInt(*u.Usage, 10))
	}
	if u.Bandwidth != nil {
		v.Min("bandwidth", *u.Bandwidth, 0)
		q.Set("bandwidth", strconv.FormatInt(*u.Bandwidth, 10))
	}
	if u.Rate != nil {
		v.Min("rate", int64(*u.Rate), 0)
		q.Set("rate", strconv.Itoa(*u.Rate))
	}
	if u.Buckets != nil {
		v.Min("buckets", int64(*u.Buckets), 0)
		q.Set("buckets", strconv.Itoa(*u.Buckets))
	}
	v.Custom(len(q) > 0, "limit", "at least one limit is required")
	if err := v.Validate(); err != nil {
		return err
	}
	_, err := c.Fetch(ctx, http.MethodPut, projectPath(id, "limit"), q.Encode(), nil)
	return err
}

// ProjectUsage checks whether a project has usage in the current month. A
// project with usage is reported as an error with status 409.
func (c *Client) ProjectUsage(ctx context.Context, id uuid.UUID) (ProjectUsage, error) {
	return fetchInto[ProjectUsage](ctx, c, http.MethodGet, projectPath(id, "usage"), "", nil)
}

// ListAPIKeys lists a project's API keys.
func (c *Client) ListAPIKeys(ctx context.Context, project uuid.UUID) ([]APIKey, error) {
	return fetchInto[[]APIKey](ctx, c, http.MethodGet, projectPath(project, "apikeys"), "", nil)
}

// AddAPIKey creates an API key and returns its serialized secret.
func (c *Client) AddAPIKey(ctx context.Context, project uuid.UUID, k NewAPIKey) (CreatedAPIKey, error) {
	if err := validation.Validate(k); err != nil {
		return CreatedAPIKey{}, err
	}
	return fetchInto[CreatedAPIKey](ctx, c, http.MethodPost, projectPath(project, "apikeys"), "", k)
}

// DeleteAPIKeyByName deletes a project's API key by name.
func (c *Client) DeleteAPIKeyByName(ctx context.Context, project uuid.UUID, name string) error {
	if err := validation.Required("name", name); err != nil {
		return err
	}
	_, err := c.Fetch(ctx, http.MethodDelete, projectPath(project, "apikeys", name), "", nil)
	return err
}

// DeleteAPIKey deletes an API key by its serialized value.
func (c *Client) DeleteAPIKey(ctx context.Context, apikey string) error {
	if err := validation.Required("apikey", apikey); err != nil {
		return err
	}
	_, err := c.Fetch(ctx, http.MethodDelete, httpclient.JoinPath("/api/apikeys", apikey), "", nil)
	return err
}

// CreateGeofence pins a bucket's placement to region.
func (c *Client) CreateGeofence(ctx context.Context, project uuid.UUID, bucket, region string) (Bucket, error) {
	err := validation.New().
		Required("bucket", bucket).
		Required("region", region).
		OneOf("region", region, Regions).
		Validate()
	if err != nil {
		return Bucket{}, err
	}
	q := url.Values{"region": {region}}
	return fetchInto[Bucket](ctx, c, http.MethodPost, projectPath(project, "buckets", bucket, "geofence"), q.Encode(), nil)
}

// GetGeofence fetches a bucket with its placement.
func (c *Client) GetGeofence(ctx context.Context, project uuid.UUID, bucket string) (Bucket, error) {
	if err := validation.Required("bucket", bucket); err != nil {
		return Bucket{}, err
	}
	return fetchInto[Bucket](ctx, c, http.MethodGet, projectPath(project, "buckets", bucket, "geofence"), "", nil)
}

// DeleteGeofence resets a bucket's placement.
func (c *Client) DeleteGeofence(ctx context.Context, project uuid.UUID, bucket string) (Bucket, error) {
	if err := validation.Required("bucket", bucket); err != nil {
		return Bucket{}, err
	}
	return fetchInto[Bucket](ctx, c, http.MethodDelete, projectPath(project, "buckets", bucket, "geofence"), "", nil)
}
