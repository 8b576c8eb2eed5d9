package admin

// Operation describes one admin route.
type Operation struct {
	Group       string `json:"group" yaml:"group"`
	Name        string `json:"name" yaml:"name"`
	Method      string `json:"method" yaml:"method"`
	Path        string `json:"path" yaml:"path"`
	Description string `json:"description" yaml:"description"`
}

var operations = []Operation{
	{"user", "add", "POST", "/api/users", "Create a new user account"},
	{"user", "get", "GET", "/api/users/{email}", "Get a user and the projects they own"},
	{"user", "update", "PUT", "/api/users/{email}", "Update a user's email, names or project limit"},
	{"user", "delete", "DELETE", "/api/users/{email}", "Delete a user account"},
	{"project", "add", "POST", "/api/projects", "Create a project for an owner"},
	{"project", "get", "GET", "/api/projects/{project}", "Get a project"},
	{"project", "rename", "PUT", "/api/projects/{project}", "Rename a project"},
	{"project", "delete", "DELETE", "/api/projects/{project}", "Delete a project"},
	{"project", "usage", "GET", "/api/projects/{project}/usage", "Check whether a project has usage this month"},
	{"project", "get-limit", "GET", "/api/projects/{project}/limit", "Get project limits"},
	{"project", "update-limit", "PUT", "/api/projects/{project}/limit", "Update project limits"},
	{"apikey", "list", "GET", "/api/projects/{project}/apikeys", "List a project's API keys"},
	{"apikey", "add", "POST", "/api/projects/{project}/apikeys", "Create an API key"},
	{"apikey", "delete-by-name", "DELETE", "/api/projects/{project}/apikeys/{name}", "Delete an API key by name"},
	{"apikey", "delete", "DELETE", "/api/apikeys/{apikey}", "Delete an API key"},
	{"bucket", "create-geofence", "POST", "/api/projects/{project}/buckets/{bucket}/geofence?region={region}", "Restrict a bucket's placement to a region"},
	{"bucket", "get-geofence", "GET", "/api/projects/{project}/buckets/{bucket}/geofence", "Get a bucket's placement"},
	{"bucket", "delete-geofence", "DELETE", "/api/projects/{project}/buckets/{bucket}/geofence", "Remove a bucket's placement restriction"},
}

// Operations lists the admin routes grouped by resource.
func Operations() []Operation {
	out := make([]Operation, len(operations))
	copy(out, operations)
	return out
}
