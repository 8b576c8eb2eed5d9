package apiv0

import (
	"context"

	"github.com/kbukum/consoleapi/httpclient/rest"
	"github.com/kbukum/consoleapi/validation"
)

// UsersRoot is the root path of the users API.
const UsersRoot = "/api/v0/users"

// UsersClient calls the users API.
type UsersClient struct {
	res *rest.Resource[User]
}

// NewUsersClient creates a users client on c.
func NewUsersClient(c *rest.Client) *UsersClient {
	return &UsersClient{res: rest.NewResource[User](c, UsersRoot)}
}

// Get lists all users.
func (u *UsersClient) Get(ctx context.Context) ([]User, error) {
	return u.res.List(ctx)
}

// Create adds users in bulk. An empty slice still issues the request.
func (u *UsersClient) Create(ctx context.Context, users []User) error {
	if err := validation.Validate(users); err != nil {
		return err
	}
	return u.res.Create(ctx, users)
}
