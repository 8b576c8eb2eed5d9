package main

import (
	"context"

	"github.com/kbukum/consoleapi/admin"
	"github.com/kbukum/consoleapi/apiv0"
	"github.com/kbukum/consoleapi/console"
	"github.com/kbukum/consoleapi/httpclient/rest"
	"github.com/kbukum/consoleapi/version"
)

func (c *cli) restClient() (*rest.Client, error) {
	cfg := c.cfg.ConsoleHTTP()
	cfg.Name = "apiv0"
	cfg.UserAgent = version.UserAgent(serviceName)
	return rest.New(cfg, c.restOptions()...)
}

func (c *cli) documents() (*apiv0.DocumentsClient, error) {
	rc, err := c.restClient()
	if err != nil {
		return nil, err
	}
	return apiv0.NewDocumentsClient(rc), nil
}

func (c *cli) v0Users() (*apiv0.UsersClient, error) {
	rc, err := c.restClient()
	if err != nil {
		return nil, err
	}
	return apiv0.NewUsersClient(rc), nil
}

// consoleSession logs in with the configured credentials and returns the
// account API on the authenticated client.
func (c *cli) consoleSession(ctx context.Context) (*console.UsersHTTPAPI, error) {
	rc, auth, err := c.consoleAuth()
	if err != nil {
		return nil, err
	}
	if _, err := auth.Token(ctx, console.AuthUser{
		Email:    c.cfg.Console.Email,
		Password: c.cfg.Console.Password,
	}); err != nil {
		return nil, err
	}
	return console.NewUsersHTTPAPI(rc), nil
}

func (c *cli) consoleAuth() (*rest.Client, *console.AuthHTTPAPI, error) {
	cfg := c.cfg.ConsoleHTTP()
	cfg.UserAgent = version.UserAgent(serviceName)
	rc, err := console.NewClient(cfg, c.restOptions()...)
	if err != nil {
		return nil, nil, err
	}
	return rc, console.NewAuthHTTPAPI(rc), nil
}

func (c *cli) admin() (*admin.Client, error) {
	cfg := c.cfg.AdminHTTP()
	cfg.UserAgent = version.UserAgent(serviceName)
	return admin.NewWithConfig(cfg, c.cfg.Admin.Token, c.restOptions()...)
}
