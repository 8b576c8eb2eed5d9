package config

import (
	"fmt"
	"time"

	"github.com/kbukum/consoleapi/httpclient"
	"github.com/kbukum/consoleapi/observability"
)

const (
	defaultConsoleURL = "http://localhost:10000"
	defaultAdminURL   = "http://localhost:10005"
	defaultFakeAddr   = "127.0.0.1:10000"
	defaultTimeout    = 30 * time.Second
)

// ClientConfig is the configuration of the console command line client.
type ClientConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Console ConsoleConfig        `yaml:"console" mapstructure:"console"`
	Admin   AdminConfig          `yaml:"admin" mapstructure:"admin"`
	Tracing observability.Config `yaml:"tracing" mapstructure:"tracing"`
	Fake    FakeConfig           `yaml:"fake" mapstructure:"fake"`
}

// ConsoleConfig locates the console and v0 APIs and holds login credentials.
type ConsoleConfig struct {
	BaseURL  string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Email    string        `yaml:"email" mapstructure:"email"`
	Password string        `yaml:"password" mapstructure:"password"`
}

// AdminConfig locates the admin API.
type AdminConfig struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Token   string        `yaml:"token" mapstructure:"token"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// FakeConfig configures the local fake server.
type FakeConfig struct {
	Addr       string `yaml:"addr" mapstructure:"addr"`
	Email      string `yaml:"email" mapstructure:"email"`
	Password   string `yaml:"password" mapstructure:"password"`
	AdminToken string `yaml:"admin_token" mapstructure:"admin_token"`
}

// ApplyDefaults fills every section.
func (c *ClientConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "consolectl"
	}
	c.ServiceConfig.ApplyDefaults()

	if c.Console.BaseURL == "" {
		c.Console.BaseURL = defaultConsoleURL
	}
	if c.Console.Timeout <= 0 {
		c.Console.Timeout = defaultTimeout
	}
	if c.Admin.BaseURL == "" {
		c.Admin.BaseURL = defaultAdminURL
	}
	if c.Admin.Timeout <= 0 {
		c.Admin.Timeout = defaultTimeout
	}
	if c.Fake.Addr == "" {
		c.Fake.Addr = defaultFakeAddr
	}

	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = c.Name
	}
	if c.Tracing.Environment == "" {
		c.Tracing.Environment = c.Environment
	}
	c.Tracing.ApplyDefaults()
}

// Validate validates every section.
func (c *ClientConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	console := c.ConsoleHTTP()
	if err := console.Validate(); err != nil {
		return fmt.Errorf("config.console: %w", err)
	}
	adminCfg := c.AdminHTTP()
	if err := adminCfg.Validate(); err != nil {
		return fmt.Errorf("config.admin: %w", err)
	}
	if err := c.Tracing.Validate(); err != nil {
		return fmt.Errorf("config.tracing: %w", err)
	}
	return nil
}

// ConsoleHTTP returns the transport configuration for the console and v0 APIs.
func (c *ClientConfig) ConsoleHTTP() httpclient.Config {
	return httpclient.Config{
		Name:    "console",
		BaseURL: c.Console.BaseURL,
		Timeout: c.Console.Timeout,
	}
}

// AdminHTTP returns the transport configuration for the admin API. The token
// is applied by the admin client itself.
func (c *ClientConfig) AdminHTTP() httpclient.Config {
	return httpclient.Config{
		Name:    "admin",
		BaseURL: c.Admin.BaseURL,
		Timeout: c.Admin.Timeout,
	}
}
