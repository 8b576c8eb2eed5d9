package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/consoleapi/config"
	"github.com/kbukum/consoleapi/httpclient/rest"
	"github.com/kbukum/consoleapi/logger"
	"github.com/kbukum/consoleapi/observability"
	"github.com/kbukum/consoleapi/version"
)

const serviceName = "consolectl"

// cli carries the state shared by every command.
type cli struct {
	out    io.Writer
	errOut io.Writer

	// Global flags.
	configFile string
	output     string
	logLevel   string
	consoleURL string
	adminURL   string
	adminToken string

	cfg      config.ClientConfig
	log      *logger.Logger
	metrics  *observability.ClientMetrics
	shutdown []func(context.Context) error
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   serviceName,
		Short: "Command line client for the console, v0 and admin APIs",
		Long: `consolectl calls the console, documents/users v0 and admin HTTP APIs.

Configuration is read from config.yml and .env files and the environment
(CONSOLE_BASE_URL, ADMIN_BASE_URL, ADMIN_TOKEN, ...). Flags override both.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return c.teardown(cmd.Context())
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&c.configFile, "config", "", "config file (default: search ./cmd/consolectl, ./config, . and the user config dir)")
	f.StringVarP(&c.output, "output", "o", "json", "output format: json or yaml")
	f.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.StringVar(&c.consoleURL, "console-url", "", "console base URL")
	f.StringVar(&c.adminURL, "admin-url", "", "admin API base URL")
	f.StringVar(&c.adminToken, "admin-token", "", "admin API token")

	root.AddCommand(
		c.docsCmd(),
		c.usersCmd(),
		c.accountCmd(),
		c.adminCmd(),
		c.versionCmd(),
		c.serveFakeCmd(),
	)
	return root
}

// setup loads configuration and builds the logger and telemetry.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if err := validateOutput(c.output); err != nil {
		return err
	}

	var opts []config.LoaderOption
	if c.configFile != "" {
		opts = append(opts, config.WithConfigFile(c.configFile))
	}
	if err := config.LoadConfig(serviceName, &c.cfg, opts...); err != nil {
		return err
	}

	if c.logLevel != "" {
		c.cfg.Logging.Level = c.logLevel
	}
	if c.consoleURL != "" {
		c.cfg.Console.BaseURL = c.consoleURL
	}
	if c.adminURL != "" {
		c.cfg.Admin.BaseURL = c.adminURL
	}
	if c.adminToken != "" {
		c.cfg.Admin.Token = c.adminToken
	}
	if c.cfg.Version == "" {
		c.cfg.Version = version.Get().Short()
	}
	c.cfg.ApplyDefaults()
	if c.cfg.Tracing.ServiceVersion == "dev" {
		c.cfg.Tracing.ServiceVersion = c.cfg.Version
	}
	if err := c.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c.log = logger.NewWithWriter(&c.cfg.Logging, c.cfg.Name, c.errOut)

	if !c.cfg.Tracing.Enabled {
		return nil
	}
	ctx := cmd.Context()
	tp, err := observability.InitTracer(ctx, c.cfg.Tracing, c.log)
	if err != nil {
		return err
	}
	c.shutdown = append(c.shutdown, tp.Shutdown)

	mp, err := observability.InitMeter(ctx, c.cfg.Tracing, c.log)
	if err != nil {
		return err
	}
	c.shutdown = append(c.shutdown, mp.Shutdown)

	c.metrics, err = observability.NewClientMetrics(observability.Meter(observability.TracerName))
	return err
}

// teardown flushes telemetry.
func (c *cli) teardown(ctx context.Context) error {
	var firstErr error
	for _, fn := range c.shutdown {
		if err := fn(context.WithoutCancel(ctx)); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.shutdown = nil
	return firstErr
}

// restOptions wires logging, tracing and metrics into a transport.
func (c *cli) restOptions() []rest.Option {
	return []rest.Option{rest.WithObservability(c.log, c.cfg.Name, c.metrics)}
}
