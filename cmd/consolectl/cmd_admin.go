package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kbukum/consoleapi/admin"
	"github.com/kbukum/consoleapi/util"
)

func (c *cli) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Call the admin API",
		Long: `Admin commands authenticate with admin.token (ADMIN_TOKEN or --admin-token),
sent as the raw Authorization header.`,
	}
	cmd.AddCommand(c.adminFetchCmd(), c.adminOpsCmd(), c.adminUserCmd(), c.adminProjectCmd())
	return cmd
}

func (c *cli) adminFetchCmd() *cobra.Command {
	var query, data string
	cmd := &cobra.Command{
		Use:   "fetch METHOD PATH",
		Short: "Send a raw request to the admin API",
		Example: `  consolectl admin fetch GET /api/users/someone@example.com
  consolectl admin fetch PUT /api/projects/<id>/limit --query usage=1000
  consolectl admin fetch POST /api/users --data '{"email":"a@b.c","fullName":"A","password":"x"}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var body any
			if data != "" {
				if !json.Valid([]byte(data)) {
					return fmt.Errorf("--data is not valid JSON")
				}
				body = json.RawMessage(data)
			}

			client, err := c.admin()
			if err != nil {
				return err
			}
			raw, err := client.Fetch(cmd.Context(), strings.ToUpper(args[0]), args[1], query, body)
			if err != nil {
				return err
			}
			return c.print(raw)
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "raw query string, without the leading '?'")
	cmd.Flags().StringVar(&data, "data", "", "JSON request body")
	return cmd
}

func (c *cli) adminOpsCmd() *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List the admin API operations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ops := admin.Operations()
			if group != "" {
				ops = util.Filter(ops, func(op admin.Operation) bool { return op.Group == group })
			}
			return c.print(ops)
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "only list operations of this group (user, project, apikey, bucket)")
	return cmd
}

func (c *cli) adminUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get EMAIL",
		Short: "Show a user and the projects they own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.admin()
			if err != nil {
				return err
			}
			info, err := client.GetUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.print(info)
		},
	})

	var nu admin.NewUser
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a user account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := c.admin()
			if err != nil {
				return err
			}
			u, err := client.AddUser(cmd.Context(), nu)
			if err != nil {
				return err
			}
			return c.print(u)
		},
	}
	add.Flags().StringVar(&nu.Email, "email", "", "email address")
	add.Flags().StringVar(&nu.FullName, "full-name", "", "full name")
	add.Flags().StringVar(&nu.Password, "password", "", "initial password")
	cmd.AddCommand(add)
	return cmd
}

func (c *cli) adminProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Inspect projects",
	}

	run := func(fn func(cmd *cobra.Command, client *admin.Client, id uuid.UUID) (any, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("project id: %w", err)
			}
			client, err := c.admin()
			if err != nil {
				return err
			}
			v, err := fn(cmd, client, id)
			if err != nil {
				return err
			}
			return c.print(v)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get ID",
			Short: "Show a project",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(cmd *cobra.Command, client *admin.Client, id uuid.UUID) (any, error) {
				return client.GetProject(cmd.Context(), id)
			}),
		},
		&cobra.Command{
			Use:   "limits ID",
			Short: "Show project limits",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(cmd *cobra.Command, client *admin.Client, id uuid.UUID) (any, error) {
				return client.GetProjectLimit(cmd.Context(), id)
			}),
		},
		&cobra.Command{
			Use:   "apikeys ID",
			Short: "List project API keys",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(cmd *cobra.Command, client *admin.Client, id uuid.UUID) (any, error) {
				return client.ListAPIKeys(cmd.Context(), id)
			}),
		},
		c.adminSetLimitsCmd(),
	)
	return cmd
}

func (c *cli) adminSetLimitsCmd() *cobra.Command {
	var usage, bandwidth string
	var rate, buckets int
	cmd := &cobra.Command{
		Use:   "set-limits ID",
		Short: "Change project limits",
		Example: `  consolectl admin project set-limits <id> --usage 50GB --bandwidth 1TB
  consolectl admin project set-limits <id> --rate 200 --buckets 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("project id: %w", err)
			}

			var upd admin.ProjectLimitUpdate
			if usage != "" {
				n, err := util.ParseSize(usage)
				if err != nil {
					return fmt.Errorf("--usage: %w", err)
				}
				upd.Usage = util.Ptr(n)
			}
			if bandwidth != "" {
				n, err := util.ParseSize(bandwidth)
				if err != nil {
					return fmt.Errorf("--bandwidth: %w", err)
				}
				upd.Bandwidth = util.Ptr(n)
			}
			if cmd.Flags().Changed("rate") {
				upd.Rate = util.Ptr(rate)
			}
			if cmd.Flags().Changed("buckets") {
				upd.Buckets = util.Ptr(buckets)
			}

			client, err := c.admin()
			if err != nil {
				return err
			}
			if err := client.UpdateProjectLimit(cmd.Context(), id, upd); err != nil {
				return err
			}
			limits, err := client.GetProjectLimit(cmd.Context(), id)
			if err != nil {
				return err
			}
			return c.print(limits)
		},
	}
	cmd.Flags().StringVar(&usage, "usage", "", "storage limit, e.g. 25GB")
	cmd.Flags().StringVar(&bandwidth, "bandwidth", "", "monthly bandwidth limit, e.g. 1TB")
	cmd.Flags().IntVar(&rate, "rate", 0, "request rate limit per second")
	cmd.Flags().IntVar(&buckets, "buckets", 0, "maximum number of buckets")
	return cmd
}
