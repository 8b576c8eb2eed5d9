package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/consoleapi/consoletest"
	"github.com/kbukum/consoleapi/logger"
	"github.com/kbukum/consoleapi/util"
)

func (c *cli) serveFakeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve-fake",
		Short: "Run an in-memory fake of the console, v0 and admin APIs",
		Long: `serve-fake starts a local server implementing the routes the clients
call. State lives in memory and is lost on exit. Log in with fake.email and
fake.password; the admin API accepts fake.admin_token.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = c.cfg.Fake.Addr
			}
			srv := consoletest.New(consoletest.Config{
				Email:      c.cfg.Fake.Email,
				Password:   c.cfg.Fake.Password,
				AdminToken: c.cfg.Fake.AdminToken,
			}, c.log)

			ctx := cmd.Context()
			if err := srv.Start(ctx, addr); err != nil {
				return err
			}
			eff := srv.Config()
			c.log.Info("fake credentials", logger.Fields(
				"addr", srv.Addr(),
				"email", eff.Email,
				"admin_token", util.MaskSecret(eff.AdminToken, 3),
			))

			<-ctx.Done()
			return srv.Stop(context.WithoutCancel(ctx))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: fake.addr)")
	return cmd
}
