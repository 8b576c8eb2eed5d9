package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/consoleapi/console"
)

func (c *cli) accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Inspect and update the console account",
		Long: `Account commands log in with console.email and console.password
(CONSOLE_EMAIL, CONSOLE_PASSWORD) before calling the API.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := c.consoleSession(cmd.Context())
			if err != nil {
				return err
			}
			u, err := users.Get(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(u)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "settings",
		Short: "Show the account settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := c.consoleSession(cmd.Context())
			if err != nil {
				return err
			}
			s, err := users.GetUserSettings(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(s)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "freeze-status",
		Short: "Show whether the account is frozen or warned",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := c.consoleSession(cmd.Context())
			if err != nil {
				return err
			}
			fs, err := users.GetFrozenStatus(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(fs)
		},
	})

	var fullName, shortName string
	update := &cobra.Command{
		Use:   "update",
		Short: "Change the account names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := c.consoleSession(cmd.Context())
			if err != nil {
				return err
			}
			if err := users.Update(cmd.Context(), console.NewUpdatedUser(fullName, shortName)); err != nil {
				return err
			}
			u, err := users.Get(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(u)
		},
	}
	update.Flags().StringVar(&fullName, "full-name", "", "full name")
	update.Flags().StringVar(&shortName, "short-name", "", "short name")
	cmd.AddCommand(update)

	var creds console.AuthUser
	login := &cobra.Command{
		Use:   "login",
		Short: "Log in and print the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if creds.Email == "" {
				creds.Email = c.cfg.Console.Email
			}
			if creds.Password == "" {
				creds.Password = c.cfg.Console.Password
			}
			_, auth, err := c.consoleAuth()
			if err != nil {
				return err
			}
			info, err := auth.Token(cmd.Context(), creds)
			if err != nil {
				return err
			}
			return c.print(info)
		},
	}
	login.Flags().StringVar(&creds.Email, "email", "", "account email (default: console.email)")
	login.Flags().StringVar(&creds.Password, "password", "", "account password (default: console.password)")
	login.Flags().StringVar(&creds.MFAPasscode, "mfa-passcode", "", "TOTP passcode when MFA is enabled")
	login.Flags().StringVar(&creds.MFARecoveryCode, "mfa-recovery-code", "", "MFA recovery code")
	cmd.AddCommand(login)

	return cmd
}
