package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/consoleapi/apiv0"
)

func (c *cli) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List and create users (v0 API)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := c.v0Users()
			if err != nil {
				return err
			}
			all, err := users.Get(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(all)
		},
	})

	var u apiv0.User
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := c.v0Users()
			if err != nil {
				return err
			}
			if err := users.Create(cmd.Context(), []apiv0.User{u}); err != nil {
				return err
			}
			return c.print(u)
		},
	}
	create.Flags().StringVar(&u.Name, "name", "", "first name")
	create.Flags().StringVar(&u.Surname, "surname", "", "last name")
	create.Flags().StringVar(&u.Email, "email", "", "email address")
	cmd.AddCommand(create)

	return cmd
}
