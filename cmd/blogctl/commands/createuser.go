package commands

import (
	"errors"
	"fmt"

	"blogicum/internal/services"

	"github.com/spf13/cobra"
)

func newCreateUserCmd(opts *options) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "createuser",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return errors.New("--username and --password are required")
			}
			if len(password) < 8 {
				return errors.New("password must be at least 8 characters")
			}

			conn, closeDB, err := opts.open()
			if err != nil {
				return err
			}
			defer closeDB()
			user, err := services.NewUserService(conn).Register(cmd.Context(), username, password)
			if err != nil {
				return fmt.Errorf("create user %q: %w", username, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (id %d).\n", user.Username, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (at least 8 characters)")
	return cmd
}
