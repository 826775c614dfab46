package cli

import (
	"github.com/spf13/cobra"

	"ghl/internal/services"
)

var userColumns = []Column{
	{Header: "ID", Key: "id"},
	{Header: "NAME", Key: "name"},
	{Header: "EMAIL", Key: "email"},
	{Header: "ROLE", Key: "role"},
}

// newUsersCmd creates the users command group.
func (cli *CLI) newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "List users in the location",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List users",
			RunE: func(cmd *cobra.Command, args []string) error {
				output, err := cli.newOutput()
				if err != nil {
					return err
				}
				client, err := cli.newClient()
				if err != nil {
					return err
				}
				defer client.Close()

				users, err := services.ListUsers(cmd.Context(), client)
				if err != nil {
					return err
				}
				return output.WriteList(userColumns, users)
			},
		},
		&cobra.Command{
			Use:   "search <query>",
			Short: "Search users by name or email",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				output, err := cli.newOutput()
				if err != nil {
					return err
				}
				client, err := cli.newClient()
				if err != nil {
					return err
				}
				defer client.Close()

				users, err := services.SearchUsers(cmd.Context(), client, args[0])
				if err != nil {
					return err
				}
				return output.WriteList(userColumns, users)
			},
		},
	)

	return cmd
}
