package cli

import (
	"github.com/spf13/cobra"

	"ghl/internal/services"
)

var tagColumns = []Column{
	{Header: "ID", Key: "id"},
	{Header: "NAME", Key: "name"},
}

// newTagsCmd creates the tags command group for location-level tag
// definitions. Applying tags to contacts is 'contacts tag'.
func (cli *CLI) newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"tag"},
		Short:   "Manage location tag definitions",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List tags",
			RunE: func(cmd *cobra.Command, args []string) error {
				output, err := cli.newOutput()
				if err != nil {
					return err
				}
				location, err := cli.requireLocation()
				if err != nil {
					return err
				}
				client, err := cli.newClient()
				if err != nil {
					return err
				}
				defer client.Close()

				tags, err := services.ListTags(cmd.Context(), client, location)
				if err != nil {
					return err
				}
				return output.WriteList(tagColumns, tags)
			},
		},
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create a tag",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				location, err := cli.requireLocation()
				if err != nil {
					return err
				}
				client, err := cli.newClient()
				if err != nil {
					return err
				}
				defer client.Close()

				if _, err := services.CreateTag(cmd.Context(), client, location, args[0]); err != nil {
					return err
				}
				PrintSuccess("tag %q created", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:     "delete <tag-id>",
			Aliases: []string{"rm"},
			Short:   "Delete a tag",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				location, err := cli.requireLocation()
				if err != nil {
					return err
				}
				client, err := cli.newClient()
				if err != nil {
					return err
				}
				defer client.Close()

				if err := services.DeleteTag(cmd.Context(), client, location, args[0]); err != nil {
					return err
				}
				PrintSuccess("tag %s deleted", args[0])
				return nil
			},
		},
	)

	return cmd
}
