package cli

import (
	"github.com/spf13/cobra"

	"ghl/internal/services"
)

var workflowColumns = []Column{
	{Header: "ID", Key: "id"},
	{Header: "NAME", Key: "name"},
	{Header: "STATUS", Key: "status"},
}

// newWorkflowsCmd creates the workflows command group. Membership changes
// live under 'contacts workflow' since they operate on a contact.
func (cli *CLI) newWorkflowsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workflows",
		Aliases: []string{"workflow"},
		Short:   "List automation workflows",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List workflows",
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

				workflows, err := services.ListWorkflows(cmd.Context(), client)
				if err != nil {
					return err
				}
				return output.WriteList(workflowColumns, workflows)
			},
		},
	)

	return cmd
}
