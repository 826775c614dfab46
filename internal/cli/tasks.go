package cli

import (
	"github.com/spf13/cobra"

	"ghl/internal/services"
)

var taskColumns = []Column{
	{Header: "ID", Key: "id"},
	{Header: "TITLE", Key: "title"},
	{Header: "CONTACT", Key: "contactName"},
	{Header: "ASSIGNEE", Key: "assigneeName"},
	{Header: "DUE", Key: "dueDate"},
	{Header: "COMPLETED", Key: "completed"},
}

// newTasksCmd creates the location-level task search command group.
// Per-contact task management lives under 'contacts tasks'.
func (cli *CLI) newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Search tasks across the location",
	}

	var s services.TaskSearch

	searchCmd := &cobra.Command{
		Use:     "search [query]",
		Aliases: []string{"list", "ls"},
		Short:   "Search tasks",
		Long: `Search tasks across all contacts in the active location.

Examples:
  # All pending tasks
  ghl tasks search --status=pending

  # Tasks assigned to a user
  ghl tasks search --assignee=<user-id>`,
		Args: cobra.MaximumNArgs(1),
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

			if len(args) > 0 {
				s.Query = args[0]
			}

			tasks, err := services.SearchTasks(cmd.Context(), client, location, s)
			if err != nil {
				return err
			}
			return output.WriteList(taskColumns, tasks)
		},
	}

	searchCmd.Flags().StringVar(&s.AssigneeID, "assignee", "", "Filter by assignee user ID")
	searchCmd.Flags().StringVar(&s.Status, "status", "", "Filter by status (pending, completed)")
	searchCmd.Flags().StringArrayVar(&s.ContactIDs, "contact", nil, "Filter by contact ID (repeatable)")
	searchCmd.Flags().IntVar(&s.Limit, "limit", 25, "Maximum tasks to return")
	searchCmd.Flags().IntVar(&s.Skip, "skip", 0, "Number of tasks to skip")

	cmd.AddCommand(searchCmd)

	return cmd
}
