package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ghl/internal/searches"
	"ghl/internal/services"
)

var savedSearchColumns = []Column{
	{Header: "ID", Key: "id"},
	{Header: "NAME", Key: "name"},
	{Header: "TAGS", Key: "tags"},
	{Header: "ASSIGNED TO", Key: "assignedTo"},
	{Header: "QUERY", Key: "query"},
}

// newSearchesCmd creates the saved searches command group.
func (cli *CLI) newSearchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "searches",
		Aliases: []string{"search"},
		Short:   "Manage saved contact searches",
		Long: `Manage saved contact searches. A saved search stores a named contact
filter locally so it can be replayed later with 'contacts filter --load'
or 'searches run'.`,
	}

	cmd.AddCommand(
		cli.newSearchesListCmd(),
		cli.newSearchesAddCmd(),
		cli.newSearchesRunCmd(),
		cli.newSearchesDeleteCmd(),
	)

	return cmd
}

func (cli *CLI) newSearchesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved searches",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cli.newOutput()
			if err != nil {
				return err
			}

			rows := make([]map[string]any, 0)
			for _, s := range cli.Searches.List() {
				rows = append(rows, map[string]any{
					"id":         s.ID,
					"name":       s.Name,
					"tags":       strings.Join(s.Tags, ", "),
					"assignedTo": s.AssignedTo,
					"query":      s.Query,
				})
			}
			return output.WriteList(savedSearchColumns, rows)
		},
	}
}

func (cli *CLI) newSearchesAddCmd() *cobra.Command {
	var (
		tags       []string
		assignedTo string
		query      string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Save a contact search",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(tags) == 0 && assignedTo == "" && query == "" {
				return fmt.Errorf("a saved search needs at least one of --tag, --assigned-to or --query")
			}
			saved, err := cli.Searches.Save(searchFromFilter(args[0], tags, assignedTo, query))
			if err != nil {
				return err
			}
			PrintSuccess("saved search %q (%s)", saved.Name, saved.ID)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Tag to require (repeatable, AND)")
	cmd.Flags().StringVar(&assignedTo, "assigned-to", "", "Assignee user ID")
	cmd.Flags().StringVar(&query, "query", "", "Free-text query")

	return cmd
}

func (cli *CLI) newSearchesRunCmd() *cobra.Command {
	var (
		page      int
		pageLimit int
	)

	cmd := &cobra.Command{
		Use:   "run <search-id>",
		Short: "Run a saved search",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cli.newOutput()
			if err != nil {
				return err
			}

			search, ok := cli.Searches.Get(args[0])
			if !ok {
				return fmt.Errorf("saved search %q not found", args[0])
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

			contacts, err := services.FilterContacts(cmd.Context(), client, location, services.ContactFilter{
				Page:       page,
				PageLimit:  pageLimit,
				Query:      search.Query,
				Tags:       search.Tags,
				AssignedTo: search.AssignedTo,
			})
			if err != nil {
				return err
			}
			return output.WriteList(contactColumns, contacts)
		},
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageLimit, "page-limit", 20, "Contacts per page")

	return cmd
}

func (cli *CLI) newSearchesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <search-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved search",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := cli.Searches.Delete(args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("saved search %q not found", args[0])
			}
			PrintSuccess("saved search deleted")
			return nil
		},
	}
}

// searchFromFilter builds a SavedSearch from filter parameters. The store
// assigns an ID on save.
func searchFromFilter(name string, tags []string, assignedTo, query string) searches.SavedSearch {
	return searches.SavedSearch{
		Name:       name,
		Tags:       tags,
		AssignedTo: assignedTo,
		Query:      query,
	}
}
