package cli

import (
	"github.com/spf13/cobra"

	"ghl/internal/services"
)

var locationColumns = []Column{
	{Header: "ID", Key: "id"},
	{Header: "NAME", Key: "name"},
	{Header: "EMAIL", Key: "email"},
	{Header: "TIMEZONE", Key: "timezone"},
}

// newLocationsCmd creates the locations command group. Listing requires an
// agency-level token; sub-account tokens can still 'get' their own location.
func (cli *CLI) newLocationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "locations",
		Aliases: []string{"location"},
		Short:   "Inspect locations (sub-accounts)",
	}

	var limit int

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List locations",
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

			locations, err := services.ListLocations(cmd.Context(), client, limit)
			if err != nil {
				return err
			}
			return output.WriteList(locationColumns, locations)
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Maximum locations to return")

	cmd.AddCommand(
		listCmd,
		&cobra.Command{
			Use:   "get [location-id]",
			Short: "Show a location (defaults to the active one)",
			Args:  cobra.MaximumNArgs(1),
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

				var locationID string
				if len(args) > 0 {
					locationID = args[0]
				} else {
					locationID, err = cli.requireLocation()
					if err != nil {
						return err
					}
				}

				location, err := services.GetLocation(cmd.Context(), client, locationID)
				if err != nil {
					return err
				}
				return output.WriteObject(location)
			},
		},
	)

	return cmd
}
