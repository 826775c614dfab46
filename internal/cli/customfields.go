package cli

import (
	"github.com/spf13/cobra"

	"ghl/internal/services"
)

var customFieldColumns = []Column{
	{Header: "ID", Key: "id"},
	{Header: "NAME", Key: "name"},
	{Header: "KEY", Key: "fieldKey"},
	{Header: "TYPE", Key: "dataType"},
}

var customValueColumns = []Column{
	{Header: "ID", Key: "id"},
	{Header: "NAME", Key: "name"},
	{Header: "VALUE", Key: "value"},
}

// newCustomFieldsCmd creates the custom-fields command group covering both
// field definitions and location-level custom values.
func (cli *CLI) newCustomFieldsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "custom-fields",
		Aliases: []string{"cf"},
		Short:   "Inspect custom fields and manage custom values",
	}

	valuesCmd := &cobra.Command{
		Use:   "values",
		Short: "Manage location custom values",
	}

	valuesCmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List custom values",
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

				values, err := services.ListCustomValues(cmd.Context(), client, location)
				if err != nil {
					return err
				}
				return output.WriteList(customValueColumns, values)
			},
		},
		&cobra.Command{
			Use:   "create <name> <value>",
			Short: "Create a custom value",
			Args:  cobra.ExactArgs(2),
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

				if _, err := services.CreateCustomValue(cmd.Context(), client, location, args[0], args[1]); err != nil {
					return err
				}
				PrintSuccess("custom value %q created", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "update <value-id> <value>",
			Short: "Update a custom value",
			Args:  cobra.ExactArgs(2),
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

				if _, err := services.UpdateCustomValue(cmd.Context(), client, location, args[0], args[1]); err != nil {
					return err
				}
				PrintSuccess("custom value updated")
				return nil
			},
		},
		&cobra.Command{
			Use:     "delete <value-id>",
			Aliases: []string{"rm"},
			Short:   "Delete a custom value",
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

				if err := services.DeleteCustomValue(cmd.Context(), client, location, args[0]); err != nil {
					return err
				}
				PrintSuccess("custom value deleted")
				return nil
			},
		},
	)

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get <field-id>",
			Short: "Show a custom field definition",
			Args:  cobra.ExactArgs(1),
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

				field, err := services.GetCustomField(cmd.Context(), client, location, args[0])
				if err != nil {
					return err
				}
				return output.WriteObject(field)
			},
		},
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List custom field definitions",
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

				fields, err := services.ListCustomFields(cmd.Context(), client, location)
				if err != nil {
					return err
				}
				return output.WriteList(customFieldColumns, fields)
			},
		},
		valuesCmd,
	)

	return cmd
}
