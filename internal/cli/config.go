package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ghl/internal/utils"
)

// newConfigCmd creates the config command group.
func (cli *CLI) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long: `Manage ghl configuration and credentials.

Use 'ghl config set-token' to store your API token.
Use 'ghl config set-location' to set the default location (sub-account).
Use 'ghl config show' to inspect the current configuration.`,
	}

	cmd.AddCommand(
		cli.newConfigSetTokenCmd(),
		cli.newConfigSetLocationCmd(),
		cli.newConfigSetFormatCmd(),
		cli.newConfigShowCmd(),
		cli.newConfigClearTokenCmd(),
	)

	return cmd
}

// newConfigSetTokenCmd creates the config set-token command.
func (cli *CLI) newConfigSetTokenCmd() *cobra.Command {
	var useKeyring bool

	cmd := &cobra.Command{
		Use:   "set-token [token]",
		Short: "Set the API token for authentication",
		Long: `Set the API token for authentication.

The token can be passed as an argument or entered interactively (input is
hidden). With an active profile the profile's token is updated in place;
otherwise the token is stored in the credentials file, or in the system
keyring with --keyring.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string
			if len(args) > 0 {
				token = args[0]
			} else {
				fmt.Fprint(os.Stderr, "Enter your GoHighLevel API token: ")
				raw, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(os.Stderr)
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}
				token = string(raw)
			}

			token = strings.TrimSpace(token)
			if token == "" {
				return errors.New("token cannot be empty")
			}

			if err := cli.Store.SetToken(token, useKeyring); err != nil {
				return err
			}
			PrintSuccess("API token saved")
			return nil
		},
	}

	cmd.Flags().BoolVar(&useKeyring, "keyring", false, "Store token in the system keyring")

	return cmd
}

// newConfigSetLocationCmd creates the config set-location command.
func (cli *CLI) newConfigSetLocationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-location <location_id>",
		Short: "Set the default location (sub-account) ID",
		Long: `Set the default location (sub-account) ID.

Most API operations require a location. This sets the default so you don't
need to specify one for every command. With an active profile the profile's
location is updated as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.Store.UpdateLocation(args[0]); err != nil {
				return err
			}
			PrintSuccess("default location set to %s", args[0])
			return nil
		},
	}
}

// newConfigSetFormatCmd creates the config set-format command.
func (cli *CLI) newConfigSetFormatCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set-format <format>",
		Short:     "Set the default output format",
		ValidArgs: []string{"table", "json", "csv", "yaml", "quiet"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ParseOutputFormat(args[0]); err != nil {
				return err
			}
			if err := cli.Store.UpdateOutputFormat(args[0]); err != nil {
				return err
			}
			PrintSuccess("default output format set to %s", args[0])
			return nil
		},
	}
}

// newConfigShowCmd creates the config show command.
func (cli *CLI) newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cli.newOutput()
			if err != nil {
				return err
			}

			cfg := cli.Store.Config()
			masked := ""
			if token := cli.Store.GetToken(); token != "" {
				masked = utils.Mask(token)
			}

			return output.WriteObject(map[string]any{
				"config_dir":     cli.Store.Paths().ConfigDir,
				"location_id":    cli.Store.GetLocationID(),
				"api_version":    cfg.APIVersion,
				"output_format":  cfg.OutputFormat,
				"token":          masked,
				"active_profile": cli.Store.GetActiveProfileName(),
			})
		},
	}
}

// newConfigClearTokenCmd creates the config clear-token command.
func (cli *CLI) newConfigClearTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-token",
		Short: "Remove the stored API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.Store.ClearToken(); err != nil {
				return err
			}
			PrintSuccess("API token removed")
			return nil
		},
	}
}
