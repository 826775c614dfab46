package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ghl/internal/config"
	"ghl/internal/utils"
)

// profileListOutput represents profile list output for JSON.
type profileListOutput struct {
	Active   string               `json:"active,omitempty"`
	Profiles []config.ProfileInfo `json:"profiles"`
}

// newProfileCmd creates the profile command group.
func (cli *CLI) newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profile",
		Aliases: []string{"profiles"},
		Short:   "Manage token and location profiles",
		Long: `Manage named profiles, each pairing an API token with a default location.

Profiles allow quick switching between sub-accounts without reconfiguring
credentials.

Examples:
  # List all profiles
  ghl profile list

  # Add a profile (or update an existing one)
  ghl profile add agency --token=pit-xxx --location=loc-123

  # Switch the active profile
  ghl profile use agency`,
	}

	cmd.AddCommand(
		cli.newProfileListCmd(),
		cli.newProfileAddCmd(),
		cli.newProfileRemoveCmd(),
		cli.newProfileUseCmd(),
		cli.newProfileShowCmd(),
		cli.newProfileClearCmd(),
	)

	return cmd
}

// newProfileListCmd creates the profile list command.
func (cli *CLI) newProfileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all configured profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cli.newOutput()
			if err != nil {
				return err
			}

			profiles := cli.Store.ListProfiles()

			if output.format == FormatJSON || output.format == FormatYAML {
				list := profileListOutput{
					Active:   cli.Store.GetActiveProfileName(),
					Profiles: profiles,
				}
				if output.format == FormatJSON {
					return output.writeJSON(list)
				}
				return output.writeYAML(list)
			}

			if len(profiles) == 0 {
				fmt.Println("No profiles configured.")
				fmt.Println()
				fmt.Println("Add one with: ghl profile add <name> --token=<token> --location=<location_id>")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLOCATION\tACTIVE")
			for _, prof := range profiles {
				marker := ""
				if prof.Active {
					marker = "*"
				}
				location := ""
				if p, ok := cli.Store.GetProfile(prof.Name); ok {
					location = p.LocationID
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", prof.Name, location, marker)
			}
			return w.Flush()
		},
	}
}

// newProfileAddCmd creates the profile add command.
func (cli *CLI) newProfileAddCmd() *cobra.Command {
	var (
		token    string
		location string
	)

	cmd := &cobra.Command{
		Use:     "add <name>",
		Aliases: []string{"set"},
		Short:   "Add or update a profile",
		Long: `Add a new profile or update an existing one.

A profile always stores its token and location together. The first profile
added becomes the active profile.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := cli.Store.AddOrUpdateProfile(name, token, location); err != nil {
				return err
			}
			PrintSuccess("profile %q saved", name)
			if cli.Store.GetActiveProfileName() == name {
				fmt.Println("This profile is now active.")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "API token (required)")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Location (sub-account) ID (required)")
	_ = cmd.MarkFlagRequired("token")
	_ = cmd.MarkFlagRequired("location")

	return cmd
}

// newProfileRemoveCmd creates the profile remove command.
func (cli *CLI) newProfileRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm", "delete"},
		Short:   "Remove a profile",
		Args:    cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return cli.profileNames(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := cli.Store.RemoveProfile(name); err != nil {
				return err
			}
			PrintSuccess("profile %q removed", name)
			if active := cli.Store.GetActiveProfileName(); active != "" {
				fmt.Printf("Active profile is now %q.\n", active)
			}
			return nil
		},
	}
}

// newProfileUseCmd creates the profile use command.
func (cli *CLI) newProfileUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "use <name>",
		Aliases: []string{"switch"},
		Short:   "Set the active profile",
		Args:    cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return cli.profileNames(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.Store.SetActiveProfile(args[0]); err != nil {
				return err
			}
			PrintSuccess("switched to profile %q", args[0])
			return nil
		},
	}
}

// newProfileShowCmd creates the profile show command.
func (cli *CLI) newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show a profile (defaults to the active one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := cli.newOutput()
			if err != nil {
				return err
			}

			name := cli.Store.GetActiveProfileName()
			if len(args) > 0 {
				name = args[0]
			}
			if name == "" {
				return fmt.Errorf("no active profile; pass a profile name")
			}

			prof, ok := cli.Store.GetProfile(name)
			if !ok {
				return fmt.Errorf("%w: %q", config.ErrProfileNotFound, name)
			}

			return output.WriteObject(map[string]any{
				"name":        name,
				"api_token":   utils.Mask(prof.APIToken),
				"location_id": prof.LocationID,
				"active":      name == cli.Store.GetActiveProfileName(),
			})
		},
	}
}

// newProfileClearCmd creates the profile clear command.
func (cli *CLI) newProfileClearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("this removes every stored profile; rerun with --force")
			}
			if err := cli.Store.ClearProfiles(); err != nil {
				return err
			}
			PrintSuccess("all profiles removed")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}

// profileNames returns profile names for shell completion.
func (cli *CLI) profileNames() []string {
	if cli.Store == nil {
		return nil
	}
	infos := cli.Store.ListProfiles()
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return names
}
