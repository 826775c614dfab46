// Package cli provides the command-line interface for ghl.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ghl/internal/api"
	"ghl/internal/config"
	"ghl/internal/keyring"
	"ghl/internal/searches"
)

var (
	// ErrNoToken is returned when no API token can be resolved.
	ErrNoToken = errors.New("no API token configured; run 'ghl config set-token' or set GHL_API_TOKEN")
	// ErrNoLocation is returned when an operation requires a location and
	// none can be resolved.
	ErrNoLocation = errors.New("no location configured; run 'ghl config set-location' or set GHL_LOCATION_ID")
)

// CLI holds the application state for the CLI.
type CLI struct {
	Store    *config.Store
	Searches *searches.Store
	rootCmd  *cobra.Command

	// Flags
	outputFlag  string
	jsonFlag    bool
	csvFlag     bool
	quietFlag   bool
	verboseFlag bool

	// clientOpts are extra client options injected by tests.
	clientOpts []api.Option
}

// New creates a new CLI instance.
func New() *CLI {
	cli := &CLI{}

	cli.rootCmd = &cobra.Command{
		Use:   "ghl",
		Short: "ghl - GoHighLevel CRM command line client",
		Long: `ghl is a command-line client for the GoHighLevel API v2.

Manage contacts, opportunities, pipelines, calendars, conversations,
workflows, tags, tasks, and custom fields from the command line.

Quick start:
  1. Run 'ghl config set-token' to configure your API token
  2. Run 'ghl config set-location <location_id>' to set your default location
  3. Run 'ghl contacts list' to verify everything works`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.initialize()
		},
	}

	// Global flags
	cli.rootCmd.PersistentFlags().StringVarP(&cli.outputFlag, "output", "o", "", "Output format (table, json, csv, yaml, quiet)")
	cli.rootCmd.PersistentFlags().BoolVar(&cli.jsonFlag, "json", false, "Output as JSON")
	cli.rootCmd.PersistentFlags().BoolVar(&cli.csvFlag, "csv", false, "Output as CSV")
	cli.rootCmd.PersistentFlags().BoolVarP(&cli.quietFlag, "quiet", "q", false, "Output only IDs")
	cli.rootCmd.PersistentFlags().BoolVarP(&cli.verboseFlag, "verbose", "v", false, "Enable verbose output")

	cli.addCommands()

	return cli
}

// addCommands adds all subcommands to the root command.
func (cli *CLI) addCommands() {
	cli.rootCmd.AddCommand(
		cli.newVersionCmd(),
		cli.newConfigCmd(),
		cli.newProfileCmd(),
		cli.newContactsCmd(),
		cli.newOpportunitiesCmd(),
		cli.newPipelinesCmd(),
		cli.newCalendarsCmd(),
		cli.newConversationsCmd(),
		cli.newWorkflowsCmd(),
		cli.newTagsCmd(),
		cli.newTasksCmd(),
		cli.newUsersCmd(),
		cli.newLocationsCmd(),
		cli.newCustomFieldsCmd(),
		cli.newSearchesCmd(),
	)
}

// initialize builds the credential store. The store is constructed once per
// process and passed by reference; there is no ambient global.
func (cli *CLI) initialize() error {
	if cli.Store == nil {
		cli.Store = config.NewStoreAt(config.GetPaths(), keyring.DefaultStore())
	}
	if cli.Searches == nil {
		cli.Searches = searches.NewStoreAt(cli.Store.Paths())
	}
	return nil
}

// Execute runs the CLI.
func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

// outputFormat resolves the effective output format: explicit flags first,
// then the configured default.
func (cli *CLI) outputFormat() (OutputFormat, error) {
	switch {
	case cli.quietFlag:
		return FormatQuiet, nil
	case cli.jsonFlag:
		return FormatJSON, nil
	case cli.csvFlag:
		return FormatCSV, nil
	case cli.outputFlag != "":
		return ParseOutputFormat(cli.outputFlag)
	default:
		return ParseOutputFormat(cli.Store.Config().OutputFormat)
	}
}

// newOutput builds an OutputWriter for the effective format.
func (cli *CLI) newOutput() (*OutputWriter, error) {
	format, err := cli.outputFormat()
	if err != nil {
		return nil, err
	}
	return NewOutputWriter(format), nil
}

// newClient resolves credentials and builds an API client. The caller owns
// the client and must Close it.
func (cli *CLI) newClient() (*api.Client, error) {
	token := cli.Store.GetToken()
	if token == "" {
		return nil, ErrNoToken
	}

	opts := append([]api.Option{
		api.WithAPIVersion(cli.Store.Config().APIVersion),
	}, cli.clientOpts...)

	client := api.New(token, cli.Store.GetLocationID(), opts...)

	if cli.verboseFlag {
		fmt.Fprintf(os.Stderr, "using location %q\n", client.LocationID())
	}
	return client, nil
}

// requireLocation resolves the effective location or fails.
func (cli *CLI) requireLocation() (string, error) {
	loc := cli.Store.GetLocationID()
	if loc == "" {
		return "", ErrNoLocation
	}
	return loc, nil
}
