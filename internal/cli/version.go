package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ghl/internal/version"
)

// newVersionCmd creates the version command.
func (cli *CLI) newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Get()
			if short {
				fmt.Println(info.Short())
				return nil
			}

			format, err := cli.outputFormat()
			if err != nil {
				return err
			}
			if format == FormatJSON {
				return NewOutputWriter(format).writeJSON(info)
			}
			fmt.Println(info.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")

	return cmd
}
