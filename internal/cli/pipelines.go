package cli

import (
	"github.com/spf13/cobra"

	"ghl/internal/services"
)

var pipelineColumns = []Column{
	{Header: "ID", Key: "id"},
	{Header: "NAME", Key: "name"},
}

var stageColumns = []Column{
	{Header: "ID", Key: "id"},
	{Header: "NAME", Key: "name"},
	{Header: "POSITION", Key: "position"},
}

// newPipelinesCmd creates the pipelines command group.
func (cli *CLI) newPipelinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pipelines",
		Aliases: []string{"pipeline"},
		Short:   "Inspect sales pipelines and their stages",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List pipelines",
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

				pipelines, err := services.ListPipelines(cmd.Context(), client)
				if err != nil {
					return err
				}
				return output.WriteList(pipelineColumns, pipelines)
			},
		},
		&cobra.Command{
			Use:   "get <pipeline-id>",
			Short: "Show a single pipeline",
			Args:  cobra.ExactArgs(1),
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

				pipeline, err := services.GetPipeline(cmd.Context(), client, args[0])
				if err != nil {
					return err
				}
				return output.WriteObject(pipeline)
			},
		},
		&cobra.Command{
			Use:   "stages <pipeline-id>",
			Short: "List the stages of a pipeline",
			Args:  cobra.ExactArgs(1),
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

				stages, err := services.ListStages(cmd.Context(), client, args[0])
				if err != nil {
					return err
				}
				return output.WriteList(stageColumns, stages)
			},
		},
	)

	return cmd
}
