package cli

import (
	"github.com/spf13/cobra"

	"ghl/internal/services"
)

var opportunityColumns = []Column{
	{Header: "ID", Key: "id"},
	{Header: "NAME", Key: "name"},
	{Header: "STATUS", Key: "status"},
	{Header: "VALUE", Key: "monetaryValue"},
	{Header: "STAGE", Key: "pipelineStageId"},
}

// newOpportunitiesCmd creates the opportunities command group.
func (cli *CLI) newOpportunitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "opportunities",
		Aliases: []string{"opps", "opportunity"},
		Short:   "Manage opportunities",
		Long: `List, create, update and move opportunities across pipeline stages.

Examples:
  # List open opportunities in a pipeline
  ghl opportunities list --pipeline=<id> --status=open

  # Move an opportunity to another stage
  ghl opportunities move <id> <stage-id>

  # Mark an opportunity won
  ghl opportunities won <id>`,
	}

	cmd.AddCommand(
		cli.newOpportunitiesListCmd(),
		cli.newOpportunitiesGetCmd(),
		cli.newOpportunitiesCreateCmd(),
		cli.newOpportunitiesUpdateCmd(),
		cli.newOpportunitiesMoveCmd(),
		cli.newOpportunitiesWonCmd(),
		cli.newOpportunitiesLostCmd(),
		cli.newOpportunitiesDeleteCmd(),
	)

	return cmd
}

func (cli *CLI) newOpportunitiesListCmd() *cobra.Command {
	var f services.OpportunityFilter

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List opportunities",
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

			opps, err := services.ListOpportunities(cmd.Context(), client, f)
			if err != nil {
				return err
			}
			return output.WriteList(opportunityColumns, opps)
		},
	}

	cmd.Flags().IntVar(&f.Limit, "limit", 20, "Maximum opportunities to return")
	cmd.Flags().IntVar(&f.Skip, "skip", 0, "Number of opportunities to skip")
	cmd.Flags().StringVar(&f.PipelineID, "pipeline", "", "Filter by pipeline ID")
	cmd.Flags().StringVar(&f.StageID, "stage", "", "Filter by stage ID")
	cmd.Flags().StringVar(&f.Status, "status", "", "Filter by status (open, won, lost, abandoned)")
	cmd.Flags().StringVar(&f.ContactID, "contact", "", "Filter by contact ID")

	return cmd
}

func (cli *CLI) newOpportunitiesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <opportunity-id>",
		Short: "Show a single opportunity",
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

			opp, err := services.GetOpportunity(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}
			return output.WriteObject(opp)
		},
	}
}

func (cli *CLI) newOpportunitiesCreateCmd() *cobra.Command {
	var (
		in    services.OpportunityInput
		value float64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an opportunity",
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

			if cmd.Flags().Changed("value") {
				in.MonetaryValue = &value
			}

			opp, err := services.CreateOpportunity(cmd.Context(), client, location, in)
			if err != nil {
				return err
			}
			return output.WriteObject(opp)
		},
	}

	cmd.Flags().StringVar(&in.ContactID, "contact", "", "Contact ID (required)")
	cmd.Flags().StringVar(&in.PipelineID, "pipeline", "", "Pipeline ID (required)")
	cmd.Flags().StringVar(&in.StageID, "stage", "", "Stage ID (required)")
	cmd.Flags().StringVar(&in.Name, "name", "", "Opportunity name (required)")
	cmd.Flags().StringVar(&in.Status, "status", "", "Status (default open)")
	cmd.Flags().Float64Var(&value, "value", 0, "Monetary value")
	cmd.Flags().StringVar(&in.Source, "source", "", "Lead source")
	_ = cmd.MarkFlagRequired("contact")
	_ = cmd.MarkFlagRequired("pipeline")
	_ = cmd.MarkFlagRequired("stage")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func (cli *CLI) newOpportunitiesUpdateCmd() *cobra.Command {
	var (
		in    services.OpportunityInput
		value float64
	)

	cmd := &cobra.Command{
		Use:   "update <opportunity-id>",
		Short: "Update an opportunity",
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

			if cmd.Flags().Changed("value") {
				in.MonetaryValue = &value
			}

			opp, err := services.UpdateOpportunity(cmd.Context(), client, args[0], in)
			if err != nil {
				return err
			}
			return output.WriteObject(opp)
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "New name")
	cmd.Flags().StringVar(&in.StageID, "stage", "", "New stage ID")
	cmd.Flags().StringVar(&in.Status, "status", "", "New status")
	cmd.Flags().Float64Var(&value, "value", 0, "New monetary value")
	cmd.Flags().StringVar(&in.Source, "source", "", "New lead source")

	return cmd
}

func (cli *CLI) newOpportunitiesMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <opportunity-id> <stage-id>",
		Short: "Move an opportunity to a different stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := cli.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			if _, err := services.MoveOpportunity(cmd.Context(), client, args[0], args[1]); err != nil {
				return err
			}
			PrintSuccess("opportunity moved")
			return nil
		},
	}
}

func (cli *CLI) newOpportunitiesWonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "won <opportunity-id>",
		Short: "Mark an opportunity won",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := cli.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := services.MarkOpportunityWon(cmd.Context(), client, args[0]); err != nil {
				return err
			}
			PrintSuccess("opportunity marked won")
			return nil
		},
	}
}

func (cli *CLI) newOpportunitiesLostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lost <opportunity-id>",
		Short: "Mark an opportunity lost",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := cli.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := services.MarkOpportunityLost(cmd.Context(), client, args[0]); err != nil {
				return err
			}
			PrintSuccess("opportunity marked lost")
			return nil
		},
	}
}

func (cli *CLI) newOpportunitiesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <opportunity-id>",
		Aliases: []string{"rm"},
		Short:   "Delete an opportunity",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := cli.newClient()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := services.DeleteOpportunity(cmd.Context(), client, args[0]); err != nil {
				return err
			}
			PrintSuccess("opportunity %s deleted", args[0])
			return nil
		},
	}
}
