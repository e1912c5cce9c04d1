package cli

import (
	"github.com/gridledger/energy-deploy/internal/cli/render"
	"github.com/gridledger/energy-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list [contract]",
		Aliases: []string{"ls"},
		Short:   "List recorded deployments",
		Long: `List deployments recorded in .energy/deployments.json.

The list can be filtered by contract name and, with --chain-id, by chain.`,
		Example: `  # List all deployments
  energy-deploy list

  # List Energy deployments on the local chain as JSON
  energy-deploy list Energy --chain-id 1337 --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			filter := usecase.DeploymentFilter{ChainID: app.Config.ChainID}
			if len(args) > 0 {
				filter.ContractName = args[0]
			}

			result, err := app.ListDeployments.Run(cmd.Context(), filter)
			if err != nil {
				return err
			}

			return render.NewDeploymentsRenderer(cmd.OutOrStdout(), format).RenderDeploymentList(result)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", render.FormatTable, "Output format (table, json, yaml)")

	return cmd
}
