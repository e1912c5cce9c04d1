package cli

import (
	"context"
	"fmt"

	"github.com/gridledger/energy-deploy/internal/app"
	"github.com/gridledger/energy-deploy/internal/cli/render"
	"github.com/gridledger/energy-deploy/internal/config"
	"github.com/gridledger/energy-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// initApp builds the application container; replaced in tests
var initApp = app.InitApp

// NewRootCmd creates the root command. Running it without a subcommand deploys a contract.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "energy-deploy [contract]",
		Short: "Deploy the Energy contract to a local EVM node",
		Long: `energy-deploy deploys a compiled contract (Energy by default) to the
configured EVM JSON-RPC endpoint, waits for the deployment to be mined and
prints the resulting address.

Artifacts are read from Foundry (out/) or Hardhat (artifacts/contracts/)
build directories in the project root.`,
		Example: `  # Deploy Energy to the local node
  energy-deploy

  # Deploy another contract to a specific endpoint
  energy-deploy Token --rpc-url http://127.0.0.1:8545 --chain-id 31337`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			// Already initialized by the caller
			if _, err := getApp(cmd); err == nil {
				return nil
			}

			projectRoot := config.FindProjectRoot()
			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := initApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.DeployParams{}
			if len(args) > 0 {
				params.Contract = args[0]
			}

			result, err := app.DeployContract.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewDeployRenderer(cmd.OutOrStdout()).RenderDeployResult(result)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().String("rpc-url", "", "JSON-RPC endpoint of the node (default http://127.0.0.1:8545)")
	rootCmd.PersistentFlags().Uint64("chain-id", 0, "Expected chain ID; 0 accepts whatever the node reports")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Overall timeout for the command (default 5m)")
	rootCmd.Flags().String("contract", "", "Contract name or path:Name to deploy (default Energy)")

	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	if cmd.Context() == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
