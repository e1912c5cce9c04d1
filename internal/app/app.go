package app

import (
	"github.com/gridledger/energy-deploy/internal/domain/config"
	"github.com/gridledger/energy-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	DeployContract  *usecase.DeployContract
	ListDeployments *usecase.ListDeployments
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	deployContract *usecase.DeployContract,
	listDeployments *usecase.ListDeployments,
) (*App, error) {
	return &App{
		Config:          cfg,
		DeployContract:  deployContract,
		ListDeployments: listDeployments,
	}, nil
}
