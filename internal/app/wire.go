//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/gridledger/energy-deploy/internal/adapters"
	"github.com/gridledger/energy-deploy/internal/config"
	"github.com/gridledger/energy-deploy/internal/logging"
	"github.com/gridledger/energy-deploy/internal/usecase"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployContract,
		usecase.NewListDeployments,

		// App
		NewApp,
	)
	return nil, nil
}
