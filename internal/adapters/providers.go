package adapters

import (
	"github.com/google/wire"
	"github.com/gridledger/energy-deploy/internal/adapters/artifacts"
	"github.com/gridledger/energy-deploy/internal/adapters/blockchain"
	"github.com/gridledger/energy-deploy/internal/adapters/fs"
	"github.com/gridledger/energy-deploy/internal/adapters/interactive"
	"github.com/gridledger/energy-deploy/internal/adapters/progress"
	"github.com/gridledger/energy-deploy/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewRegistryStoreAdapter,
	wire.Bind(new(usecase.DeploymentStore), new(*fs.RegistryStoreAdapter)),
)

// ArtifactsSet provides compiled artifact lookup
var ArtifactsSet = wire.NewSet(
	artifacts.NewContractIndexerAdapter,
	wire.Bind(new(usecase.ContractFactoryResolver), new(*artifacts.ContractIndexerAdapter)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.InteractiveSelector), new(*interactive.SelectorAdapter)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewDeployerAdapter,
	wire.Bind(new(usecase.ChainConnector), new(*blockchain.DeployerAdapter)),
	wire.Bind(new(usecase.ContractDeployer), new(*blockchain.DeployerAdapter)),
)

// ProgressSet provides the progress sink for the current terminal
var ProgressSet = wire.NewSet(
	progress.NewSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	ArtifactsSet,
	InteractiveSet,
	BlockchainSet,
	ProgressSet,
)
