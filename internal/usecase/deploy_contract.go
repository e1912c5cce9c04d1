package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gridledger/energy-deploy/internal/domain"
	"github.com/gridledger/energy-deploy/internal/domain/config"
	"github.com/gridledger/energy-deploy/internal/domain/models"
)

// DefaultContractName is deployed when neither flags nor config name a contract
const DefaultContractName = "Energy"

// DeployParams contains parameters for a deployment run
type DeployParams struct {
	// Contract is a contract name or path:name; empty uses the configured default
	Contract string
}

// DeployResult contains the confirmed deployment
type DeployResult struct {
	ContractName string
	Address      string
	Deployment   *models.Deployment
}

// DeployContract resolves a contract factory, deploys it once and waits for confirmation
type DeployContract struct {
	config    *config.RuntimeConfig
	resolver  ContractFactoryResolver
	connector ChainConnector
	deployer  ContractDeployer
	store     DeploymentStore
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	resolver ContractFactoryResolver,
	connector ChainConnector,
	deployer ContractDeployer,
	store DeploymentStore,
	progress ProgressSink,
	log *slog.Logger,
) *DeployContract {
	if progress == nil {
		progress = NopProgress{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &DeployContract{
		config:    cfg,
		resolver:  resolver,
		connector: connector,
		deployer:  deployer,
		store:     store,
		progress:  progress,
		log:       log,
	}
}

// Run executes the deployment. Every returned error matches domain.ErrDeploymentFailed.
func (uc *DeployContract) Run(ctx context.Context, params DeployParams) (*DeployResult, error) {
	name := params.Contract
	if name == "" && uc.config != nil {
		name = uc.config.Contract
	}
	if name == "" {
		name = DefaultContractName
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(domain.StageResolve), Message: fmt.Sprintf("Resolving %s", name), Spinner: true})
	factory, err := uc.resolver.GetContractFactory(ctx, name)
	if err != nil {
		return nil, uc.fail(ctx, domain.StageResolve, name, err)
	}
	name = factory.Name()
	uc.log.Debug("resolved contract factory", "contract", name, "artifact", factory.Contract.ArtifactPath, "bytecode", len(factory.Bytecode))

	var rpcURL string
	var chainID uint64
	if uc.config != nil {
		rpcURL, chainID = uc.config.RPCURL, uc.config.ChainID
	}
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(domain.StageConnect), Message: "Connecting to " + rpcURL, Spinner: true})
	if err := uc.connector.Connect(ctx, rpcURL, chainID); err != nil {
		return nil, uc.fail(ctx, domain.StageConnect, name, err)
	}
	defer uc.connector.Close()

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(domain.StageDeploy), Message: fmt.Sprintf("Deploying %s", name), Spinner: true})
	handle, err := uc.deployer.Deploy(ctx, factory)
	if err != nil {
		return nil, uc.fail(ctx, domain.StageDeploy, name, err)
	}
	uc.log.Info("deployment transaction sent", "contract", name, "tx", handle.TxHash().Hex(), "deployer", handle.Deployer.Hex())

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(domain.StageWait), Message: fmt.Sprintf("Waiting for %s", handle.TxHash().Hex()), Spinner: true})
	deployment, err := uc.deployer.WaitForDeployment(ctx, handle)
	if err != nil {
		return nil, uc.fail(ctx, domain.StageWait, name, err)
	}
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "completed"})

	if deployment.ContractName == "" {
		deployment.ContractName = name
	}
	if deployment.ArtifactPath == "" {
		deployment.ArtifactPath = factory.Contract.ArtifactPath
	}

	// The contract is live at this point; a failed record must not turn success into failure.
	if uc.store != nil {
		if err := uc.store.SaveDeployment(ctx, deployment); err != nil {
			uc.log.Warn("failed to record deployment", "contract", name, "address", deployment.Address, "error", err)
			uc.progress.Error(fmt.Sprintf("Warning: %s deployed but not recorded: %v", name, err))
		} else {
			uc.progress.Info(fmt.Sprintf("Recorded %s on chain %d (block %d)", name, deployment.ChainID, deployment.BlockNumber))
		}
	}

	return &DeployResult{
		ContractName: name,
		Address:      deployment.Address,
		Deployment:   deployment,
	}, nil
}

func (uc *DeployContract) fail(ctx context.Context, stage domain.DeploymentStage, name string, err error) error {
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: string(stage)})
	uc.log.Debug("deployment step failed", "stage", stage, "contract", name, "error", err)
	return domain.NewDeploymentFailedError(stage, name, err)
}
