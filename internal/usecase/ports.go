package usecase

import (
	"context"

	"github.com/gridledger/energy-deploy/internal/domain/models"
)

// ContractFactoryResolver resolves a contract name to a deployable factory
type ContractFactoryResolver interface {
	GetContractFactory(ctx context.Context, name string) (*models.ContractFactory, error)
}

// ContractDeployer publishes contract creation transactions and waits for them
type ContractDeployer interface {
	Deploy(ctx context.Context, factory *models.ContractFactory) (*models.DeploymentHandle, error)
	WaitForDeployment(ctx context.Context, handle *models.DeploymentHandle) (*models.Deployment, error)
}

// ChainConnector opens the connection used by the ContractDeployer
type ChainConnector interface {
	Connect(ctx context.Context, rpcURL string, chainID uint64) error
	Close()
}

// DeploymentStore handles persistence of confirmed deployments
type DeploymentStore interface {
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
	ListDeployments(ctx context.Context, filter DeploymentFilter) ([]*models.Deployment, error)
}

// InteractiveSelector lets the user pick one of several candidates
type InteractiveSelector interface {
	SelectContract(ctx context.Context, contracts []*models.Contract, prompt string) (*models.Contract, error)
}

// DeploymentFilter narrows a deployment listing
type DeploymentFilter struct {
	ChainID      uint64
	ContractName string
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
