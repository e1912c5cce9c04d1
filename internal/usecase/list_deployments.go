package usecase

import (
	"context"
	"sort"

	"github.com/gridledger/energy-deploy/internal/domain/models"
	"github.com/samber/lo"
)

// DeploymentListResult contains the result of listing deployments
type DeploymentListResult struct {
	Deployments []*models.Deployment
	ChainIDs    []uint64
}

// ListDeployments is a use case for listing recorded deployments
type ListDeployments struct {
	store DeploymentStore
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(store DeploymentStore) *ListDeployments {
	return &ListDeployments{store: store}
}

// Run returns recorded deployments, newest first
func (uc *ListDeployments) Run(ctx context.Context, filter DeploymentFilter) (*DeploymentListResult, error) {
	deployments, err := uc.store.ListDeployments(ctx, filter)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(deployments, func(i, j int) bool {
		return deployments[i].DeployedAt.After(deployments[j].DeployedAt)
	})

	chainIDs := lo.Uniq(lo.Map(deployments, func(d *models.Deployment, _ int) uint64 {
		return d.ChainID
	}))
	sort.Slice(chainIDs, func(i, j int) bool { return chainIDs[i] < chainIDs[j] })

	return &DeploymentListResult{
		Deployments: deployments,
		ChainIDs:    chainIDs,
	}, nil
}
