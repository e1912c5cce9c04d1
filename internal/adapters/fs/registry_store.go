package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gridledger/energy-deploy/internal/domain/config"
	"github.com/gridledger/energy-deploy/internal/domain/models"
	"github.com/gridledger/energy-deploy/internal/usecase"
	"github.com/samber/lo"
)

const DeploymentsFile = "deployments.json"

// registryFile is the on-disk layout of the deployment record
type registryFile struct {
	Version string                          `json:"version"`
	Chains  map[string][]*models.Deployment `json:"chains"` // chainID -> deployments, oldest first
}

// RegistryStoreAdapter persists confirmed deployments as JSON in the project data dir
type RegistryStoreAdapter struct {
	dataDir string
	mu      sync.Mutex
}

// NewRegistryStoreAdapter creates a new store rooted at cfg.DataDir
func NewRegistryStoreAdapter(cfg *config.RuntimeConfig) *RegistryStoreAdapter {
	return &RegistryStoreAdapter{dataDir: cfg.DataDir}
}

// SaveDeployment appends a deployment to the record
func (r *RegistryStoreAdapter) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	registry, err := r.load()
	if err != nil {
		return err
	}

	key := strconv.FormatUint(deployment.ChainID, 10)
	registry.Chains[key] = append(registry.Chains[key], deployment)

	return r.save(registry)
}

// ListDeployments retrieves deployments matching the filter
func (r *RegistryStoreAdapter) ListDeployments(ctx context.Context, filter usecase.DeploymentFilter) ([]*models.Deployment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	registry, err := r.load()
	if err != nil {
		return nil, err
	}

	var all []*models.Deployment
	for _, deployments := range registry.Chains {
		all = append(all, deployments...)
	}

	return lo.Filter(all, func(d *models.Deployment, _ int) bool {
		if filter.ChainID != 0 && d.ChainID != filter.ChainID {
			return false
		}
		if filter.ContractName != "" && !strings.EqualFold(d.ContractName, filter.ContractName) {
			return false
		}
		return true
	}), nil
}

func (r *RegistryStoreAdapter) path() string {
	return filepath.Join(r.dataDir, DeploymentsFile)
}

// load reads the registry file; a missing file is an empty registry
func (r *RegistryStoreAdapter) load() (*registryFile, error) {
	registry := &registryFile{Version: "1", Chains: make(map[string][]*models.Deployment)}

	data, err := os.ReadFile(r.path())
	if os.IsNotExist(err) {
		return registry, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read deployments: %w", err)
	}

	if err := json.Unmarshal(data, registry); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", r.path(), err)
	}
	if registry.Chains == nil {
		registry.Chains = make(map[string][]*models.Deployment)
	}
	return registry, nil
}

// save writes the registry through a temp file and an atomic rename
func (r *RegistryStoreAdapter) save(registry *registryFile) error {
	if err := os.MkdirAll(r.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", r.dataDir, err)
	}

	data, err := json.MarshalIndent(registry, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := r.path() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, r.path())
}

// Ensure the adapter implements the interface
var _ usecase.DeploymentStore = (*RegistryStoreAdapter)(nil)
