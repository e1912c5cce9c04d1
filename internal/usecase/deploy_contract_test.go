package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gridledger/energy-deploy/internal/domain"
	"github.com/gridledger/energy-deploy/internal/domain/config"
	"github.com/gridledger/energy-deploy/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const energyAddress = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

type fakeChain struct {
	calls       []string
	connectErr  error
	deployErr   error
	waitErr     error
	deployCount int
	closed      bool
}

func (f *fakeChain) Connect(ctx context.Context, rpcURL string, chainID uint64) error {
	f.calls = append(f.calls, "connect")
	return f.connectErr
}

func (f *fakeChain) Close() {
	f.closed = true
}

func (f *fakeChain) Deploy(ctx context.Context, factory *models.ContractFactory) (*models.DeploymentHandle, error) {
	f.calls = append(f.calls, "deploy")
	f.deployCount++
	if f.deployErr != nil {
		return nil, f.deployErr
	}
	return &models.DeploymentHandle{
		ContractName: factory.Name(),
		Address:      common.HexToAddress(energyAddress),
		ChainID:      31337,
	}, nil
}

func (f *fakeChain) WaitForDeployment(ctx context.Context, handle *models.DeploymentHandle) (*models.Deployment, error) {
	f.calls = append(f.calls, "wait")
	if f.waitErr != nil {
		return nil, f.waitErr
	}
	return &models.Deployment{
		Address:     handle.Address.Hex(),
		ChainID:     handle.ChainID,
		BlockNumber: 1,
		DeployedAt:  time.Now(),
	}, nil
}

type fakeResolver struct {
	calls     *[]string
	err       error
	requested string
}

func (f *fakeResolver) GetContractFactory(ctx context.Context, name string) (*models.ContractFactory, error) {
	*f.calls = append(*f.calls, "resolve")
	f.requested = name
	if f.err != nil {
		return nil, f.err
	}
	return &models.ContractFactory{
		Contract: &models.Contract{Name: name, Path: "contracts/Energy.sol", ArtifactPath: "out/Energy.sol/Energy.json"},
		Bytecode: []byte{0x60, 0x00},
	}, nil
}

type memoryStore struct {
	saved   []*models.Deployment
	saveErr error
}

func (m *memoryStore) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, deployment)
	return nil
}

func (m *memoryStore) ListDeployments(ctx context.Context, filter DeploymentFilter) ([]*models.Deployment, error) {
	return append([]*models.Deployment(nil), m.saved...), nil
}

func newTestDeploy(chain *fakeChain, resolverErr error, store DeploymentStore) (*DeployContract, *fakeResolver) {
	resolver := &fakeResolver{calls: &chain.calls, err: resolverErr}
	cfg := &config.RuntimeConfig{Contract: "Energy", RPCURL: "http://127.0.0.1:8545"}
	return NewDeployContract(cfg, resolver, chain, chain, store, NopProgress{}, nil), resolver
}

func TestDeployContract_Success(t *testing.T) {
	chain := &fakeChain{}
	store := &memoryStore{}
	uc, resolver := newTestDeploy(chain, nil, store)

	result, err := uc.Run(context.Background(), DeployParams{})
	require.NoError(t, err)

	assert.Equal(t, "Energy", resolver.requested)
	assert.Equal(t, "Energy", result.ContractName)
	assert.Equal(t, energyAddress, result.Address)
	assert.Equal(t, []string{"resolve", "connect", "deploy", "wait"}, chain.calls)
	assert.Equal(t, 1, chain.deployCount)
	assert.True(t, chain.closed)

	require.Len(t, store.saved, 1)
	assert.Equal(t, "Energy", store.saved[0].ContractName)
	assert.Equal(t, "out/Energy.sol/Energy.json", store.saved[0].ArtifactPath)
}

func TestDeployContract_ParamsOverrideConfig(t *testing.T) {
	chain := &fakeChain{}
	uc, resolver := newTestDeploy(chain, nil, nil)

	result, err := uc.Run(context.Background(), DeployParams{Contract: "Grid"})
	require.NoError(t, err)
	assert.Equal(t, "Grid", resolver.requested)
	assert.Equal(t, "Grid", result.ContractName)
}

func TestDeployContract_DefaultsToEnergy(t *testing.T) {
	chain := &fakeChain{}
	resolver := &fakeResolver{calls: &chain.calls}
	uc := NewDeployContract(&config.RuntimeConfig{}, resolver, chain, chain, nil, nil, nil)

	_, err := uc.Run(context.Background(), DeployParams{})
	require.NoError(t, err)
	assert.Equal(t, DefaultContractName, resolver.requested)
}

func TestDeployContract_Failures(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name          string
		chain         *fakeChain
		resolverErr   error
		expectedStage domain.DeploymentStage
		expectedCalls []string
		deployCount   int
	}{
		{
			name:          "factory resolution failure",
			chain:         &fakeChain{},
			resolverErr:   domain.ContractNotFoundError{Name: "Energy"},
			expectedStage: domain.StageResolve,
			expectedCalls: []string{"resolve"},
			deployCount:   0,
		},
		{
			name:          "network failure",
			chain:         &fakeChain{connectErr: boom},
			expectedStage: domain.StageConnect,
			expectedCalls: []string{"resolve", "connect"},
			deployCount:   0,
		},
		{
			name:          "deployment rejected",
			chain:         &fakeChain{deployErr: boom},
			expectedStage: domain.StageDeploy,
			expectedCalls: []string{"resolve", "connect", "deploy"},
			deployCount:   1,
		},
		{
			name:          "confirmation failure",
			chain:         &fakeChain{waitErr: domain.ErrDeploymentReverted},
			expectedStage: domain.StageWait,
			expectedCalls: []string{"resolve", "connect", "deploy", "wait"},
			deployCount:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memoryStore{}
			uc, _ := newTestDeploy(tt.chain, tt.resolverErr, store)

			result, err := uc.Run(context.Background(), DeployParams{})
			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, domain.ErrDeploymentFailed)

			var failed *domain.DeploymentFailedError
			require.ErrorAs(t, err, &failed)
			assert.Equal(t, tt.expectedStage, failed.Stage)
			assert.Equal(t, "Energy", failed.Contract)

			assert.Equal(t, tt.expectedCalls, tt.chain.calls)
			assert.Equal(t, tt.deployCount, tt.chain.deployCount)
			assert.Empty(t, store.saved)
		})
	}
}

func TestDeployContract_KeepsCause(t *testing.T) {
	chain := &fakeChain{waitErr: domain.ErrNoCodeAfterDeploy}
	uc, _ := newTestDeploy(chain, nil, nil)

	_, err := uc.Run(context.Background(), DeployParams{})
	assert.ErrorIs(t, err, domain.ErrNoCodeAfterDeploy)
	assert.ErrorIs(t, err, domain.ErrDeploymentFailed)
}

func TestDeployContract_RecordFailureDoesNotFailDeployment(t *testing.T) {
	chain := &fakeChain{}
	uc, _ := newTestDeploy(chain, nil, &memoryStore{saveErr: errors.New("disk full")})

	result, err := uc.Run(context.Background(), DeployParams{})
	require.NoError(t, err)
	assert.Equal(t, energyAddress, result.Address)
	assert.Equal(t, 1, chain.deployCount)
}

type recordingProgress struct {
	NopProgress
	infos  []string
	errors []string
}

func (r *recordingProgress) Info(message string)  { r.infos = append(r.infos, message) }
func (r *recordingProgress) Error(message string) { r.errors = append(r.errors, message) }

func TestDeployContract_ReportsRecordOutcome(t *testing.T) {
	tests := []struct {
		name       string
		saveErr    error
		wantInfos  int
		wantErrors int
		contains   string
	}{
		{name: "recorded", wantInfos: 1, contains: "Recorded Energy"},
		{name: "not recorded", saveErr: errors.New("disk full"), wantErrors: 1, contains: "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := &fakeChain{}
			resolver := &fakeResolver{calls: &chain.calls}
			progress := &recordingProgress{}
			cfg := &config.RuntimeConfig{Contract: "Energy"}
			uc := NewDeployContract(cfg, resolver, chain, chain, &memoryStore{saveErr: tt.saveErr}, progress, nil)

			_, err := uc.Run(context.Background(), DeployParams{})
			require.NoError(t, err)

			assert.Len(t, progress.infos, tt.wantInfos)
			assert.Len(t, progress.errors, tt.wantErrors)
			assert.Contains(t, append(progress.infos, progress.errors...)[0], tt.contains)
		})
	}
}
