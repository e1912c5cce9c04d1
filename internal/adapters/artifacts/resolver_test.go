package artifacts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gridledger/energy-deploy/internal/domain"
	"github.com/gridledger/energy-deploy/internal/domain/config"
	"github.com/gridledger/energy-deploy/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	initCode  = "0x600060005360016000f3"
	energyABI = `[{"type":"function","name":"recordTrade","inputs":[{"name":"kwh","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"}]`
)

func writeArtifact(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func foundryArtifact(source, name, bytecode string) string {
	return fmt.Sprintf(`{
  "abi": %s,
  "bytecode": {"object": %q, "sourceMap": "", "linkReferences": {}},
  "deployedBytecode": {"object": "0x00"},
  "metadata": {"settings": {"compilationTarget": {%q: %q}}}
}`, energyABI, bytecode, source, name)
}

func hardhatArtifact(source, name, bytecode string) string {
	return fmt.Sprintf(`{
  "_format": "hh-sol-artifact-1",
  "contractName": %q,
  "sourceName": %q,
  "abi": %s,
  "bytecode": %q,
  "deployedBytecode": "0x00",
  "linkReferences": {},
  "deployedLinkReferences": {}
}`, name, source, energyABI, bytecode)
}

type stubSelector struct {
	called  bool
	options []*models.Contract
}

func (s *stubSelector) SelectContract(ctx context.Context, contracts []*models.Contract, prompt string) (*models.Contract, error) {
	s.called = true
	s.options = contracts
	return contracts[len(contracts)-1], nil
}

func newAdapter(root string, nonInteractive bool, selector *stubSelector) *ContractIndexerAdapter {
	cfg := &config.RuntimeConfig{
		ProjectRoot:    root,
		ArtifactDirs:   []string{"out", filepath.Join("artifacts", "contracts")},
		NonInteractive: nonInteractive,
	}
	if selector == nil {
		return NewContractIndexerAdapter(cfg, nil, nil)
	}
	return NewContractIndexerAdapter(cfg, selector, nil)
}

func TestGetContractFactory_Foundry(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, filepath.Join(root, "out", "Energy.sol", "Energy.json"), foundryArtifact("src/Energy.sol", "Energy", initCode))
	writeArtifact(t, filepath.Join(root, "out", "build-info", "abc.json"), `{"id": "abc"}`)

	factory, err := newAdapter(root, true, nil).GetContractFactory(context.Background(), "Energy")
	require.NoError(t, err)

	assert.Equal(t, "Energy", factory.Name())
	assert.Equal(t, "src/Energy.sol", factory.Contract.Path)
	assert.Equal(t, filepath.Join("out", "Energy.sol", "Energy.json"), factory.Contract.ArtifactPath)
	assert.Equal(t, models.ArtifactFormatFoundry, factory.Contract.Format)
	assert.Equal(t, []byte{0x60, 0x00, 0x60, 0x00, 0x53, 0x60, 0x01, 0x60, 0x00, 0xf3}, factory.Bytecode)
	assert.Contains(t, factory.ABI.Methods, "recordTrade")
}

func TestGetContractFactory_Hardhat(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, filepath.Join(root, "artifacts", "contracts", "Energy.sol", "Energy.json"), hardhatArtifact("contracts/Energy.sol", "Energy", initCode))
	writeArtifact(t, filepath.Join(root, "artifacts", "contracts", "Energy.sol", "Energy.dbg.json"), `{"_format": "hh-sol-dbg-1", "buildInfo": "../../build-info/x.json"}`)

	factory, err := newAdapter(root, true, nil).GetContractFactory(context.Background(), "Energy")
	require.NoError(t, err)

	assert.Equal(t, "contracts/Energy.sol", factory.Contract.Path)
	assert.Equal(t, models.ArtifactFormatHardhat, factory.Contract.Format)
	assert.Len(t, factory.Bytecode, 10)
}

func TestGetContractFactory_NotFound(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, filepath.Join(root, "out", "Energy.sol", "Energy.json"), foundryArtifact("src/Energy.sol", "Energy", initCode))
	writeArtifact(t, filepath.Join(root, "out", "EnergyMarket.sol", "EnergyMarket.json"), foundryArtifact("src/EnergyMarket.sol", "EnergyMarket", initCode))

	_, err := newAdapter(root, true, nil).GetContractFactory(context.Background(), "Enrgy")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrContractNotFound)

	var notFound domain.ContractNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Suggestions, "Energy")
	assert.Contains(t, err.Error(), "did you mean")
}

func TestGetContractFactory_NotFoundSuggestionsAreUnique(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, filepath.Join(root, "out", "Energy.sol", "Energy.json"), foundryArtifact("src/Energy.sol", "Energy", initCode))
	writeArtifact(t, filepath.Join(root, "out", "legacy", "Energy.sol", "Energy.json"), foundryArtifact("src/legacy/Energy.sol", "Energy", initCode))

	_, err := newAdapter(root, true, nil).GetContractFactory(context.Background(), "src/Grid.sol:Enrgy")
	require.Error(t, err)

	var notFound domain.ContractNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, []string{"Energy"}, notFound.Suggestions)
}

func TestGetContractFactory_NoArtifacts(t *testing.T) {
	_, err := newAdapter(t.TempDir(), true, nil).GetContractFactory(context.Background(), "Energy")
	assert.ErrorIs(t, err, domain.ErrContractNotFound)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestGetContractFactory_SkipsNonDeployable(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, filepath.Join(root, "out", "IEnergy.sol", "IEnergy.json"), foundryArtifact("src/IEnergy.sol", "IEnergy", "0x"))
	writeArtifact(t, filepath.Join(root, "out", "Energy.t.sol", "EnergyTest.json"), foundryArtifact("test/Energy.t.sol", "EnergyTest", initCode))
	writeArtifact(t, filepath.Join(root, "out", "junk.json"), `not json`)

	adapter := newAdapter(root, true, nil)
	_, err := adapter.GetContractFactory(context.Background(), "IEnergy")
	assert.ErrorIs(t, err, domain.ErrContractNotFound)

	_, err = adapter.GetContractFactory(context.Background(), "EnergyTest")
	assert.ErrorIs(t, err, domain.ErrContractNotFound)
}

func TestGetContractFactory_UnlinkedLibraries(t *testing.T) {
	root := t.TempDir()
	unlinked := "0x6080__$b3b2f1e5c4d8a9f0e1d2c3b4a5968778695a$__6000"
	writeArtifact(t, filepath.Join(root, "out", "Energy.sol", "Energy.json"), foundryArtifact("src/Energy.sol", "Energy", unlinked))

	_, err := newAdapter(root, true, nil).GetContractFactory(context.Background(), "Energy")
	assert.ErrorIs(t, err, domain.ErrUnlinkedLibraries)
}

func TestGetContractFactory_Ambiguous(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, filepath.Join(root, "out", "Energy.sol", "Energy.json"), foundryArtifact("src/Energy.sol", "Energy", initCode))
	writeArtifact(t, filepath.Join(root, "out", "legacy", "Energy.sol", "Energy.json"), foundryArtifact("src/legacy/Energy.sol", "Energy", initCode))

	t.Run("non-interactive fails with candidates", func(t *testing.T) {
		_, err := newAdapter(root, true, nil).GetContractFactory(context.Background(), "Energy")
		var ambiguous domain.AmbiguousContractError
		require.ErrorAs(t, err, &ambiguous)
		assert.Len(t, ambiguous.Matches, 2)
		assert.Contains(t, err.Error(), "src/legacy/Energy.sol")
	})

	t.Run("interactive asks the selector", func(t *testing.T) {
		selector := &stubSelector{}
		factory, err := newAdapter(root, false, selector).GetContractFactory(context.Background(), "Energy")
		require.NoError(t, err)
		assert.True(t, selector.called)
		assert.Len(t, selector.options, 2)
		assert.Equal(t, "src/legacy/Energy.sol", factory.Contract.Path)
	})

	t.Run("qualified key picks one", func(t *testing.T) {
		factory, err := newAdapter(root, true, nil).GetContractFactory(context.Background(), "src/Energy.sol:Energy")
		require.NoError(t, err)
		assert.Equal(t, "src/Energy.sol", factory.Contract.Path)
	})
}

func TestSearchContracts(t *testing.T) {
	root := t.TempDir()
	writeArtifact(t, filepath.Join(root, "out", "Energy.sol", "Energy.json"), foundryArtifact("src/Energy.sol", "Energy", initCode))
	writeArtifact(t, filepath.Join(root, "out", "EnergyMarket.sol", "EnergyMarket.json"), foundryArtifact("src/EnergyMarket.sol", "EnergyMarket", initCode))
	writeArtifact(t, filepath.Join(root, "out", "Grid.sol", "Grid.json"), foundryArtifact("src/Grid.sol", "Grid", initCode))

	results := newAdapter(root, true, nil).SearchContracts(context.Background(), "Enrg")
	names := make([]string, 0, len(results))
	for _, c := range results {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"Energy", "EnergyMarket"}, names)
}
