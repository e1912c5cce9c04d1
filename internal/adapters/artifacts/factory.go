package artifacts

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/gridledger/energy-deploy/internal/domain"
	"github.com/gridledger/energy-deploy/internal/domain/models"
)

// LoadFactory reads the artifact of a contract and builds its deployable factory
func LoadFactory(projectRoot string, contract *models.Contract) (*models.ContractFactory, error) {
	path := contract.ArtifactPath
	if !filepath.IsAbs(path) {
		path = filepath.Join(projectRoot, path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the artifact index
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", contract.ArtifactPath, err)
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact %s: %w", contract.ArtifactPath, err)
	}

	bytecode, err := decodeBytecode(artifact.Bytecode.Object)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", contract.Key(), err)
	}

	parsedABI, err := parseABI(artifact.ABI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", contract.Key(), err)
	}

	return &models.ContractFactory{
		Contract: contract,
		ABI:      parsedABI,
		Bytecode: bytecode,
	}, nil
}

// decodeBytecode decodes hex creation code, rejecting unlinked library placeholders
func decodeBytecode(object string) ([]byte, error) {
	object = strings.TrimSpace(object)
	if !hasBytecode(object) {
		return nil, domain.ErrNoBytecode
	}
	if strings.Contains(object, "__$") {
		return nil, domain.ErrUnlinkedLibraries
	}

	bytecode, err := hex.DecodeString(strings.TrimPrefix(object, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode bytecode: %w", err)
	}
	return bytecode, nil
}

func parseABI(raw json.RawMessage) (abi.ABI, error) {
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return abi.ABI{}, nil
	}
	return abi.JSON(bytes.NewReader(raw))
}
