package blockchain

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/gridledger/energy-deploy/internal/domain"
	"github.com/gridledger/energy-deploy/internal/domain/config"
	"github.com/gridledger/energy-deploy/internal/domain/models"
	"github.com/gridledger/energy-deploy/internal/usecase"
)

// Backend is the chain access needed to deploy and confirm contracts.
// Both *ethclient.Client and the simulated backend client satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// DialFunc opens a Backend for an RPC URL
type DialFunc func(ctx context.Context, rpcURL string) (Backend, error)

func dialEthclient(ctx context.Context, rpcURL string) (Backend, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// DeployerAdapter implements ContractDeployer and ChainConnector using go-ethereum bindings
type DeployerAdapter struct {
	cfg     *config.RuntimeConfig
	log     *slog.Logger
	dial    DialFunc
	backend Backend
	chainID uint64
}

// NewDeployerAdapter creates a new deployer adapter
func NewDeployerAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *DeployerAdapter {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &DeployerAdapter{
		cfg:  cfg,
		log:  log,
		dial: dialEthclient,
	}
}

// Connect establishes connection to the blockchain
func (d *DeployerAdapter) Connect(ctx context.Context, rpcURL string, chainID uint64) error {
	if rpcURL == "" {
		return fmt.Errorf("no RPC URL configured")
	}

	backend, err := d.dial(ctx, rpcURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RPC: %w", err)
	}

	// Verify chain ID matches
	networkChainID, err := backend.ChainID(ctx)
	if err != nil {
		closeBackend(backend)
		return fmt.Errorf("failed to get chain ID: %w", err)
	}

	// If chainID was 0, use the network's chain ID
	if chainID != 0 && networkChainID.Uint64() != chainID {
		closeBackend(backend)
		return fmt.Errorf("%w: expected %d, got %d", domain.ErrChainIDMismatch, chainID, networkChainID.Uint64())
	}

	d.backend = backend
	d.chainID = networkChainID.Uint64()
	d.log.Debug("connected to chain", "rpc", rpcURL, "chainId", d.chainID)
	return nil
}

// Close releases the RPC connection
func (d *DeployerAdapter) Close() {
	if d.backend != nil {
		closeBackend(d.backend)
		d.backend = nil
	}
}

func closeBackend(b Backend) {
	if c, ok := b.(interface{ Close() }); ok {
		c.Close()
	}
}

// Deploy signs and broadcasts a single contract creation transaction
func (d *DeployerAdapter) Deploy(ctx context.Context, factory *models.ContractFactory) (*models.DeploymentHandle, error) {
	if d.backend == nil {
		return nil, domain.ErrNotConnected
	}
	if d.cfg == nil || d.cfg.PrivateKey == "" {
		return nil, domain.ErrMissingPrivateKey
	}

	key, err := parsePrivateKey(d.cfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	auth, err := bind.NewKeyedTransactorWithChainID(key.PrivateKey, new(big.Int).SetUint64(d.chainID))
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx

	address, tx, _, err := bind.DeployContract(auth, factory.ABI, factory.Bytecode, d.backend)
	if err != nil {
		return nil, fmt.Errorf("failed to send deployment transaction: %w", err)
	}

	return &models.DeploymentHandle{
		ContractName: factory.Name(),
		Address:      address,
		Deployer:     key.Address,
		ChainID:      d.chainID,
		Transaction:  tx,
	}, nil
}

// WaitForDeployment blocks until the creation transaction is mined and code exists at the address
func (d *DeployerAdapter) WaitForDeployment(ctx context.Context, handle *models.DeploymentHandle) (*models.Deployment, error) {
	if d.backend == nil {
		return nil, domain.ErrNotConnected
	}
	if handle == nil || handle.Transaction == nil {
		return nil, fmt.Errorf("no deployment transaction to wait for")
	}

	receipt, err := bind.WaitMined(ctx, d.backend, handle.Transaction)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for transaction %s: %w", handle.TxHash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: transaction %s", domain.ErrDeploymentReverted, handle.TxHash().Hex())
	}

	address := receipt.ContractAddress
	if address == (common.Address{}) {
		address = handle.Address
	}

	exists, err := d.codeExists(ctx, address)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoCodeAfterDeploy, address.Hex())
	}

	deployment := &models.Deployment{
		ContractName:    handle.ContractName,
		Address:         address.Hex(),
		ChainID:         handle.ChainID,
		TransactionHash: handle.TxHash().Hex(),
		GasUsed:         receipt.GasUsed,
		Deployer:        handle.Deployer.Hex(),
		DeployedAt:      time.Now().UTC(),
	}
	if receipt.BlockNumber != nil {
		deployment.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return deployment, nil
}

// codeExists checks if a contract exists at the given address
func (d *DeployerAdapter) codeExists(ctx context.Context, address common.Address) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	code, err := d.backend.CodeAt(ctx, address, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check code at %s: %w", address.Hex(), err)
	}
	return len(code) > 0, nil
}

type deployerKey struct {
	PrivateKey *ecdsa.PrivateKey
	Address    common.Address
}

// parsePrivateKey parses a hex private key with or without 0x prefix
func parsePrivateKey(privateKeyHex string) (*deployerKey, error) {
	privateKeyHex = strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x")

	privateKeyBytes, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key: %w", err)
	}

	privateKey, err := crypto.ToECDSA(privateKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create private key: %w", err)
	}

	return &deployerKey{
		PrivateKey: privateKey,
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey),
	}, nil
}

// Ensure the adapter implements the interfaces
var (
	_ usecase.ContractDeployer = (*DeployerAdapter)(nil)
	_ usecase.ChainConnector   = (*DeployerAdapter)(nil)
)
