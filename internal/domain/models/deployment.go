package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// DeploymentHandle is a broadcast but not yet confirmed contract creation
type DeploymentHandle struct {
	ContractName string
	Address      common.Address // expected contract address (sender + nonce)
	Deployer     common.Address
	ChainID      uint64
	Transaction  *types.Transaction
}

// TxHash returns the hash of the creation transaction
func (h *DeploymentHandle) TxHash() common.Hash {
	if h == nil || h.Transaction == nil {
		return common.Hash{}
	}
	return h.Transaction.Hash()
}

// Deployment represents a confirmed contract deployment record
type Deployment struct {
	ContractName    string    `json:"contractName" yaml:"contractName"`
	Address         string    `json:"address" yaml:"address"`
	ChainID         uint64    `json:"chainId" yaml:"chainId"`
	TransactionHash string    `json:"transactionHash" yaml:"transactionHash"`
	BlockNumber     uint64    `json:"blockNumber" yaml:"blockNumber"`
	GasUsed         uint64    `json:"gasUsed" yaml:"gasUsed"`
	Deployer        string    `json:"deployer" yaml:"deployer"`
	ArtifactPath    string    `json:"artifactPath,omitempty" yaml:"artifactPath,omitempty"`
	DeployedAt      time.Time `json:"deployedAt" yaml:"deployedAt"`
}
