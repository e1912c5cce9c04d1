package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ArtifactFormat identifies the toolchain that produced an artifact
type ArtifactFormat string

const (
	ArtifactFormatFoundry ArtifactFormat = "foundry"
	ArtifactFormatHardhat ArtifactFormat = "hardhat"
)

// Contract represents information about a discovered contract
type Contract struct {
	Name         string         `json:"name"`
	Path         string         `json:"path"`
	ArtifactPath string         `json:"artifactPath,omitempty"`
	Format       ArtifactFormat `json:"format,omitempty"`
}

// Key returns the fully qualified "path:Name" identifier
func (c *Contract) Key() string {
	return fmt.Sprintf("%s:%s", c.Path, c.Name)
}

// BytecodeObject represents bytecode information in a compilation artifact.
// Foundry writes an object with an "object" field; Hardhat writes a bare hex string.
type BytecodeObject struct {
	Object         string         `json:"object"`
	SourceMap      string         `json:"sourceMap,omitempty"`
	LinkReferences map[string]any `json:"linkReferences,omitempty"`
}

func (b *BytecodeObject) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &b.Object)
	}
	type plain BytecodeObject
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = BytecodeObject(p)
	return nil
}

// Artifact represents a compilation artifact (Foundry or Hardhat shape)
type Artifact struct {
	Format           string           `json:"_format,omitempty"`
	ContractName     string           `json:"contractName,omitempty"`
	SourceName       string           `json:"sourceName,omitempty"`
	ABI              json.RawMessage  `json:"abi"`
	Bytecode         BytecodeObject   `json:"bytecode"`
	DeployedBytecode BytecodeObject   `json:"deployedBytecode"`
	LinkReferences   map[string]any   `json:"linkReferences,omitempty"`
	Metadata         ArtifactMetadata `json:"metadata"`
}

// ArtifactMetadata represents the metadata section of a Foundry artifact
type ArtifactMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}

// ContractFactory knows how to deploy one named contract
type ContractFactory struct {
	Contract *Contract
	ABI      abi.ABI
	Bytecode []byte
}

// Name returns the contract name of the factory
func (f *ContractFactory) Name() string {
	if f == nil || f.Contract == nil {
		return ""
	}
	return f.Contract.Name
}
