package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gridledger/energy-deploy/internal/domain/models"
)

// Sentinel errors for domain operations
var (
	// ErrDeploymentFailed is the single error kind surfaced by a deployment run.
	// Every failure of the deploy procedure matches it with errors.Is.
	ErrDeploymentFailed = errors.New("deployment failed")

	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrContractNotFound is returned when no artifact matches a contract name
	ErrContractNotFound = errors.New("contract not found")

	// ErrNoBytecode is returned when an artifact has no creation bytecode
	ErrNoBytecode = errors.New("artifact has no creation bytecode")

	// ErrUnlinkedLibraries is returned when bytecode still carries library placeholders
	ErrUnlinkedLibraries = errors.New("bytecode has unlinked library references")

	// ErrChainIDMismatch is returned when the RPC endpoint serves a different chain
	ErrChainIDMismatch = errors.New("chain ID mismatch")

	// ErrMissingPrivateKey is returned when no deployer key is configured
	ErrMissingPrivateKey = errors.New("deployer private key not configured")

	// ErrNotConnected is returned when the chain client is used before connecting
	ErrNotConnected = errors.New("not connected to blockchain")

	// ErrDeploymentReverted is returned when the creation transaction was mined but reverted
	ErrDeploymentReverted = errors.New("deployment transaction reverted")

	// ErrNoCodeAfterDeploy is returned when no code exists at the contract address after mining
	ErrNoCodeAfterDeploy = errors.New("no contract code after deployment")
)

// DeploymentStage names the step of the deploy procedure that failed
type DeploymentStage string

// Deployment stages, in the order they run
const (
	// StageResolve looks up the compiled artifact and builds the contract factory
	StageResolve DeploymentStage = "resolve"
	// StageConnect dials the RPC endpoint and checks the chain ID
	StageConnect DeploymentStage = "connect"
	// StageDeploy signs and broadcasts the creation transaction
	StageDeploy  DeploymentStage = "deploy"
	// StageWait blocks until the transaction is mined and code exists at the address
	StageWait    DeploymentStage = "wait"
)

// DeploymentFailedError wraps the cause of a failed deployment with the stage it failed in
type DeploymentFailedError struct {
	Stage    DeploymentStage
	Contract string
	Err      error
}

func (e *DeploymentFailedError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrDeploymentFailed, e.Contract, e.Stage, e.Err)
}

// Unwrap exposes both ErrDeploymentFailed and the underlying cause to errors.Is and errors.As
func (e *DeploymentFailedError) Unwrap() []error {
	return []error{ErrDeploymentFailed, e.Err}
}

// NewDeploymentFailedError builds a DeploymentFailedError
func NewDeploymentFailedError(stage DeploymentStage, contract string, err error) *DeploymentFailedError {
	return &DeploymentFailedError{Stage: stage, Contract: contract, Err: err}
}

// ContractNotFoundError is returned when no indexed artifact matches a contract name.
// Suggestions holds close names from the index, if any.
type ContractNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e ContractNotFoundError) Error() string {
	msg := fmt.Sprintf("no compiled artifact found for contract %q", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean: %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// Is reports whether target is ErrContractNotFound or ErrNotFound
func (e ContractNotFoundError) Is(target error) bool {
	return target == ErrContractNotFound || target == ErrNotFound
}

// AmbiguousContractError is returned when a bare contract name matches artifacts
// from several source files and no interactive selection is possible.
// A "path:Name" key resolves the ambiguity.
type AmbiguousContractError struct {
	Name    string
	Matches []*models.Contract
}

func (e AmbiguousContractError) Error() string {
	sorted := make([]*models.Contract, len(e.Matches))
	copy(sorted, e.Matches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Key() < sorted[j].Key()
	})

	var suggestions []string
	for _, contract := range sorted {
		suggestions = append(suggestions, fmt.Sprintf("  - %s (%s)", contract.Name, contract.Path))
	}

	return fmt.Sprintf("multiple contracts found named %q - use path:contract format to disambiguate:\n%s",
		e.Name, strings.Join(suggestions, "\n"))
}
