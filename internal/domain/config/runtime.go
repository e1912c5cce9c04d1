package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Deployment target
	Contract   string // contract name or path:name, defaults to "Energy"
	RPCURL     string
	ChainID    uint64 // 0 accepts whatever chain the endpoint serves
	PrivateKey string //nolint:gosec // resolved from env at startup, never persisted

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration

	// Artifact locations, relative to ProjectRoot
	ArtifactDirs []string

	// Resolved configurations
	FoundryConfig *FoundryConfig // nil when the project has no foundry.toml
}
