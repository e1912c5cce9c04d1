package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gridledger/energy-deploy/internal/domain/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DataDirName is the per-project directory holding local config and the deployment record
const DataDirName = ".energy"

// projectMarkers identify the root of a contracts project
var projectMarkers = []string{"foundry.toml", "hardhat.config.js", "hardhat.config.ts"}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		projectRoot = FindProjectRoot()
	}
	projectRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}

	// .env must be loaded before any env-backed key is read
	loadEnvFiles(projectRoot)

	foundryConfig, err := loadFoundryConfig(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load foundry config: %w", err)
	}

	privateKey := v.GetString("private_key")
	if privateKey == "" {
		privateKey = os.Getenv("PRIVATE_KEY")
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, DataDirName),
		Contract:       strings.TrimSpace(v.GetString("contract")),
		RPCURL:         os.ExpandEnv(v.GetString("rpc_url")),
		ChainID:        v.GetUint64("chain_id"),
		PrivateKey:     ResolveSecret(privateKey),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		Timeout:        v.GetDuration("timeout"),
		FoundryConfig:  foundryConfig,
	}

	if dirs := v.GetStringSlice("artifacts"); len(dirs) > 0 {
		cfg.ArtifactDirs = dirs
	} else {
		cfg.ArtifactDirs = []string{foundryConfig.OutDir(), filepath.Join("artifacts", "contracts")}
	}

	return cfg, nil
}

// FindProjectRoot walks up from the current directory to the first directory
// holding a foundry.toml or hardhat config. Falls back to the current directory.
func FindProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	if root, ok := findProjectRootFrom(dir); ok {
		return root
	}
	return dir
}

func findProjectRootFrom(dir string) (string, bool) {
	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, true
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, DataDirName))

	// Set up environment variables
	v.SetEnvPrefix("ENERGY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("contract", "Energy")
	v.SetDefault("rpc_url", "http://127.0.0.1:8545")
	v.SetDefault("chain_id", 0)
	v.SetDefault("timeout", "5m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		})
	}

	return v
}
