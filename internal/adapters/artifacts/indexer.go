package artifacts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gridledger/energy-deploy/internal/domain/models"
	"github.com/samber/lo"
)

// Indexer discovers compiled contract artifacts under the configured directories
type Indexer struct {
	projectRoot string
	dirs        []string
	log         *slog.Logger

	contracts map[string]*models.Contract   // key: "path:contractName"
	byName    map[string][]*models.Contract // key: contract name
	indexed   bool
	mu        sync.RWMutex
}

// NewIndexer creates a new artifact indexer. Relative dirs are resolved against projectRoot.
func NewIndexer(projectRoot string, dirs []string, log *slog.Logger) *Indexer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Indexer{
		projectRoot: projectRoot,
		dirs:        dirs,
		log:         log,
		contracts:   make(map[string]*models.Contract),
		byName:      make(map[string][]*models.Contract),
	}
}

// Index walks all artifact directories. Missing directories are skipped.
func (i *Indexer) Index() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.contracts = make(map[string]*models.Contract)
	i.byName = make(map[string][]*models.Contract)

	for _, dir := range i.dirs {
		root := dir
		if !filepath.IsAbs(root) {
			root = filepath.Join(i.projectRoot, dir)
		}
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			i.log.Debug("artifact directory not found", "dir", root)
			continue
		}

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if d.Name() == "build-info" {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
				return nil
			}
			return i.processArtifact(path)
		})
		if err != nil {
			return fmt.Errorf("failed to index artifacts in %s: %w", root, err)
		}
	}

	i.indexed = true
	i.log.Debug("indexed artifacts", "contracts", len(i.contracts))
	return nil
}

// processArtifact processes a single artifact file
func (i *Indexer) processArtifact(artifactPath string) error {
	data, err := os.ReadFile(artifactPath) //nolint:gosec // walked from configured artifact dirs
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		// Skip files that are not artifacts
		return nil
	}

	// Interfaces and abstract contracts have no creation code
	if !hasBytecode(artifact.Bytecode.Object) {
		return nil
	}

	contractName, sourceName, format := identify(&artifact)
	if contractName == "" || sourceName == "" {
		return nil
	}

	// Forge tests and scripts are not deployment targets
	if strings.HasSuffix(sourceName, ".t.sol") || strings.HasSuffix(sourceName, ".s.sol") {
		return nil
	}

	relArtifactPath, err := filepath.Rel(i.projectRoot, artifactPath)
	if err != nil {
		relArtifactPath = artifactPath
	}

	contract := &models.Contract{
		Name:         contractName,
		Path:         sourceName,
		ArtifactPath: relArtifactPath,
		Format:       format,
	}

	// Several solc versions can emit the same contract; first one wins
	if _, exists := i.contracts[contract.Key()]; exists {
		return nil
	}
	i.contracts[contract.Key()] = contract
	i.byName[contract.Name] = append(i.byName[contract.Name], contract)

	return nil
}

// identify extracts contract and source names from either artifact shape
func identify(artifact *models.Artifact) (string, string, models.ArtifactFormat) {
	for source, contract := range artifact.Metadata.Settings.CompilationTarget {
		return contract, source, models.ArtifactFormatFoundry
	}
	if artifact.ContractName != "" {
		return artifact.ContractName, artifact.SourceName, models.ArtifactFormatHardhat
	}
	return "", "", ""
}

func hasBytecode(object string) bool {
	return object != "" && object != "0x"
}

// Lookup returns the contracts matching a name or a "path:Name" key
func (i *Indexer) Lookup(key string) []*models.Contract {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if strings.Contains(key, ":") {
		if contract, ok := i.contracts[key]; ok {
			return []*models.Contract{contract}
		}
		return nil
	}

	matches := append([]*models.Contract(nil), i.byName[key]...)
	sort.Slice(matches, func(a, b int) bool { return matches[a].Key() < matches[b].Key() })
	return matches
}

// Names returns all indexed contract names, sorted
func (i *Indexer) Names() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	names := lo.Keys(i.byName)
	sort.Strings(names)
	return names
}

// Indexed reports whether Index has completed
func (i *Indexer) Indexed() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.indexed
}
