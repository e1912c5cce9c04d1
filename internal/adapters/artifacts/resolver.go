package artifacts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gridledger/energy-deploy/internal/domain"
	"github.com/gridledger/energy-deploy/internal/domain/config"
	"github.com/gridledger/energy-deploy/internal/domain/models"
	"github.com/gridledger/energy-deploy/internal/usecase"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

const maxSuggestions = 3

// ContractIndexerAdapter resolves contract names to factories using the artifact index
type ContractIndexerAdapter struct {
	cfg      *config.RuntimeConfig
	indexer  *Indexer
	selector usecase.InteractiveSelector
}

// NewContractIndexerAdapter creates a new adapter. Artifacts are indexed lazily on first lookup.
func NewContractIndexerAdapter(cfg *config.RuntimeConfig, selector usecase.InteractiveSelector, log *slog.Logger) *ContractIndexerAdapter {
	return &ContractIndexerAdapter{
		cfg:      cfg,
		indexer:  NewIndexer(cfg.ProjectRoot, cfg.ArtifactDirs, log),
		selector: selector,
	}
}

// GetContractFactory resolves a contract name or "path:Name" key to a factory
func (a *ContractIndexerAdapter) GetContractFactory(ctx context.Context, name string) (*models.ContractFactory, error) {
	matches, err := a.lookup(name)
	if err != nil {
		return nil, err
	}

	var contract *models.Contract
	switch {
	case len(matches) == 0:
		return nil, domain.ContractNotFoundError{Name: name, Suggestions: a.suggest(ctx, name)}
	case len(matches) == 1:
		contract = matches[0]
	case a.cfg.NonInteractive || a.selector == nil:
		return nil, domain.AmbiguousContractError{Name: name, Matches: matches}
	default:
		contract, err = a.selector.SelectContract(ctx, matches, fmt.Sprintf("Multiple contracts named %s, select one", name))
		if err != nil {
			return nil, err
		}
	}

	return LoadFactory(a.cfg.ProjectRoot, contract)
}

// SearchContracts returns contracts whose name fuzzily matches the given name
func (a *ContractIndexerAdapter) SearchContracts(ctx context.Context, name string) []*models.Contract {
	if _, err := a.lookup(name); err != nil {
		return nil
	}
	var results []*models.Contract
	for _, match := range fuzzy.Find(name, a.indexer.Names()) {
		results = append(results, a.indexer.Lookup(match.Str)...)
	}
	return results
}

func (a *ContractIndexerAdapter) lookup(name string) ([]*models.Contract, error) {
	if !a.indexer.Indexed() {
		if err := a.indexer.Index(); err != nil {
			return nil, err
		}
	}
	return a.indexer.Lookup(strings.TrimSpace(name)), nil
}

// suggest returns up to maxSuggestions indexed names close to name
func (a *ContractIndexerAdapter) suggest(ctx context.Context, name string) []string {
	if i := strings.LastIndex(name, ":"); i != -1 {
		name = name[i+1:]
	}

	suggestions := lo.Uniq(lo.Map(a.SearchContracts(ctx, name), func(c *models.Contract, _ int) string {
		return c.Name
	}))
	if len(suggestions) == 0 {
		// Fall back to substring matches in either direction
		lower := strings.ToLower(name)
		suggestions = lo.Filter(a.indexer.Names(), func(candidate string, _ int) bool {
			c := strings.ToLower(candidate)
			return strings.Contains(c, lower) || strings.Contains(lower, c)
		})
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// Ensure the adapter implements the interface
var _ usecase.ContractFactoryResolver = (*ContractIndexerAdapter)(nil)
