package repositories

import (
	"fmt"

	domainRepos "github.com/rios0rios0/cup/internal/domain/repositories"
)

// ProviderFactory builds a GithostRepository bound to an auth token.
type ProviderFactory func(token string) (domainRepos.GithostRepository, error)

// ProviderRegistry manages all registered Git hosting implementations.
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register adds a provider factory under the given name (e.g. "github").
func (it *ProviderRegistry) Register(name string, factory ProviderFactory) {
	it.providers[name] = factory
}

// Get returns a configured provider instance for the given name and token.
func (it *ProviderRegistry) Get(name, token string) (domainRepos.GithostRepository, error) {
	factory, ok := it.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider type: %q", name)
	}
	provider, err := factory(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider %q: %w", name, err)
	}
	return provider, nil
}
