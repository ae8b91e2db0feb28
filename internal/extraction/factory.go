package extraction

import (
	"fmt"
	"sort"
	"sync"

	"volunteerhub/internal/config"
	"volunteerhub/internal/port"
)

// ProviderFactory is a function that creates a LanguageModel from a provider config.
type ProviderFactory func(cfg *config.ProviderConfig) (port.LanguageModel, error)

// registry of provider factories, populated by RegisterProvider from cmd/server.
var (
	providersMu sync.RWMutex
	providers   = map[string]ProviderFactory{}
)

// RegisterProvider registers a model provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providersMu.Lock()
	defer providersMu.Unlock()
	providers[name] = factory
}

// Providers returns the registered provider names in sorted order.
func Providers() []string {
	providersMu.RLock()
	defer providersMu.RUnlock()
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewModel creates a LanguageModel from a provider config using the registered factory.
func NewModel(cfg *config.ProviderConfig) (port.LanguageModel, error) {
	providersMu.RLock()
	factory, ok := providers[cfg.Provider]
	providersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown model provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// NewChain builds the model used by the service: the primary provider alone, or a
// FallbackModel over every configured tier in order.
func NewChain(cfg *config.ExtractionConfig) (port.LanguageModel, error) {
	tiers := []*config.ProviderConfig{cfg.PrimaryConfig(), cfg.SecondaryConfig(), cfg.TertiaryConfig()}

	var models []port.LanguageModel
	var names []string
	for _, tier := range tiers {
		if tier == nil || tier.Provider == "" {
			continue
		}
		m, err := NewModel(tier)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
		names = append(names, tier.Provider)
	}

	switch len(models) {
	case 0:
		return nil, fmt.Errorf("no extraction provider configured")
	case 1:
		return models[0], nil
	default:
		return NewFallbackModel(models, names), nil
	}
}
