// ABOUTME: Provider registry for mapping API types to provider factories
// ABOUTME: Thread-safe registration and lookup of ApiProvider implementations

package ai

import (
	"context"
	"sync"
)

// ProviderFactory creates an ApiProvider given an API key and base URL
// override (both optional; providers fall back to env vars and defaults).
type ProviderFactory func(apiKey, baseURL string) ApiProvider

// ApiProvider is the interface all LLM providers implement.
type ApiProvider interface {
	// Api returns the provider's API identifier.
	Api() Api

	// ListModels queries the host for its available chat models.
	// The returned descriptors carry display names when the host provides them.
	ListModels(ctx context.Context) ([]Model, error)

	// Stream initiates a streaming LLM call and returns an EventStream.
	// The context.Context controls cancellation of the underlying HTTP request.
	Stream(ctx context.Context, model *Model, llmCtx *Context, opts *StreamOptions) *EventStream
}

var (
	registryMu sync.RWMutex
	registry   = make(map[Api]ProviderFactory)
)

// RegisterProvider registers a factory for the given API.
func RegisterProvider(api Api, factory ProviderFactory) {
	registryMu.Lock()
	registry[api] = factory
	registryMu.Unlock()
}

// GetProvider returns a provider for the given API with optional credentials.
// Returns nil if no provider is registered.
func GetProvider(api Api, apiKey, baseURL string) ApiProvider {
	registryMu.RLock()
	factory, ok := registry[api]
	registryMu.RUnlock()
	if !ok {
		return nil
	}
	return factory(apiKey, baseURL)
}

// HasProvider checks if a provider is registered for the given API.
func HasProvider(api Api) bool {
	registryMu.RLock()
	_, ok := registry[api]
	registryMu.RUnlock()
	return ok
}
