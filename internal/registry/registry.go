// ABOUTME: Model registry: discovers, caches, and resolves chat model endpoints
// ABOUTME: Owns the preference fallback chain from cached choice to interactive picker

package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/promptboost/promptboost/internal/log"
	"github.com/promptboost/promptboost/pkg/ai"
)

// ModelLister queries the host for available chat models.
type ModelLister interface {
	ListModels(ctx context.Context) ([]ai.Model, error)
}

// PreferenceStore persists the preferred model name.
type PreferenceStore interface {
	Preferred() string
	SetPreferred(name string) error
}

// UI supplies the interactive pieces of resolution so non-interactive
// callers can substitute fakes.
type UI interface {
	// Confirm reports whether the user accepted the question.
	Confirm(ctx context.Context, question string) (bool, error)
	// Pick returns the chosen model, or nil when the chooser was dismissed.
	Pick(ctx context.Context, models []ai.Model) (*ai.Model, error)
}

// Registry caches the host's available model endpoints.
type Registry struct {
	lister ModelLister
	prefs  PreferenceStore
	vendor string

	mu     sync.RWMutex
	models []ai.Model

	group singleflight.Group
}

// New builds a registry with an empty cache. vendor, when non-empty,
// restricts discovery to models of that family.
func New(lister ModelLister, prefs PreferenceStore, vendor string) *Registry {
	return &Registry{lister: lister, prefs: prefs, vendor: vendor}
}

// Refresh queries the host and replaces the cache with the filtered result.
// On failure the previous cache is kept and the error is returned for
// logging only; callers continue on cached state. Concurrent calls share a
// single in-flight query.
func (r *Registry) Refresh(ctx context.Context) error {
	_, err, _ := r.group.Do("refresh", func() (any, error) {
		models, err := r.lister.ListModels(ctx)
		if err != nil {
			log.Warn("model discovery failed: %v", err)
			return nil, err
		}

		filtered := r.filter(models)
		r.mu.Lock()
		r.models = filtered
		r.mu.Unlock()

		names := make([]string, len(filtered))
		for i, m := range filtered {
			names[i] = m.Name
		}
		log.Info("discovered %d models: %s", len(filtered), strings.Join(names, ", "))
		return nil, nil
	})
	return err
}

// Seed replaces the cache without querying the host, typically from a
// snapshot saved by an earlier run. The same filtering as Refresh applies,
// so a stale snapshot cannot smuggle excluded entries into the cache.
func (r *Registry) Seed(models []ai.Model) {
	filtered := r.filter(models)
	r.mu.Lock()
	r.models = filtered
	r.mu.Unlock()
	log.Debug("seeded %d models from snapshot", len(filtered))
}

// filter drops the "auto" sentinel and applies the vendor restriction.
func (r *Registry) filter(models []ai.Model) []ai.Model {
	out := make([]ai.Model, 0, len(models))
	for _, m := range models {
		if m.ID == "auto" {
			continue
		}
		if r.vendor != "" && !strings.EqualFold(m.Family, r.vendor) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Models returns a snapshot copy of the cache.
func (r *Registry) Models() []ai.Model {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ai.Model, len(r.models))
	copy(out, r.models)
	return out
}

// Find returns the first cached model whose name or ID equals name, or nil
// when absent. Absence is not an error.
func (r *Registry) Find(name string) *ai.Model {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.models {
		if r.models[i].Name == name || r.models[i].ID == name {
			m := r.models[i]
			return &m
		}
	}
	return nil
}

// Resolve returns the model to use for a boost request, or nil when no
// selection was made. The chain: empty cache warns and yields nil; a cached
// preference that resolves is used directly; a stale preference asks before
// falling through to the chooser; any new choice is persisted before
// returning.
func (r *Registry) Resolve(ctx context.Context, ui UI) (*ai.Model, error) {
	models := r.Models()
	if len(models) == 0 {
		log.Warn("no models available; refresh the model list or check the endpoint")
		return nil, nil
	}

	if pref := r.prefs.Preferred(); pref != "" {
		if m := r.Find(pref); m != nil {
			return m, nil
		}
		ok, err := ui.Confirm(ctx, fmt.Sprintf("Preferred model %q is not available. Choose another?", pref))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
	}

	choice, err := ui.Pick(ctx, models)
	if err != nil {
		return nil, err
	}
	if choice == nil {
		return nil, nil
	}

	// Persistence failure loses the default, not the session's choice.
	if err := r.prefs.SetPreferred(choice.Name); err != nil {
		log.Warn("persisting preferred model: %v", err)
	} else {
		log.Info("preferred model set to %q", choice.Name)
	}
	return choice, nil
}

// HeadlessUI declines every confirm and dismisses every chooser, so
// resolution relies solely on the persisted preference. Used by the MCP
// server and non-terminal invocations.
type HeadlessUI struct{}

func (HeadlessUI) Confirm(ctx context.Context, question string) (bool, error) {
	return false, nil
}

func (HeadlessUI) Pick(ctx context.Context, models []ai.Model) (*ai.Model, error) {
	return nil, nil
}
