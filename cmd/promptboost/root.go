// ABOUTME: Root cobra command plus shared wiring for settings, providers, and the registry
// ABOUTME: Loads .env, configures logging, and registers the transport providers

package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/promptboost/promptboost/internal/config"
	"github.com/promptboost/promptboost/internal/log"
	"github.com/promptboost/promptboost/internal/registry"
	"github.com/promptboost/promptboost/pkg/ai"
	"github.com/promptboost/promptboost/pkg/ai/provider/anthropic"
	"github.com/promptboost/promptboost/pkg/ai/provider/openai"
)

var rootCmdVerbose bool

var rootCmd = &cobra.Command{
	Use:   "promptboost",
	Short: "Enhance prompts with your configured model",
	Long: "promptboost augments a user-written prompt with an editable instruction\n" +
		"template and streams back an improved version from a chat-completion endpoint.\n\n" +
		"Configuration lives in ~/.promptboost/settings.json; the instruction template\n" +
		"in ~/.promptboost/boost.prompt.md. The endpoint can also be set through the\n" +
		"PROMPTBOOST_BASE_URL, PROMPTBOOST_API, and PROMPTBOOST_MODEL environment\n" +
		"variables, and API keys are read from the environment (a .env file in the\n" +
		"working directory is loaded first).",
	Version:           fmt.Sprintf("%s (%s) built %s", version, commit, date),
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: initRoot,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootCmdVerbose, "verbose", "v", false, "enable debug logging")
}

func initRoot(_ *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	if rootCmdVerbose {
		log.SetLevel(log.LevelDebug)
	}

	// Diagnostics go to a file so stdout stays reserved for prompt text.
	if err := log.SetFile(config.LogFile()); err != nil {
		log.Warn("log file: %v", err)
	}

	registerProviders()
	return nil
}

func registerProviders() {
	ai.RegisterProvider(ai.ApiOpenAI, func(apiKey, baseURL string) ai.ApiProvider {
		return openai.New(apiKey, baseURL)
	})
	ai.RegisterProvider(ai.ApiAnthropic, func(apiKey, baseURL string) ai.ApiProvider {
		return anthropic.New(apiKey, baseURL)
	})
}

// loadSettings reads the global settings, tolerating a missing or broken
// file; a broken file is logged and defaults apply.
func loadSettings() *config.Settings {
	settings, err := config.Load()
	if err != nil {
		log.Warn("settings: %v", err)
		return &config.Settings{}
	}
	return settings
}

func buildProvider(settings *config.Settings) (ai.ApiProvider, error) {
	api := settings.Api()
	provider := ai.GetProvider(api, settings.APIKey(), settings.Endpoint.BaseURL)
	if provider == nil {
		return nil, fmt.Errorf("no provider registered for api %q", api)
	}
	return provider, nil
}

// prefStore adapts Settings to the registry's preference interface.
type prefStore struct {
	settings *config.Settings
}

func (p prefStore) Preferred() string { return p.settings.PreferredModel }

func (p prefStore) SetPreferred(name string) error {
	p.settings.PreferredModel = name
	return config.SetPreferredModel(name)
}

func newRegistry(provider ai.ApiProvider, settings *config.Settings) *registry.Registry {
	return registry.New(provider, prefStore{settings}, settings.Vendor)
}

// refreshOrSeed queries the host for models, falling back to the snapshot
// from a previous run when the host is unreachable. Discovery failure is
// never fatal here; callers see whatever the cache holds.
func refreshOrSeed(ctx context.Context, reg *registry.Registry) {
	if err := reg.Refresh(ctx); err != nil {
		cached, cerr := registry.LoadCache(config.ModelsCacheFile())
		if cerr == nil && len(cached) > 0 {
			reg.Seed(cached)
			log.Warn("using %d models from the last run", len(cached))
		}
		return
	}
	if err := registry.SaveCache(config.ModelsCacheFile(), reg.Models()); err != nil {
		log.Warn("model cache: %v", err)
	}
}
