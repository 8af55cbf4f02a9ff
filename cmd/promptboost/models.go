// ABOUTME: models subcommands: list discovered chat models and select the preferred one
// ABOUTME: list reads the snapshot by default; --refresh queries the endpoint live

package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/promptboost/promptboost/internal/config"
	"github.com/promptboost/promptboost/internal/log"
	"github.com/promptboost/promptboost/internal/registry"
	"github.com/promptboost/promptboost/internal/tui"
)

var modelsListCmdRefresh bool

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Inspect and choose chat models",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the models offered by the configured endpoint",
	Args:  cobra.NoArgs,
	RunE:  runModelsList,
}

var modelsSelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Pick the preferred model interactively",
	Args:  cobra.NoArgs,
	RunE:  runModelsSelect,
}

func init() {
	modelsListCmd.Flags().BoolVar(&modelsListCmdRefresh, "refresh", false, "query the endpoint instead of the cached snapshot")
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsSelectCmd)
	rootCmd.AddCommand(modelsCmd)
}

func runModelsList(cmd *cobra.Command, _ []string) error {
	settings := loadSettings()
	provider, err := buildProvider(settings)
	if err != nil {
		return err
	}
	reg := newRegistry(provider, settings)

	if modelsListCmdRefresh {
		if err := reg.Refresh(cmd.Context()); err != nil {
			return fmt.Errorf("model discovery: %w", err)
		}
		if err := registry.SaveCache(config.ModelsCacheFile(), reg.Models()); err != nil {
			log.Warn("model cache: %v", err)
		}
	} else if cached, cerr := registry.LoadCache(config.ModelsCacheFile()); cerr == nil && len(cached) > 0 {
		reg.Seed(cached)
	} else {
		refreshOrSeed(cmd.Context(), reg)
	}

	models := reg.Models()
	if len(models) == 0 {
		return errors.New("no models available; check the endpoint with 'promptboost doctor'")
	}

	preferred := settings.PreferredModel
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  NAME\tID\tFAMILY")
	for _, m := range models {
		marker := "  "
		if preferred != "" && (m.Name == preferred || m.ID == preferred) {
			marker = "* "
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\n", marker, m.Name, m.ID, m.Family)
	}
	return w.Flush()
}

func runModelsSelect(cmd *cobra.Command, _ []string) error {
	if !tui.IsInteractive() {
		return errors.New("models select needs an interactive terminal")
	}

	settings := loadSettings()
	provider, err := buildProvider(settings)
	if err != nil {
		return err
	}
	reg := newRegistry(provider, settings)
	refreshOrSeed(cmd.Context(), reg)

	models := reg.Models()
	if len(models) == 0 {
		return errors.New("no models available; check the endpoint with 'promptboost doctor'")
	}

	choice, err := tui.InteractiveUI{}.Pick(cmd.Context(), models)
	if err != nil {
		return fmt.Errorf("model picker: %w", err)
	}
	if choice == nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "no model selected")
		return nil
	}

	if err := (prefStore{settings}).SetPreferred(choice.Name); err != nil {
		return fmt.Errorf("saving preference: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "preferred model set to %s\n", choice.Name)
	return nil
}
