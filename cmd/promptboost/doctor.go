// ABOUTME: doctor command: reports configuration state and probes the endpoint
// ABOUTME: Exits non-zero when model discovery fails so scripts can gate on it

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/promptboost/promptboost/internal/config"
	"github.com/promptboost/promptboost/internal/instructions"
)

const doctorProbeTimeout = 10 * time.Second

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the configuration and the endpoint",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	settings := loadSettings()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	settingsLine := config.SettingsFile()
	if _, err := os.Stat(config.SettingsFile()); os.IsNotExist(err) {
		settingsLine = "missing (defaults apply)"
	} else if _, lerr := config.Load(); lerr != nil {
		settingsLine = fmt.Sprintf("%s (unreadable: %v)", config.SettingsFile(), lerr)
	}
	fmt.Fprintf(w, "settings\t%s\n", settingsLine)

	baseURL := settings.Endpoint.BaseURL
	if baseURL == "" {
		baseURL = "not set"
	}
	fmt.Fprintf(w, "endpoint\t%s (%s)\n", baseURL, settings.Api())

	if src := settings.APIKeySource(); src != "" {
		fmt.Fprintf(w, "api key\tfrom %s\n", src)
	} else {
		fmt.Fprintf(w, "api key\tnot set\n")
	}

	fmt.Fprintf(w, "instructions\t%s\n", describeInstructions())
	fmt.Fprintf(w, "log file\t%s\n", config.LogFile())

	modelsLine, preferredLine, probeErr := probeModels(cmd.Context(), settings)
	fmt.Fprintf(w, "models\t%s\n", modelsLine)
	fmt.Fprintf(w, "preferred\t%s\n", preferredLine)

	if err := w.Flush(); err != nil {
		return err
	}
	if probeErr != nil {
		return &exitError{code: 1, msg: fmt.Sprintf("error: endpoint check failed: %v", probeErr)}
	}
	return nil
}

// describeInstructions reports whether the template on disk is in effect or
// the built-in default applies, with the frontmatter description when one is
// set.
func describeInstructions() string {
	path := instructions.Path(config.GlobalDir())
	data, err := os.ReadFile(path)
	if err != nil || strings.TrimSpace(string(data)) == "" {
		return "built-in default"
	}
	line := path
	if meta, _, merr := instructions.ParseMeta(string(data)); merr == nil && meta.Description != "" {
		line += " (" + meta.Description + ")"
	}
	return line
}

// probeModels queries the endpoint for its model list and relates the
// preferred model to it. The probe has its own short timeout so doctor
// finishes quickly against a dead host.
func probeModels(ctx context.Context, settings *config.Settings) (modelsLine, preferredLine string, err error) {
	preferred := settings.PreferredModel
	preferredLine = "not set (the chooser will ask)"

	provider, err := buildProvider(settings)
	if err != nil {
		return err.Error(), preferredLine, err
	}

	probeCtx, cancel := context.WithTimeout(ctx, doctorProbeTimeout)
	defer cancel()

	reg := newRegistry(provider, settings)
	if err := reg.Refresh(probeCtx); err != nil {
		if preferred != "" {
			preferredLine = preferred
		}
		return fmt.Sprintf("discovery failed: %v", err), preferredLine, err
	}

	models := reg.Models()
	modelsLine = fmt.Sprintf("%d available", len(models))
	if preferred != "" {
		if reg.Find(preferred) != nil {
			preferredLine = preferred
		} else {
			preferredLine = fmt.Sprintf("%s (not in the current model list)", preferred)
		}
	}
	return modelsLine, preferredLine, nil
}
