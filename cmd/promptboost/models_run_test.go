// ABOUTME: Tests for models list and select: live listing, snapshot fallback, markers
// ABOUTME: Dead-host scenarios use a closed httptest server for refused connections

package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/promptboost/promptboost/internal/config"
	"github.com/promptboost/promptboost/internal/registry"
	"github.com/promptboost/promptboost/internal/tui"
	"github.com/promptboost/promptboost/pkg/ai"
)

func resetModelsFlags(t *testing.T) {
	t.Helper()
	orig := modelsListCmdRefresh
	t.Cleanup(func() { modelsListCmdRefresh = orig })
	modelsListCmdRefresh = false
}

// deadHostURL returns a URL nothing listens on.
func deadHostURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

func TestRunModelsList_Live(t *testing.T) {
	srv := fakeGateway(t, "unused")
	setupEnv(t, srv.URL)
	resetModelsFlags(t)

	cmd, out, _ := newTestCmd()
	if err := runModelsList(cmd, nil); err != nil {
		t.Fatalf("runModelsList returned error: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "NAME") || !strings.Contains(output, "FAMILY") {
		t.Errorf("output missing header: %s", output)
	}
	if !strings.Contains(output, "GPT-4o") || !strings.Contains(output, "gpt-4o") {
		t.Errorf("output missing the discovered model: %s", output)
	}
	if strings.Contains(output, "auto") {
		t.Errorf("output should not list the auto sentinel: %s", output)
	}
}

func TestRunModelsList_MarksPreferred(t *testing.T) {
	srv := fakeGateway(t, "unused")
	setupEnv(t, srv.URL)
	t.Setenv("PROMPTBOOST_MODEL", "GPT-4o")
	resetModelsFlags(t)

	cmd, out, _ := newTestCmd()
	if err := runModelsList(cmd, nil); err != nil {
		t.Fatalf("runModelsList returned error: %v", err)
	}
	if !strings.Contains(out.String(), "* GPT-4o") {
		t.Errorf("output = %q, want preferred marker on GPT-4o", out.String())
	}
}

func TestRunModelsList_UsesSnapshotWhenHostDown(t *testing.T) {
	setupEnv(t, deadHostURL(t))
	resetModelsFlags(t)

	snapshot := []ai.Model{{ID: "cached-model", Name: "Cached Model", Family: "azure", Api: ai.ApiOpenAI}}
	if err := registry.SaveCache(config.ModelsCacheFile(), snapshot); err != nil {
		t.Fatalf("SaveCache: %v", err)
	}

	cmd, out, _ := newTestCmd()
	if err := runModelsList(cmd, nil); err != nil {
		t.Fatalf("runModelsList returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Cached Model") {
		t.Errorf("output = %q, want the snapshot model", out.String())
	}
}

func TestRunModelsList_RefreshFailsAgainstDeadHost(t *testing.T) {
	setupEnv(t, deadHostURL(t))
	resetModelsFlags(t)
	modelsListCmdRefresh = true

	cmd, _, _ := newTestCmd()
	err := runModelsList(cmd, nil)
	if err == nil || !strings.Contains(err.Error(), "model discovery") {
		t.Fatalf("err = %v, want discovery error", err)
	}
}

func TestRunModelsList_NoModelsAnywhere(t *testing.T) {
	setupEnv(t, deadHostURL(t))
	resetModelsFlags(t)

	cmd, _, _ := newTestCmd()
	err := runModelsList(cmd, nil)
	if err == nil || !strings.Contains(err.Error(), "no models available") {
		t.Fatalf("err = %v, want no-models error", err)
	}
}

func TestRunModelsSelect_NeedsTerminal(t *testing.T) {
	if tui.IsInteractive() {
		t.Skip("needs a non-terminal stdin")
	}
	setupEnv(t, "http://unused.invalid")

	cmd, _, _ := newTestCmd()
	err := runModelsSelect(cmd, nil)
	if err == nil || !strings.Contains(err.Error(), "interactive terminal") {
		t.Fatalf("err = %v, want terminal-required error", err)
	}
}
