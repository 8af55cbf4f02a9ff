// ABOUTME: Tests for doctor: healthy report, dead endpoint, preferred model states
// ABOUTME: Asserts on report lines rather than exact tabwriter spacing

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunDoctor_Healthy(t *testing.T) {
	srv := fakeGateway(t, "unused")
	setupEnv(t, srv.URL)
	t.Setenv("PROMPTBOOST_MODEL", "GPT-4o")

	cmd, out, _ := newTestCmd()
	if err := runDoctor(cmd, nil); err != nil {
		t.Fatalf("runDoctor returned error: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"missing (defaults apply)",
		srv.URL,
		"from OPENAI_API_KEY",
		"built-in default",
		"1 available",
		"GPT-4o",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestRunDoctor_DeadEndpointExitsNonZero(t *testing.T) {
	setupEnv(t, deadHostURL(t))

	cmd, out, _ := newTestCmd()
	err := runDoctor(cmd, nil)

	var ee *exitError
	if !errors.As(err, &ee) || ee.code != 1 {
		t.Fatalf("err = %v, want exitError with code 1", err)
	}
	if !strings.Contains(out.String(), "discovery failed") {
		t.Errorf("output = %q, want a discovery failure line", out.String())
	}
}

func TestRunDoctor_StalePreferred(t *testing.T) {
	srv := fakeGateway(t, "unused")
	setupEnv(t, srv.URL)
	t.Setenv("PROMPTBOOST_MODEL", "retired-model")

	cmd, out, _ := newTestCmd()
	if err := runDoctor(cmd, nil); err != nil {
		t.Fatalf("runDoctor returned error: %v", err)
	}
	if !strings.Contains(out.String(), "retired-model (not in the current model list)") {
		t.Errorf("output = %q, want a stale-preference note", out.String())
	}
}

func TestRunDoctor_ReportsCustomInstructions(t *testing.T) {
	srv := fakeGateway(t, "unused")
	setupEnv(t, srv.URL)

	dir := filepath.Join(os.Getenv("HOME"), ".promptboost")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	content := "---\nname: strict\ndescription: keeps prompts terse\n---\nBe terse.\n"
	if err := os.WriteFile(filepath.Join(dir, "boost.prompt.md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd, out, _ := newTestCmd()
	if err := runDoctor(cmd, nil); err != nil {
		t.Fatalf("runDoctor returned error: %v", err)
	}
	if !strings.Contains(out.String(), "keeps prompts terse") {
		t.Errorf("output = %q, want the frontmatter description", out.String())
	}
}
