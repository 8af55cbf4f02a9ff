// ABOUTME: Tests for instruction frontmatter parsing: basic, CRLF, unterminated
// ABOUTME: Verifies display metadata extraction leaves the body intact

package instructions

import (
	"testing"
)

func TestParseMeta_Basic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantName string
		wantDesc string
		wantBody string
	}{
		{
			name:     "name only",
			input:    "---\nname: boost\n---\nbody content",
			wantName: "boost",
			wantBody: "body content",
		},
		{
			name:     "name and description",
			input:    "---\nname: boost\ndescription: Prompt enhancement rules\n---\nremaining text",
			wantName: "boost",
			wantDesc: "Prompt enhancement rules",
			wantBody: "remaining text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			meta, body, err := ParseMeta(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if meta.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", meta.Name, tt.wantName)
			}
			if meta.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", meta.Description, tt.wantDesc)
			}
			if body != tt.wantBody {
				t.Errorf("Body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestParseMeta_CRLF(t *testing.T) {
	t.Parallel()

	input := "---\r\nname: boost\r\n---\r\nbody here"

	meta, body, err := ParseMeta(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Name != "boost" {
		t.Errorf("Name = %q, want %q", meta.Name, "boost")
	}
	if body != "body here" {
		t.Errorf("Body = %q, want %q", body, "body here")
	}
}

func TestParseMeta_NoFrontmatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"plain markdown", "# Instructions\n\nRewrite the prompt."},
		{"empty string", ""},
		{"four dashes", "----\nname: x\n----\nbody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			meta, body, err := ParseMeta(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if meta != (Meta{}) {
				t.Errorf("expected zero Meta, got %+v", meta)
			}
			if body != tt.input {
				t.Errorf("Body = %q, want original content", body)
			}
		})
	}
}

func TestParseMeta_Unterminated(t *testing.T) {
	t.Parallel()

	if _, _, err := ParseMeta("---\nname: x\nno closing delimiter"); err == nil {
		t.Fatal("expected error for unterminated frontmatter")
	}
}

func TestParseMeta_Empty(t *testing.T) {
	t.Parallel()

	meta, body, err := ParseMeta("---\n---\nbody here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta != (Meta{}) {
		t.Errorf("expected zero Meta, got %+v", meta)
	}
	if body != "body here" {
		t.Errorf("Body = %q, want %q", body, "body here")
	}
}

func TestParseMeta_DefaultTemplateHasNoFrontmatter(t *testing.T) {
	t.Parallel()

	meta, body, err := ParseMeta(defaultTemplate)
	if err != nil {
		t.Fatal(err)
	}
	if meta != (Meta{}) {
		t.Errorf("default template should carry no frontmatter, got %+v", meta)
	}
	if body != defaultTemplate {
		t.Error("body should be the full default template")
	}
}
