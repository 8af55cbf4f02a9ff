// ABOUTME: Settings loading for ~/.promptboost/settings.json with env overrides
// ABOUTME: Covers the endpoint, model preference, eligibility patterns, and limits

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/promptboost/promptboost/pkg/ai"
)

// Defaults applied when settings omit a value.
const (
	DefaultMaxOutputChars = 512 * 1024
)

// DefaultFilePatterns matches prompt documents eligible for boosting.
var DefaultFilePatterns = []string{"*.prompt.md"}

// EndpointSettings selects the chat completion host.
type EndpointSettings struct {
	Api       string `json:"api,omitempty"`         // "openai" or "anthropic"
	BaseURL   string `json:"base_url,omitempty"`    // host base URL, ${VAR} expanded
	APIKeyEnv string `json:"api_key_env,omitempty"` // env var holding the API key
}

// Settings holds the persisted configuration.
type Settings struct {
	Endpoint              EndpointSettings `json:"endpoint"`
	Vendor                string           `json:"vendor,omitempty"`
	PreferredModel        string           `json:"preferred_model,omitempty"`
	FilePatterns          []string         `json:"file_patterns,omitempty"`
	MaxOutputChars        int              `json:"max_output_chars,omitempty"`
	RequestTimeoutSeconds int              `json:"request_timeout_seconds,omitempty"`
}

// Load reads the global settings file and applies environment overrides.
// A missing settings file yields defaults rather than an error.
func Load() (*Settings, error) {
	s, err := LoadFrom(SettingsFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	applyEnvOverrides(s)
	return s, nil
}

// LoadFrom reads Settings from a JSON file. Returns zero Settings plus the
// underlying error when the file does not exist.
func LoadFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// applyEnvOverrides layers PROMPTBOOST_* variables over file settings and
// expands ${VAR} references in the base URL.
func applyEnvOverrides(s *Settings) {
	if v := os.Getenv("PROMPTBOOST_BASE_URL"); v != "" {
		s.Endpoint.BaseURL = v
	}
	if v := os.Getenv("PROMPTBOOST_API"); v != "" {
		s.Endpoint.Api = v
	}
	if v := os.Getenv("PROMPTBOOST_MODEL"); v != "" {
		s.PreferredModel = v
	}
	s.Endpoint.BaseURL = expandEnv(s.Endpoint.BaseURL)
}

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// expandEnv replaces ${VAR} with os.Getenv(VAR). Unset vars become "".
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}

// Save writes the settings to the global settings file.
func (s *Settings) Save() error {
	return s.SaveTo(SettingsFile())
}

// SaveTo writes the settings as indented JSON with restricted permissions.
func (s *Settings) SaveTo(path string) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// SetPreferredModel rewrites only the preferred_model key in the global
// settings file.
func SetPreferredModel(name string) error {
	return SetPreferredModelIn(SettingsFile(), name)
}

// SetPreferredModelIn updates preferred_model in the given settings file.
// Keys written by other tools are preserved.
func SetPreferredModelIn(path, name string) error {
	raw := make(map[string]any)
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("reading settings: %w", err)
	}

	raw["preferred_model"] = name

	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	out, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// Api returns the configured API kind. Empty settings default to the
// OpenAI-compatible API; unrecognized values pass through so callers can
// report them.
func (s *Settings) Api() ai.Api {
	switch strings.ToLower(s.Endpoint.Api) {
	case "", "openai":
		return ai.ApiOpenAI
	case "anthropic":
		return ai.ApiAnthropic
	default:
		return ai.Api(strings.ToLower(s.Endpoint.Api))
	}
}

// APIKeySource returns the name of the environment variable the API key is
// read from: the configured api_key_env when its value is non-empty, else the
// conventional variable for the API kind. Empty when no candidate is set.
func (s *Settings) APIKeySource() string {
	candidates := make([]string, 0, 2)
	if s.Endpoint.APIKeyEnv != "" {
		candidates = append(candidates, s.Endpoint.APIKeyEnv)
	}
	switch s.Api() {
	case ai.ApiAnthropic:
		candidates = append(candidates, "ANTHROPIC_API_KEY")
	case ai.ApiOpenAI:
		candidates = append(candidates, "OPENAI_API_KEY")
	}
	for _, env := range candidates {
		if os.Getenv(env) != "" {
			return env
		}
	}
	return ""
}

// APIKey resolves the API key from the configured environment variable,
// falling back to the conventional variable for the API kind.
func (s *Settings) APIKey() string {
	if name := s.APIKeySource(); name != "" {
		return os.Getenv(name)
	}
	return ""
}

// FilePatternsOrDefault returns the eligibility patterns, or the built-in
// default when none are configured.
func (s *Settings) FilePatternsOrDefault() []string {
	if len(s.FilePatterns) > 0 {
		return s.FilePatterns
	}
	return DefaultFilePatterns
}

// MaxOutputCharsOrDefault returns the streamed-output size cap in characters.
// A negative setting disables the cap.
func (s *Settings) MaxOutputCharsOrDefault() int {
	switch {
	case s.MaxOutputChars < 0:
		return 0
	case s.MaxOutputChars == 0:
		return DefaultMaxOutputChars
	default:
		return s.MaxOutputChars
	}
}

// RequestTimeout returns the per-request wall clock bound. Zero means the
// transport default applies.
func (s *Settings) RequestTimeout() time.Duration {
	if s.RequestTimeoutSeconds > 0 {
		return time.Duration(s.RequestTimeoutSeconds) * time.Second
	}
	return 0
}
