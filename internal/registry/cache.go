// ABOUTME: On-disk snapshot of the discovered model list
// ABOUTME: Lets later invocations resolve models while the host is unreachable

package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/promptboost/promptboost/pkg/ai"
)

// SaveCache writes the model list as JSON to path, creating parent
// directories as needed.
func SaveCache(path string, models []ai.Model) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	data, err := json.MarshalIndent(models, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling model cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing model cache: %w", err)
	}
	return nil
}

// LoadCache reads a model list snapshot written by SaveCache.
func LoadCache(path string) ([]ai.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var models []ai.Model
	if err := json.Unmarshal(data, &models); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return models, nil
}
