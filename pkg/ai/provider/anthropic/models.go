// ABOUTME: Model discovery via GET /v1/models for the Anthropic API
// ABOUTME: Maps list entries to ai.Model using display_name when present

package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/promptboost/promptboost/pkg/ai"
)

// modelList is the /v1/models response payload.
type modelList struct {
	Data []modelEntry `json:"data"`
}

type modelEntry struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// ListModels queries the API for its available models.
func (p *Provider) ListModels(ctx context.Context) ([]ai.Model, error) {
	resp, err := p.client.Do(ctx, http.MethodGet, modelsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, errBody)
	}

	var list modelList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decoding model list: %w", err)
	}

	models := make([]ai.Model, 0, len(list.Data))
	for _, e := range list.Data {
		name := e.DisplayName
		if name == "" {
			name = e.ID
		}
		models = append(models, ai.Model{
			ID:     e.ID,
			Name:   name,
			Family: "anthropic",
			Api:    ai.ApiAnthropic,
		})
	}
	return models, nil
}
