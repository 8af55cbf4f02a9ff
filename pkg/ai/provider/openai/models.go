// ABOUTME: Model discovery via GET /v1/models for OpenAI-compatible hosts
// ABOUTME: Maps list entries to ai.Model; display name falls back to the id

package openai

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

// modelEntry covers the OpenAI shape plus the display-name fields some
// gateways (LM Studio, LiteLLM) add on top of it.
type modelEntry struct {
	ID          string `json:"id"`
	OwnedBy     string `json:"owned_by"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// ListModels queries the host for its available chat models.
func (p *Provider) ListModels(ctx context.Context) ([]ai.Model, error) {
	resp, err := p.client.Do(ctx, http.MethodGet, modelsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, errBody)
	}

	var list modelList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decoding model list: %w", err)
	}

	models := make([]ai.Model, 0, len(list.Data))
	for _, e := range list.Data {
		name := e.DisplayName
		if name == "" {
			name = e.Name
		}
		if name == "" {
			name = e.ID
		}
		models = append(models, ai.Model{
			ID:     e.ID,
			Name:   name,
			Family: e.OwnedBy,
			Api:    ai.ApiOpenAI,
		})
	}
	return models, nil
}
