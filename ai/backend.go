package ai

import (
	"fmt"
	"strings"

	"YoDawg/core"
)

const (
	ollamaPrefix = "ollama:"
	ollamaApiKey = "ollama"
)

// Backend selects the model and the OpenAI compatible endpoint serving it.
type Backend struct {
	Model   string
	BaseURL string
	ApiKey  string
}

func (b Backend) IsOllama() bool {
	return b.ApiKey == ollamaApiKey
}

// ParseBackend resolves a model selector. "ollama:<model>" targets the configured Ollama
// endpoint, anything else the OpenAI endpoint. An empty selector falls back to fallback.
func ParseBackend(selector, fallback string, conf *core.Config) (Backend, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		selector = strings.TrimSpace(fallback)
	}
	if selector == "" {
		return Backend{}, fmt.Errorf("%w: no model selected", core.ErrConfiguration)
	}

	if strings.HasPrefix(selector, ollamaPrefix) {
		model := strings.TrimPrefix(selector, ollamaPrefix)
		if model == "" {
			return Backend{}, fmt.Errorf("%w: empty ollama model in %q", core.ErrConfiguration, selector)
		}
		return Backend{
			Model:   model,
			BaseURL: strings.TrimRight(conf.OllamaBaseURL, "/"),
			ApiKey:  ollamaApiKey,
		}, nil
	}

	return Backend{
		Model:   selector,
		BaseURL: strings.TrimRight(conf.OpenAIBaseURL, "/"),
		ApiKey:  conf.OpenAIApiKey,
	}, nil
}
