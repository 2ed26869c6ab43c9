package openai

import (
	openaiapi "github.com/sashabaranov/go-openai"
)

// newClient builds an API client. baseURL overrides the public endpoint and
// is used for proxies and tests.
func newClient(apiKey, baseURL string) *openaiapi.Client {
	cfg := openaiapi.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openaiapi.NewClientWithConfig(cfg)
}
