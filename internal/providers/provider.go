package providers

import (
	"github.com/emandor/lemme_relay/internal/config"
)

type SourceName string

const (
	SourceGPT      SourceName = "gpt"
	SourceDeepSeek SourceName = "deepseek"
	SourceClaude   SourceName = "claude"
	SourceGemini   SourceName = "gemini"
)

// Provider is one OpenAI-compatible chat-completion upstream.
type Provider struct {
	Name     SourceName
	Endpoint string
	Model    string
	Key      string
}

var endpoints = map[SourceName]string{
	SourceGPT:      "https://api.openai.com/v1/chat/completions",
	SourceDeepSeek: "https://api.deepseek.com/v1/chat/completions",
	SourceClaude:   "https://api.anthropic.com/v1/chat/completions",
	SourceGemini:   "https://generativelanguage.googleapis.com/v1beta/openai/chat/completions",
}

// Known reports whether name is one of the registry's providers.
func Known(name string) bool {
	_, ok := endpoints[SourceName(name)]
	return ok
}

// Registry builds every known provider from cfg, enabled or not.
func Registry(cfg *config.Config) []Provider {
	return []Provider{
		{Name: SourceGPT, Endpoint: endpoints[SourceGPT], Model: cfg.GPTModel, Key: cfg.GPTKey},
		{Name: SourceDeepSeek, Endpoint: endpoints[SourceDeepSeek], Model: cfg.DeepSeekModel, Key: cfg.DeepSeekKey},
		{Name: SourceClaude, Endpoint: endpoints[SourceClaude], Model: cfg.ClaudeModel, Key: cfg.ClaudeKey},
		{Name: SourceGemini, Endpoint: endpoints[SourceGemini], Model: cfg.GeminiModel, Key: cfg.GeminiKey},
	}
}
