package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv, AppPort string
	CORSOrigins     []string

	// call order of the relay; names must exist in the provider registry
	EnabledProviders []string

	GPTKey, GPTModel           string
	DeepSeekKey, DeepSeekModel string
	ClaudeKey, ClaudeModel     string
	GeminiKey, GeminiModel     string

	ProviderRPS int
	DryRun      bool

	RedisAddr       string
	RedisDB         int
	RateLimitMax    int
	RateLimitWindow time.Duration
	SecureHeaders   bool
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:           get("APP_ENV", "dev"),
		AppPort:          get("APP_PORT", "8000"),
		CORSOrigins:      split(get("CORS_ORIGINS", "http://localhost:3000,https://hopkin-test.vercel.app")),
		EnabledProviders: split(get("ENABLED_PROVIDERS", "gpt,deepseek,claude")),
		// credential names match the deployed environment, keep them lowercase
		GPTKey:          get("gpt_key", ""),
		GPTModel:        get("GPT_MODEL", "gpt-3.5-turbo"),
		DeepSeekKey:     get("deepseek_key", ""),
		DeepSeekModel:   get("DEEPSEEK_MODEL", "deepseek-chat"),
		ClaudeKey:       get("claude_key", ""),
		ClaudeModel:     get("CLAUDE_MODEL", "claude-3-7-sonnet-latest"),
		GeminiKey:       get("gemini_key", ""),
		GeminiModel:     get("GEMINI_MODEL", "gemini-2.0-flash"),
		ProviderRPS:     atoi(get("PROVIDER_RPS", "0")),
		DryRun:          parseBool(get("DRY_RUN", "false")),
		RedisAddr:       get("REDIS_ADDR", ""),
		RedisDB:         atoi(get("REDIS_DB", "0")),
		RateLimitMax:    atoi(get("RATE_LIMIT_MAX", "0")),
		RateLimitWindow: mustDuration(get("RATE_LIMIT_WINDOW", "1m")),
		SecureHeaders:   parseBool(get("SECURE_HEADERS", "false")),
	}
}

// Validate checks the enabled provider list against the known names.
func (c *Config) Validate(known func(string) bool) error {
	if len(c.EnabledProviders) == 0 {
		return fmt.Errorf("config: ENABLED_PROVIDERS is empty")
	}
	seen := make(map[string]struct{}, len(c.EnabledProviders))
	for _, name := range c.EnabledProviders {
		if !known(name) {
			return fmt.Errorf("config: unknown provider %q in ENABLED_PROVIDERS", name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("config: provider %q listed twice", name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func get(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func atoi(s string) int       { i, _ := strconv.Atoi(s); return i }
func parseBool(s string) bool { b, _ := strconv.ParseBool(s); return b }
func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Minute
	}
	return d
}

func split(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func GetEnv(k, d string) string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	return v
}
