package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/emandor/lemme_relay/internal/telemetry"
)

// NotFound is returned (without error) for a provider name outside the registry.
const NotFound = "Model not found"

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Caller struct {
	providers map[SourceName]Provider
	client    Doer
	limiter   *rate.Limiter
	dryRun    bool
}

type Option func(*Caller)

func WithHTTPClient(d Doer) Option {
	return func(c *Caller) { c.client = d }
}

// WithRateLimit paces outbound calls across all providers; rps <= 0 disables it.
func WithRateLimit(rps int) Option {
	return func(c *Caller) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), rps)
		}
	}
}

func WithDryRun(on bool) Option {
	return func(c *Caller) { c.dryRun = on }
}

func NewCaller(list []Provider, opts ...Option) *Caller {
	c := &Caller{
		providers: make(map[SourceName]Provider, len(list)),
		// no timeout: a call blocks until the upstream answers or ctx ends
		client: &http.Client{},
	}
	for _, p := range list {
		c.providers[p.Name] = p
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// Call asks one provider the query and returns the raw answer text.
func (c *Caller) Call(ctx context.Context, name, query string) (string, error) {
	p, ok := c.providers[SourceName(name)]
	if !ok {
		return NotFound, nil
	}

	log := telemetry.L().With().Str("provider", name).Logger()

	// DRY_RUN mode: skip API call
	if c.dryRun {
		log.Info().Msg("provider_dry_run")
		return "1", nil
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}
	}

	b, err := json.Marshal(chatRequest{
		Model: p.Model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemInstruction},
			{Role: "user", Content: BuildPrompt(query)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s: encode request: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("%s: build request: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.Key)

	t0 := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("provider_request_failed")
		return "", fmt.Errorf("%s: %w", name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: read response: %w", name, err)
	}
	log.Debug().Int("status_code", resp.StatusCode).Str("body", string(raw)).Msg("provider_response")

	// status is not validated, a failed call surfaces as missing fields
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Str("status", resp.Status).Msg("provider_http_status")
	}

	text, err := ExtractContent(raw)
	if err != nil {
		log.Error().Err(err).Int("body_len", len(raw)).Msg("provider_decode_failed")
		return "", fmt.Errorf("%s: %w", name, err)
	}

	log.Info().Int("len", len(text)).Int("latency_ms", int(time.Since(t0)/time.Millisecond)).Msg("provider_done")
	return text, nil
}
