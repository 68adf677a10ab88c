package relay

import (
	"context"
	"fmt"

	"github.com/emandor/lemme_relay/internal/telemetry"
)

// Result maps provider name to the text that provider answered.
type Result map[string]string

type Caller interface {
	Call(ctx context.Context, name, query string) (string, error)
}

type Answerer interface {
	Answer(ctx context.Context, query string) (Result, error)
	Providers() []string
}

type Service struct {
	caller  Caller
	enabled []string
}

func NewService(caller Caller, enabled []string) *Service {
	return &Service{caller: caller, enabled: append([]string(nil), enabled...)}
}

// Answer asks every enabled provider in order, one after another.
// The first failing provider fails the whole query.
func (s *Service) Answer(ctx context.Context, query string) (Result, error) {
	log := telemetry.L().With().Int("query_len", len(query)).Logger()
	log.Debug().Strs("providers", s.enabled).Msg("relay_start")

	out := make(Result, len(s.enabled))
	for _, name := range s.enabled {
		ans, err := s.caller.Call(ctx, name, query)
		if err != nil {
			log.Error().Err(err).Str("provider", name).Msg("relay_failed")
			return nil, fmt.Errorf("relay: %w", err)
		}
		out[name] = ans
	}

	log.Info().Int("answers", len(out)).Msg("relay_done")
	return out, nil
}

func (s *Service) Providers() []string {
	return append([]string(nil), s.enabled...)
}
