package relay

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emandor/lemme_relay/internal/providers"
)

type recordingCaller struct {
	calls   []string
	answers map[string]string
	fail    map[string]error
}

func (r *recordingCaller) Call(_ context.Context, name, _ string) (string, error) {
	r.calls = append(r.calls, name)
	if err := r.fail[name]; err != nil {
		return "", err
	}
	return r.answers[name], nil
}

func TestAnswer_CallsEnabledInOrder(t *testing.T) {
	rc := &recordingCaller{answers: map[string]string{"gpt": "2", "deepseek": "2", "claude": "3"}}
	svc := NewService(rc, []string{"gpt", "deepseek", "claude"})

	res, err := svc.Answer(context.Background(), "What is 2+2? 1) 3 2) 4 3) 5")
	require.NoError(t, err)

	assert.Equal(t, []string{"gpt", "deepseek", "claude"}, rc.calls)
	assert.Equal(t, Result{"gpt": "2", "deepseek": "2", "claude": "3"}, res)
}

func TestAnswer_FirstFailureAbortsRequest(t *testing.T) {
	boom := errors.New("deepseek: connection reset")
	rc := &recordingCaller{fail: map[string]error{"deepseek": boom}}
	svc := NewService(rc, []string{"gpt", "deepseek", "claude"})

	res, err := svc.Answer(context.Background(), "q")

	assert.Nil(t, res)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"gpt", "deepseek"}, rc.calls)
}

func TestProviders_ReturnsCopy(t *testing.T) {
	svc := NewService(&recordingCaller{}, []string{"gpt", "claude"})

	list := svc.Providers()
	list[0] = "gemini"

	assert.Equal(t, []string{"gpt", "claude"}, svc.Providers())
}

func TestAnswer_ThroughProviderCaller(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"2"}}]}`))
	}))
	t.Cleanup(srv.Close)

	var list []providers.Provider
	for _, name := range []providers.SourceName{providers.SourceGPT, providers.SourceDeepSeek, providers.SourceClaude, providers.SourceGemini} {
		list = append(list, providers.Provider{Name: name, Endpoint: srv.URL, Model: "m"})
	}
	svc := NewService(providers.NewCaller(list), []string{"gpt", "deepseek", "claude"})

	for _, q := range []string{"What is 2+2? 1) 3 2) 4 3) 5", ""} {
		res, err := svc.Answer(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, Result{"gpt": "2", "deepseek": "2", "claude": "2"}, res, "query %q", q)
	}
}
