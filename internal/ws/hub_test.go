package ws

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/emandor/lemme_relay/internal/relay"
)

type mockAnswerer struct {
	mock.Mock
}

func (m *mockAnswerer) Answer(ctx context.Context, query string) (relay.Result, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(relay.Result), args.Error(1)
}

func (m *mockAnswerer) Providers() []string {
	return m.Called().Get(0).([]string)
}

func TestReply_Answered(t *testing.T) {
	svc := new(mockAnswerer)
	want := relay.Result{"gpt": "2", "deepseek": "2", "claude": "2"}
	svc.On("Answer", mock.Anything, "What is 2+2? 1) 3 2) 4").Return(want, nil)

	got := Reply(context.Background(), svc, []byte(`{"query":"What is 2+2? 1) 3 2) 4"}`))

	assert.Equal(t, EventAnswered, got.Event)
	assert.Equal(t, want, got.Data)
	svc.AssertExpectations(t)
}

func TestReply_InvalidMessage(t *testing.T) {
	svc := new(mockAnswerer)

	for _, msg := range []string{"hello", `{"q":"x"}`, `[]`} {
		got := Reply(context.Background(), svc, []byte(msg))
		assert.Equal(t, EventError, got.Event, msg)
		assert.Equal(t, "invalid message", got.Data)
	}
	svc.AssertNotCalled(t, "Answer", mock.Anything, mock.Anything)
}

func TestReply_RelayError(t *testing.T) {
	svc := new(mockAnswerer)
	svc.On("Answer", mock.Anything, "").Return(nil, errors.New("relay: claude: EOF"))

	got := Reply(context.Background(), svc, []byte(`{"query":""}`))

	assert.Equal(t, EventError, got.Event)
	assert.Equal(t, "internal error", got.Data)
}

func TestActive_StartsAtZero(t *testing.T) {
	assert.Zero(t, Active())
}
