package ws

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/gofiber/contrib/websocket"

	"github.com/emandor/lemme_relay/internal/relay"
	"github.com/emandor/lemme_relay/internal/telemetry"
)

type Event string

const (
	EventAnswered Event = "relay.event.answered"
	EventError    Event = "relay.event.error"
)

type PayloadEvent struct {
	Event Event `json:"event"`
	Data  any   `json:"data,omitempty"`
}

type ClientMessage struct {
	Query *string `json:"query"`
}

var active atomic.Int64

// Active is the number of open websocket connections.
func Active() int64 { return active.Load() }

// Handle answers every {"query": ...} message on the connection with one event.
func Handle(svc relay.Answerer) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		active.Add(1)
		tlog := telemetry.L().With().Str("module", "ws").Str("remote", c.RemoteAddr().String()).Logger()
		tlog.Info().Msg("ws_connected")
		defer func() {
			active.Add(-1)
			_ = c.Close()
			tlog.Info().Msg("ws_disconnected")
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}
			if err := c.WriteJSON(Reply(context.Background(), svc, msg)); err != nil {
				tlog.Warn().Err(err).Msg("ws_write_failed")
				break
			}
		}
	}
}

// Reply runs one client message through the relay.
func Reply(ctx context.Context, svc relay.Answerer, msg []byte) PayloadEvent {
	var cm ClientMessage
	if err := json.Unmarshal(msg, &cm); err != nil || cm.Query == nil {
		return PayloadEvent{Event: EventError, Data: "invalid message"}
	}

	res, err := svc.Answer(ctx, *cm.Query)
	if err != nil {
		log := telemetry.L().With().Str("module", "ws").Logger()
		log.Error().Err(err).Msg("relay_failed")
		return PayloadEvent{Event: EventError, Data: "internal error"}
	}
	return PayloadEvent{Event: EventAnswered, Data: res}
}
