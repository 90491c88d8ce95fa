package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	natsadapter "github.com/samirrijal/venuehub/internal/adapters/nats"
	"github.com/samirrijal/venuehub/internal/pkg/metrics"
)

// wsMessage is sent from client to toggle the map command feed.
type wsMessage struct {
	Action  string `json:"action"`  // "subscribe" | "unsubscribe"
	Channel string `json:"channel"` // only "map" is switchable
}

// wsEvent is pushed to clients.
type wsEvent struct {
	Type string      `json:"type"` // "venue" | "app_config" | "map"
	Data interface{} `json:"data"`
}

// WebSocketHandler pushes the current venue and app config to every client.
// Both replay their latest value on connect. Clients may additionally send
// {"action":"subscribe","channel":"map"} to receive raw map commands from NATS.
func WebSocketHandler(deps *Dependencies) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		remoteAddr := c.RemoteAddr().String()
		slog.Info("ws client connected", "remote", remoteAddr)

		var mu sync.Mutex
		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		venues, cancelVenues := deps.Venues.VenueObservable().Chan()
		defer cancelVenues()
		configs, cancelConfigs := deps.Configs.AppConfig().Chan()
		defer cancelConfigs()

		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				var err error
				select {
				case v := <-venues:
					err = writeJSON(wsEvent{Type: "venue", Data: v})
				case cfg := <-configs:
					err = writeJSON(wsEvent{Type: "app_config", Data: cfg})
				case <-ticker.C:
					mu.Lock()
					err = c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
				case <-done:
					return
				}
				if err != nil {
					return
				}
			}
		}()

		var mapSub *nats.Subscription
		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				_ = writeJSON(map[string]string{"error": "invalid JSON"})
				continue
			}
			if m.Channel != "map" {
				_ = writeJSON(map[string]string{"error": "unknown channel: " + m.Channel})
				continue
			}

			switch m.Action {
			case "subscribe":
				if mapSub != nil {
					_ = writeJSON(map[string]string{"status": "already subscribed", "channel": m.Channel})
					continue
				}
				if deps.NATS == nil {
					_ = writeJSON(map[string]string{"error": "map feed not available"})
					continue
				}
				s, err := deps.NATS.Subscribe(natsadapter.SubjectMapCommandAll, func(msg *nats.Msg) {
					_ = writeJSON(wsEvent{Type: "map", Data: json.RawMessage(msg.Data)})
				})
				if err != nil {
					_ = writeJSON(map[string]string{"error": "subscribe failed: " + err.Error()})
					continue
				}
				mapSub = s
				_ = writeJSON(map[string]string{"status": "subscribed", "channel": m.Channel})

			case "unsubscribe":
				if mapSub == nil {
					_ = writeJSON(map[string]string{"error": "not subscribed to " + m.Channel})
					continue
				}
				_ = mapSub.Unsubscribe()
				mapSub = nil
				_ = writeJSON(map[string]string{"status": "unsubscribed", "channel": m.Channel})

			default:
				_ = writeJSON(map[string]string{"error": "unknown action: " + m.Action})
			}
		}

		close(done)
		if mapSub != nil {
			_ = mapSub.Unsubscribe()
		}
		slog.Info("ws client disconnected", "remote", remoteAddr)
	}
}
