package app

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/relabs-tech/gesture_lock/internal/config"
	"github.com/relabs-tech/gesture_lock/internal/events"
)

//go:embed web
var webFiles embed.FS

const clientBuffer = 16

// hub keeps the latest event and fans new ones out to websocket clients.
type hub struct {
	log *zap.Logger

	mu      sync.RWMutex
	last    *events.Event
	clients map[chan events.Event]struct{}
}

func newHub(log *zap.Logger) *hub {
	return &hub{log: log, clients: make(map[chan events.Event]struct{})}
}

// ingest decodes an MQTT payload and broadcasts it.
func (h *hub) ingest(payload []byte) {
	ev, err := events.Unmarshal(payload)
	if err != nil {
		h.log.Warn("web: event unmarshal error", zap.Error(err))
		return
	}
	h.broadcast(ev)
}

func (h *hub) broadcast(ev events.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = &ev
	for ch := range h.clients {
		select {
		case ch <- ev:
		default:
			// slow client, it catches up from /api/status
		}
	}
}

func (h *hub) latest() (events.Event, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.last == nil {
		return events.Event{}, false
	}
	return *h.last, true
}

func (h *hub) subscribe() chan events.Event {
	ch := make(chan events.Event, clientBuffer)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *hub) unsubscribe(ch chan events.Event) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
}

func (h *hub) handleStatus(w http.ResponseWriter, _ *http.Request) {
	ev, ok := h.latest()
	if !ok {
		http.Error(w, "no data yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ev); err != nil {
		h.log.Warn("web: json encode error", zap.Error(err))
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// handleStream sends the latest event, then every new one, until the
// client goes away.
func (h *hub) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("web: websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ch := h.subscribe()
	defer h.unsubscribe(ch)

	// reader only notices the close
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if ev, ok := h.latest(); ok {
		if err := conn.WriteJSON(ev); err != nil {
			return
		}
	}
	for {
		select {
		case <-gone:
			return
		case <-r.Context().Done():
			return
		case ev := <-ch:
			conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteJSON(ev); err != nil {
				h.log.Debug("web: websocket write failed", zap.Error(err))
				return
			}
		}
	}
}

func (h *hub) routes() (http.Handler, error) {
	static, err := fs.Sub(webFiles, "web")
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", h.handleStatus)
	mux.HandleFunc("/ws", h.handleStream)
	mux.Handle("/", http.FileServer(http.FS(static)))
	return mux, nil
}

// RunWeb serves the lock status page fed from the MQTT event topic until
// ctx is cancelled.
func RunWeb(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if cfg.MQTTBroker == "" {
		return fmt.Errorf("web: MQTT_BROKER is not set")
	}
	h := newHub(log)
	handler, err := h.routes()
	if err != nil {
		return err
	}

	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDWeb, log)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	token := client.Subscribe(cfg.TopicEvents, 0, func(_ mqtt.Client, msg mqtt.Message) {
		h.ingest(msg.Payload())
	})
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("web: subscribe %s: %w", cfg.TopicEvents, token.Error())
	}
	log.Info("web: subscribed", zap.String("topic", cfg.TopicEvents))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.WebServerPort),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("web: listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("web: shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
