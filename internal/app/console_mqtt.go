package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/relabs-tech/gesture_lock/internal/config"
	"github.com/relabs-tech/gesture_lock/internal/events"
	"github.com/relabs-tech/gesture_lock/internal/gesture"
)

// RunConsoleMQTT prints every lock event published on the event topic
// until ctx is cancelled.
func RunConsoleMQTT(ctx context.Context, cfg *config.Config, log *zap.Logger, out io.Writer) error {
	if cfg.MQTTBroker == "" {
		return fmt.Errorf("console: MQTT_BROKER is not set")
	}
	client, err := connectMQTT(cfg.MQTTBroker, cfg.MQTTClientIDConsole, log)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)

	lines := make(chan string, 16)
	token := client.Subscribe(cfg.TopicEvents, 0, func(_ mqtt.Client, msg mqtt.Message) {
		ev, err := events.Unmarshal(msg.Payload())
		if err != nil {
			log.Warn("console: event unmarshal error", zap.Error(err))
			return
		}
		select {
		case lines <- formatEvent(ev):
		default:
			log.Warn("console: dropping event, output is behind", zap.String("kind", string(ev.Kind)))
		}
	})
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("console: subscribe %s: %w", cfg.TopicEvents, token.Error())
	}
	log.Info("console: subscribed", zap.String("topic", cfg.TopicEvents))

	for {
		select {
		case <-ctx.Done():
			log.Info("console: shutting down")
			return nil
		case line := <-lines:
			fmt.Fprintln(out, line)
		}
	}
}

// formatEvent renders ev as one console line.
func formatEvent(ev events.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%-8s] %s state=%s", strings.ToUpper(string(ev.Kind)), ev.Time.Local().Format("15:04:05.000"), ev.State)

	switch ev.Kind {
	case events.KindIntent:
		fmt.Fprintf(&b, " intent=%s hold=%dms", ev.Intent, ev.HoldTicks*10)
	case events.KindGranted, events.KindDenied:
		fmt.Fprintf(&b, " score=%d/%d", ev.Score, gesture.TraceLength)
	}
	if ev.Fault != "" {
		fmt.Fprintf(&b, " fault=%q", ev.Fault)
	}
	if ev.Enrolled {
		b.WriteString(" password=set")
	} else {
		b.WriteString(" password=none")
	}
	if id := ev.Attempt; id != "" {
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Fprintf(&b, " attempt=%s", id)
	}
	return b.String()
}
