package sink

import (
	"context"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/imu_fetch/internal/imu"
)

// Publisher is the fire-and-forget side of telemetry.Publisher.
type Publisher interface {
	Publish(topic string, payload []byte) bool
	Close() error
}

// Telemetry publishes each burst as a JSON object on a fixed topic.
// Delivery is best-effort; a rejected payload is not an error.
type Telemetry struct {
	pub   Publisher
	topic string
}

func NewTelemetry(pub Publisher, topic string) *Telemetry {
	return &Telemetry{pub: pub, topic: topic}
}

func (t *Telemetry) Write(_ context.Context, fr imu.Frame) error {
	payload, err := json.Marshal(fr.Message())
	if err != nil {
		return fmt.Errorf("json marshal error (burst): %w", err)
	}
	if !t.pub.Publish(t.topic, payload) {
		log.Debugf("MQTT payload for burst %d not queued", fr.Burst.StartTimeNs)
	}
	return nil
}

func (t *Telemetry) Close() error {
	return t.pub.Close()
}
