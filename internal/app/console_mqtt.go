package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/imu_fetch/internal/config"
	"github.com/relabs-tech/imu_fetch/internal/imu"
	"github.com/relabs-tech/imu_fetch/internal/telemetry"
)

// RunConsole subscribes to the telemetry topic and prints every sample it
// receives in the text file layout until ctx is cancelled.
func RunConsole(ctx context.Context, broker config.Broker, out io.Writer) error {
	client, err := telemetry.Dial(broker)
	if err != nil {
		return err
	}
	defer client.Disconnect(250)
	log.Printf("console: connected to MQTT broker at %s", broker.URL())

	token := client.Subscribe(broker.Topic, 0, burstPrinter(out))
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", broker.Topic, token.Error())
	}
	log.Printf("console: subscribed to %s", broker.Topic)

	<-ctx.Done()
	log.Println("console: shutting down")
	return nil
}

// burstPrinter decodes one burst per message. paho may call handlers from
// several goroutines, so writes to out are serialised.
func burstPrinter(out io.Writer) mqtt.MessageHandler {
	var mu sync.Mutex
	return func(_ mqtt.Client, msg mqtt.Message) {
		var m imu.BurstMessage
		if err := json.Unmarshal(msg.Payload(), &m); err != nil {
			log.Printf("console: burst unmarshal error (%s): %v", msg.Topic(), err)
			return
		}

		mu.Lock()
		defer mu.Unlock()
		for _, r := range m.Records() {
			fmt.Fprintln(out, r.Line())
		}
	}
}
