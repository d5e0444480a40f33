package notify

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"gse-tracker/internal/logger"
	"gse-tracker/pkg/mqtt"
)

// MQTTPublisher mirrors change events onto an MQTT broker so external
// dashboards can watch equipment without holding a WebSocket open.
// Publish failures are logged and swallowed: notification is not part
// of any invariant.
type MQTTPublisher struct {
	client      *mqtt.Client
	topicPrefix string
}

func NewMQTTPublisher(client *mqtt.Client, topicPrefix string) *MQTTPublisher {
	if topicPrefix == "" {
		topicPrefix = "gse"
	}
	return &MQTTPublisher{client: client, topicPrefix: topicPrefix}
}

func (p *MQTTPublisher) Publish(event Event) {
	if !p.client.IsConnected() {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to encode change event", zap.Error(err))
		return
	}

	topic := fmt.Sprintf("%s/equipment/%s/events", p.topicPrefix, event.EquipmentID)
	if err := p.client.Publish(topic, 1, false, payload); err != nil {
		logger.Warn("Failed to publish change event",
			zap.String("topic", topic),
			zap.Error(err),
		)
	}
}
