// Package publish forwards interpreted telemetry readings to an MQTT
// broker as JSON, one topic per record tag.
package publish

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"wladc/host/monitor"
)

const connectTimeout = 5 * time.Second

// Publisher owns an MQTT client connection.
type Publisher struct {
	client mqtt.Client
	topic  string
}

// message is the JSON wire form of a reading.
type message struct {
	Tag  string `json:"tag"`
	Raw  uint16 `json:"raw"`
	Text string `json:"text"`
	Time int64  `json:"time"` // Unix milliseconds
}

// Connect dials the broker and returns a ready publisher. The topic is
// the prefix; readings go to topic/<tag lowercased>.
func Connect(brokerURL, clientID, topic string) (*Publisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	tok := client.Connect()
	if !tok.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("publish: connect to %s timed out", brokerURL)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("publish: connect to %s: %w", brokerURL, err)
	}

	return &Publisher{client: client, topic: strings.TrimSuffix(topic, "/")}, nil
}

// Publish sends one reading. QoS 0: telemetry is periodic and a lost
// sample is replaced by the next one.
func (p *Publisher) Publish(r monitor.Reading) error {
	payload, err := json.Marshal(message{
		Tag:  r.Tag,
		Raw:  r.Raw,
		Text: r.Text,
		Time: time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("publish: encode reading: %w", err)
	}

	topic := p.topic + "/" + strings.ToLower(r.Tag)
	tok := p.client.Publish(topic, 0, false, payload)
	if !tok.WaitTimeout(connectTimeout) {
		return fmt.Errorf("publish: publish to %s timed out", topic)
	}
	return tok.Error()
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.client.Disconnect(uint(connectTimeout / time.Millisecond))
}
