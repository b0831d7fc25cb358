// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package telemetry

import (
	"crypto/tls"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/imu_fetch/internal/config"
)

// ErrConnect is wrapped by every failure to reach the broker.
var ErrConnect = errors.New("telemetry connect")

const (
	// QueueSize bounds the payloads waiting for the delivery loop.
	QueueSize = 256

	publishTimeout = 5 * time.Second
	disconnectMs   = 250
)

type message struct {
	topic   string
	payload []byte
}

// Publisher hands payloads to a background delivery loop. Publish never
// blocks and never reports delivery; a full queue drops the payload.
type Publisher struct {
	client mqtt.Client

	mu     sync.RWMutex
	closed bool
	queue  chan message
	done   chan struct{}

	sent    atomic.Uint64
	dropped atomic.Uint64
	failed  atomic.Uint64
}

// NewClientOptions builds paho options for b. The client id gets a random
// suffix so concurrent runs do not kick each other off the broker.
func NewClientOptions(b config.Broker) *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions().
		AddBroker(b.URL()).
		SetClientID(fmt.Sprintf("%s-%s", b.ClientID, uuid.NewString()[:8])).
		SetUsername(b.Username).
		SetPassword(b.Password).
		SetKeepAlive(b.KeepAlive).
		SetConnectTimeout(b.ConnectTimeout).
		SetCleanSession(true).
		SetAutoReconnect(false).
		SetConnectRetry(false)

	if b.TLS {
		opts.SetTLSConfig(&tls.Config{
			ServerName: b.Host,
			MinVersion: tls.VersionTLS12,
		})
	}
	return opts
}

// Dial connects a paho client for b and waits for the handshake.
func Dial(b config.Broker) (mqtt.Client, error) {
	client := mqtt.NewClient(NewClientOptions(b))

	token := client.Connect()
	if b.ConnectTimeout > 0 {
		if !token.WaitTimeout(b.ConnectTimeout + time.Second) {
			return nil, fmt.Errorf("%w: %s: timed out after %s", ErrConnect, b.URL(), b.ConnectTimeout)
		}
	} else {
		token.Wait()
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConnect, b.URL(), err)
	}
	return client, nil
}

// Connect opens the broker connection and starts the delivery loop.
func Connect(b config.Broker) (*Publisher, error) {
	client, err := Dial(b)
	if err != nil {
		return nil, err
	}
	log.Printf("connected to MQTT broker at %s", b.URL())
	return newPublisher(client, QueueSize), nil
}

func newPublisher(client mqtt.Client, size int) *Publisher {
	p := &Publisher{
		client: client,
		queue:  make(chan message, size),
		done:   make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *Publisher) run() {
	defer close(p.done)

	for m := range p.queue {
		token := p.client.Publish(m.topic, 0, false, m.payload)
		if !token.WaitTimeout(publishTimeout) {
			p.failed.Add(1)
			log.Warnf("MQTT publish to %s timed out", m.topic)
			continue
		}
		if err := token.Error(); err != nil {
			p.failed.Add(1)
			log.Warnf("MQTT publish error (%s): %v", m.topic, err)
			continue
		}
		p.sent.Add(1)
	}
}

// Publish enqueues payload for topic. It reports whether the payload was
// accepted; false means the queue was full or the publisher closed.
func (p *Publisher) Publish(topic string, payload []byte) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.dropped.Add(1)
		return false
	}
	select {
	case p.queue <- message{topic: topic, payload: payload}:
		return true
	default:
		if p.dropped.Add(1) == 1 {
			log.Warnf("MQTT queue full, dropping payloads for %s", topic)
		}
		return false
	}
}

// Stats reports delivery counters.
func (p *Publisher) Stats() (sent, dropped, failed uint64) {
	return p.sent.Load(), p.dropped.Load(), p.failed.Load()
}

// Close drains the queue, stops the loop and disconnects. Safe to call twice.
func (p *Publisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	<-p.done
	p.client.Disconnect(disconnectMs)

	sent, dropped, failed := p.Stats()
	log.Printf("MQTT publisher closed (sent=%d, dropped=%d, failed=%d)", sent, dropped, failed)
	return nil
}
