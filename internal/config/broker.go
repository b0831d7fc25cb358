// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// PasswordEnv overrides MQTT_PASSWORD so the secret can stay out of files.
const PasswordEnv = "IMU_FETCH_MQTT_PASSWORD"

// Broker holds the MQTT telemetry connection settings.
type Broker struct {
	Host           string
	Port           int
	Username       string
	Password       string
	Topic          string
	ClientID       string // prefix; a unique suffix is appended on connect
	KeepAlive      time.Duration
	ConnectTimeout time.Duration
	TLS            bool
}

// DefaultBroker returns the settings used when no file overrides them.
func DefaultBroker() Broker {
	return Broker{
		Host:           "hurricane.essie.ufl.edu",
		Port:           1884,
		Username:       "data-uncw",
		Topic:          "in/UNCW/lidar/imu",
		ClientID:       "imu-fetch",
		KeepAlive:      60 * time.Second,
		ConnectTimeout: 10 * time.Second,
		TLS:            true,
	}
}

// URL is the paho broker address, ssl:// when TLS is on.
func (b Broker) URL() string {
	scheme := "tcp"
	if b.TLS {
		scheme = "ssl"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, b.Host, b.Port)
}

// LoadBroker reads a KEY=VALUE settings file on top of DefaultBroker. When
// required is false a missing file yields the defaults.
func LoadBroker(path string, required bool) (Broker, error) {
	b := DefaultBroker()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := b.read(file); err != nil {
			return Broker{}, fmt.Errorf("%s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
	default:
		return Broker{}, fmt.Errorf("failed to open broker config: %w", err)
	}

	if pw, ok := os.LookupEnv(PasswordEnv); ok {
		b.Password = pw
	}

	if err := b.validate(); err != nil {
		return Broker{}, err
	}
	return b, nil
}

func (b *Broker) read(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		if err := b.setValue(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

func (b *Broker) setValue(key, value string) error {
	switch key {
	case "MQTT_BROKER_HOST":
		b.Host = value
	case "MQTT_BROKER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid MQTT_BROKER_PORT %q: %w", value, err)
		}
		if port <= 0 || port > 65535 {
			return fmt.Errorf("MQTT_BROKER_PORT must be 1-65535, got %d", port)
		}
		b.Port = port
	case "MQTT_USERNAME":
		b.Username = value
	case "MQTT_PASSWORD":
		b.Password = value
	case "MQTT_TOPIC":
		b.Topic = value
	case "MQTT_CLIENT_ID":
		b.ClientID = value
	case "MQTT_KEEPALIVE_S":
		secs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid MQTT_KEEPALIVE_S %q: %w", value, err)
		}
		b.KeepAlive = time.Duration(secs) * time.Second
	case "MQTT_CONNECT_TIMEOUT_S":
		secs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid MQTT_CONNECT_TIMEOUT_S %q: %w", value, err)
		}
		b.ConnectTimeout = time.Duration(secs) * time.Second
	case "MQTT_TLS":
		on, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid MQTT_TLS %q: %w", value, err)
		}
		b.TLS = on

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

func (b *Broker) validate() error {
	if b.Host == "" {
		return fmt.Errorf("MQTT_BROKER_HOST is required")
	}
	if b.Topic == "" {
		return fmt.Errorf("MQTT_TOPIC is required")
	}
	if b.KeepAlive < 0 {
		return fmt.Errorf("MQTT_KEEPALIVE_S must be >= 0")
	}
	if b.ConnectTimeout < 0 {
		return fmt.Errorf("MQTT_CONNECT_TIMEOUT_S must be >= 0")
	}
	return nil
}
