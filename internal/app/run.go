// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/imu_fetch/internal/config"
	"github.com/relabs-tech/imu_fetch/internal/sensors"
	"github.com/relabs-tech/imu_fetch/internal/sink"
	"github.com/relabs-tech/imu_fetch/internal/telemetry"
)

// RunFetch wires telemetry, the burst source and the sinks for cfg, then
// runs the acquisition loop to completion.
func RunFetch(ctx context.Context, cfg config.RunConfig) (Stats, error) {
	log.Printf("starting IMU fetch (target=%s, simulated=%v, num_points=%d, time_limit=%s)",
		cfg.Target, cfg.Simulate, cfg.NumPoints, cfg.TimeLimit)

	// --- telemetry (best-effort) ---
	var tel sink.Sink
	if cfg.EnableMQTT {
		tel = openTelemetry(cfg)
	}

	// --- burst source ---
	src, err := sensors.Open(ctx, cfg.Target, cfg.Simulate)
	if err != nil {
		closeSinks(tel)
		return Stats{}, err
	}
	if cfg.Simulate {
		log.Println("using simulated IMU data")
	}

	// --- sinks, in write order ---
	var sinks []sink.Sink
	fail := func(err error) (Stats, error) {
		src.Close()
		closeSinks(append(sinks, tel)...)
		return Stats{}, err
	}

	if cfg.JSONOutputFile != "" {
		s, err := sink.CreateJSON(cfg.JSONOutputFile)
		if err != nil {
			return fail(err)
		}
		sinks = append(sinks, s)
		log.Printf("writing JSON lines to %s", cfg.JSONOutputFile)
	}
	if tel != nil {
		sinks = append(sinks, tel)
		tel = nil
	}
	if cfg.TextOutputFile != "" {
		s, err := sink.CreateText(cfg.TextOutputFile)
		if err != nil {
			return fail(err)
		}
		sinks = append(sinks, s)
		log.Printf("writing text records to %s", cfg.TextOutputFile)
	}
	if cfg.RedisAddr != "" {
		s, err := sink.DialRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return fail(err)
		}
		sinks = append(sinks, s)
		log.Printf("storing latest burst in redis at %s", cfg.RedisAddr)
	}

	if len(sinks) == 0 {
		log.Println("no outputs configured; bursts will be received and discarded")
	}

	return NewAcquirer(cfg, src, sinks...).Run(ctx)
}

// openTelemetry returns nil when the broker cannot be used. Telemetry
// problems never stop the run.
func openTelemetry(cfg config.RunConfig) sink.Sink {
	broker, err := config.LoadBroker(cfg.MQTTConfigFile, cfg.MQTTConfigSet)
	if err != nil {
		log.Warnf("unable to load MQTT settings, telemetry disabled: %v", err)
		return nil
	}

	pub, err := telemetry.Connect(broker)
	if err != nil {
		log.Warnf("unable to connect to MQTT server, telemetry disabled: %v", err)
		return nil
	}
	return sink.NewTelemetry(pub, broker.Topic)
}

func closeSinks(sinks ...sink.Sink) {
	for _, s := range sinks {
		if s == nil {
			continue
		}
		if err := s.Close(); err != nil {
			log.Warnf("close sink: %v", err)
		}
	}
}
