// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// imu_fetch grabs streaming IMU bursts from a networked sensor. By default it
// writes nothing; bursts can be saved to a text file, a JSON-lines file, a
// redis key and/or published over MQTT.
//
// Text file layout, one line per sample:
//
//	start_time_ns recv_time_utc start_offset_ns ax ay az vx vy vz
//
// recv_time_utc is the host's UTC receive time of the burst in seconds; all
// other values come from the sensor (a = acceleration, v = angular velocity).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/relabs-tech/imu_fetch/internal/app"
	"github.com/relabs-tech/imu_fetch/internal/config"
)

const name = "imu_fetch"

func main() {
	cfg, err := config.Parse(name, os.Args[1:], os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("failed to parse options: %v", err)
	}

	if cfg.ShowVersion {
		fmt.Println(config.Version(name))
		return
	}

	app.SetupLogging(cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := app.RunFetch(ctx, cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
