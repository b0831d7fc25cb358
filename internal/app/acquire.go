// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/imu_fetch/internal/config"
	"github.com/relabs-tech/imu_fetch/internal/imu"
	"github.com/relabs-tech/imu_fetch/internal/sensors"
	"github.com/relabs-tech/imu_fetch/internal/sink"
)

// Stats summarises one acquisition run.
type Stats struct {
	Bursts  int
	Samples int
	Elapsed time.Duration

	// Interrupted is set when the context ended the run.
	Interrupted bool
}

// Acquirer pulls bursts from a source and fans them out to sinks until a
// point or time limit stops it. It owns the source and the sinks: both are
// closed when Run returns, the source first.
type Acquirer struct {
	cfg   config.RunConfig
	src   sensors.BurstSource
	sinks []sink.Sink
	now   func() time.Time
}

func NewAcquirer(cfg config.RunConfig, src sensors.BurstSource, sinks ...sink.Sink) *Acquirer {
	return &Acquirer{
		cfg:   cfg,
		src:   src,
		sinks: sinks,
		now:   time.Now,
	}
}

// Run executes the loop. With both limits at zero it only stops on a source
// error or when ctx is cancelled.
//
// The limit checks happen before the receive, so the burst that reaches the
// point limit or crosses the time limit is still written.
func (a *Acquirer) Run(ctx context.Context) (stats Stats, err error) {
	defer func() {
		if cerr := a.shutdown(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	start := a.now()
	count := 0

	for running := true; running; {
		if ctx.Err() != nil {
			stats.Interrupted = true
			log.Printf("acquisition interrupted after %d bursts", stats.Bursts)
			return stats, nil
		}

		count++
		stats.Elapsed = a.now().Sub(start)

		if a.cfg.NumPoints > 0 && count == a.cfg.NumPoints {
			running = false
		}
		if a.cfg.TimeLimit > 0 && stats.Elapsed > a.cfg.TimeLimit {
			running = false
		}

		burst, err := a.src.ReceiveBurst(ctx)
		recv := a.now()
		if err != nil {
			if ctx.Err() != nil {
				stats.Interrupted = true
				log.Printf("acquisition interrupted after %d bursts", stats.Bursts)
				return stats, nil
			}
			return stats, fmt.Errorf("receive burst %d: %w", count, err)
		}

		frame := imu.NewFrame(burst, recv)
		for _, s := range a.sinks {
			if err := s.Write(ctx, frame); err != nil {
				return stats, err
			}
		}

		stats.Bursts++
		stats.Samples += len(burst.Samples)
		log.Debugf("burst %d: start=%d samples=%d recv=%s",
			count, burst.StartTimeNs, len(burst.Samples), imu.FormatFloat(frame.ReceiveTimeUTC))
	}

	log.Printf("acquisition stopped: %d bursts, %d samples in %s",
		stats.Bursts, stats.Samples, stats.Elapsed.Round(time.Millisecond))
	return stats, nil
}

func (a *Acquirer) shutdown() error {
	var errs []error
	if err := a.src.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close source: %w", err))
	}
	for _, s := range a.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
