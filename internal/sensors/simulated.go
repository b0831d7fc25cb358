// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"context"

	"github.com/relabs-tech/imu_fetch/internal/imu"
)

// SimulatedBurst is the canned burst replayed by the simulated source.
func SimulatedBurst() imu.Burst {
	return imu.Burst{
		StartTimeNs: 12345,
		Samples: []imu.Sample{
			{
				StartOffsetNs:   0,
				Acceleration:    imu.Vector3{X: 0.0263671875, Y: -0.98077392578125, Z: 0.05255126953125},
				AngularVelocity: imu.Vector3{X: 0.015055116266012192, Y: -0.008393751457333565, Z: 0.009192699566483498},
			},
		},
	}
}

// Simulated returns the same burst on every call without blocking.
type Simulated struct {
	proto imu.Burst
}

// NewSimulated creates a simulated source seeded with SimulatedBurst.
func NewSimulated() *Simulated {
	return &Simulated{proto: SimulatedBurst()}
}

func (s *Simulated) ReceiveBurst(context.Context) (imu.Burst, error) {
	return s.proto.Clone(), nil
}

func (s *Simulated) Close() error { return nil }
