// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"context"
	"errors"

	"github.com/relabs-tech/imu_fetch/internal/imu"
)

// ErrSource is wrapped by every failure of a live device session.
var ErrSource = errors.New("burst source")

// BurstSource delivers IMU bursts one at a time.
// The acquisition loop is written once against this; see Live and Simulated.
type BurstSource interface {
	// ReceiveBurst blocks until the next burst is available.
	ReceiveBurst(ctx context.Context) (imu.Burst, error)
	Close() error
}

// Open returns the simulated source when simulate is set, otherwise dials
// the live device at target.
func Open(ctx context.Context, target string, simulate bool) (BurstSource, error) {
	if simulate {
		return NewSimulated(), nil
	}
	live, err := DialLive(ctx, target)
	if err != nil {
		return nil, err
	}
	return live, nil
}
