// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package sink holds the output destinations fed by the acquisition loop.
// A sink that is not configured is never constructed, so it does no I/O.
package sink

import (
	"context"

	"github.com/relabs-tech/imu_fetch/internal/imu"
)

// Sink accepts one stamped burst at a time.
type Sink interface {
	Write(ctx context.Context, f imu.Frame) error
	Close() error
}
