// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package imu

import "time"

// Vector3 is a 3-axis reading as delivered by the sensor.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Sample is one reading inside a burst.
type Sample struct {
	StartOffsetNs   uint64  `json:"start_offset_ns"` // from Burst.StartTimeNs
	Acceleration    Vector3 `json:"acceleration"`    // g
	AngularVelocity Vector3 `json:"angular_velocity"`
}

// Burst is one batch of samples delivered by a single receive call.
type Burst struct {
	StartTimeNs uint64   `json:"start_time_ns"` // sensor monotonic clock
	Samples     []Sample `json:"samples"`
}

// Clone returns a deep copy so callers may not alias a prototype's samples.
func (b Burst) Clone() Burst {
	out := Burst{StartTimeNs: b.StartTimeNs}
	if b.Samples != nil {
		out.Samples = make([]Sample, len(b.Samples))
		copy(out.Samples, b.Samples)
	}
	return out
}

// FlatRecord is a single sample stamped with the receive time of its burst.
type FlatRecord struct {
	BurstStartNs   uint64
	ReceiveTimeUTC float64
	OffsetNs       uint64
	AccelX         float64
	AccelY         float64
	AccelZ         float64
	GyroX          float64
	GyroY          float64
	GyroZ          float64
}

// Frame carries one received burst through the sinks.
type Frame struct {
	Burst          Burst
	ReceiveTimeUTC float64 // seconds since epoch, microsecond resolution
	Records        []FlatRecord
}

// ReceiveTime converts t to float seconds since the epoch, truncated to
// microseconds.
func ReceiveTime(t time.Time) float64 {
	return float64(t.UnixMicro()) / 1e6
}

// NewFrame stamps b with recv and flattens it. Every record shares the same
// receive time and keeps the sample order of the burst.
func NewFrame(b Burst, recv time.Time) Frame {
	ts := ReceiveTime(recv)
	return Frame{
		Burst:          b,
		ReceiveTimeUTC: ts,
		Records:        Flatten(b, ts),
	}
}

// Flatten expands b into one record per sample.
func Flatten(b Burst, receiveTimeUTC float64) []FlatRecord {
	recs := make([]FlatRecord, 0, len(b.Samples))
	for _, s := range b.Samples {
		recs = append(recs, FlatRecord{
			BurstStartNs:   b.StartTimeNs,
			ReceiveTimeUTC: receiveTimeUTC,
			OffsetNs:       s.StartOffsetNs,
			AccelX:         s.Acceleration.X,
			AccelY:         s.Acceleration.Y,
			AccelZ:         s.Acceleration.Z,
			GyroX:          s.AngularVelocity.X,
			GyroY:          s.AngularVelocity.Y,
			GyroZ:          s.AngularVelocity.Z,
		})
	}
	return recs
}
