package imu

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSampleBurst() Burst {
	return Burst{
		StartTimeNs: 500,
		Samples: []Sample{
			{StartOffsetNs: 0, Acceleration: Vector3{1, 2, 3}, AngularVelocity: Vector3{4, 5, 6}},
			{StartOffsetNs: 10, Acceleration: Vector3{7, 8, 9}, AngularVelocity: Vector3{10, 11, 12}},
		},
	}
}

func TestNewFrame_OneReceiveTimePerBurst(t *testing.T) {
	recv := time.Date(2022, 6, 28, 12, 0, 0, 123456789, time.UTC)
	f := NewFrame(twoSampleBurst(), recv)

	want := float64(recv.UnixMicro()) / 1e6
	assert.Equal(t, want, f.ReceiveTimeUTC)
	require.Len(t, f.Records, 2)
	for _, r := range f.Records {
		assert.Equal(t, want, r.ReceiveTimeUTC)
		assert.Equal(t, uint64(500), r.BurstStartNs)
	}

	// order follows the burst
	assert.Equal(t, uint64(0), f.Records[0].OffsetNs)
	assert.Equal(t, uint64(10), f.Records[1].OffsetNs)
	assert.Equal(t, 9.0, f.Records[1].AccelZ)
	assert.Equal(t, 10.0, f.Records[1].GyroX)
}

func TestFlatten_EmptyBurst(t *testing.T) {
	assert.Empty(t, Flatten(Burst{StartTimeNs: 1}, 0))
}

func TestClone_DoesNotAlias(t *testing.T) {
	b := twoSampleBurst()
	c := b.Clone()
	c.Samples[0].Acceleration.X = 99
	assert.Equal(t, 1.0, b.Samples[0].Acceleration.X)
}

func TestFrameMessage_ParallelArrays(t *testing.T) {
	f := Frame{Burst: twoSampleBurst(), ReceiveTimeUTC: 1656417600.25}
	raw, err := json.Marshal(f.Message())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, 1656417600.25, got["recv_time_utc"])
	assert.Equal(t, 500.0, got["start_time_ns"])
	assert.Equal(t, []any{0.0, 10.0}, got["start_offset_ns"])
	assert.Equal(t, map[string]any{"x": []any{1.0, 7.0}, "y": []any{2.0, 8.0}, "z": []any{3.0, 9.0}}, got["g"])
	assert.Equal(t, map[string]any{"x": []any{4.0, 10.0}, "y": []any{5.0, 11.0}, "z": []any{6.0, 12.0}}, got["v"])
}

func TestFrameMessage_EmptyBurstEncodesEmptyArrays(t *testing.T) {
	raw, err := json.Marshal(Frame{Burst: Burst{StartTimeNs: 3}}.Message())
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"recv_time_utc":0,"start_time_ns":3,"start_offset_ns":[],"g":{"x":[],"y":[],"z":[]},"v":{"x":[],"y":[],"z":[]}}`,
		string(raw))
}

func TestBurstMessage_RecordsMatchFlatten(t *testing.T) {
	f := NewFrame(twoSampleBurst(), time.Unix(1656417600, 0))
	assert.Equal(t, f.Records, f.Message().Records())
}

func TestFlatRecordLine(t *testing.T) {
	r := FlatRecord{
		BurstStartNs:   12345,
		ReceiveTimeUTC: 1656417600.5,
		OffsetNs:       0,
		AccelX:         0.0263671875,
		AccelY:         -0.98077392578125,
		AccelZ:         0.05255126953125,
		GyroX:          0.015055116266012192,
		GyroY:          -0.008393751457333565,
		GyroZ:          0.009192699566483498,
	}
	assert.Equal(t,
		"12345 1656417600.5 0 0.0263671875 -0.98077392578125 0.05255126953125 0.015055116266012192 -0.008393751457333565 0.009192699566483498",
		r.Line())
}

func TestFormatFloat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-2, "-2.0"},
		{0.1, "0.1"},
		{1656417600.123456, "1656417600.123456"},
		{1656417600, "1656417600.0"},
		{0.00001, "1e-05"},
		{1e16, "1e+16"},
		{-0.008393751457333565, "-0.008393751457333565"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatFloat(c.in), "input %v", c.in)
	}
}
