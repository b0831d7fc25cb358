package imu

import (
	"math"
	"strconv"
	"strings"
)

// Line renders r in the text file layout:
//
//	start_time_ns recv_time_utc start_offset_ns ax ay az vx vy vz
func (r FlatRecord) Line() string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(r.BurstStartNs, 10))
	for _, f := range []string{
		FormatFloat(r.ReceiveTimeUTC),
		strconv.FormatUint(r.OffsetNs, 10),
		FormatFloat(r.AccelX),
		FormatFloat(r.AccelY),
		FormatFloat(r.AccelZ),
		FormatFloat(r.GyroX),
		FormatFloat(r.GyroY),
		FormatFloat(r.GyroZ),
	} {
		b.WriteByte(' ')
		b.WriteString(f)
	}
	return b.String()
}

// FormatFloat prints v with the fewest digits that round-trip. Values in
// [1e-4, 1e16) use plain decimal notation and integral values keep a
// trailing ".0", so receive times never collapse into exponent form.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
