package imu

// Axes holds one array per axis, indexed by sample position.
type Axes struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
	Z []float64 `json:"z"`
}

// BurstMessage is the per-burst JSON object written to the JSON file and
// published over MQTT.
type BurstMessage struct {
	RecvTimeUTC   float64  `json:"recv_time_utc"`
	StartTimeNs   uint64   `json:"start_time_ns"`
	StartOffsetNs []uint64 `json:"start_offset_ns"`
	G             Axes     `json:"g"` // acceleration
	V             Axes     `json:"v"` // angular velocity
}

// Message builds the wire object for f. Arrays are never nil so an empty
// burst encodes as [] rather than null.
func (f Frame) Message() BurstMessage {
	n := len(f.Burst.Samples)
	m := BurstMessage{
		RecvTimeUTC:   f.ReceiveTimeUTC,
		StartTimeNs:   f.Burst.StartTimeNs,
		StartOffsetNs: make([]uint64, 0, n),
		G:             newAxes(n),
		V:             newAxes(n),
	}
	for _, s := range f.Burst.Samples {
		m.StartOffsetNs = append(m.StartOffsetNs, s.StartOffsetNs)

		m.G.X = append(m.G.X, s.Acceleration.X)
		m.G.Y = append(m.G.Y, s.Acceleration.Y)
		m.G.Z = append(m.G.Z, s.Acceleration.Z)

		m.V.X = append(m.V.X, s.AngularVelocity.X)
		m.V.Y = append(m.V.Y, s.AngularVelocity.Y)
		m.V.Z = append(m.V.Z, s.AngularVelocity.Z)
	}
	return m
}

// Records flattens a decoded message back into per-sample records. Arrays
// shorter than StartOffsetNs yield zero values for the missing axes.
func (m BurstMessage) Records() []FlatRecord {
	recs := make([]FlatRecord, 0, len(m.StartOffsetNs))
	for i, off := range m.StartOffsetNs {
		recs = append(recs, FlatRecord{
			BurstStartNs:   m.StartTimeNs,
			ReceiveTimeUTC: m.RecvTimeUTC,
			OffsetNs:       off,
			AccelX:         at(m.G.X, i),
			AccelY:         at(m.G.Y, i),
			AccelZ:         at(m.G.Z, i),
			GyroX:          at(m.V.X, i),
			GyroY:          at(m.V.Y, i),
			GyroZ:          at(m.V.Z, i),
		})
	}
	return recs
}

func newAxes(n int) Axes {
	return Axes{
		X: make([]float64, 0, n),
		Y: make([]float64, 0, n),
		Z: make([]float64, 0, n),
	}
}

func at(v []float64, i int) float64 {
	if i < len(v) {
		return v[i]
	}
	return 0
}
