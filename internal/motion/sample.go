package motion

// Sample is a single 3-axis acceleration reading in m/s².
// The MMA8451 at ±4g covers roughly -39..39 on each axis.
type Sample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Negate returns the sample mirrored through the origin.
func (s Sample) Negate() Sample {
	return Sample{X: -s.X, Y: -s.Y, Z: -s.Z}
}

// Source is anything that can provide acceleration samples on demand:
// the accelerometer on the lock, a mock wave generator, a replay in tests.
type Source interface {
	ReadSample() (Sample, error)
}
