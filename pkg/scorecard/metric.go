package scorecard

// ResultKind tags the shape of a metric result so the merge logic only
// ever sees one normalized form per metric.
type ResultKind int

const (
	// KindMissing marks a stage that was attempted but produced no
	// value.
	KindMissing ResultKind = iota
	// KindScalar is a single bounded score.
	KindScalar
	// KindPerDevice is a device-name to score mapping.
	KindPerDevice
)

// Result is the outcome of one metric computation: a tagged value,
// the wall-clock latency of the producing stage in milliseconds, and
// the captured error when the stage degraded.
type Result struct {
	Kind      ResultKind
	Value     float64
	Devices   map[string]float64
	LatencyMS int
	Err       string
}

// Scalar returns a scalar metric result.
func Scalar(value float64, latencyMS int) Result {
	return Result{Kind: KindScalar, Value: value, LatencyMS: latencyMS}
}

// PerDevice returns a per-device metric result.
func PerDevice(devices map[string]float64, latencyMS int) Result {
	return Result{Kind: KindPerDevice, Devices: devices, LatencyMS: latencyMS}
}

// Missing returns a degraded result carrying the failure reason.
func Missing(latencyMS int, err string) Result {
	return Result{Kind: KindMissing, LatencyMS: latencyMS, Err: err}
}
