package score

// Canonical deployment target device names.
const (
	DeviceRaspberryPi = "raspberry_pi"
	DeviceJetsonNano  = "jetson_nano"
	DeviceDesktopPC   = "desktop_pc"
	DeviceAWSServer   = "aws_server"
)

// DefaultCapacities maps each canonical device to its usable storage
// capacity in bytes.
func DefaultCapacities() map[string]int64 {
	return map[string]int64{
		DeviceRaspberryPi: 200_000_000,
		DeviceJetsonNano:  1_000_000_000,
		DeviceDesktopPC:   8_000_000_000,
		DeviceAWSServer:   20_000_000_000,
	}
}

// deployabilityBands maps size/capacity ratio ceilings to scores,
// checked in order. Upper bounds are inclusive: an artifact at exactly
// half a device's capacity lands in the 0.85 band.
var deployabilityBands = []struct {
	maxRatio float64
	score    float64
}{
	{0.25, 1.00},
	{0.5, 0.85},
	{1.0, 0.70},
	{2.0, 0.40},
	{4.0, 0.20},
}

// Deployability scores how well an artifact of totalBytes fits each
// target device. Every device in caps gets a score; a zero capacity or
// non-positive size scores 0 for that device.
func Deployability(totalBytes int64, caps map[string]int64) map[string]float64 {
	scores := make(map[string]float64, len(caps))
	for device, capacity := range caps {
		scores[device] = bandScore(totalBytes, capacity)
	}
	return scores
}

func bandScore(totalBytes, capacity int64) float64 {
	if totalBytes <= 0 || capacity <= 0 {
		return 0
	}
	ratio := float64(totalBytes) / float64(capacity)
	for _, b := range deployabilityBands {
		if ratio <= b.maxRatio {
			return b.score
		}
	}
	return 0
}
