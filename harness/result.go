package harness

import "math"

// RawResult holds one backend's measured outcome for one corpus.
type RawResult struct {
	Name      string
	WriteSec  float64
	ReadSec   float64
	SizeBytes int64
}

// ExtendedResult adds the metrics derived from a RawResult.
type ExtendedResult struct {
	RawResult
	SeqReadMBps float64
	LatencyMs   float64
}

// Extend derives sequential-read throughput and per-operation latency
// from a RawResult. A zero read duration yields infinite throughput; a
// zero entry count yields zero latency.
func Extend(raw RawResult, entryCount int, payloadBytes int64) ExtendedResult {
	seq := math.Inf(1)
	if raw.ReadSec != 0 {
		seq = float64(payloadBytes) / raw.ReadSec / (1 << 20)
	}

	var latency float64
	if entryCount != 0 {
		latency = raw.ReadSec / float64(entryCount) * 1000
	}

	return ExtendedResult{
		RawResult:   raw,
		SeqReadMBps: seq,
		LatencyMs:   latency,
	}
}
