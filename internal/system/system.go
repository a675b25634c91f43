// Package system inspects the host to size the encoder's worker pool.
package system

import "github.com/shirou/gopsutil/v3/cpu"

// maxEncodeWorkers caps parallel ffmpeg processes; each encode is itself
// multi-threaded, so more processes past this point only thrash.
const maxEncodeWorkers = 4

// EncodeWorkers returns the number of concurrent segment encodes to run.
// A positive requested value wins; otherwise the count derives from the
// host's physical cores, capped at maxEncodeWorkers.
func EncodeWorkers(requested int) int {
	if requested > 0 {
		return requested
	}

	n, err := cpu.Counts(false)
	if err != nil || n <= 0 {
		return 1
	}
	if n > maxEncodeWorkers {
		return maxEncodeWorkers
	}
	return n
}
