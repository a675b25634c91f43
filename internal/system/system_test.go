package system

import "testing"

func TestEncodeWorkersRequestedWins(t *testing.T) {
	for _, n := range []int{1, 2, 8, 32} {
		if got := EncodeWorkers(n); got != n {
			t.Errorf("EncodeWorkers(%d) = %d, want %d", n, got, n)
		}
	}
}

func TestEncodeWorkersDefault(t *testing.T) {
	for _, req := range []int{0, -1} {
		got := EncodeWorkers(req)
		if got < 1 || got > maxEncodeWorkers {
			t.Errorf("EncodeWorkers(%d) = %d, want between 1 and %d", req, got, maxEncodeWorkers)
		}
	}
}
