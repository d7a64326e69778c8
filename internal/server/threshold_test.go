package server

import (
	"math"
	"testing"
)

func TestCutoffEndpoints(t *testing.T) {
	if got := cutoff(1); math.Abs(got-8.0) > 1e-9 {
		t.Fatalf("cutoff(1) = %v, want 8.0", got)
	}
	if got := cutoff(40); math.Abs(got-0.3) > 1e-9 {
		t.Fatalf("cutoff(40) = %v, want 0.3", got)
	}
}

func TestCutoffMonotonic(t *testing.T) {
	prev := cutoff(1)
	for level := 2; level <= 40; level++ {
		current := cutoff(level)
		if current > prev {
			t.Fatalf("cutoff(%d) = %v increased from cutoff(%d) = %v", level, current, level-1, prev)
		}
		prev = current
	}
}

func TestCutoffClampsLevel(t *testing.T) {
	if got, want := cutoff(0), cutoff(1); got != want {
		t.Fatalf("cutoff(0) = %v, want %v", got, want)
	}
	if got, want := cutoff(-5), cutoff(1); got != want {
		t.Fatalf("cutoff(-5) = %v, want %v", got, want)
	}
	if got, want := cutoff(99), cutoff(40); got != want {
		t.Fatalf("cutoff(99) = %v, want %v", got, want)
	}
}
