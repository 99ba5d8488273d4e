//go:build !restirdebug

package restir

import "testing"

func TestAssertReservoirDisabled(t *testing.T) {
	r := Reservoir{WeightSum: 1}
	r.Finalize(1)
	if r.FinalWeight != 0 {
		t.Fatalf("expected W = 0 for a reservoir without samples; got %f", r.FinalWeight)
	}
}
