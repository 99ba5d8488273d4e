//go:build restirdebug

package restir

import (
	"strings"
	"testing"
)

func TestAssertReservoirPanics(t *testing.T) {
	type spec struct {
		r        Reservoir
		expPanic bool
	}
	specs := []spec{
		{Reservoir{WeightSum: 1, SampleCount: 0}, true},
		{Reservoir{WeightSum: 0, SampleCount: 0}, false},
		{Reservoir{WeightSum: 1, SampleCount: 4}, false},
	}
	for specIndex, s := range specs {
		func() {
			defer func() {
				err := recover()
				if (err != nil) != s.expPanic {
					t.Fatalf("[spec %d] expected panic %t; got %v", specIndex, s.expPanic, err)
				}
				if msg, ok := err.(string); ok && !strings.HasPrefix(msg, "restir: reservoir with M=0") {
					t.Fatalf("[spec %d] unexpected panic message %q", specIndex, msg)
				}
			}()
			s.r.Finalize(1)
		}()
	}
}
