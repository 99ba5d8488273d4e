//go:build restirdebug

package restir

import "fmt"

func assertReservoir(r *Reservoir) {
	if r.SampleCount == 0 && r.WeightSum > 0 {
		panic(fmt.Sprintf("restir: reservoir with M=0 has weight sum %f", r.WeightSum))
	}
}
