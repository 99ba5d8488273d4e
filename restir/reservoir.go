package restir

// Reservoir keeps one light sample selected out of a weighted stream.
type Reservoir struct {
	Selected LightSample

	// Sum of every resampling weight streamed or combined in.
	WeightSum float32

	// Number of candidates seen (M).
	SampleCount uint32

	// Unbiased contribution weight (W) of Selected.
	FinalWeight float32

	// Target pdf of Selected at the owning pixel, cached by Finalize.
	TargetPdf float32
}

// Stream a candidate with resampling weight w into the reservoir. u is a
// uniform number in [0, 1) that decides whether the candidate replaces the
// current selection.
func (r *Reservoir) Update(sample LightSample, w, u float32) {
	r.SampleCount++
	if w <= 0 {
		return
	}
	r.WeightSum += w
	if u < w/r.WeightSum {
		r.Selected = sample
	}
}

// Compute the final weight W = WeightSum / (M * targetPdf) for the selected
// sample. W is zero when the target pdf vanishes.
func (r *Reservoir) Finalize(targetPdf float32) {
	r.TargetPdf = targetPdf
	r.FinalWeight = 0
	if r.SampleCount > 0 && r.WeightSum > 0 && targetPdf > 0 && r.Selected.Kind != NoLight {
		r.FinalWeight = r.WeightSum / (float32(r.SampleCount) * targetPdf)
	}
	assertReservoir(r)
}

// Limit the reservoir to at most limit samples, scaling WeightSum by the same
// ratio so W stays unchanged.
func (r Reservoir) Capped(limit uint32) Reservoir {
	if r.SampleCount <= limit {
		return r
	}
	if limit == 0 {
		return Reservoir{}
	}
	r.WeightSum *= float32(limit) / float32(r.SampleCount)
	r.SampleCount = limit
	return r
}

// Convert the reservoir to the generalized RIS form for a different target
// function: WeightSum = target(y) * W * M.
func (r Reservoir) Retarget(target func(LightSample) float32) Reservoir {
	if r.SampleCount == 0 {
		return r
	}
	r.WeightSum = target(r.Selected) * r.FinalWeight * float32(r.SampleCount)
	return r
}

// Merge two reservoirs. The weight sums and sample counts add up and a's
// sample wins with probability a.WeightSum / (a.WeightSum + b.WeightSum).
// The result is finalized against target, the target function of the pixel
// that owns the result.
func Combine(a, b Reservoir, u float32, target func(LightSample) float32) Reservoir {
	c := Reservoir{
		WeightSum:   a.WeightSum + b.WeightSum,
		SampleCount: a.SampleCount + b.SampleCount,
	}
	if c.WeightSum > 0 {
		if u < a.WeightSum/c.WeightSum {
			c.Selected = a.Selected
		} else {
			c.Selected = b.Selected
		}
	}
	c.Finalize(target(c.Selected))
	return c
}
