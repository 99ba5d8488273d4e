package restir

type HistoryState uint8

const (
	NoHistory HistoryState = iota
	ValidHistory
)

func (h HistoryState) String() string {
	if h == ValidHistory {
		return "valid"
	}
	return "none"
}

// TemporalParams controls how the previous frame's reservoir is reused.
type TemporalParams struct {
	// The history is capped to CapMultiplier * M(current) samples.
	CapMultiplier float32

	// Convert the history to generalized RIS weights before merging.
	Reweight bool
}

// Merge the previous frame's reservoir for the same pixel into cur. Without
// valid history cur is returned as is.
func TemporalReuse(cur, prev Reservoir, state HistoryState, params TemporalParams, surf Surface, u float32) Reservoir {
	if state != ValidHistory || prev.SampleCount == 0 {
		return cur
	}

	prev = prev.Capped(uint32(params.CapMultiplier * float32(cur.SampleCount)))
	if params.Reweight {
		prev = prev.Retarget(surf.TargetPdf)
	}
	return Combine(cur, prev, u, surf.TargetPdf)
}
