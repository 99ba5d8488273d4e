package scene

import "sort"

// LightDistribution selects emitters proportionally to their power. The
// environment, if present, is the last entry.
type LightDistribution struct {
	lights []*Light
	env    *Environment

	pdf []float32
	cdf []float32
}

// Create a power-proportional distribution over lights and an optional
// environment. If every weight is zero, entries are selected uniformly.
func NewLightDistribution(lights []*Light, env *Environment) *LightDistribution {
	d := &LightDistribution{
		lights: lights,
		env:    env,
	}

	weights := make([]float64, 0, len(lights)+1)
	for _, l := range lights {
		weights = append(weights, float64(l.Power()))
	}
	if env != nil {
		weights = append(weights, float64(env.Power()))
	}
	if len(weights) == 0 {
		return d
	}

	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}

	d.pdf = make([]float32, len(weights))
	d.cdf = make([]float32, len(weights))
	var cumulative float64
	for i, w := range weights {
		switch {
		case total == 0:
			w = 1.0 / float64(len(weights))
		case w < 0:
			w = 0
		default:
			w /= total
		}
		cumulative += w
		d.pdf[i] = float32(w)
		d.cdf[i] = float32(cumulative)
	}
	d.cdf[len(d.cdf)-1] = 1
	return d
}

// Get the number of entries (lights plus environment).
func (d *LightDistribution) Len() int {
	return len(d.pdf)
}

// Get the index of the environment entry or -1 if the scene has none.
func (d *LightDistribution) EnvironmentIndex() int {
	if d.env == nil {
		return -1
	}
	return len(d.lights)
}

// Get the light at index. Returns nil for the environment entry.
func (d *LightDistribution) Light(index int) *Light {
	if index < 0 || index >= len(d.lights) {
		return nil
	}
	return d.lights[index]
}

// Get the environment or nil.
func (d *LightDistribution) Environment() *Environment {
	return d.env
}

// Get the selection probability of the entry at index.
func (d *LightDistribution) Probability(index int) float32 {
	if index < 0 || index >= len(d.pdf) {
		return 0
	}
	return d.pdf[index]
}

// Select an entry using a uniform number in [0, 1). Returns the entry index
// and its selection probability, or -1 if the distribution is empty.
func (d *LightDistribution) Sample(u float32) (int, float32) {
	if len(d.cdf) == 0 {
		return -1, 0
	}

	index := sort.Search(len(d.cdf), func(i int) bool { return d.cdf[i] > u })
	if index == len(d.cdf) {
		index--
	}
	for index > 0 && d.pdf[index] == 0 {
		index--
	}
	return index, d.pdf[index]
}
