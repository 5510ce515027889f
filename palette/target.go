package palette

const (
	targetDarkLuma  = 0.26
	maxDarkLuma     = 0.45
	minLightLuma    = 0.55
	targetLightLuma = 0.74
	minNormalLuma   = 0.3
	targetNormalLuma = 0.5
	maxNormalLuma   = 0.7

	targetMutedSaturation   = 0.3
	maxMutedSaturation      = 0.4
	targetVibrantSaturation = 1
	minVibrantSaturation    = 0.35

	weightSaturation = 0.24
	weightLuma       = 0.52
	weightPopulation = 0.24
)

const (
	indexMin = iota
	indexTarget
	indexMax
)

const (
	indexWeightSaturation = iota
	indexWeightLuma
	indexWeightPopulation
)

// Target describes the ideal saturation, lightness and scoring weights for
// one semantic color role. Use the canonical presets or derive a custom
// target through TargetBuilder.
type Target struct {
	saturation [3]float64 // min, target, max
	lightness  [3]float64
	weights    [3]float64 // saturation, lightness, population
	exclusive  bool
}

// The six canonical targets.
var (
	LightVibrant = newPreset(setLightLightness, setVibrantSaturation)
	Vibrant      = newPreset(setNormalLightness, setVibrantSaturation)
	DarkVibrant  = newPreset(setDarkLightness, setVibrantSaturation)
	LightMuted   = newPreset(setLightLightness, setMutedSaturation)
	Muted        = newPreset(setNormalLightness, setMutedSaturation)
	DarkMuted    = newPreset(setDarkLightness, setMutedSaturation)
)

func newTarget() *Target {
	return &Target{
		saturation: [3]float64{0, 0.5, 1},
		lightness:  [3]float64{0, 0.5, 1},
		weights:    [3]float64{weightSaturation, weightLuma, weightPopulation},
		exclusive:  true,
	}
}

func newPreset(opts ...func(*Target)) *Target {
	t := newTarget()
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func setLightLightness(t *Target) {
	t.lightness[indexMin] = minLightLuma
	t.lightness[indexTarget] = targetLightLuma
}

func setNormalLightness(t *Target) {
	t.lightness[indexMin] = minNormalLuma
	t.lightness[indexTarget] = targetNormalLuma
	t.lightness[indexMax] = maxNormalLuma
}

func setDarkLightness(t *Target) {
	t.lightness[indexTarget] = targetDarkLuma
	t.lightness[indexMax] = maxDarkLuma
}

func setVibrantSaturation(t *Target) {
	t.saturation[indexMin] = minVibrantSaturation
	t.saturation[indexTarget] = targetVibrantSaturation
}

func setMutedSaturation(t *Target) {
	t.saturation[indexTarget] = targetMutedSaturation
	t.saturation[indexMax] = maxMutedSaturation
}

// MinimumSaturation returns the lower bound of the accepted saturation range.
func (t *Target) MinimumSaturation() float64 { return t.saturation[indexMin] }

// TargetSaturation returns the ideal saturation value.
func (t *Target) TargetSaturation() float64 { return t.saturation[indexTarget] }

// MaximumSaturation returns the upper bound of the accepted saturation range.
func (t *Target) MaximumSaturation() float64 { return t.saturation[indexMax] }

// MinimumLightness returns the lower bound of the accepted lightness range.
func (t *Target) MinimumLightness() float64 { return t.lightness[indexMin] }

// TargetLightness returns the ideal lightness value.
func (t *Target) TargetLightness() float64 { return t.lightness[indexTarget] }

// MaximumLightness returns the upper bound of the accepted lightness range.
func (t *Target) MaximumLightness() float64 { return t.lightness[indexMax] }

// SaturationWeight returns the weight of the saturation score component.
func (t *Target) SaturationWeight() float64 { return t.weights[indexWeightSaturation] }

// LightnessWeight returns the weight of the lightness score component.
func (t *Target) LightnessWeight() float64 { return t.weights[indexWeightLuma] }

// PopulationWeight returns the weight of the population score component.
func (t *Target) PopulationWeight() float64 { return t.weights[indexWeightPopulation] }

// IsExclusive reports whether a swatch selected for this target is removed
// from consideration for all later targets in the same generation run.
func (t *Target) IsExclusive() bool { return t.exclusive }

// normalizeWeights scales the strictly positive weights so they sum to 1.
// Zero weights stay zero, meaning the criterion is ignored. Scoring assumes
// this has run, so Palette generation calls it once per target up front.
func (t *Target) normalizeWeights() {
	sum := 0.0
	for _, w := range t.weights {
		if w > 0 {
			sum += w
		}
	}
	if sum == 0 {
		return
	}
	for i, w := range t.weights {
		if w > 0 {
			t.weights[i] = w / sum
		}
	}
}

func (t *Target) clone() *Target {
	c := *t
	return &c
}

// TargetBuilder constructs custom targets.
type TargetBuilder struct {
	target *Target
}

// NewTargetBuilder starts from an unconstrained target: full saturation and
// lightness ranges centered on 0.5, default weights, exclusive.
func NewTargetBuilder() *TargetBuilder {
	return &TargetBuilder{target: newTarget()}
}

// NewTargetBuilderFrom starts from a copy of an existing target.
func NewTargetBuilderFrom(t *Target) *TargetBuilder {
	return &TargetBuilder{target: t.clone()}
}

// MinimumSaturation sets the lower bound of the accepted saturation range.
func (b *TargetBuilder) MinimumSaturation(v float64) *TargetBuilder {
	b.target.saturation[indexMin] = v
	return b
}

// TargetSaturation sets the ideal saturation value.
func (b *TargetBuilder) TargetSaturation(v float64) *TargetBuilder {
	b.target.saturation[indexTarget] = v
	return b
}

// MaximumSaturation sets the upper bound of the accepted saturation range.
func (b *TargetBuilder) MaximumSaturation(v float64) *TargetBuilder {
	b.target.saturation[indexMax] = v
	return b
}

// MinimumLightness sets the lower bound of the accepted lightness range.
func (b *TargetBuilder) MinimumLightness(v float64) *TargetBuilder {
	b.target.lightness[indexMin] = v
	return b
}

// TargetLightness sets the ideal lightness value.
func (b *TargetBuilder) TargetLightness(v float64) *TargetBuilder {
	b.target.lightness[indexTarget] = v
	return b
}

// MaximumLightness sets the upper bound of the accepted lightness range.
func (b *TargetBuilder) MaximumLightness(v float64) *TargetBuilder {
	b.target.lightness[indexMax] = v
	return b
}

// SaturationWeight sets the weight of the saturation score component.
func (b *TargetBuilder) SaturationWeight(v float64) *TargetBuilder {
	b.target.weights[indexWeightSaturation] = v
	return b
}

// LightnessWeight sets the weight of the lightness score component.
func (b *TargetBuilder) LightnessWeight(v float64) *TargetBuilder {
	b.target.weights[indexWeightLuma] = v
	return b
}

// PopulationWeight sets the weight of the population score component.
func (b *TargetBuilder) PopulationWeight(v float64) *TargetBuilder {
	b.target.weights[indexWeightPopulation] = v
	return b
}

// Exclusive sets whether the target claims its selected swatch.
func (b *TargetBuilder) Exclusive(exclusive bool) *TargetBuilder {
	b.target.exclusive = exclusive
	return b
}

// Build returns the configured target.
func (b *TargetBuilder) Build() *Target {
	return b.target
}
