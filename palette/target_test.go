package palette

import (
	"math"
	"testing"
)

func TestPresetRanges(t *testing.T) {
	tests := []struct {
		name   string
		target *Target
		minS, targetS, maxS float64
		minL, targetL, maxL float64
	}{
		{"Vibrant", Vibrant, 0.35, 1, 1, 0.3, 0.5, 0.7},
		{"LightVibrant", LightVibrant, 0.35, 1, 1, 0.55, 0.74, 1},
		{"DarkVibrant", DarkVibrant, 0.35, 1, 1, 0, 0.26, 0.45},
		{"Muted", Muted, 0, 0.3, 0.4, 0.3, 0.5, 0.7},
		{"LightMuted", LightMuted, 0, 0.3, 0.4, 0.55, 0.74, 1},
		{"DarkMuted", DarkMuted, 0, 0.3, 0.4, 0, 0.26, 0.45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := [6]float64{
				tt.target.MinimumSaturation(), tt.target.TargetSaturation(), tt.target.MaximumSaturation(),
				tt.target.MinimumLightness(), tt.target.TargetLightness(), tt.target.MaximumLightness(),
			}
			want := [6]float64{tt.minS, tt.targetS, tt.maxS, tt.minL, tt.targetL, tt.maxL}
			if got != want {
				t.Errorf("ranges = %v, want %v", got, want)
			}
			if !tt.target.IsExclusive() {
				t.Error("presets should be exclusive")
			}
		})
	}
}

func TestNormalizeWeights(t *testing.T) {
	target := NewTargetBuilder().
		SaturationWeight(2).
		LightnessWeight(6).
		PopulationWeight(2).
		Build()
	target.normalizeWeights()

	sum := target.SaturationWeight() + target.LightnessWeight() + target.PopulationWeight()
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("weights sum = %v, want 1", sum)
	}
	if math.Abs(target.LightnessWeight()-0.6) > 1e-9 {
		t.Errorf("lightness weight = %v, want 0.6", target.LightnessWeight())
	}
}

func TestNormalizeWeightsKeepsZeros(t *testing.T) {
	target := NewTargetBuilder().
		SaturationWeight(0).
		LightnessWeight(3).
		PopulationWeight(1).
		Build()
	target.normalizeWeights()

	if target.SaturationWeight() != 0 {
		t.Errorf("zero weight changed to %v", target.SaturationWeight())
	}
	if math.Abs(target.LightnessWeight()-0.75) > 1e-9 {
		t.Errorf("lightness weight = %v, want 0.75", target.LightnessWeight())
	}

	// All-zero weights stay untouched rather than dividing by zero.
	zero := NewTargetBuilder().
		SaturationWeight(0).
		LightnessWeight(0).
		PopulationWeight(0).
		Build()
	zero.normalizeWeights()
	if zero.SaturationWeight() != 0 || zero.LightnessWeight() != 0 || zero.PopulationWeight() != 0 {
		t.Error("all-zero weights should stay zero")
	}
}

func TestTargetBuilderFromCopies(t *testing.T) {
	derived := NewTargetBuilderFrom(Vibrant).
		MinimumSaturation(0.5).
		Exclusive(false).
		Build()

	if derived == Vibrant {
		t.Fatal("builder must work on a copy")
	}
	if Vibrant.MinimumSaturation() != 0.35 {
		t.Errorf("preset mutated: min saturation = %v", Vibrant.MinimumSaturation())
	}
	if derived.MinimumSaturation() != 0.5 {
		t.Errorf("derived min saturation = %v, want 0.5", derived.MinimumSaturation())
	}
	if derived.IsExclusive() {
		t.Error("derived target should be non-exclusive")
	}
	// Untouched fields carry over from the source.
	if derived.TargetSaturation() != Vibrant.TargetSaturation() {
		t.Error("unmodified fields should match the source target")
	}
}

func TestNewTargetBuilderDefaults(t *testing.T) {
	target := NewTargetBuilder().Build()

	if target.MinimumSaturation() != 0 || target.MaximumSaturation() != 1 {
		t.Error("default saturation range should be [0, 1]")
	}
	if target.TargetLightness() != 0.5 {
		t.Errorf("default target lightness = %v, want 0.5", target.TargetLightness())
	}
	if !target.IsExclusive() {
		t.Error("default target should be exclusive")
	}
}
