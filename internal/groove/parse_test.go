package groove

import (
	"reflect"
	"testing"
)

func TestParseURL(t *testing.T) {
	raw := "https://teacher.musicdott.com/groovescribe/GrooveEmbed.html?TimeSig=4/4&Div=16&Tempo=80&Measures=2&H=|x-x-x-x-x-x-x-x-|x-x-x-x-x-x-x-x-|&S=|----O-------O---|----O-------O---|&K=|o-------o-------|o-------o-------|"

	p, err := ParseURL(raw)
	if err != nil {
		t.Fatalf("ParseURL: %v", err)
	}

	if p.RawURL != raw {
		t.Errorf("RawURL = %q, want input preserved", p.RawURL)
	}
	if p.Grid.StepsPerMeasure != 16 {
		t.Errorf("steps_per_measure = %d, want 16", p.Grid.StepsPerMeasure)
	}
	if p.Grid.TotalSteps != 32 {
		t.Errorf("total_steps = %d, want 32", p.Grid.TotalSteps)
	}
	if p.Tempo != 80 {
		t.Errorf("tempo = %d, want 80", p.Tempo)
	}

	counts := map[string]int{}
	for _, e := range p.Events {
		counts[e.Instrument]++
	}
	if counts["hihat"] != 16 {
		t.Errorf("hihat hits = %d, want 16", counts["hihat"])
	}
	if counts["snare"] != 4 {
		t.Errorf("snare hits = %d, want 4", counts["snare"])
	}
	if counts["kick"] != 4 {
		t.Errorf("kick hits = %d, want 4", counts["kick"])
	}

	// Snare hits are written 'O' (accented) in this grid.
	for _, e := range p.Events {
		if e.Instrument == "snare" && !e.Accent {
			t.Errorf("snare at step %d should be accented", e.Step)
		}
		if e.Instrument == "hihat" && e.Accent {
			t.Errorf("hihat at step %d should not be accented", e.Step)
		}
	}
}

func TestParseURLFeedsToBlocks(t *testing.T) {
	raw := "https://www.mikeslessons.com/gscribe?TimeSig=4/4&Div=16&Measures=2&K=|o---o---o---o---|o---o---o---o---|"

	p, err := ParseURL(raw)
	if err != nil {
		t.Fatalf("ParseURL: %v", err)
	}
	blocks := ToBlocks(p)

	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	for i, b := range blocks {
		if b.LengthSteps != 16 {
			t.Errorf("block %d length_steps = %d, want 16", i, b.LengthSteps)
		}
		if len(b.Events) != 4 {
			t.Errorf("block %d got %d kicks, want 4", i, len(b.Events))
		}
		if b.Source.URL != raw {
			t.Errorf("block %d source.url lost the raw url", i)
		}
	}
}

func TestParseURLDefaults(t *testing.T) {
	// Total steps come from the hit grid when Measures is absent.
	p, err := ParseURL("TimeSig=3/4&Div=16&H=|x-x-x-x-x-x-|")
	if err != nil {
		t.Fatalf("ParseURL: %v", err)
	}
	if p.Grid.StepsPerMeasure != 12 {
		t.Errorf("3/4 at sixteenths: steps_per_measure = %d, want 12", p.Grid.StepsPerMeasure)
	}
	if p.Grid.TotalSteps != 12 {
		t.Errorf("total_steps = %d, want 12 (from hit grid)", p.Grid.TotalSteps)
	}
}

func TestParseURLNoHits(t *testing.T) {
	p, err := ParseURL("?TimeSig=4/4&Div=16&Tempo=100")
	if err != nil {
		t.Fatalf("ParseURL: %v", err)
	}
	if p.Grid.TotalSteps != 16 {
		t.Errorf("empty pattern should default to one measure, got total_steps %d", p.Grid.TotalSteps)
	}
	if len(p.Events) != 0 {
		t.Errorf("expected no events, got %d", len(p.Events))
	}
}

func TestParseURLErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"plain text", "not a pattern"},
		{"url without query", "https://teacher.musicdott.com/groovescribe/GrooveEmbed.html"},
		{"bad time signature", "TimeSig=waltz&Div=16"},
		{"zero subdivision", "TimeSig=4/4&Div=0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseURL(tt.raw); err == nil {
				t.Errorf("ParseURL(%q): expected error", tt.raw)
			}
		})
	}
}

func TestParseURLDeterminism(t *testing.T) {
	raw := "?TimeSig=4/4&Div=16&H=|x-x-x-x-|&S=|--O-----|&K=|o-------|"
	a, errA := ParseURL(raw)
	b, errB := ParseURL(raw)
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v, %v", errA, errB)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two parses of the same url disagree")
	}
}
