// ABOUTME: Tests for the sparkline widget
// ABOUTME: Verifies resampling and block scaling

package widgets

import (
	"testing"
	"unicode/utf8"
)

func TestSparkline_Empty(t *testing.T) {
	if got := Sparkline(nil, 10, ""); got != "" {
		t.Errorf("expected empty sparkline, got %q", got)
	}
	if got := Sparkline([]float64{1, 2}, 0, ""); got != "" {
		t.Errorf("expected empty sparkline for zero width, got %q", got)
	}
}

func TestSparkline_RisingRates(t *testing.T) {
	got := Sparkline([]float64{2000, 2000, 2500, 3000, 5000}, 5, "")

	if got != "▁▁▂▃█" {
		t.Errorf("expected ▁▁▂▃█, got %q", got)
	}
}

func TestSparkline_FlatCurve(t *testing.T) {
	got := Sparkline([]float64{2000, 2000, 2000}, 3, "")
	if got != "▁▁▁" {
		t.Errorf("expected flat baseline, got %q", got)
	}
}

func TestSampleValues_Downsamples(t *testing.T) {
	values := make([]float64, 101)
	for i := range values {
		values[i] = float64(i)
	}

	got := sampleValues(values, 10)
	if len(got) != 10 {
		t.Fatalf("expected 10 values, got %d", len(got))
	}
	if got[0] != 0 || got[9] != 100 {
		t.Errorf("expected curve to span 0..100, got %v", got)
	}
}

func TestSampleValues_Stretches(t *testing.T) {
	got := sampleValues([]float64{1, 2}, 4)
	want := []float64{1, 1, 2, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	s := Sparkline([]float64{1, 2}, 4, "")
	if utf8.RuneCountInString(s) != 4 {
		t.Errorf("expected 4 blocks, got %q", s)
	}
}
