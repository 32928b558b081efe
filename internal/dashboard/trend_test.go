package dashboard

import (
	"testing"

	"econdash/internal/core"
)

func TestTrendOf(t *testing.T) {
	tests := []struct {
		name   string
		latest float64
		prev   *float64
		want   core.Trend
		arrow  string
	}{
		{"up", 5, core.Float(3), core.TrendUp, "↑"},
		{"down", 2, core.Float(4), core.TrendDown, "↓"},
		{"equal is down", 4, core.Float(4), core.TrendDown, "↓"},
		{"zero previous is present", 1, core.Float(0), core.TrendUp, "↑"},
		{"missing previous", 4, nil, core.TrendNeutral, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrendOf(core.Indicator{LatestValue: tt.latest, PreviousValue: tt.prev})
			if got != tt.want {
				t.Fatalf("TrendOf() = %q, want %q", got, tt.want)
			}
			if a := Arrow(got); a != tt.arrow {
				t.Fatalf("Arrow(%q) = %q, want %q", got, a, tt.arrow)
			}
		})
	}
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name   string
		latest float64
		prev   *float64
		want   string
		ok     bool
	}{
		{"up", 5, core.Float(3), "66.7%", true},
		{"down", 2, core.Float(4), "50.0%", true},
		{"equal", 4, core.Float(4), "0.0%", true},
		{"from negative", 1, core.Float(-2), "-150.0%", true},
		{"no previous", 4, nil, "", false},
		{"zero previous", 4, core.Float(0), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PercentChange(core.Indicator{LatestValue: tt.latest, PreviousValue: tt.prev})
			if ok != tt.ok || got != tt.want {
				t.Fatalf("PercentChange() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}
