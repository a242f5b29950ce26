package transcriber

import (
	"math"
	"testing"
)

func TestFormatRemainingTime(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{name: "NaN", in: math.NaN(), want: "--:--"},
		{name: "negative", in: -5, want: "--:--"},
		{name: "infinity", in: math.Inf(1), want: "--:--"},
		{name: "two minutes five", in: 125, want: "02:05"},
		{name: "zero", in: 0, want: "00:00"},
		{name: "rounds", in: 59.6, want: "01:00"},
		{name: "over an hour spills into minutes", in: 3700, want: "61:40"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatRemainingTime(tc.in); got != tc.want {
				t.Errorf("FormatRemainingTime(%v) = %q; want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestEstimateRemainingSeconds(t *testing.T) {
	// premier chunk : aucune estimation possible
	if got := EstimateRemainingSeconds(0, 1, 4); !math.IsNaN(got) {
		t.Errorf("chunk 1: got %v, want NaN", got)
	}

	// chunk 3 sur 5, 10s écoulées pour 2 chunks faits : 5s/chunk * 3 restants
	if got := EstimateRemainingSeconds(10, 3, 5); got != 15 {
		t.Errorf("got %v, want 15", got)
	}

	// dernier chunk : il reste exactement un chunk
	if got := EstimateRemainingSeconds(30, 4, 4); got != 10 {
		t.Errorf("got %v, want 10", got)
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  bonjour  ", "bonjour"},
		{"ligne un\nligne deux", "ligne un ligne deux"},
		{"a\r\nb\rc", "a b c"},
		{"   \n \t ", ""},
		{"", ""},
		{"déjà  propre", "déjà propre"},
	}
	for _, tc := range tests {
		if got := NormalizeText(tc.in); got != tc.want {
			t.Errorf("NormalizeText(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}
