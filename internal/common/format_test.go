package common

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{2010, "$2,010.00"},
		{2170.8, "$2,170.80"},
		{1234567.891, "$1,234,567.89"},
		{-45.5, "-$45.50"},
		{999.999, "$1,000.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	if got := FormatSignedMoney(510); got != "+$510.00" {
		t.Errorf("FormatSignedMoney(510) = %q", got)
	}
	if got := FormatSignedMoney(-10); got != "-$10.00" {
		t.Errorf("FormatSignedMoney(-10) = %q", got)
	}
	if got := FormatSignedPct(34); got != "+34.00%" {
		t.Errorf("FormatSignedPct(34) = %q", got)
	}
	if got := FormatSignedPct(0.001); got != "0.00%" {
		t.Errorf("FormatSignedPct(0.001) = %q", got)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in     float64
		places int32
		want   float64
	}{
		{2170.8000000001, 2, 2170.8},
		{0.125, 2, 0.13},
		{-0.125, 2, -0.13},
		{1.0 / 3.0, 4, 0.3333},
	}
	for _, tt := range tests {
		if got := Round(tt.in, tt.places); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.in, tt.places, got, tt.want)
		}
	}
}

func TestFormatRatio(t *testing.T) {
	if got := FormatRatio(0.5); got != "0.5000" {
		t.Errorf("FormatRatio(0.5) = %q", got)
	}
}
