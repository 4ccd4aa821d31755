//go:build unit

package output

import "testing"

func TestFormatCurrency(t *testing.T) {
	cases := map[float64]string{
		1234.567:  "R$ 1.234,57",
		0:         "R$ 0,00",
		-99.5:     "-R$ 99,50",
		435.94212: "R$ 435,94",
	}
	for in, want := range cases {
		if got := FormatCurrency(in); got != want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPercentage(t *testing.T) {
	if got, want := FormatPercentage(0.123456), "12.35%"; got != want {
		t.Errorf("FormatPercentage(0.123456) = %q, want %q", got, want)
	}
}

func TestFormatAge(t *testing.T) {
	cases := map[float64]string{
		65:      "65",
		65.5:    "65y6m",
		64.99:   "65",
		30.0833: "30y1m",
	}
	for in, want := range cases {
		if got := FormatAge(in); got != want {
			t.Errorf("FormatAge(%v) = %q, want %q", in, got, want)
		}
	}
}
