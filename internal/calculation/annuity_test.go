package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const monthly8 = 0.08 / 12

func TestFutureValue(t *testing.T) {
	tests := []struct {
		name     string
		pv, pmt  float64
		r        float64
		n        int
		expected float64
	}{
		{"lump sum and contributions at 8%", 10000, 500, monthly8, 420, 1309866.741309066},
		{"zero rate is simple addition", 1000, 100, 0, 12, 2200},
		{"nothing invested", 0, 0, monthly8, 420, 0},
		{"zero months", 5000, 100, monthly8, 0, 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, FutureValue(tt.pv, tt.pmt, tt.r, tt.n), 1e-6)
		})
	}
}

func TestFutureValueDue(t *testing.T) {
	tests := []struct {
		name     string
		pv, pmt  float64
		r        float64
		n        int
		expected float64
	}{
		{"lump sum and contributions at 8%", 10000, 500, monthly8, 420, 1317513.016257943},
		{"zero rate matches ordinary annuity", 1000, 100, 0, 12, 2200},
		{"lump sum only matches ordinary annuity", 10000, 0, monthly8, 420, FutureValue(10000, 0, monthly8, 420)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, FutureValueDue(tt.pv, tt.pmt, tt.r, tt.n), 1e-6)
		})
	}

	// Paying at the start of the month earns one more month on contributions.
	pmt := RequiredPayment(1_000_000, 0, monthly8, 420)
	assert.InDelta(t, 1_000_000*(1+monthly8), FutureValueDue(0, pmt, monthly8, 420), 1e-6)
}

func TestRequiredPayment(t *testing.T) {
	// 30 to 65, nothing saved, one million target.
	assert.InDelta(t, 435.94212287944964, RequiredPayment(1_000_000, 0, monthly8, 420), 1e-9)

	assert.InDelta(t, 100.0, RequiredPayment(2200, 1000, 0, 12), 1e-12)

	// Compounding alone overshoots the target.
	assert.Less(t, RequiredPayment(150000, 100000, monthly8, 360), 0.0)
}

func TestRequiredPaymentInvertsFutureValue(t *testing.T) {
	cases := []struct {
		target, pv float64
		r          float64
		n          int
	}{
		{1_000_000, 0, monthly8, 420},
		{250_000, 20_000, monthly8, 120},
		{80_000, 5_000, 0, 60},
		{3_000_000, 150_000, 0.1 / 12, 600},
	}
	for _, c := range cases {
		pmt := RequiredPayment(c.target, c.pv, c.r, c.n)
		assert.InDelta(t, c.target, FutureValue(c.pv, pmt, c.r, c.n), c.target*1e-12)
	}
}

func TestAnnuityPresentValueAndLevelWithdrawal(t *testing.T) {
	assert.InDelta(t, 550101.6063881528, AnnuityPresentValue(5000, monthly8, 199), 1e-6)
	assert.InDelta(t, 5000.0*180, AnnuityPresentValue(5000, 0, 180), 1e-9)

	for _, n := range []int{1, 12, 199, 238} {
		pv := AnnuityPresentValue(5000, monthly8, n)
		assert.InDelta(t, 5000, LevelWithdrawal(pv, monthly8, n), 1e-9, "n=%d", n)
	}
	assert.InDelta(t, 100.0, LevelWithdrawal(1200, 0, 12), 1e-12)
}
