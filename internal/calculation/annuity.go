package calculation

import "math"

// FutureValue returns the balance after n months when presentValue is
// invested now and monthlyPayment is added every month, compounding at the
// monthly rate r:
//
//	FV = PV * (1 + r)^n + PMT * ((1 + r)^n - 1) / r
//
// A zero rate degrades to simple addition.
func FutureValue(presentValue, monthlyPayment, r float64, n int) float64 {
	if r == 0 {
		return presentValue + monthlyPayment*float64(n)
	}
	compound := math.Pow(1+r, float64(n))
	return presentValue*compound + monthlyPayment*(compound-1)/r
}

// FutureValueDue is FutureValue with each payment made at the start of the
// month, so it earns one extra month of interest. This is the balance the
// month-by-month projection reaches at retirement:
//
//	FV = PV * (1 + r)^n + PMT * ((1 + r)^n - 1) / r * (1 + r)
func FutureValueDue(presentValue, monthlyPayment, r float64, n int) float64 {
	if r == 0 {
		return presentValue + monthlyPayment*float64(n)
	}
	compound := math.Pow(1+r, float64(n))
	return presentValue*compound + monthlyPayment*(compound-1)/r*(1+r)
}

// RequiredPayment is the level monthly payment that grows presentValue into
// target after n months:
//
//	PMT = (FV - PV * (1 + r)^n) / (((1 + r)^n - 1) / r)
//
// The result is negative when presentValue alone already exceeds target.
func RequiredPayment(target, presentValue, r float64, n int) float64 {
	if r == 0 {
		return (target - presentValue) / float64(n)
	}
	compound := math.Pow(1+r, float64(n))
	return (target - presentValue*compound) / ((compound - 1) / r)
}

// AnnuityPresentValue is the balance needed today to fund n level monthly
// withdrawals of payment:
//
//	PV = PMT * (1 - (1 + r)^-n) / r
func AnnuityPresentValue(payment, r float64, n int) float64 {
	if r == 0 {
		return payment * float64(n)
	}
	return payment * (1 - math.Pow(1+r, -float64(n))) / r
}

// LevelWithdrawal is the inverse of AnnuityPresentValue: the monthly
// withdrawal that exhausts presentValue after exactly n months.
func LevelWithdrawal(presentValue, r float64, n int) float64 {
	if r == 0 {
		return presentValue / float64(n)
	}
	return presentValue * r / (1 - math.Pow(1+r, -float64(n)))
}
