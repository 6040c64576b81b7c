package service

import "math"

// ComputeEMI returns the fixed monthly payment that amortizes principal at
// monthlyRate over months periods. Degenerate inputs yield 0, never an error.
func ComputeEMI(principal, monthlyRate float64, months int) float64 {
	if months <= 0 || principal <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return principal / float64(months)
	}
	n := float64(months)
	factor := math.Pow(1+monthlyRate, n)
	return principal * monthlyRate * factor / (factor - 1)
}

// ComputeRemainingMonths inverts the annuity relation: how many months of
// paying emi it takes to clear principal at monthlyRate. The result is a
// real month count; callers ceil it. Returns +Inf when the payment cannot
// amortize the balance (emi at or below the interest-only threshold).
func ComputeRemainingMonths(principal, emi, monthlyRate float64) float64 {
	if principal <= 0 {
		return 0
	}
	if emi <= 0 {
		return math.Inf(1)
	}
	if monthlyRate == 0 {
		return math.Ceil(principal / emi)
	}
	if emi <= principal*monthlyRate+RateTolerance {
		return math.Inf(1)
	}
	months := math.Log(emi/(emi-principal*monthlyRate)) / math.Log(1+monthlyRate)

	// Absorber el ruido de coma flotante: a unos ulps de un entero, el
	// conteo real es ese entero (si no, el ceil del caller agrega un mes)
	if nearest := math.Round(months); math.Abs(months-nearest) < MonthCountTolerance {
		return nearest
	}
	return months
}
