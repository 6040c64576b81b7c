package service

import (
	"fmt"
	"math"

	"emi-planner/domain"
)

// RunBaseline computes the reference schedule for terms with no overrides.
// The EMI is fixed once from the full tenure and the balance is walked down
// month by month until it clears or the tenure runs out.
func RunBaseline(terms domain.LoanTerms) domain.ScheduleResult {
	balance := terms.Principal
	monthlyRate := terms.MonthlyRate()
	emi := ComputeEMI(balance, monthlyRate, terms.TenureMonths)

	schedule := domain.Schedule{}
	totalInterest := 0.0

	for month := 1; month <= terms.TenureMonths && balance > BalanceTolerance; month++ {
		interest := balance * monthlyRate
		principal := emi - interest
		if principal < 0 {
			principal = 0
		}
		if principal > balance {
			principal = balance
		}
		balance -= principal
		totalInterest += interest

		schedule = append(schedule, domain.ScheduleRow{
			MonthIndex: month,
			EMI:        emi,
			Interest:   interest,
			Principal:  principal,
			Balance:    balance,
		})
	}

	return domain.ScheduleResult{
		Schedule:        schedule,
		TotalInterest:   totalInterest,
		CompletionMonth: len(schedule),
	}
}

// RunWithOverrides re-runs the full walk from month 1 applying the sparse
// overrides as they are encountered. A net disbursement re-derives the EMI
// over the months left until the current tenure target (tenure stays fixed);
// a rate change or a net prepayment re-derives the tenure target and holds
// the EMI. The walk never fails: pathological inputs end in a truncated
// schedule with a diagnostic.
func RunWithOverrides(terms domain.LoanTerms, overrides domain.OverrideSet) domain.ScheduleResult {
	balance := terms.Principal
	monthlyRate := terms.MonthlyRate()
	currentEMI := ComputeEMI(balance, monthlyRate, terms.TenureMonths)

	// Meses restantes contados desde el mes 1; se reancla cuando la
	// política recalcula el plazo.
	targetRemainingMonths := terms.TenureMonths

	schedule := domain.Schedule{}
	totalInterest := 0.0
	totalDisbursements := 0.0
	var diagnostics []string

	month := 0
	for balance > BalanceTolerance {
		month++
		if month > SafeCapMonths {
			diagnostics = append(diagnostics,
				fmt.Sprintf("cálculo truncado en el límite de %d meses", SafeCapMonths))
			break
		}

		// 1-3. Interés del mes sobre el balance inicial, luego abono a capital
		interest := balance * monthlyRate
		principal := currentEMI - interest
		if principal < 0 {
			principal = 0
			diagnostics = append(diagnostics,
				fmt.Sprintf("mes %d: la cuota no cubre el interés del periodo", month))
		}
		if principal > balance {
			principal = balance
		}
		balance -= principal

		// 4. Ajustes dispersos del mes
		override := overrides[month]
		disbursement := override.Disbursement
		prepayment := override.Prepayment
		netDelta := disbursement - prepayment

		balance += netDelta
		if balance < 0 {
			balance = 0
		}
		totalDisbursements += disbursement

		// 5.
		totalInterest += interest

		// 6. Cambio de tasa: aplica desde el interés del mes siguiente
		oldRate := monthlyRate
		rateChanged := false
		var rateChange *float64
		if override.RateChange != nil {
			// Copia propia: la fila no debe compartir el puntero del caller
			newAnnualRate := *override.RateChange
			rateChange = &newAnnualRate
			monthlyRate = newAnnualRate / 12 / 100
			rateChanged = true
		}

		// 7. Política de recálculo: el desembolso lo absorbe la cuota (plazo
		// fijo, con la tasa vieja); el cambio de tasa o el prepago los
		// absorbe el plazo (cuota fija).
		emiChanged := false
		if netDelta > 0 && balance > BalanceTolerance {
			currentEMI = ComputeEMI(balance, oldRate, targetRemainingMonths-month)
			emiChanged = true
		}
		if rateChanged || (netDelta < 0 && !emiChanged) {
			remaining := ComputeRemainingMonths(balance, currentEMI, monthlyRate)
			if math.IsInf(remaining, 1) || math.IsNaN(remaining) {
				// No se puede rederivar el plazo: se mantiene el anterior
				diagnostics = append(diagnostics,
					fmt.Sprintf("mes %d: la cuota no alcanza para amortizar; se mantiene el plazo anterior", month))
			} else {
				targetRemainingMonths = month + int(math.Ceil(remaining))
			}
		}

		// 8.
		schedule = append(schedule, domain.ScheduleRow{
			MonthIndex:   month,
			EMI:          currentEMI,
			Interest:     interest,
			Principal:    principal,
			Disbursement: disbursement,
			Prepayment:   prepayment,
			RateChange:   rateChange,
			Balance:      balance,
		})

		// 9. Guardia anti-estancamiento
		if principal <= BalanceTolerance && disbursement == 0 && prepayment == 0 &&
			balance > BalanceTolerance {
			diagnostics = append(diagnostics,
				fmt.Sprintf("mes %d: sin progreso en la amortización; cálculo terminado", month))
			break
		}
	}

	baseline := RunBaseline(terms)

	return domain.ScheduleResult{
		Schedule:           schedule,
		TotalInterest:      totalInterest,
		InterestSaved:      math.Max(0, baseline.TotalInterest-totalInterest),
		TotalDisbursements: totalDisbursements,
		CompletionMonth:    len(schedule),
		Diagnostics:        diagnostics,
	}
}
