package domain

type LoanTerms struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TenureMonths      int     `json:"tenureMonths"`
}

// MonthlyRate converts the nominal annual percent to the per-period rate.
func (t LoanTerms) MonthlyRate() float64 {
	return t.AnnualRatePercent / 12 / 100
}

// Override holds the sparse adjustments for a single month. RateChange
// is the new annual percent; nil means the rate is untouched that month.
type Override struct {
	Disbursement float64  `json:"disbursement,omitempty"`
	Prepayment   float64  `json:"prepayment,omitempty"`
	RateChange   *float64 `json:"rateChange,omitempty"`
}

// OverrideSet maps a 1-based month index to its override. JSON round-trips
// the integer keys as strings, matching the persisted sparse maps.
type OverrideSet map[int]Override

type ScheduleRow struct {
	MonthIndex   int      `json:"monthIndex"`
	EMI          float64  `json:"emi"`
	Interest     float64  `json:"interest"`
	Principal    float64  `json:"principal"`
	Disbursement float64  `json:"disbursement,omitempty"`
	Prepayment   float64  `json:"prepayment,omitempty"`
	RateChange   *float64 `json:"rateChange,omitempty"`
	Balance      float64  `json:"balance"`
}

type Schedule []ScheduleRow

type ScheduleResult struct {
	Schedule           Schedule `json:"schedule"`
	TotalInterest      float64  `json:"totalInterest"`
	InterestSaved      float64  `json:"interestSaved"`
	TotalDisbursements float64  `json:"totalDisbursements"`
	CompletionMonth    int      `json:"completionMonth"`
	Diagnostics        []string `json:"diagnostics,omitempty"`
	Explanation        string   `json:"explanation,omitempty"`
}
