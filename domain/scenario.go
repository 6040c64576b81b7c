package domain

// Scenario is the persisted form of a loan plus its sparse edits. The three
// maps are keyed by 1-based month index encoded as a string.
type Scenario struct {
	ID            string             `json:"id"`
	SchemaVersion int                `json:"schemaVersion"`
	LoanAmount    float64            `json:"loanAmount"`
	ROIStart      float64            `json:"roiStart"`
	TenureMonths  int                `json:"tenureMonths"`
	Disbursements map[string]float64 `json:"disbursements"`
	Prepayments   map[string]float64 `json:"prepayments"`
	ROIChanges    map[string]float64 `json:"roiChanges"`
}

func (s Scenario) Terms() LoanTerms {
	return LoanTerms{
		Principal:         s.LoanAmount,
		AnnualRatePercent: s.ROIStart,
		TenureMonths:      s.TenureMonths,
	}
}
