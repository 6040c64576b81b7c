package service

const (
	MaxLoanAmount        = 1_000_000_000.0 // 1 billón
	MaxAnnualRatePercent = 50.0            // 50% anual
	MaxTenureMonths      = 600             // 50 años
	MinTenureMonths      = 1

	// Tolerancia para considerar el préstamo pagado
	BalanceTolerance = 1e-4

	// Margen para detectar una cuota que apenas cubre el interés
	RateTolerance = 1e-12

	// Margen para reconocer un conteo de meses que ya es entero
	MonthCountTolerance = 1e-9

	// Límite duro de iteraciones para evitar loops infinitos
	SafeCapMonths = 5000

	ScenarioSchemaVersion = 1
)
