package domain

// PathGrid is a simulation ensemble: rows are months (row 0 = initial value),
// columns are independent sample paths. Immutable once produced.
type PathGrid [][]float64

// ForecastParams parametriza el pronóstico GBM.
type ForecastParams struct {
	Mu    float64 `json:"mu"`    // deriva anual, ej. 0.07
	Sigma float64 `json:"sigma"` // volatilidad anual, ej. 0.15
}

// FinancialProfile es el perfil financiero del usuario.
type FinancialProfile struct {
	// MonthlyFreeIncome es el aporte mensual disponible, años x 12 meses.
	MonthlyFreeIncome [][]float64 `json:"monthly_free_income"`
	Savings           float64     `json:"savings"`
}

type BuyingScenarioInput struct {
	Profile              FinancialProfile               `json:"profile"`
	ApartmentPrice       float64                        `json:"apartment_price"`
	DownPayment          float64                        `json:"down_payment"`
	MortgageParams       map[string]MortgageTrackParams `json:"mortgage_params"`
	MaintenanceCostRate  float64                        `json:"maintenance_cost_rate"`
	FixedMaintenanceCost float64                        `json:"fixed_maintenance_cost"`
	ForecastParams       ForecastParams                 `json:"forecast_params"`
	SimulationYears      int                            `json:"simulation_years"`
	SampleCount          int                            `json:"n_sim"`
}

type InvestmentScenarioInput struct {
	Profile                 FinancialProfile `json:"profile"`
	TaxRate                 float64          `json:"tax_rate"`
	TransactionFee          float64          `json:"transaction_fee"`
	PercentageManagementFee float64          `json:"percentage_management_fee"`
	FixedManagementFee      float64          `json:"fixed_management_fee"`
	// InitialAlreadyInvested por defecto es true: el capital inicial ya está
	// invertido y no paga comisión de entrada.
	InitialAlreadyInvested *bool          `json:"initial_already_invested,omitempty"`
	ForecastParams         ForecastParams `json:"forecast_params"`
	SimulationYears        int            `json:"simulation_years"`
	SampleCount            int            `json:"n_sim"`
}

type ComparisonInput struct {
	BuyingScenario     *BuyingScenarioInput     `json:"buying_scenario,omitempty"`
	InvestmentScenario *InvestmentScenarioInput `json:"investment_scenario,omitempty"`
}
