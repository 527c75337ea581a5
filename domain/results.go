package domain

import "time"

// InvestmentEvolution holds the raw month-by-month balance grids of an
// investment account, one column per sample path.
type InvestmentEvolution struct {
	Untaxed PathGrid
	Taxed   PathGrid
}

// BuyingEvolution holds the raw outcome of a buying scenario. The mortgage
// series are deterministic and shared across paths; everything else is
// per-path.
type BuyingEvolution struct {
	MortgageBalance       []float64
	InterestPaid          []float64
	PrincipalPaid         []float64
	Maintenance           PathGrid
	CumulativeMaintenance PathGrid
	NetEquity             PathGrid

	FinalPropertyValue   []float64
	RemainingMortgage    float64
	TotalMaintenanceCost []float64
	FinalNetEquity       []float64
}

// PercentileStats resume una distribución de resultados finales.
type PercentileStats struct {
	Median float64 `json:"median"`
	P10    float64 `json:"p10"`
	P90    float64 `json:"p90"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
}

type ScenarioSummary struct {
	ScenarioType          string  `json:"scenario_type"`
	FinalValueMedian      float64 `json:"final_value_median"`
	FinalValuePessimistic float64 `json:"final_value_pessimistic"`
	FinalValueOptimistic  float64 `json:"final_value_optimistic"`
	TotalInvested         float64 `json:"total_invested"`
	TotalReturn           float64 `json:"total_return"`
	AnnualizedReturn      float64 `json:"annualized_return"`
}

type BuyingScenarioResults struct {
	Summary                ScenarioSummary `json:"summary"`
	FinalPropertyValue     PercentileStats `json:"final_property_value"`
	RemainingMortgage      float64         `json:"remaining_mortgage"`
	TotalMaintenanceCost   PercentileStats `json:"total_maintenance_cost"`
	NetEquity              PercentileStats `json:"net_equity"`
	MonthlyMortgageBalance []float64       `json:"monthly_mortgage_balance"`
	MonthlyPrincipalPaid   []float64       `json:"monthly_principal_paid"`
	MonthlyInterestPaid    []float64       `json:"monthly_interest_paid"`
	PropertyValuePaths     PathGrid        `json:"property_value_paths"`
	NetEquityPaths         PathGrid        `json:"net_equity_paths"`
}

type InvestmentScenarioResults struct {
	Summary                ScenarioSummary `json:"summary"`
	FinalValueUntaxed      PercentileStats `json:"final_value_untaxed"`
	FinalValueTaxed        PercentileStats `json:"final_value_taxed"`
	InvestmentPathsUntaxed PathGrid        `json:"investment_paths_untaxed"`
	InvestmentPathsTaxed   PathGrid        `json:"investment_paths_taxed"`
}

type SimulationResponse struct {
	SimulationID      string                     `json:"simulation_id"`
	Status            string                     `json:"status"`
	CreatedAt         time.Time                  `json:"created_at"`
	CompletedAt       time.Time                  `json:"completed_at"`
	BuyingResults     *BuyingScenarioResults     `json:"buying_results,omitempty"`
	InvestmentResults *InvestmentScenarioResults `json:"investment_results,omitempty"`
	Explanation       string                     `json:"explanation,omitempty"`
}
