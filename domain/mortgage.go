package domain

// MortgageTrackParams describe un tramo de hipoteca tal como llega del API.
// El campo Type selecciona el régimen de tasa: fixed, prime, linked,
// adjustable o adjustablelinked.
type MortgageTrackParams struct {
	Type             string    `json:"type"`
	Principal        float64   `json:"principal"`
	TermYears        int       `json:"term_years"`
	InterestRate     float64   `json:"interest_rate,omitempty"`
	Spread           float64   `json:"spread,omitempty"`
	PrimeRates       []float64 `json:"prime_rates,omitempty"`
	CPIList          []float64 `json:"cpi_list,omitempty"`
	ReferenceIndex   []float64 `json:"reference_index,omitempty"`
	FixedPeriodYears int       `json:"fixed_period_years,omitempty"`
}

// AmortizationEntry is one period of a single track's schedule.
// Payment = Interest + Principal for every entry.
type AmortizationEntry struct {
	Period           int     `json:"period"`
	Payment          float64 `json:"total_payment"`
	Interest         float64 `json:"interest_payment"`
	Principal        float64 `json:"principal_payment"`
	RemainingBalance float64 `json:"remaining_balance"`
	InterestRate     float64 `json:"current_interest_rate"`
}

// CombinedEntry is one period of the aggregated multi-track schedule.
// Las tasas por tramo no son sumables, por eso no aparecen aquí.
type CombinedEntry struct {
	Period           int     `json:"period"`
	Payment          float64 `json:"total_payment"`
	Interest         float64 `json:"interest_payment"`
	Principal        float64 `json:"principal_payment"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// MortgagePreview resume el primer año de una hipoteca multi-tramo.
type MortgagePreview struct {
	TotalLoanValue          float64         `json:"total_loan_value"`
	MonthlyPaymentFirstYear []float64       `json:"monthly_payment_first_year"`
	AverageMonthlyPayment   float64         `json:"average_monthly_payment"`
	TotalInterestYear1      float64         `json:"total_interest_year_1"`
	ScheduleSample          []CombinedEntry `json:"schedule_sample"`
}
