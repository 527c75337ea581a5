package service

import (
	"runtime"
	"sync"

	"tbontb/domain"
)

// InvestmentService simula la evolución de una cuenta de inversión mes a mes,
// con aportes, comisiones, retorno de mercado e impuesto sobre la ganancia.
type InvestmentService struct {
	simulator *PathSimulator
}

func NewInvestmentService(simulator *PathSimulator) *InvestmentService {
	return &InvestmentService{simulator: simulator}
}

// Simulate corre el pronóstico de mercado (GBM con S0=1) y evoluciona la
// cuenta sobre todas las trayectorias.
func (s *InvestmentService) Simulate(input domain.InvestmentScenarioInput) (*domain.InvestmentEvolution, error) {
	years := input.SimulationYears
	if years <= 0 {
		years = DefaultSimulationYears
	}
	sampleCount := input.SampleCount
	if sampleCount <= 0 {
		sampleCount = DefaultSampleCount
	}

	marketPaths, err := s.simulator.SimulatePaths(
		1,
		input.ForecastParams.Mu,
		input.ForecastParams.Sigma,
		float64(years),
		1.0/MonthsPerYear,
		sampleCount,
	)
	if err != nil {
		return nil, err
	}

	return s.Evolve(input, marketPaths)
}

// Evolve aplica la recurrencia mensual sobre trayectorias de mercado ya
// simuladas. El orden dentro de cada mes es fijo y afecta el resultado:
// aporte, comisiones, retorno y por último la foto del balance con impuesto.
//
// El balance con impuesto es derivado, no acumula: cada mes se calcula como
// balance - (balance - depósitos totales) * tasa/100. La ganancia no se
// recorta en cero, así que una posición en pérdida produce un impuesto
// negativo (reembolso).
func (s *InvestmentService) Evolve(input domain.InvestmentScenarioInput, marketPaths domain.PathGrid) (*domain.InvestmentEvolution, error) {
	if len(marketPaths) < 2 || len(marketPaths[0]) == 0 {
		return nil, configErrorf("las trayectorias de mercado están vacías")
	}
	if input.TaxRate < 0 || input.TaxRate > 100 {
		return nil, configErrorf("tasa de impuesto inválida: %.2f", input.TaxRate)
	}
	if input.TransactionFee < 0 || input.TransactionFee > 100 {
		return nil, configErrorf("comisión de transacción inválida: %.2f", input.TransactionFee)
	}
	if input.PercentageManagementFee < 0 || input.PercentageManagementFee > 100 {
		return nil, configErrorf("comisión de administración inválida: %.2f", input.PercentageManagementFee)
	}

	months := len(marketPaths) - 1
	sampleCount := len(marketPaths[0])

	contributions := input.Profile.MonthlyFreeIncome
	for year, row := range contributions {
		if len(row) != MonthsPerYear {
			return nil, consistencyErrorf("el año %d del plan de aportes tiene %d meses, deben ser 12", year, len(row))
		}
	}
	if len(contributions)*MonthsPerYear < months {
		return nil, consistencyErrorf("el plan de aportes cubre %d meses y el horizonte es de %d", len(contributions)*MonthsPerYear, months)
	}

	alreadyInvested := true
	if input.InitialAlreadyInvested != nil {
		alreadyInvested = *input.InitialAlreadyInvested
	}

	initialCapital := input.Profile.Savings
	initBalance := initialCapital
	if !alreadyInvested {
		// Comisión de entrada única sobre el capital inicial.
		initBalance = initialCapital * (1 - input.TransactionFee/100)
	}

	untaxed := make(domain.PathGrid, months+1)
	taxed := make(domain.PathGrid, months+1)
	for i := range untaxed {
		untaxed[i] = make([]float64, sampleCount)
		taxed[i] = make([]float64, sampleCount)
	}

	feeFactor := 1 - input.TransactionFee/100
	monthlyFeeRate := input.PercentageManagementFee / 100 / MonthsPerYear
	taxFactor := input.TaxRate / 100

	// Cada trayectoria evoluciona de forma independiente a lo largo de todo
	// el horizonte; el eje de los meses es secuencial dentro de cada una.
	workers := runtime.NumCPU()
	chunk := (sampleCount + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < sampleCount; start += chunk {
		end := min(start+chunk, sampleCount)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for j := start; j < end; j++ {
				balance := initBalance
				totalDeposits := initialCapital
				untaxed[0][j] = balance
				taxed[0][j] = balance

				for m := 1; m <= months; m++ {
					yearIdx := (m - 1) / MonthsPerYear
					monthIdx := (m - 1) % MonthsPerYear
					contribution := contributions[yearIdx][monthIdx]

					balance += contribution * feeFactor                    // depósito o retiro
					balance = balance*(1-monthlyFeeRate) - input.FixedManagementFee // comisiones
					balance *= marketPaths[m][j] / marketPaths[m-1][j]     // retorno del mes

					taxed[m][j] = balance - (balance-totalDeposits)*taxFactor

					totalDeposits += contribution
					untaxed[m][j] = balance
				}
			}
		}(start, end)
	}
	wg.Wait()

	return &domain.InvestmentEvolution{Untaxed: untaxed, Taxed: taxed}, nil
}
