package service

import (
	"tbontb/domain"
)

// BuyingService combina las trayectorias del valor del inmueble, el cuadro
// combinado de la hipoteca y el costo de mantenimiento en trayectorias de
// patrimonio neto.
type BuyingService struct{}

func NewBuyingService() *BuyingService {
	return &BuyingService{}
}

// Evolve calcula, para cada mes y cada trayectoria:
//
//	patrimonio neto = valor del inmueble - balance de hipoteca - mantenimiento acumulado
//
// La serie de la hipoteca es determinística y compartida por todas las
// trayectorias; después del plazo el balance es cero. El mantenimiento anual
// es valor*(tasa/100) + costo fijo, prorrateado por mes y acumulado por
// trayectoria.
func (s *BuyingService) Evolve(propertyPaths domain.PathGrid, mortgage *MultiTrackMortgage, maintenanceRate, fixedMaintenanceAnnual float64) (*domain.BuyingEvolution, error) {
	if len(propertyPaths) < 2 || len(propertyPaths[0]) == 0 {
		return nil, configErrorf("las trayectorias del inmueble están vacías")
	}
	if maintenanceRate < 0 || maintenanceRate > 100 {
		return nil, configErrorf("tasa de mantenimiento inválida: %.2f", maintenanceRate)
	}
	if fixedMaintenanceAnnual < 0 {
		return nil, configErrorf("costo fijo de mantenimiento inválido: %.2f", fixedMaintenanceAnnual)
	}

	totalMonths := len(propertyPaths) - 1
	sampleCount := len(propertyPaths[0])
	combined := mortgage.CombinedSchedule()
	termMonths := len(combined)

	mortgageBalance := make([]float64, totalMonths+1)
	interestPaid := make([]float64, totalMonths+1)
	principalPaid := make([]float64, totalMonths+1)

	// En el mes 0 el balance es el préstamo completo.
	mortgageBalance[0] = mortgage.TotalLoanValue
	for m := 1; m <= totalMonths; m++ {
		if m <= termMonths {
			entry := combined[m-1]
			mortgageBalance[m] = entry.RemainingBalance
			interestPaid[m] = entry.Interest
			principalPaid[m] = entry.Principal
		}
		// Después del plazo la hipoteca queda saldada: todo en cero.
	}

	maintenance := make(domain.PathGrid, totalMonths+1)
	cumulativeMaintenance := make(domain.PathGrid, totalMonths+1)
	netEquity := make(domain.PathGrid, totalMonths+1)
	for i := range maintenance {
		maintenance[i] = make([]float64, sampleCount)
		cumulativeMaintenance[i] = make([]float64, sampleCount)
		netEquity[i] = make([]float64, sampleCount)
	}

	for m := 1; m <= totalMonths; m++ {
		for j := 0; j < sampleCount; j++ {
			annual := propertyPaths[m][j]*(maintenanceRate/100) + fixedMaintenanceAnnual
			monthly := annual / MonthsPerYear
			maintenance[m][j] = monthly
			cumulativeMaintenance[m][j] = cumulativeMaintenance[m-1][j] + monthly
		}
	}

	for m := 0; m <= totalMonths; m++ {
		for j := 0; j < sampleCount; j++ {
			netEquity[m][j] = propertyPaths[m][j] - mortgageBalance[m] - cumulativeMaintenance[m][j]
		}
	}

	return &domain.BuyingEvolution{
		MortgageBalance:       mortgageBalance,
		InterestPaid:          interestPaid,
		PrincipalPaid:         principalPaid,
		Maintenance:           maintenance,
		CumulativeMaintenance: cumulativeMaintenance,
		NetEquity:             netEquity,

		FinalPropertyValue:   propertyPaths[totalMonths],
		RemainingMortgage:    mortgageBalance[totalMonths],
		TotalMaintenanceCost: cumulativeMaintenance[totalMonths],
		FinalNetEquity:       netEquity[totalMonths],
	}, nil
}
