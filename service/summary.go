package service

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"tbontb/domain"
)

// percentileStats resume una distribución de valores finales con los
// percentiles clave, la media y la desviación estándar.
func percentileStats(values []float64) domain.PercentileStats {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	return domain.PercentileStats{
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P10:    stat.Quantile(0.1, stat.Empirical, sorted, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, sorted, nil),
		Mean:   stat.Mean(sorted, nil),
		Std:    stat.StdDev(sorted, nil),
	}
}

// scenarioSummary arma el resumen de un escenario a partir de los valores
// finales de todas las trayectorias.
func scenarioSummary(scenarioType string, finalValues []float64, totalInvested float64, years int) domain.ScenarioSummary {
	sorted := append([]float64(nil), finalValues...)
	sort.Float64s(sorted)

	median := stat.Quantile(0.5, stat.Empirical, sorted, nil)

	annualized := 0.0
	if totalInvested > 0 && years > 0 && median > 0 {
		annualized = (math.Pow(median/totalInvested, 1/float64(years)) - 1) * 100
	}

	return domain.ScenarioSummary{
		ScenarioType:          scenarioType,
		FinalValueMedian:      median,
		FinalValuePessimistic: stat.Quantile(0.1, stat.Empirical, sorted, nil),
		FinalValueOptimistic:  stat.Quantile(0.9, stat.Empirical, sorted, nil),
		TotalInvested:         totalInvested,
		TotalReturn:           median - totalInvested,
		AnnualizedReturn:      annualized,
	}
}

// samplePaths recorta una cuadrícula a lo más maxPaths trayectorias para no
// inflar la respuesta. La selección es aleatoria pero reproducible con la
// fuente dada.
func samplePaths(grid domain.PathGrid, maxPaths int, src rand.Source) domain.PathGrid {
	if len(grid) == 0 {
		return grid
	}
	total := len(grid[0])
	if total <= maxPaths {
		return grid
	}

	rng := rand.New(src)
	indices := rng.Perm(total)[:maxPaths]
	sort.Ints(indices)

	sampled := make(domain.PathGrid, len(grid))
	for i, row := range grid {
		sampled[i] = make([]float64, maxPaths)
		for k, j := range indices {
			sampled[i][k] = row[j]
		}
	}
	return sampled
}
