package service

import (
	"math"
	"runtime"
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"tbontb/domain"
)

// PathSimulator genera conjuntos de trayectorias GBM (movimiento browniano
// geométrico): los log-retornos se distribuyen normal con deriva mu y
// volatilidad sigma. Cada trayectoria usa su propia fuente derivada de la
// semilla base, así el resultado es reproducible sin importar cuántos
// workers corran.
type PathSimulator struct {
	seed uint64
}

func NewPathSimulator(seed uint64) *PathSimulator {
	return &PathSimulator{seed: seed}
}

// SimulatePaths simula trayectorias GBM.
//
// El paso i de cada muestra es:
//
//	v[i] = v[i-1] * exp((mu - 0.5*sigma^2)*dt + sigma*sqrt(dt)*z)
//
// con z ~ N(0,1) independiente por muestra y por paso. Los pasos son
// estrictamente secuenciales dentro de una trayectoria; las trayectorias son
// independientes entre sí y se reparten en bloques por CPU.
func (s *PathSimulator) SimulatePaths(initial, drift, volatility, horizonYears, dt float64, sampleCount int) (domain.PathGrid, error) {
	// Validar antes de simular: nunca se devuelve una cuadrícula parcial.
	if initial <= 0 {
		return nil, configErrorf("valor inicial inválido: %.2f", initial)
	}
	if volatility < 0 {
		return nil, configErrorf("volatilidad inválida: %.4f", volatility)
	}
	if horizonYears <= 0 {
		return nil, configErrorf("horizonte inválido: %.2f años", horizonYears)
	}
	if dt <= 0 {
		return nil, configErrorf("paso de tiempo inválido: %.4f", dt)
	}
	if sampleCount <= 0 {
		return nil, configErrorf("número de simulaciones inválido: %d", sampleCount)
	}

	steps := int(horizonYears/dt + 0.5)
	grid := make(domain.PathGrid, steps+1)
	for i := range grid {
		grid[i] = make([]float64, sampleCount)
	}
	for j := 0; j < sampleCount; j++ {
		grid[0][j] = initial
	}

	driftTerm := (drift - 0.5*volatility*volatility) * dt
	volTerm := volatility * math.Sqrt(dt)

	workers := runtime.NumCPU()
	chunk := (sampleCount + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < sampleCount; start += chunk {
		end := min(start+chunk, sampleCount)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for j := start; j < end; j++ {
				normal := distuv.Normal{
					Mu:    0,
					Sigma: 1,
					Src:   rand.NewSource(s.seed + uint64(j)),
				}
				for i := 1; i <= steps; i++ {
					grid[i][j] = grid[i-1][j] * math.Exp(driftTerm+volTerm*normal.Rand())
				}
			}
		}(start, end)
	}
	wg.Wait()

	return grid, nil
}
