package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"

	"tbontb/domain"
	"tbontb/repository"
)

const (
	// StatusCompleted marca una corrida terminada; las simulaciones nunca
	// fallan a medias, o hay cuadrícula completa o hay error.
	StatusCompleted = "completed"

	cacheTTL = 1 * time.Hour
)

// SimulationService orquesta los motores: hipoteca, pronóstico, inversión y
// compra. Cada corrida es una función pura de sus entradas; el servicio solo
// agrega cache, persistencia en memoria y la explicación opcional.
type SimulationService struct {
	simulator  *PathSimulator
	investment *InvestmentService
	buying     *BuyingService
	repo       repository.SimulationRepository
	cache      repository.CacheRepository
	ai         *AIService
	seed       uint64
}

// NewSimulationService creates a new SimulationService with the given
// repository and cache. The seed makes every forecast reproducible.
func NewSimulationService(
	seed uint64,
	repo repository.SimulationRepository,
	cache repository.CacheRepository,
) *SimulationService {
	simulator := NewPathSimulator(seed)
	return &SimulationService{
		simulator:  simulator,
		investment: NewInvestmentService(simulator),
		buying:     NewBuyingService(),
		repo:       repo,
		cache:      cache,
		ai:         NewAIService(),
		seed:       seed,
	}
}

// RunBuyingScenario simula la compra de un inmueble con hipoteca multi-tramo.
func (s *SimulationService) RunBuyingScenario(input domain.BuyingScenarioInput) (*domain.BuyingScenarioResults, error) {
	years, sampleCount, err := normalizeHorizon(input.SimulationYears, input.SampleCount)
	if err != nil {
		return nil, err
	}

	mortgage, err := BuildMultiTrackMortgage(input.MortgageParams)
	if err != nil {
		return nil, err
	}

	// El préstamo más el enganche deben cubrir exactamente el precio.
	if math.Abs(mortgage.TotalLoanValue+input.DownPayment-input.ApartmentPrice) > 1e-6 {
		return nil, consistencyErrorf(
			"el financiamiento no cuadra: préstamo (%.2f) + enganche (%.2f) != precio (%.2f)",
			mortgage.TotalLoanValue, input.DownPayment, input.ApartmentPrice,
		)
	}

	propertyPaths, err := s.simulator.SimulatePaths(
		input.ApartmentPrice,
		input.ForecastParams.Mu,
		input.ForecastParams.Sigma,
		float64(years),
		1.0/MonthsPerYear,
		sampleCount,
	)
	if err != nil {
		return nil, err
	}

	evolution, err := s.buying.Evolve(propertyPaths, mortgage, input.MaintenanceCostRate, input.FixedMaintenanceCost)
	if err != nil {
		return nil, err
	}

	return &domain.BuyingScenarioResults{
		Summary:                scenarioSummary("buying", evolution.FinalNetEquity, input.ApartmentPrice, years),
		FinalPropertyValue:     percentileStats(evolution.FinalPropertyValue),
		RemainingMortgage:      evolution.RemainingMortgage,
		TotalMaintenanceCost:   percentileStats(evolution.TotalMaintenanceCost),
		NetEquity:              percentileStats(evolution.FinalNetEquity),
		MonthlyMortgageBalance: evolution.MortgageBalance,
		MonthlyPrincipalPaid:   evolution.PrincipalPaid,
		MonthlyInterestPaid:    evolution.InterestPaid,
		PropertyValuePaths:     samplePaths(propertyPaths, MaxResponsePaths, rand.NewSource(s.seed)),
		NetEquityPaths:         samplePaths(evolution.NetEquity, MaxResponsePaths, rand.NewSource(s.seed)),
	}, nil
}

// RunInvestmentScenario simula invertir el capital en un activo riesgoso.
func (s *SimulationService) RunInvestmentScenario(input domain.InvestmentScenarioInput) (*domain.InvestmentScenarioResults, error) {
	years, sampleCount, err := normalizeHorizon(input.SimulationYears, input.SampleCount)
	if err != nil {
		return nil, err
	}
	input.SimulationYears = years
	input.SampleCount = sampleCount

	evolution, err := s.investment.Simulate(input)
	if err != nil {
		return nil, err
	}

	months := len(evolution.Untaxed) - 1
	finalUntaxed := evolution.Untaxed[months]
	finalTaxed := evolution.Taxed[months]

	// Total invertido: ahorro inicial más los aportes de los meses simulados.
	totalInvested := input.Profile.Savings
	for m := 1; m <= months; m++ {
		totalInvested += input.Profile.MonthlyFreeIncome[(m-1)/MonthsPerYear][(m-1)%MonthsPerYear]
	}

	return &domain.InvestmentScenarioResults{
		Summary:                scenarioSummary("investment", finalTaxed, totalInvested, years),
		FinalValueUntaxed:      percentileStats(finalUntaxed),
		FinalValueTaxed:        percentileStats(finalTaxed),
		InvestmentPathsUntaxed: samplePaths(evolution.Untaxed, MaxResponsePaths, rand.NewSource(s.seed)),
		InvestmentPathsTaxed:   samplePaths(evolution.Taxed, MaxResponsePaths, rand.NewSource(s.seed)),
	}, nil
}

// RunComparison corre los escenarios presentes y arma una sola respuesta.
func (s *SimulationService) RunComparison(input domain.ComparisonInput) (*domain.SimulationResponse, error) {
	if input.BuyingScenario == nil && input.InvestmentScenario == nil {
		return nil, consistencyErrorf("se requiere al menos un escenario")
	}

	cacheKey, keyOK := requestCacheKey(input)
	if keyOK {
		if cached, ok := s.cache.Get(cacheKey); ok {
			var response domain.SimulationResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				return &response, nil
			}
			log.Printf("Warning: discarding malformed cached response for %s", cacheKey)
		}
	}

	createdAt := time.Now()
	response := &domain.SimulationResponse{
		SimulationID: uuid.NewString(),
		Status:       StatusCompleted,
		CreatedAt:    createdAt,
	}

	if input.BuyingScenario != nil {
		results, err := s.RunBuyingScenario(*input.BuyingScenario)
		if err != nil {
			return nil, err
		}
		response.BuyingResults = results
	}

	if input.InvestmentScenario != nil {
		results, err := s.RunInvestmentScenario(*input.InvestmentScenario)
		if err != nil {
			return nil, err
		}
		response.InvestmentResults = results
	}

	if response.BuyingResults != nil && response.InvestmentResults != nil {
		response.Explanation = s.ai.GenerateComparisonExplanation(
			response.BuyingResults.Summary,
			response.InvestmentResults.Summary,
		)
	}

	response.CompletedAt = time.Now()

	// Guardar la corrida (no crítico si falla)
	if err := s.repo.Save(response.SimulationID, *response); err != nil {
		log.Printf("Warning: failed to save simulation run: %v", err)
	}

	if keyOK {
		if encoded, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(cacheKey, string(encoded), cacheTTL); err != nil {
				log.Printf("Warning: failed to cache simulation response: %v", err)
			}
		}
	}

	return response, nil
}

// MortgagePreview calcula el cuadro combinado y resume el primer año, sin
// correr ninguna simulación estocástica.
func (s *SimulationService) MortgagePreview(params map[string]domain.MortgageTrackParams) (*domain.MortgagePreview, error) {
	mortgage, err := BuildMultiTrackMortgage(params)
	if err != nil {
		return nil, err
	}

	combined := mortgage.CombinedSchedule()
	sample := combined
	if len(sample) > MonthsPerYear {
		sample = sample[:MonthsPerYear]
	}

	payments := make([]float64, len(sample))
	totalPayment := 0.0
	totalInterest := 0.0
	for i, entry := range sample {
		payments[i] = entry.Payment
		totalPayment += entry.Payment
		totalInterest += entry.Interest
	}

	average := 0.0
	if len(sample) > 0 {
		average = totalPayment / float64(len(sample))
	}

	return &domain.MortgagePreview{
		TotalLoanValue:          mortgage.TotalLoanValue,
		MonthlyPaymentFirstYear: payments,
		AverageMonthlyPayment:   average,
		TotalInterestYear1:      totalInterest,
		ScheduleSample:          sample,
	}, nil
}

func normalizeHorizon(years, sampleCount int) (int, int, error) {
	if years == 0 {
		years = DefaultSimulationYears
	}
	if years <= 0 || years > MaxSimulationYears {
		return 0, 0, configErrorf("horizonte de simulación inválido: %d años", years)
	}
	if sampleCount == 0 {
		sampleCount = DefaultSampleCount
	}
	if sampleCount <= 0 || sampleCount > MaxSampleCount {
		return 0, 0, configErrorf("número de simulaciones inválido: %d", sampleCount)
	}
	return years, sampleCount, nil
}

// requestCacheKey deriva una llave estable del cuerpo de la petición.
func requestCacheKey(input domain.ComparisonInput) (string, bool) {
	encoded, err := json.Marshal(input)
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(encoded)
	return "simulation:" + hex.EncodeToString(sum[:]), true
}
