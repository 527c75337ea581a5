package service

import (
	"math"

	"tbontb/domain"
)

// Este calculador asume un sistema de retorno "Shpitzer": bajo condiciones
// fijas el pago mensual es constante.

// rateResolver entrega la tasa anual nominal (en porcentaje) de un período.
type rateResolver func(period int) float64

// balanceState es el estado de la recurrencia entre períodos. Los tramos
// indexados al IPC llevan un balance real separado del nominal.
type balanceState struct {
	nominal float64
	real    float64
}

// balanceUpdater aplica el pago de capital de un período y devuelve el nuevo
// estado. No muta nada fuera del estado que recibe.
type balanceUpdater func(s balanceState, principalPaid float64, period int) balanceState

// MortgageTrack es un tramo de hipoteca: capital, plazo y un régimen de tasa.
// Los parámetros son inmutables; el cuadro de amortización se calcula una
// sola vez y se cachea.
type MortgageTrack struct {
	Principal  float64
	TermMonths int

	rateFor       rateResolver
	updateBalance balanceUpdater

	schedule []domain.AmortizationEntry
}

// NewFixedTrack crea un tramo de tasa fija sin indexación.
func NewFixedTrack(principal float64, termYears int, interestRate float64) (*MortgageTrack, error) {
	if err := validateTrackBasics(principal, termYears); err != nil {
		return nil, err
	}
	if err := validateRate(interestRate); err != nil {
		return nil, err
	}
	return &MortgageTrack{
		Principal:     principal,
		TermMonths:    termYears * MonthsPerYear,
		rateFor:       constantRate(interestRate),
		updateBalance: subtractPrincipal,
	}, nil
}

// NewPrimeTrack crea un tramo variable indexado a la tasa prime: la tasa del
// período p es primeRates[p-1] + spread.
func NewPrimeTrack(principal float64, termYears int, primeRates []float64, spread float64) (*MortgageTrack, error) {
	if err := validateTrackBasics(principal, termYears); err != nil {
		return nil, err
	}
	months := termYears * MonthsPerYear
	if len(primeRates) < months {
		return nil, configErrorf("lista de tasas prime incompleta: se requieren %d valores, hay %d", months, len(primeRates))
	}
	return &MortgageTrack{
		Principal:     principal,
		TermMonths:    months,
		rateFor:       indexedRate(primeRates, spread),
		updateBalance: subtractPrincipal,
	}, nil
}

// NewLinkedFixedTrack crea un tramo de tasa real fija indexado al IPC. El
// pago se calcula con la tasa real; el balance nominal reportado es el
// balance real ajustado por el alza del IPC del período.
func NewLinkedFixedTrack(principal float64, termYears int, realInterestRate float64, cpiList []float64) (*MortgageTrack, error) {
	if err := validateTrackBasics(principal, termYears); err != nil {
		return nil, err
	}
	if err := validateRate(realInterestRate); err != nil {
		return nil, err
	}
	months := termYears * MonthsPerYear
	if len(cpiList) < months {
		return nil, configErrorf("lista de IPC incompleta: se requieren %d valores, hay %d", months, len(cpiList))
	}
	return &MortgageTrack{
		Principal:     principal,
		TermMonths:    months,
		rateFor:       constantRate(realInterestRate),
		updateBalance: cpiLinkedUpdater(cpiList),
	}, nil
}

// NewAdjustableTrack crea un tramo ajustable: tasa inicial durante el bloque
// fijo y después un valor nuevo del índice de referencia por cada bloque,
// sosteniendo el último valor cuando el índice se agota.
func NewAdjustableTrack(principal float64, termYears int, initialRate float64, referenceIndex []float64, fixedPeriodYears int) (*MortgageTrack, error) {
	if err := validateTrackBasics(principal, termYears); err != nil {
		return nil, err
	}
	if err := validateRate(initialRate); err != nil {
		return nil, err
	}
	if fixedPeriodYears <= 0 {
		return nil, configErrorf("período fijo inválido: %d años", fixedPeriodYears)
	}
	if len(referenceIndex) == 0 {
		return nil, configErrorf("se requiere un índice de referencia para tramos ajustables")
	}
	return &MortgageTrack{
		Principal:     principal,
		TermMonths:    termYears * MonthsPerYear,
		rateFor:       adjustableRate(initialRate, referenceIndex, fixedPeriodYears*MonthsPerYear),
		updateBalance: subtractPrincipal,
	}, nil
}

// NewAdjustableLinkedTrack combina el régimen ajustable con la indexación al
// IPC del balance.
func NewAdjustableLinkedTrack(principal float64, termYears int, initialRate float64, referenceIndex []float64, cpiList []float64, fixedPeriodYears int) (*MortgageTrack, error) {
	track, err := NewAdjustableTrack(principal, termYears, initialRate, referenceIndex, fixedPeriodYears)
	if err != nil {
		return nil, err
	}
	if len(cpiList) < track.TermMonths {
		return nil, configErrorf("lista de IPC incompleta: se requieren %d valores, hay %d", track.TermMonths, len(cpiList))
	}
	track.updateBalance = cpiLinkedUpdater(cpiList)
	return track, nil
}

// AmortizationSchedule computes the full schedule on first call and caches
// it. Every entry satisfies Payment = Interest + Principal.
//
// Primero se paga según el balance actual y después se recalcula el capital
// restante.
func (t *MortgageTrack) AmortizationSchedule() []domain.AmortizationEntry {
	if t.schedule != nil {
		return t.schedule
	}

	schedule := make([]domain.AmortizationEntry, 0, t.TermMonths)
	state := balanceState{nominal: t.Principal, real: t.Principal}

	for period := 1; period <= t.TermMonths; period++ {
		remainingTerm := t.TermMonths - period + 1
		rate := t.rateFor(period)
		payment := monthlyPayment(rate, state.nominal, remainingTerm)

		monthlyRate := rate / MonthsPerYear / 100
		interest := state.nominal * monthlyRate
		principal := payment - interest
		// El pago de capital nunca excede el balance vigente.
		if principal > state.nominal {
			principal = state.nominal
			payment = interest + principal
		}

		state = t.updateBalance(state, principal, period)

		schedule = append(schedule, domain.AmortizationEntry{
			Period:           period,
			Payment:          payment,
			Interest:         interest,
			Principal:        principal,
			RemainingBalance: state.nominal,
			InterestRate:     rate,
		})
	}

	t.schedule = schedule
	return schedule
}

// RemainingLiabilities suma los pagos futuros desde el período dado.
func (t *MortgageTrack) RemainingLiabilities(fromPeriod int) float64 {
	total := 0.0
	for _, entry := range t.AmortizationSchedule() {
		if entry.Period >= fromPeriod {
			total += entry.Payment
		}
	}
	return total
}

// InterestPaid suma el interés pagado desde el período dado hasta el final.
func (t *MortgageTrack) InterestPaid(fromPeriod int) float64 {
	total := 0.0
	for _, entry := range t.AmortizationSchedule() {
		if entry.Period >= fromPeriod {
			total += entry.Interest
		}
	}
	return total
}

// PaymentList devuelve el pago total de cada período, en orden.
func (t *MortgageTrack) PaymentList() []float64 {
	schedule := t.AmortizationSchedule()
	payments := make([]float64, len(schedule))
	for i, entry := range schedule {
		payments[i] = entry.Payment
	}
	return payments
}

// monthlyPayment implementa la fórmula de anualidad sobre el plazo restante.
// Con tasa cero el pago es el reparto exacto del balance, no el límite de la
// fórmula, para evitar la división entre cero.
func monthlyPayment(annualRate, balance float64, remainingTerm int) float64 {
	if remainingTerm <= 0 {
		return 0
	}
	mr := annualRate / MonthsPerYear / 100
	if mr == 0 {
		return balance / float64(remainingTerm)
	}
	factor := math.Pow(1+mr, float64(remainingTerm))
	return balance * (mr * factor) / (factor - 1)
}

func constantRate(rate float64) rateResolver {
	return func(int) float64 { return rate }
}

func indexedRate(rates []float64, spread float64) rateResolver {
	return func(period int) float64 { return rates[period-1] + spread }
}

func adjustableRate(initialRate float64, referenceIndex []float64, fixedPeriodMonths int) rateResolver {
	return func(period int) float64 {
		if period <= fixedPeriodMonths {
			return initialRate
		}
		offset := period - fixedPeriodMonths
		block := (offset - 1) / fixedPeriodMonths
		if block < len(referenceIndex) {
			return referenceIndex[block]
		}
		return referenceIndex[len(referenceIndex)-1]
	}
}

// subtractPrincipal es la actualización por defecto: restar el capital pagado.
func subtractPrincipal(s balanceState, principalPaid float64, _ int) balanceState {
	s.nominal -= principalPaid
	s.real = s.nominal
	return s
}

// cpiLinkedUpdater primero amortiza el balance real y después aplica el alza
// del IPC del período sobre el capital restante.
func cpiLinkedUpdater(cpiList []float64) balanceUpdater {
	return func(s balanceState, principalPaid float64, period int) balanceState {
		s.real -= principalPaid
		inflationFactor := cpiList[period-1] / 100
		s.nominal = s.real * (1 + inflationFactor)
		return s
	}
}

func validateTrackBasics(principal float64, termYears int) error {
	if principal < 0 {
		return configErrorf("capital inválido: %.2f", principal)
	}
	if principal > MaxPrincipal {
		return configErrorf("capital excede el máximo permitido de %.2f", float64(MaxPrincipal))
	}
	if termYears <= 0 {
		return configErrorf("plazo inválido: %d años", termYears)
	}
	if termYears > MaxTermYears {
		return configErrorf("plazo excede el máximo permitido de %d años", MaxTermYears)
	}
	return nil
}

func validateRate(rate float64) error {
	if rate < 0 {
		return configErrorf("tasa inválida: %.2f", rate)
	}
	if rate > MaxInterestRate {
		return configErrorf("tasa excede el máximo permitido de %.2f%%", float64(MaxInterestRate))
	}
	return nil
}
