package service

import (
	"tbontb/domain"
)

// MultiTrackMortgage compone tramos nombrados en una sola hipoteca. Expone
// cada cuadro individual y un cuadro combinado que suma los flujos de todos
// los tramos activos en cada período.
type MultiTrackMortgage struct {
	Tracks         map[string]*MortgageTrack
	TotalLoanValue float64

	combined []domain.CombinedEntry
}

// NewMultiTrackMortgage agrega los tramos dados. Los tramos pueden tener
// plazos distintos: un tramo ya amortizado aporta cero, no es un error.
func NewMultiTrackMortgage(tracks map[string]*MortgageTrack) (*MultiTrackMortgage, error) {
	if len(tracks) == 0 {
		return nil, configErrorf("se requiere al menos un tramo de hipoteca")
	}

	m := &MultiTrackMortgage{Tracks: tracks}

	maxTerm := 0
	for _, track := range tracks {
		m.TotalLoanValue += track.Principal
		if track.TermMonths > maxTerm {
			maxTerm = track.TermMonths
		}
	}

	// Reducción pura sobre los cuadros individuales.
	combined := make([]domain.CombinedEntry, maxTerm)
	for p := 1; p <= maxTerm; p++ {
		combined[p-1].Period = p
	}
	for _, track := range tracks {
		for _, entry := range track.AmortizationSchedule() {
			c := &combined[entry.Period-1]
			c.Payment += entry.Payment
			c.Interest += entry.Interest
			c.Principal += entry.Principal
			c.RemainingBalance += entry.RemainingBalance
		}
	}
	m.combined = combined

	return m, nil
}

// CombinedSchedule devuelve el cuadro agregado, indexado por período.
func (m *MultiTrackMortgage) CombinedSchedule() []domain.CombinedEntry {
	return m.combined
}

// TrackSchedule devuelve el cuadro de un tramo específico.
func (m *MultiTrackMortgage) TrackSchedule(name string) ([]domain.AmortizationEntry, error) {
	track, ok := m.Tracks[name]
	if !ok {
		return nil, configErrorf("tramo %q no encontrado", name)
	}
	return track.AmortizationSchedule(), nil
}

// RemainingLiabilities suma los pagos futuros de todos los tramos desde el
// período dado.
func (m *MultiTrackMortgage) RemainingLiabilities(fromPeriod int) float64 {
	total := 0.0
	for _, track := range m.Tracks {
		total += track.RemainingLiabilities(fromPeriod)
	}
	return total
}

// InterestPaid suma el interés de todos los tramos desde el período dado.
func (m *MultiTrackMortgage) InterestPaid(fromPeriod int) float64 {
	total := 0.0
	for _, track := range m.Tracks {
		total += track.InterestPaid(fromPeriod)
	}
	return total
}

// PaymentList devuelve el pago combinado de cada período.
func (m *MultiTrackMortgage) PaymentList() []float64 {
	payments := make([]float64, len(m.combined))
	for i, entry := range m.combined {
		payments[i] = entry.Payment
	}
	return payments
}
