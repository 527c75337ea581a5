package service

import (
	"fmt"
	"strings"

	"tbontb/domain"
)

// BuildMultiTrackMortgage construye una hipoteca multi-tramo a partir de
// parámetros etiquetados por tipo. Cada llave del mapa es el nombre del tramo.
func BuildMultiTrackMortgage(params map[string]domain.MortgageTrackParams) (*MultiTrackMortgage, error) {
	if len(params) == 0 {
		return nil, configErrorf("se requiere al menos un tramo de hipoteca")
	}

	tracks := make(map[string]*MortgageTrack, len(params))
	for name, p := range params {
		track, err := buildTrack(p)
		if err != nil {
			return nil, fmt.Errorf("tramo %q: %w", name, err)
		}
		tracks[name] = track
	}

	return NewMultiTrackMortgage(tracks)
}

func buildTrack(p domain.MortgageTrackParams) (*MortgageTrack, error) {
	fixedPeriod := p.FixedPeriodYears
	if fixedPeriod == 0 {
		fixedPeriod = DefaultFixedPeriodYears
	}

	switch strings.ToLower(p.Type) {
	case "fixed":
		return NewFixedTrack(p.Principal, p.TermYears, p.InterestRate)

	case "prime":
		rates := p.PrimeRates
		if len(rates) == 0 && p.TermYears > 0 {
			// Conveniencia del API: una tasa prime constante a partir de
			// interest_rate cuando no llega la lista completa.
			rates = make([]float64, p.TermYears*MonthsPerYear)
			for i := range rates {
				rates[i] = p.InterestRate
			}
		}
		return NewPrimeTrack(p.Principal, p.TermYears, rates, p.Spread)

	case "linked":
		return NewLinkedFixedTrack(p.Principal, p.TermYears, p.InterestRate, p.CPIList)

	case "adjustable":
		return NewAdjustableTrack(p.Principal, p.TermYears, p.InterestRate, p.ReferenceIndex, fixedPeriod)

	case "adjustablelinked":
		return NewAdjustableLinkedTrack(p.Principal, p.TermYears, p.InterestRate, p.ReferenceIndex, p.CPIList, fixedPeriod)

	default:
		return nil, configErrorf("tipo de hipoteca desconocido: %q", p.Type)
	}
}
