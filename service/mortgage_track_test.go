package service

import (
	"errors"
	"math"
	"testing"
)

func TestFixedTrack_ThirtyYearSchedule(t *testing.T) {

	track, err := NewFixedTrack(800_000, 30, 4.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	schedule := track.AmortizationSchedule()

	if len(schedule) != 360 {
		t.Fatalf("expected 360 entries, got %d", len(schedule))
	}

	// El pago de una anualidad de 800,000 a 30 años al 4% es determinístico.
	expectedPayment := 3819.32
	if math.Abs(schedule[0].Payment-expectedPayment) > 0.05 {
		t.Errorf("expected first payment %.2f, got %.2f", expectedPayment, schedule[0].Payment)
	}

	final := schedule[len(schedule)-1]
	if math.Abs(final.RemainingBalance) > 1.0 {
		t.Errorf("expected final balance near zero, got %.4f", final.RemainingBalance)
	}

	totalPrincipal := 0.0
	for _, entry := range schedule {
		totalPrincipal += entry.Principal
	}
	if math.Abs(totalPrincipal-800_000) > 1.0 {
		t.Errorf("expected principal payments to sum to 800000, got %.4f", totalPrincipal)
	}
}

func TestFixedTrack_PaymentSplit(t *testing.T) {

	track, err := NewFixedTrack(250_000, 15, 6.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, entry := range track.AmortizationSchedule() {
		if math.Abs(entry.Payment-(entry.Interest+entry.Principal)) > 1e-9 {
			t.Fatalf("period %d: payment %.6f != interest %.6f + principal %.6f",
				entry.Period, entry.Payment, entry.Interest, entry.Principal)
		}
	}
}

func TestFixedTrack_ZeroInterest(t *testing.T) {

	track, err := NewFixedTrack(1200, 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	schedule := track.AmortizationSchedule()
	if len(schedule) != 12 {
		t.Fatalf("expected 12 entries, got %d", len(schedule))
	}

	for _, entry := range schedule {
		if entry.Interest != 0 {
			t.Errorf("period %d: expected zero interest, got %.6f", entry.Period, entry.Interest)
		}
		if math.Abs(entry.Principal-100) > 1e-9 {
			t.Errorf("period %d: expected principal 100, got %.6f", entry.Period, entry.Principal)
		}
	}
}

func TestFixedTrack_ZeroPrincipal(t *testing.T) {

	track, err := NewFixedTrack(0, 30, 4.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	schedule := track.AmortizationSchedule()
	if len(schedule) != 360 {
		t.Fatalf("expected 360 entries, got %d", len(schedule))
	}

	for _, entry := range schedule {
		if entry.Payment != 0 || entry.Interest != 0 || entry.Principal != 0 || entry.RemainingBalance != 0 {
			t.Fatalf("period %d: expected all-zero entry, got %+v", entry.Period, entry)
		}
	}
}

func TestFixedTrack_ScheduleIsCached(t *testing.T) {

	track, err := NewFixedTrack(100_000, 10, 3.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := track.AmortizationSchedule()
	second := track.AmortizationSchedule()

	if &first[0] != &second[0] {
		t.Errorf("expected the schedule to be computed once and cached")
	}
}

func TestPrimeTrack_SpreadApplied(t *testing.T) {

	months := 10 * 12
	primeRates := make([]float64, months)
	for i := range primeRates {
		primeRates[i] = 5.5
	}

	track, err := NewPrimeTrack(300_000, 10, primeRates, -0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, entry := range track.AmortizationSchedule() {
		if math.Abs(entry.InterestRate-5.0) > 1e-9 {
			t.Fatalf("period %d: expected rate 5.0, got %.4f", entry.Period, entry.InterestRate)
		}
	}
}

func TestLinkedFixedTrack_ZeroCPIMatchesFixed(t *testing.T) {

	months := 20 * 12
	cpiList := make([]float64, months)

	linked, err := NewLinkedFixedTrack(500_000, 20, 4.5, cpiList)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fixed, err := NewFixedTrack(500_000, 20, 4.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	linkedSchedule := linked.AmortizationSchedule()
	fixedSchedule := fixed.AmortizationSchedule()

	for i := range linkedSchedule {
		if math.Abs(linkedSchedule[i].RemainingBalance-fixedSchedule[i].RemainingBalance) > 1e-6 {
			t.Fatalf("period %d: balances diverge: linked %.6f fixed %.6f",
				i+1, linkedSchedule[i].RemainingBalance, fixedSchedule[i].RemainingBalance)
		}
	}
}

func TestLinkedFixedTrack_CPIRaisesNominalBalance(t *testing.T) {

	months := 20 * 12
	cpiList := make([]float64, months)
	for i := range cpiList {
		cpiList[i] = 0.2 // alza mensual del 0.2%
	}

	linked, err := NewLinkedFixedTrack(500_000, 20, 4.5, cpiList)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fixed, err := NewFixedTrack(500_000, 20, 4.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	linkedFirst := linked.AmortizationSchedule()[0]
	fixedFirst := fixed.AmortizationSchedule()[0]

	if linkedFirst.RemainingBalance <= fixedFirst.RemainingBalance {
		t.Errorf("expected CPI-linked balance (%.2f) above fixed balance (%.2f)",
			linkedFirst.RemainingBalance, fixedFirst.RemainingBalance)
	}
}

func TestAdjustableTrack_RateBlocks(t *testing.T) {

	track, err := NewAdjustableTrack(400_000, 30, 3.0, []float64{3.5, 4.0, 4.5}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	schedule := track.AmortizationSchedule()

	cases := []struct {
		period int
		rate   float64
	}{
		{1, 3.0},    // bloque fijo inicial
		{60, 3.0},   // último mes del bloque fijo
		{61, 3.5},   // primer bloque del índice
		{120, 3.5},  // todavía el primer bloque
		{121, 4.0},  // segundo bloque
		{181, 4.5},  // tercer bloque
		{241, 4.5},  // índice agotado: se sostiene el último valor
		{360, 4.5},
	}

	for _, c := range cases {
		got := schedule[c.period-1].InterestRate
		if math.Abs(got-c.rate) > 1e-9 {
			t.Errorf("period %d: expected rate %.2f, got %.2f", c.period, c.rate, got)
		}
	}
}

func TestAdjustableLinkedTrack_SharesRateRule(t *testing.T) {

	months := 30 * 12
	cpiList := make([]float64, months)

	linked, err := NewAdjustableLinkedTrack(400_000, 30, 3.0, []float64{3.5, 4.0}, cpiList, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unlinked, err := NewAdjustableTrack(400_000, 30, 3.0, []float64{3.5, 4.0}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	linkedSchedule := linked.AmortizationSchedule()
	unlinkedSchedule := unlinked.AmortizationSchedule()

	for i := range linkedSchedule {
		if linkedSchedule[i].InterestRate != unlinkedSchedule[i].InterestRate {
			t.Fatalf("period %d: rates diverge", i+1)
		}
	}
}

func TestTrackConstruction_ConfigurationErrors(t *testing.T) {

	cases := []struct {
		name string
		run  func() error
	}{
		{"zero term", func() error {
			_, err := NewFixedTrack(100_000, 0, 4.0)
			return err
		}},
		{"negative principal", func() error {
			_, err := NewFixedTrack(-1, 10, 4.0)
			return err
		}},
		{"negative rate", func() error {
			_, err := NewFixedTrack(100_000, 10, -1)
			return err
		}},
		{"short prime list", func() error {
			_, err := NewPrimeTrack(100_000, 10, []float64{5.5}, 0)
			return err
		}},
		{"missing cpi list", func() error {
			_, err := NewLinkedFixedTrack(100_000, 10, 4.0, nil)
			return err
		}},
		{"empty reference index", func() error {
			_, err := NewAdjustableTrack(100_000, 10, 3.0, nil, 5)
			return err
		}},
		{"zero fixed period", func() error {
			_, err := NewAdjustableTrack(100_000, 10, 3.0, []float64{3.5}, 0)
			return err
		}},
	}

	for _, c := range cases {
		err := c.run()
		if err == nil {
			t.Errorf("%s: expected an error", c.name)
			continue
		}
		var configErr *ConfigurationError
		if !errors.As(err, &configErr) {
			t.Errorf("%s: expected ConfigurationError, got %T", c.name, err)
		}
	}
}

func TestTrack_RemainingLiabilitiesAndInterest(t *testing.T) {

	track, err := NewFixedTrack(100_000, 10, 5.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	schedule := track.AmortizationSchedule()

	totalPayments := 0.0
	totalInterest := 0.0
	for _, entry := range schedule {
		totalPayments += entry.Payment
		totalInterest += entry.Interest
	}

	if math.Abs(track.RemainingLiabilities(1)-totalPayments) > 1e-6 {
		t.Errorf("expected remaining liabilities from period 1 to equal total payments")
	}
	if math.Abs(track.InterestPaid(1)-totalInterest) > 1e-6 {
		t.Errorf("expected interest paid from period 1 to equal total interest")
	}
	if track.RemainingLiabilities(len(schedule)+1) != 0 {
		t.Errorf("expected zero liabilities past the end of the schedule")
	}

	payments := track.PaymentList()
	if len(payments) != len(schedule) {
		t.Fatalf("expected %d payments, got %d", len(schedule), len(payments))
	}
}
