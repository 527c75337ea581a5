package service

import (
	"errors"
	"math"
	"testing"
)

func TestSimulatePaths_Shape(t *testing.T) {

	simulator := NewPathSimulator(42)

	paths, err := simulator.SimulatePaths(100, 0.07, 0.15, 2, 1.0/12, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(paths) != 25 {
		t.Fatalf("expected 25 rows (24 steps + initial), got %d", len(paths))
	}
	for i, row := range paths {
		if len(row) != 50 {
			t.Fatalf("row %d: expected 50 samples, got %d", i, len(row))
		}
	}
	for j, v := range paths[0] {
		if v != 100 {
			t.Fatalf("sample %d: expected initial value 100, got %.4f", j, v)
		}
	}
}

func TestSimulatePaths_ZeroDriftZeroVolatility(t *testing.T) {

	simulator := NewPathSimulator(42)

	paths, err := simulator.SimulatePaths(1000, 0, 0, 5, 1.0/12, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, row := range paths {
		for j, v := range row {
			if v != 1000 {
				t.Fatalf("row %d sample %d: expected constant 1000, got %.6f", i, j, v)
			}
		}
	}
}

func TestSimulatePaths_DeterministicBySeed(t *testing.T) {

	first, err := NewPathSimulator(7).SimulatePaths(100, 0.07, 0.15, 3, 1.0/12, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := NewPathSimulator(7).SimulatePaths(100, 0.07, 0.15, 3, 1.0/12, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first {
		for j := range first[i] {
			if first[i][j] != second[i][j] {
				t.Fatalf("row %d sample %d: runs with the same seed diverge", i, j)
			}
		}
	}

	other, err := NewPathSimulator(8).SimulatePaths(100, 0.07, 0.15, 3, 1.0/12, 40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first[1][0] == other[1][0] {
		t.Errorf("expected different seeds to produce different draws")
	}
}

func TestSimulatePaths_LogReturnMeanConvergence(t *testing.T) {

	mu := 0.07
	sigma := 0.15
	years := 10.0
	samples := 20_000

	paths, err := NewPathSimulator(99).SimulatePaths(1, mu, sigma, years, 1.0/12, samples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	final := paths[len(paths)-1]
	sum := 0.0
	for _, v := range final {
		sum += math.Log(v)
	}
	meanLog := sum / float64(samples)

	expected := (mu - 0.5*sigma*sigma) * years
	// Error estándar del estimador: sigma*sqrt(T)/sqrt(n) ~ 0.0034.
	if math.Abs(meanLog-expected) > 0.02 {
		t.Errorf("expected mean log-return near %.4f, got %.4f", expected, meanLog)
	}
}

func TestSimulatePaths_Validation(t *testing.T) {

	simulator := NewPathSimulator(1)

	cases := []struct {
		name string
		run  func() error
	}{
		{"non-positive initial value", func() error {
			_, err := simulator.SimulatePaths(0, 0.07, 0.15, 10, 1.0/12, 10)
			return err
		}},
		{"negative volatility", func() error {
			_, err := simulator.SimulatePaths(100, 0.07, -0.1, 10, 1.0/12, 10)
			return err
		}},
		{"non-positive horizon", func() error {
			_, err := simulator.SimulatePaths(100, 0.07, 0.15, 0, 1.0/12, 10)
			return err
		}},
		{"non-positive step", func() error {
			_, err := simulator.SimulatePaths(100, 0.07, 0.15, 10, 0, 10)
			return err
		}},
		{"non-positive sample count", func() error {
			_, err := simulator.SimulatePaths(100, 0.07, 0.15, 10, 1.0/12, 0)
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
