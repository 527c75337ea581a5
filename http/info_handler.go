package http

import (
	"net/http"

	"tbontb/service"
)

type InfoHandler struct{}

func NewInfoHandler() *InfoHandler {
	return &InfoHandler{}
}

// Defaults expone los parámetros por defecto de las simulaciones.
func (h *InfoHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, map[string]any{
		"simulation_years": service.DefaultSimulationYears,
		"n_sim":            service.DefaultSampleCount,
		"max_n_sim":        service.MaxSampleCount,
		"tax_rate":         service.DefaultStocksTaxRate,
		"forecast_params": map[string]float64{
			"mu":    0.07,
			"sigma": 0.15,
		},
		"property_forecast_params": map[string]float64{
			"mu":    0.05,
			"sigma": 0.05,
		},
	})
}

// Info describe el API y sus capacidades.
func (h *InfoHandler) Info(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, map[string]any{
		"name":        "TBONTB API",
		"version":     "1.0.0",
		"description": "Simulación financiera para comparar comprar un inmueble contra invertir el capital",
		"endpoints": map[string][]string{
			"simulations": {
				"/api/v1/simulate/buying",
				"/api/v1/simulate/investment",
				"/api/v1/simulate/compare",
			},
			"utilities": {
				"/api/v1/parameters/defaults",
				"/api/v1/mortgage/preview",
			},
		},
		"features": []string{
			"Monte Carlo simulations",
			"Multi-track mortgage calculator",
			"Property value forecasting",
			"Investment portfolio simulation",
			"Scenario comparison",
		},
	})
}
