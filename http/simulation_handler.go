package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"tbontb/domain"
	"tbontb/service"
)

type SimulationHandler struct {
	service *service.SimulationService
}

func NewSimulationHandler(service *service.SimulationService) *SimulationHandler {
	return &SimulationHandler{service: service}
}

// SimulateBuying corre solo el escenario de compra.
func (h *SimulationHandler) SimulateBuying(w http.ResponseWriter, r *http.Request) {
	var input domain.BuyingScenarioInput
	if !decodeJSONBody(w, r, &input) {
		return
	}

	response, err := h.service.RunComparison(domain.ComparisonInput{BuyingScenario: &input})
	if err != nil {
		writeServiceError(w, "buying simulation", err)
		return
	}

	writeJSON(w, response)
}

// SimulateInvestment corre solo el escenario de inversión.
func (h *SimulationHandler) SimulateInvestment(w http.ResponseWriter, r *http.Request) {
	var input domain.InvestmentScenarioInput
	if !decodeJSONBody(w, r, &input) {
		return
	}

	response, err := h.service.RunComparison(domain.ComparisonInput{InvestmentScenario: &input})
	if err != nil {
		writeServiceError(w, "investment simulation", err)
		return
	}

	writeJSON(w, response)
}

// SimulateComparison corre los escenarios presentes en la petición.
func (h *SimulationHandler) SimulateComparison(w http.ResponseWriter, r *http.Request) {
	var input domain.ComparisonInput
	if !decodeJSONBody(w, r, &input) {
		return
	}

	response, err := h.service.RunComparison(input)
	if err != nil {
		writeServiceError(w, "comparison", err)
		return
	}

	writeJSON(w, response)
}

// decodeJSONBody valida el método y el Content-Type y decodifica el cuerpo.
// Devuelve false si ya respondió con un error.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Printf("Error decoding request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeServiceError mapea la taxonomía de errores del servicio: los defectos
// de entrada (configuración y consistencia) son 400, el resto 500.
func writeServiceError(w http.ResponseWriter, operation string, err error) {
	log.Printf("Error running %s: %v", operation, err)

	var configErr *service.ConfigurationError
	var consistencyErr *service.ConsistencyError
	if errors.As(err, &configErr) || errors.As(err, &consistencyErr) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// writeJSON codifica en un buffer primero para no escribir el header si falla.
func writeJSON(w http.ResponseWriter, payload any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}
