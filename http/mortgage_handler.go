package http

import (
	"net/http"

	"tbontb/domain"
	"tbontb/service"
)

type MortgageHandler struct {
	service *service.SimulationService
}

func NewMortgageHandler(service *service.SimulationService) *MortgageHandler {
	return &MortgageHandler{service: service}
}

// Preview calcula el cuadro combinado de una hipoteca multi-tramo y resume
// el primer año, sin correr simulaciones.
func (h *MortgageHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var params map[string]domain.MortgageTrackParams
	if !decodeJSONBody(w, r, &params) {
		return
	}

	preview, err := h.service.MortgagePreview(params)
	if err != nil {
		writeServiceError(w, "mortgage preview", err)
		return
	}

	writeJSON(w, preview)
}
