package repository

import "tbontb/domain"

// SimulationRepository guarda las corridas completadas.
type SimulationRepository interface {
	Save(id string, response domain.SimulationResponse) error
}
