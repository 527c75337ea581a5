package repository

import (
	"sync"

	"tbontb/domain"
)

// SimulationRepositoryMemory is an in-memory implementation of
// SimulationRepository.
type SimulationRepositoryMemory struct {
	mu   sync.Mutex
	runs map[string]domain.SimulationResponse
}

// NewSimulationRepositoryMemory creates a new in-memory simulation repository.
func NewSimulationRepositoryMemory() *SimulationRepositoryMemory {
	return &SimulationRepositoryMemory{
		runs: make(map[string]domain.SimulationResponse),
	}
}

// Save stores the simulation response in memory, keyed by its id.
func (r *SimulationRepositoryMemory) Save(
	id string,
	response domain.SimulationResponse,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[id] = response
	return nil
}
