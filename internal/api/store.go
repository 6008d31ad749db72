package api

import (
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/skyline/pkg/building"
)

// planStore keeps the most recent plans so their elevations can be fetched
// after creation. The oldest plan is evicted once max is reached.
type planStore struct {
	mu    sync.RWMutex
	max   int
	order []uuid.UUID
	plans map[uuid.UUID]*building.BuildingPlan
}

func newPlanStore(max int) *planStore {
	return &planStore{max: max, plans: make(map[uuid.UUID]*building.BuildingPlan)}
}

func (s *planStore) put(p *building.BuildingPlan) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.order) >= s.max {
		delete(s.plans, s.order[0])
		s.order = s.order[1:]
	}
	s.plans[id] = p
	s.order = append(s.order, id)
	return id
}

func (s *planStore) get(id uuid.UUID) (*building.BuildingPlan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.plans[id]
	return p, ok
}

func (s *planStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.plans)
}
