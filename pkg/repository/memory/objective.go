package memory

import (
	"context"
	"sync"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

type objectiveRepository struct {
	mu      sync.RWMutex
	records map[recordKey]*model.ObjectiveRecord
}

func newObjectiveRepository() *objectiveRepository {
	return &objectiveRepository{
		records: make(map[recordKey]*model.ObjectiveRecord),
	}
}

func (r *objectiveRepository) Put(ctx context.Context, records ...*model.ObjectiveRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range records {
		if rec == nil {
			continue
		}
		copied := *rec
		copied.ID = types.NormalizeHierarchyID(string(rec.ID))
		copied.ParentID = types.NormalizeHierarchyID(string(rec.ParentID))
		r.records[keyOf(rec.ID, rec.Year)] = &copied
	}
	return nil
}

func (r *objectiveRepository) ListByYear(ctx context.Context, year int) ([]*model.ObjectiveRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.ObjectiveRecord
	for key, rec := range r.records {
		if key.year != year {
			continue
		}
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

func (r *objectiveRepository) DeleteByYear(ctx context.Context, year int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.records {
		if key.year == year {
			delete(r.records, key)
		}
	}
	return nil
}
