package memory

import (
	"context"
	"sync"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

// recordKey identifies a year-versioned record. The id component is always
// normalized so "8" and "8.0" address the same record.
type recordKey struct {
	id   types.HierarchyID
	year int
}

func keyOf(id types.HierarchyID, year int) recordKey {
	return recordKey{id: types.NormalizeHierarchyID(string(id)), year: year}
}

type performanceRepository struct {
	mu      sync.RWMutex
	records map[recordKey]*model.PerformanceRecord
}

func newPerformanceRepository() *performanceRepository {
	return &performanceRepository{
		records: make(map[recordKey]*model.PerformanceRecord),
	}
}

func (r *performanceRepository) Put(ctx context.Context, records ...*model.PerformanceRecord) error {
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

func (r *performanceRepository) ListByYear(ctx context.Context, year int) ([]*model.PerformanceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.PerformanceRecord
	for key, rec := range r.records {
		if key.year != year {
			continue
		}
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

func (r *performanceRepository) DeleteByYear(ctx context.Context, year int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.records {
		if key.year == year {
			delete(r.records, key)
		}
	}
	return nil
}
