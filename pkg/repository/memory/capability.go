package memory

import (
	"context"
	"sync"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

type capabilityRepository struct {
	mu      sync.RWMutex
	records map[recordKey]*model.CapabilityRecord
}

func newCapabilityRepository() *capabilityRepository {
	return &capabilityRepository{
		records: make(map[recordKey]*model.CapabilityRecord),
	}
}

func (r *capabilityRepository) Put(ctx context.Context, records ...*model.CapabilityRecord) error {
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

func (r *capabilityRepository) ListByYear(ctx context.Context, year int) ([]*model.CapabilityRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.CapabilityRecord
	for key, rec := range r.records {
		if key.year != year {
			continue
		}
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

func (r *capabilityRepository) DeleteByYear(ctx context.Context, year int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.records {
		if key.year == year {
			delete(r.records, key)
		}
	}
	return nil
}
