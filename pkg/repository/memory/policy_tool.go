package memory

import (
	"context"
	"sync"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

type policyToolRepository struct {
	mu      sync.RWMutex
	records map[recordKey]*model.PolicyToolRecord
}

func newPolicyToolRepository() *policyToolRepository {
	return &policyToolRepository{
		records: make(map[recordKey]*model.PolicyToolRecord),
	}
}

func (r *policyToolRepository) Put(ctx context.Context, records ...*model.PolicyToolRecord) error {
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

func (r *policyToolRepository) ListByYear(ctx context.Context, year int) ([]*model.PolicyToolRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*model.PolicyToolRecord
	for key, rec := range r.records {
		if key.year != year {
			continue
		}
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

func (r *policyToolRepository) List(ctx context.Context) ([]*model.PolicyToolRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.PolicyToolRecord, 0, len(r.records))
	for _, rec := range r.records {
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

func (r *policyToolRepository) DeleteByYear(ctx context.Context, year int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.records {
		if key.year == year {
			delete(r.records, key)
		}
	}
	return nil
}
