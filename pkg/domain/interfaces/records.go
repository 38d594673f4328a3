package interfaces

import (
	"context"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

type PerformanceRepository interface {
	// Put stores or replaces records keyed by (id, year)
	Put(ctx context.Context, records ...*model.PerformanceRecord) error

	// ListByYear retrieves all records for one reporting year
	ListByYear(ctx context.Context, year int) ([]*model.PerformanceRecord, error)

	// DeleteByYear removes all records for one reporting year
	DeleteByYear(ctx context.Context, year int) error
}

type CapabilityRepository interface {
	Put(ctx context.Context, records ...*model.CapabilityRecord) error
	ListByYear(ctx context.Context, year int) ([]*model.CapabilityRecord, error)
	DeleteByYear(ctx context.Context, year int) error
}

type PolicyToolRepository interface {
	Put(ctx context.Context, records ...*model.PolicyToolRecord) error
	ListByYear(ctx context.Context, year int) ([]*model.PolicyToolRecord, error)
	// List retrieves records across all years; chain extraction resolves
	// L1/L2 structure year-agnostically
	List(ctx context.Context) ([]*model.PolicyToolRecord, error)
	DeleteByYear(ctx context.Context, year int) error
}

type ObjectiveRepository interface {
	Put(ctx context.Context, records ...*model.ObjectiveRecord) error
	ListByYear(ctx context.Context, year int) ([]*model.ObjectiveRecord, error)
	DeleteByYear(ctx context.Context, year int) error
}

// ChainRepository stores one chain-graph payload per kind plus the direct
// policy-capability link list. Chains are whole-snapshot replaced, never
// partially updated.
type ChainRepository interface {
	PutChain(ctx context.Context, chain *model.ChainGraph) error

	// GetChain retrieves the chain payload for one kind. Returns ErrNotFound
	// when no payload has been stored.
	GetChain(ctx context.Context, kind types.ChainKind) (*model.ChainGraph, error)

	PutDirectLinks(ctx context.Context, links []*model.DirectLink) error
	ListDirectLinks(ctx context.Context) ([]*model.DirectLink, error)
}
