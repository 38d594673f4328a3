package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/josoor-lab/sectorlens/pkg/domain/interfaces"
)

type Firestore struct {
	client      *firestore.Client
	performance *performanceRepository
	capability  *capabilityRepository
	policyTool  *policyToolRepository
	objective   *objectiveRepository
	chain       *chainRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes every collection name, used to isolate test
// runs against a shared project.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.performance.collectionPrefix = prefix
		f.capability.collectionPrefix = prefix
		f.policyTool.collectionPrefix = prefix
		f.objective.collectionPrefix = prefix
		f.chain.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	if databaseID == "" {
		databaseID = firestore.DefaultDatabaseID
	}
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:      client,
		performance: newPerformanceRepository(client),
		capability:  newCapabilityRepository(client),
		policyTool:  newPolicyToolRepository(client),
		objective:   newObjectiveRepository(client),
		chain:       newChainRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Performance() interfaces.PerformanceRepository {
	return f.performance
}

func (f *Firestore) Capability() interfaces.CapabilityRepository {
	return f.capability
}

func (f *Firestore) PolicyTool() interfaces.PolicyToolRepository {
	return f.policyTool
}

func (f *Firestore) Objective() interfaces.ObjectiveRepository {
	return f.objective
}

func (f *Firestore) Chain() interfaces.ChainRepository {
	return f.chain
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
