package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

type policyToolDocument struct {
	ID       string `firestore:"id"`
	Name     string `firestore:"name"`
	Level    string `firestore:"level"`
	Year     int    `firestore:"year"`
	ParentID string `firestore:"parent_id"`
	DomainID string `firestore:"domain_id"`
}

type policyToolRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newPolicyToolRepository(client *firestore.Client) *policyToolRepository {
	return &policyToolRepository{client: client}
}

func (r *policyToolRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_policy_tools"
	}
	return "policy_tools"
}

func (r *policyToolRepository) Put(ctx context.Context, records ...*model.PolicyToolRecord) error {
	bw := r.client.BulkWriter(ctx)
	for _, rec := range records {
		if rec == nil {
			continue
		}
		doc := &policyToolDocument{
			ID:       string(types.NormalizeHierarchyID(string(rec.ID))),
			Name:     rec.Name,
			Level:    rec.Level.String(),
			Year:     rec.Year,
			ParentID: string(types.NormalizeHierarchyID(string(rec.ParentID))),
			DomainID: string(rec.DomainID),
		}
		ref := r.client.Collection(r.collection()).Doc(recordDocID(rec.ID, rec.Year))
		if _, err := bw.Set(ref, doc); err != nil {
			return goerr.Wrap(err, "failed to queue policy tool record", goerr.V("id", rec.ID))
		}
	}
	bw.End()
	return nil
}

func (r *policyToolRepository) ListByYear(ctx context.Context, year int) ([]*model.PolicyToolRecord, error) {
	return r.list(ctx, r.client.Collection(r.collection()).Where("year", "==", year).Documents(ctx))
}

func (r *policyToolRepository) List(ctx context.Context) ([]*model.PolicyToolRecord, error) {
	return r.list(ctx, r.client.Collection(r.collection()).Documents(ctx))
}

func (r *policyToolRepository) list(ctx context.Context, iter *firestore.DocumentIterator) ([]*model.PolicyToolRecord, error) {
	defer iter.Stop()

	var out []*model.PolicyToolRecord
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate policy tool records")
		}

		var doc policyToolDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode policy tool record", goerr.V("doc", snap.Ref.ID))
		}
		out = append(out, &model.PolicyToolRecord{
			ID:       types.HierarchyID(doc.ID),
			Name:     doc.Name,
			Level:    types.ParseLevel(doc.Level),
			Year:     doc.Year,
			ParentID: types.HierarchyID(doc.ParentID),
			DomainID: types.HierarchyID(doc.DomainID),
		})
	}
	return out, nil
}

func (r *policyToolRepository) DeleteByYear(ctx context.Context, year int) error {
	return deleteByYear(ctx, r.client, r.collection(), year)
}
