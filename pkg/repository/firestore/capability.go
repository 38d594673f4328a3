package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

type capabilityDocument struct {
	ID             string  `firestore:"id"`
	Name           string  `firestore:"name"`
	Level          string  `firestore:"level"`
	Year           int     `firestore:"year"`
	ParentID       string  `firestore:"parent_id"`
	Maturity       float64 `firestore:"maturity_level"`
	TargetMaturity float64 `firestore:"target_maturity_level"`
}

type capabilityRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCapabilityRepository(client *firestore.Client) *capabilityRepository {
	return &capabilityRepository{client: client}
}

func (r *capabilityRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_capabilities"
	}
	return "capabilities"
}

func (r *capabilityRepository) Put(ctx context.Context, records ...*model.CapabilityRecord) error {
	bw := r.client.BulkWriter(ctx)
	for _, rec := range records {
		if rec == nil {
			continue
		}
		doc := &capabilityDocument{
			ID:             string(types.NormalizeHierarchyID(string(rec.ID))),
			Name:           rec.Name,
			Level:          rec.Level.String(),
			Year:           rec.Year,
			ParentID:       string(types.NormalizeHierarchyID(string(rec.ParentID))),
			Maturity:       rec.Maturity,
			TargetMaturity: rec.TargetMaturity,
		}
		ref := r.client.Collection(r.collection()).Doc(recordDocID(rec.ID, rec.Year))
		if _, err := bw.Set(ref, doc); err != nil {
			return goerr.Wrap(err, "failed to queue capability record", goerr.V("id", rec.ID))
		}
	}
	bw.End()
	return nil
}

func (r *capabilityRepository) ListByYear(ctx context.Context, year int) ([]*model.CapabilityRecord, error) {
	iter := r.client.Collection(r.collection()).Where("year", "==", year).Documents(ctx)
	defer iter.Stop()

	var out []*model.CapabilityRecord
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate capability records", goerr.V("year", year))
		}

		var doc capabilityDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode capability record", goerr.V("doc", snap.Ref.ID))
		}
		out = append(out, &model.CapabilityRecord{
			ID:             types.HierarchyID(doc.ID),
			Name:           doc.Name,
			Level:          types.ParseLevel(doc.Level),
			Year:           doc.Year,
			ParentID:       types.HierarchyID(doc.ParentID),
			Maturity:       doc.Maturity,
			TargetMaturity: doc.TargetMaturity,
		})
	}
	return out, nil
}

func (r *capabilityRepository) DeleteByYear(ctx context.Context, year int) error {
	return deleteByYear(ctx, r.client, r.collection(), year)
}
