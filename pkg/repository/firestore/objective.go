package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

type objectiveDocument struct {
	ID       string `firestore:"id"`
	Name     string `firestore:"name"`
	Level    string `firestore:"level"`
	Year     int    `firestore:"year"`
	ParentID string `firestore:"parent_id"`
}

type objectiveRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newObjectiveRepository(client *firestore.Client) *objectiveRepository {
	return &objectiveRepository{client: client}
}

func (r *objectiveRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_objectives"
	}
	return "objectives"
}

func (r *objectiveRepository) Put(ctx context.Context, records ...*model.ObjectiveRecord) error {
	bw := r.client.BulkWriter(ctx)
	for _, rec := range records {
		if rec == nil {
			continue
		}
		doc := &objectiveDocument{
			ID:       string(types.NormalizeHierarchyID(string(rec.ID))),
			Name:     rec.Name,
			Level:    rec.Level.String(),
			Year:     rec.Year,
			ParentID: string(types.NormalizeHierarchyID(string(rec.ParentID))),
		}
		ref := r.client.Collection(r.collection()).Doc(recordDocID(rec.ID, rec.Year))
		if _, err := bw.Set(ref, doc); err != nil {
			return goerr.Wrap(err, "failed to queue objective record", goerr.V("id", rec.ID))
		}
	}
	bw.End()
	return nil
}

func (r *objectiveRepository) ListByYear(ctx context.Context, year int) ([]*model.ObjectiveRecord, error) {
	iter := r.client.Collection(r.collection()).Where("year", "==", year).Documents(ctx)
	defer iter.Stop()

	var out []*model.ObjectiveRecord
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate objective records", goerr.V("year", year))
		}

		var doc objectiveDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode objective record", goerr.V("doc", snap.Ref.ID))
		}
		out = append(out, &model.ObjectiveRecord{
			ID:       types.HierarchyID(doc.ID),
			Name:     doc.Name,
			Level:    types.ParseLevel(doc.Level),
			Year:     doc.Year,
			ParentID: types.HierarchyID(doc.ParentID),
		})
	}
	return out, nil
}

func (r *objectiveRepository) DeleteByYear(ctx context.Context, year int) error {
	return deleteByYear(ctx, r.client, r.collection(), year)
}
