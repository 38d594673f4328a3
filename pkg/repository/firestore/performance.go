package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

type performanceDocument struct {
	ID       string  `firestore:"id"`
	Name     string  `firestore:"name"`
	Level    string  `firestore:"level"`
	Year     int     `firestore:"year"`
	ParentID string  `firestore:"parent_id"`
	Actual   float64 `firestore:"actual"`
	Target   float64 `firestore:"target"`
}

type performanceRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newPerformanceRepository(client *firestore.Client) *performanceRepository {
	return &performanceRepository{client: client}
}

func (r *performanceRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_performance"
	}
	return "performance"
}

// recordDocID keys a document by normalized id and year so repeated ingestion
// of the same record replaces instead of duplicating.
func recordDocID(id types.HierarchyID, year int) string {
	return fmt.Sprintf("%s_%d", types.NormalizeHierarchyID(string(id)), year)
}

func (r *performanceRepository) Put(ctx context.Context, records ...*model.PerformanceRecord) error {
	bw := r.client.BulkWriter(ctx)
	for _, rec := range records {
		if rec == nil {
			continue
		}
		doc := &performanceDocument{
			ID:       string(types.NormalizeHierarchyID(string(rec.ID))),
			Name:     rec.Name,
			Level:    rec.Level.String(),
			Year:     rec.Year,
			ParentID: string(types.NormalizeHierarchyID(string(rec.ParentID))),
			Actual:   rec.Actual,
			Target:   rec.Target,
		}
		ref := r.client.Collection(r.collection()).Doc(recordDocID(rec.ID, rec.Year))
		if _, err := bw.Set(ref, doc); err != nil {
			return goerr.Wrap(err, "failed to queue performance record", goerr.V("id", rec.ID))
		}
	}
	bw.End()
	return nil
}

func (r *performanceRepository) ListByYear(ctx context.Context, year int) ([]*model.PerformanceRecord, error) {
	iter := r.client.Collection(r.collection()).Where("year", "==", year).Documents(ctx)
	defer iter.Stop()

	var out []*model.PerformanceRecord
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate performance records", goerr.V("year", year))
		}

		var doc performanceDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode performance record", goerr.V("doc", snap.Ref.ID))
		}
		out = append(out, &model.PerformanceRecord{
			ID:       types.HierarchyID(doc.ID),
			Name:     doc.Name,
			Level:    types.ParseLevel(doc.Level),
			Year:     doc.Year,
			ParentID: types.HierarchyID(doc.ParentID),
			Actual:   doc.Actual,
			Target:   doc.Target,
		})
	}
	return out, nil
}

func (r *performanceRepository) DeleteByYear(ctx context.Context, year int) error {
	return deleteByYear(ctx, r.client, r.collection(), year)
}

// deleteByYear removes every document of a collection matching the year
func deleteByYear(ctx context.Context, client *firestore.Client, collection string, year int) error {
	iter := client.Collection(collection).Where("year", "==", year).Documents(ctx)
	defer iter.Stop()

	bw := client.BulkWriter(ctx)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate for deletion",
				goerr.V("collection", collection), goerr.V("year", year))
		}
		if _, err := bw.Delete(snap.Ref); err != nil {
			return goerr.Wrap(err, "failed to queue deletion", goerr.V("doc", snap.Ref.ID))
		}
	}
	bw.End()
	return nil
}
