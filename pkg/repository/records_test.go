package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/josoor-lab/sectorlens/pkg/domain/interfaces"
	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
	"github.com/josoor-lab/sectorlens/pkg/repository/firestore"
	"github.com/josoor-lab/sectorlens/pkg/repository/memory"
)

func runRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and ListByYear round-trips performance records", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Performance().Put(ctx,
			&model.PerformanceRecord{ID: "1.0", Name: "Coverage", Level: types.LevelL1, Year: 2025, Actual: 80, Target: 100},
			&model.PerformanceRecord{ID: "1.1", Name: "Urban Coverage", Level: types.LevelL2, Year: 2025, ParentID: "1.0", Actual: 90, Target: 100},
			&model.PerformanceRecord{ID: "1.0", Name: "Coverage", Level: types.LevelL1, Year: 2024, Actual: 70, Target: 100},
		)
		if err != nil {
			t.Fatalf("failed to put performance records: %v", err)
		}

		records, err := repo.Performance().ListByYear(ctx, 2025)
		if err != nil {
			t.Fatalf("failed to list performance records: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("expected 2 records for 2025, got %d", len(records))
		}
		for _, rec := range records {
			if rec.Year != 2025 {
				t.Errorf("expected year 2025, got %d", rec.Year)
			}
		}
	})

	t.Run("Put replaces records with the same id and year", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Performance().Put(ctx, &model.PerformanceRecord{ID: "2.0", Name: "Old", Year: 2025, Level: types.LevelL1}); err != nil {
			t.Fatalf("failed to put: %v", err)
		}
		// same node under a non-normalized id form
		if err := repo.Performance().Put(ctx, &model.PerformanceRecord{ID: "2", Name: "New", Year: 2025, Level: types.LevelL1}); err != nil {
			t.Fatalf("failed to put: %v", err)
		}

		records, err := repo.Performance().ListByYear(ctx, 2025)
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		if records[0].Name != "New" {
			t.Errorf("expected replaced record, got %s", records[0].Name)
		}
	})

	t.Run("DeleteByYear removes only that year", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Capability().Put(ctx,
			&model.CapabilityRecord{ID: "3.1", Name: "Cap A", Level: types.LevelL2, Year: 2024, Maturity: 3, TargetMaturity: 5},
			&model.CapabilityRecord{ID: "3.1", Name: "Cap A", Level: types.LevelL2, Year: 2025, Maturity: 4, TargetMaturity: 5},
		); err != nil {
			t.Fatalf("failed to put capabilities: %v", err)
		}

		if err := repo.Capability().DeleteByYear(ctx, 2024); err != nil {
			t.Fatalf("failed to delete: %v", err)
		}

		old, err := repo.Capability().ListByYear(ctx, 2024)
		if err != nil {
			t.Fatalf("failed to list 2024: %v", err)
		}
		if len(old) != 0 {
			t.Errorf("expected 2024 records gone, got %d", len(old))
		}

		kept, err := repo.Capability().ListByYear(ctx, 2025)
		if err != nil {
			t.Fatalf("failed to list 2025: %v", err)
		}
		if len(kept) != 1 {
			t.Errorf("expected 2025 records kept, got %d", len(kept))
		}
	})

	t.Run("PolicyTool List spans years", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.PolicyTool().Put(ctx,
			&model.PolicyToolRecord{ID: "4.0", Name: "Tool", Level: types.LevelL1, Year: 2024},
			&model.PolicyToolRecord{ID: "4.0", Name: "Tool", Level: types.LevelL1, Year: 2025},
			&model.PolicyToolRecord{ID: "4.1", Name: "Sub Tool", Level: types.LevelL2, Year: 2025, ParentID: "4.0"},
		); err != nil {
			t.Fatalf("failed to put policy tools: %v", err)
		}

		all, err := repo.PolicyTool().List(ctx)
		if err != nil {
			t.Fatalf("failed to list all: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("expected 3 records across years, got %d", len(all))
		}

		one, err := repo.PolicyTool().ListByYear(ctx, 2025)
		if err != nil {
			t.Fatalf("failed to list 2025: %v", err)
		}
		if len(one) != 2 {
			t.Errorf("expected 2 records for 2025, got %d", len(one))
		}
	})

	t.Run("Objective round-trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Objective().Put(ctx, &model.ObjectiveRecord{ID: "9", Name: "Universal Access", Level: types.LevelL1, Year: 2025}); err != nil {
			t.Fatalf("failed to put objective: %v", err)
		}

		records, err := repo.Objective().ListByYear(ctx, 2025)
		if err != nil {
			t.Fatalf("failed to list objectives: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 objective, got %d", len(records))
		}
		if records[0].ID != "9.0" {
			t.Errorf("expected normalized id 9.0, got %s", records[0].ID)
		}
	})

	t.Run("Chain round-trip per kind", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		chain := &model.ChainGraph{
			Kind: types.ChainBuild,
			Nodes: []*model.ChainNode{
				{ElementID: "n1", Labels: []string{model.LabelEntityRisk}, ID: "r1", Name: "Risk", BuildBand: types.BandRed},
			},
			Links: []*model.ChainLink{
				{Type: model.EdgeInforms, SourceElementID: "n1", TargetElementID: "n2"},
			},
		}

		if err := repo.Chain().PutChain(ctx, chain); err != nil {
			t.Fatalf("failed to put chain: %v", err)
		}

		got, err := repo.Chain().GetChain(ctx, types.ChainBuild)
		if err != nil {
			t.Fatalf("failed to get chain: %v", err)
		}
		if got.Kind != types.ChainBuild {
			t.Errorf("expected build kind, got %s", got.Kind)
		}
		if len(got.Nodes) != 1 || got.Nodes[0].BuildBand != types.BandRed {
			t.Errorf("chain payload did not round-trip: %+v", got.Nodes)
		}

		_, err = repo.Chain().GetChain(ctx, types.ChainOperate)
		if !errors.Is(err, memory.ErrNotFound) && !errors.Is(err, firestore.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Chain rejects invalid kind", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Chain().PutChain(ctx, &model.ChainGraph{Kind: "bogus"}); err == nil {
			t.Error("expected error for invalid chain kind")
		}
		if err := repo.Chain().PutChain(ctx, nil); err == nil {
			t.Error("expected error for nil chain")
		}
	})

	t.Run("Direct links replace as a whole", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Chain().PutDirectLinks(ctx, []*model.DirectLink{
			{PolicyID: "1.1", CapabilityID: "6.1", CapabilityName: "Lab Testing"},
			{PolicyID: "1.2", CapabilityID: "6.2", CapabilityName: "Metering"},
		}); err != nil {
			t.Fatalf("failed to put direct links: %v", err)
		}

		if err := repo.Chain().PutDirectLinks(ctx, []*model.DirectLink{
			{PolicyID: "1.1", CapabilityID: "6.3", CapabilityName: "Sampling"},
		}); err != nil {
			t.Fatalf("failed to replace direct links: %v", err)
		}

		links, err := repo.Chain().ListDirectLinks(ctx)
		if err != nil {
			t.Fatalf("failed to list direct links: %v", err)
		}
		if len(links) != 1 {
			t.Fatalf("expected replaced link set of 1, got %d", len(links))
		}
		if links[0].CapabilityName != "Sampling" {
			t.Errorf("expected latest link set, got %s", links[0].CapabilityName)
		}
	})
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	if err != nil {
		t.Fatalf("failed to create firestore repository: %v", err)
	}
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Errorf("failed to close firestore repository: %v", err)
		}
	})
	return repo
}

func TestMemoryRepository(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreRepository(t *testing.T) {
	runRepositoryTest(t, newFirestoreRepository)
}
