package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
	"github.com/josoor-lab/sectorlens/pkg/repository/memory"
	"github.com/josoor-lab/sectorlens/pkg/usecase"
)

func TestDatasetUseCase_Ingest(t *testing.T) {
	t.Run("applies default target maturity", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		err := uc.Dataset.Ingest(ctx, &model.Dataset{
			Capabilities: []*model.CapabilityRecord{
				{ID: "1.1", Name: "Cap", Level: types.LevelL2, Year: 2025, Maturity: 3},
			},
		})
		gt.NoError(t, err).Required()

		records, err := repo.Capability().ListByYear(ctx, 2025)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(1)
		gt.Number(t, records[0].TargetMaturity).Equal(model.DefaultTargetMaturity)
	})

	t.Run("drops records without id", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		err := uc.Dataset.Ingest(ctx, &model.Dataset{
			Performance: []*model.PerformanceRecord{
				{Name: "No ID", Level: types.LevelL1, Year: 2025},
				{ID: "1.0", Name: "Valid", Level: types.LevelL1, Year: 2025},
			},
		})
		gt.NoError(t, err).Required()

		records, err := repo.Performance().ListByYear(ctx, 2025)
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(1)
		gt.Value(t, records[0].Name).Equal("Valid")
	})

	t.Run("replaces whole year slices", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		gt.NoError(t, uc.Dataset.Ingest(ctx, &model.Dataset{
			Performance: []*model.PerformanceRecord{
				{ID: "1.0", Name: "First", Level: types.LevelL1, Year: 2025},
				{ID: "2.0", Name: "Second", Level: types.LevelL1, Year: 2025},
				{ID: "1.0", Name: "Old Year", Level: types.LevelL1, Year: 2024},
			},
		})).Required()

		gt.NoError(t, uc.Dataset.Ingest(ctx, &model.Dataset{
			Performance: []*model.PerformanceRecord{
				{ID: "3.0", Name: "Replacement", Level: types.LevelL1, Year: 2025},
			},
		})).Required()

		current, err := repo.Performance().ListByYear(ctx, 2025)
		gt.NoError(t, err).Required()
		gt.Array(t, current).Length(1)
		gt.Value(t, current[0].Name).Equal("Replacement")

		// untouched years survive
		old, err := repo.Performance().ListByYear(ctx, 2024)
		gt.NoError(t, err).Required()
		gt.Array(t, old).Length(1)
	})

	t.Run("rejects nil dataset", func(t *testing.T) {
		uc := usecase.New(memory.New())
		gt.Value(t, uc.Dataset.Ingest(context.Background(), nil)).NotNil()
	})

	t.Run("drops chains with invalid kind", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		ctx := context.Background()

		gt.NoError(t, uc.Dataset.Ingest(ctx, &model.Dataset{
			Chains: []*model.ChainGraph{
				{Kind: "bogus"},
				{Kind: types.ChainService},
			},
		})).Required()

		_, err := repo.Chain().GetChain(ctx, types.ChainService)
		gt.NoError(t, err)

		_, err = repo.Chain().GetChain(ctx, "bogus")
		gt.Value(t, err).NotNil()
	})
}
