package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/josoor-lab/sectorlens/pkg/domain/interfaces"
	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/utils/logging"
)

// DatasetUseCase ingests record sets and chain payloads into the repository.
// Ingestion replaces whole (record set, year) slices: partial updates would
// leave mixed-vintage data behind the analytics pipeline.
type DatasetUseCase struct {
	repo interfaces.Repository
}

func NewDatasetUseCase(repo interfaces.Repository) *DatasetUseCase {
	return &DatasetUseCase{repo: repo}
}

// Ingest stores a full dataset. For each record type, every year present in
// the payload is deleted and rewritten. Chains and direct links are replaced
// as whole payloads. Records without an id are dropped with a warning.
func (uc *DatasetUseCase) Ingest(ctx context.Context, ds *model.Dataset) error {
	if ds == nil {
		return goerr.New("dataset must not be nil")
	}
	logger := logging.From(ctx)

	performance := make([]*model.PerformanceRecord, 0, len(ds.Performance))
	perfYears := map[int]bool{}
	for _, rec := range ds.Performance {
		if rec == nil || rec.ID.IsEmpty() {
			logger.Warn("dropping performance record without id")
			continue
		}
		performance = append(performance, rec)
		perfYears[rec.Year] = true
	}

	capabilities := make([]*model.CapabilityRecord, 0, len(ds.Capabilities))
	capYears := map[int]bool{}
	for _, rec := range ds.Capabilities {
		if rec == nil || rec.ID.IsEmpty() {
			logger.Warn("dropping capability record without id")
			continue
		}
		if rec.TargetMaturity == 0 {
			rec.TargetMaturity = model.DefaultTargetMaturity
		}
		capabilities = append(capabilities, rec)
		capYears[rec.Year] = true
	}

	policyTools := make([]*model.PolicyToolRecord, 0, len(ds.PolicyTools))
	ptYears := map[int]bool{}
	for _, rec := range ds.PolicyTools {
		if rec == nil || rec.ID.IsEmpty() {
			logger.Warn("dropping policy tool record without id")
			continue
		}
		policyTools = append(policyTools, rec)
		ptYears[rec.Year] = true
	}

	objectives := make([]*model.ObjectiveRecord, 0, len(ds.Objectives))
	objYears := map[int]bool{}
	for _, rec := range ds.Objectives {
		if rec == nil || rec.ID.IsEmpty() {
			logger.Warn("dropping objective record without id")
			continue
		}
		objectives = append(objectives, rec)
		objYears[rec.Year] = true
	}

	for year := range perfYears {
		if err := uc.repo.Performance().DeleteByYear(ctx, year); err != nil {
			return goerr.Wrap(err, "failed to clear performance year", goerr.V("year", year))
		}
	}
	if err := uc.repo.Performance().Put(ctx, performance...); err != nil {
		return goerr.Wrap(err, "failed to store performance records")
	}

	for year := range capYears {
		if err := uc.repo.Capability().DeleteByYear(ctx, year); err != nil {
			return goerr.Wrap(err, "failed to clear capability year", goerr.V("year", year))
		}
	}
	if err := uc.repo.Capability().Put(ctx, capabilities...); err != nil {
		return goerr.Wrap(err, "failed to store capability records")
	}

	for year := range ptYears {
		if err := uc.repo.PolicyTool().DeleteByYear(ctx, year); err != nil {
			return goerr.Wrap(err, "failed to clear policy tool year", goerr.V("year", year))
		}
	}
	if err := uc.repo.PolicyTool().Put(ctx, policyTools...); err != nil {
		return goerr.Wrap(err, "failed to store policy tool records")
	}

	for year := range objYears {
		if err := uc.repo.Objective().DeleteByYear(ctx, year); err != nil {
			return goerr.Wrap(err, "failed to clear objective year", goerr.V("year", year))
		}
	}
	if err := uc.repo.Objective().Put(ctx, objectives...); err != nil {
		return goerr.Wrap(err, "failed to store objective records")
	}

	for _, chain := range ds.Chains {
		if chain == nil {
			continue
		}
		if !chain.Kind.IsValid() {
			logger.Warn("dropping chain with invalid kind", "kind", chain.Kind)
			continue
		}
		if err := uc.repo.Chain().PutChain(ctx, chain); err != nil {
			return goerr.Wrap(err, "failed to store chain", goerr.V("kind", chain.Kind))
		}
	}

	if ds.DirectLinks != nil {
		if err := uc.repo.Chain().PutDirectLinks(ctx, ds.DirectLinks); err != nil {
			return goerr.Wrap(err, "failed to store direct links")
		}
	}

	logger.Info("dataset ingested",
		"performance", len(performance),
		"capabilities", len(capabilities),
		"policy_tools", len(policyTools),
		"objectives", len(objectives),
		"chains", len(ds.Chains),
		"direct_links", len(ds.DirectLinks),
	)
	return nil
}
