package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/josoor-lab/sectorlens/pkg/domain/interfaces"
	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
	"github.com/josoor-lab/sectorlens/pkg/engine"
	"github.com/josoor-lab/sectorlens/pkg/utils/logging"
)

// AnalyticsUseCase computes derived analytics for one reporting year. The
// engine itself is pure; this layer materializes the inputs and runs the
// pipeline per request.
type AnalyticsUseCase struct {
	repo           interfaces.Repository
	classifier     *engine.Classifier
	maxMatrixCells int
}

func NewAnalyticsUseCase(repo interfaces.Repository, classifier *engine.Classifier, maxMatrixCells int) *AnalyticsUseCase {
	if classifier == nil {
		classifier = engine.NewClassifier(nil)
	}
	return &AnalyticsUseCase{
		repo:           repo,
		classifier:     classifier,
		maxMatrixCells: maxMatrixCells,
	}
}

// snapshotInputs is everything one Snapshot computation reads
type snapshotInputs struct {
	performance []*model.PerformanceRecord
	capability  []*model.CapabilityRecord
	policyTools []*model.PolicyToolRecord
	allPolicy   []*model.PolicyToolRecord
	objectives  []*model.ObjectiveRecord

	build   *model.ChainGraph
	operate *model.ChainGraph
	service *model.ChainGraph

	directLinks []*model.DirectLink
}

func (uc *AnalyticsUseCase) loadInputs(ctx context.Context, year int) (*snapshotInputs, error) {
	in := &snapshotInputs{}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		records, err := uc.repo.Performance().ListByYear(ctx, year)
		if err != nil {
			return goerr.Wrap(err, "failed to load performance records", goerr.V("year", year))
		}
		in.performance = records
		return nil
	})
	eg.Go(func() error {
		records, err := uc.repo.Capability().ListByYear(ctx, year)
		if err != nil {
			return goerr.Wrap(err, "failed to load capability records", goerr.V("year", year))
		}
		in.capability = records
		return nil
	})
	eg.Go(func() error {
		records, err := uc.repo.PolicyTool().ListByYear(ctx, year)
		if err != nil {
			return goerr.Wrap(err, "failed to load policy tools", goerr.V("year", year))
		}
		in.policyTools = records
		return nil
	})
	eg.Go(func() error {
		records, err := uc.repo.PolicyTool().List(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to load policy tool catalog")
		}
		in.allPolicy = records
		return nil
	})
	eg.Go(func() error {
		records, err := uc.repo.Objective().ListByYear(ctx, year)
		if err != nil {
			return goerr.Wrap(err, "failed to load objectives", goerr.V("year", year))
		}
		in.objectives = records
		return nil
	})

	// Chains and direct links degrade to absence: a missing or unreadable
	// chain payload yields partial analytics, never a failed request.
	eg.Go(func() error {
		in.build = uc.loadChain(ctx, types.ChainBuild)
		in.operate = uc.loadChain(ctx, types.ChainOperate)
		in.service = uc.loadChain(ctx, types.ChainService)

		links, err := uc.repo.Chain().ListDirectLinks(ctx)
		if err != nil {
			logging.From(ctx).Warn("failed to load direct links, continuing without", "error", err)
			return nil
		}
		in.directLinks = links
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

func (uc *AnalyticsUseCase) loadChain(ctx context.Context, kind types.ChainKind) *model.ChainGraph {
	chain, err := uc.repo.Chain().GetChain(ctx, kind)
	if err != nil {
		logging.From(ctx).Warn("chain unavailable, continuing without",
			"kind", kind, "error", err)
		return nil
	}
	return chain
}

// Snapshot runs the full analytics pipeline for one year
func (uc *AnalyticsUseCase) Snapshot(ctx context.Context, year int) (*model.AnalyticsSnapshot, error) {
	in, err := uc.loadInputs(ctx, year)
	if err != nil {
		return nil, err
	}

	perfL1 := filterPerformance(in.performance, types.LevelL1)
	perfL2 := filterPerformance(in.performance, types.LevelL2)
	capL2 := filterCapability(in.capability, types.LevelL2)

	rows := engine.ExtractChainRisk(in.build)
	if in.operate != nil && in.service != nil {
		rows = append(rows, engine.ExtractOperateForPolicyTools(in.operate, in.service, in.allPolicy)...)
	}
	rows = engine.AppendDirectPolicyCapRows(rows, in.directLinks, in.allPolicy)

	aggs := engine.AggregateByL1(rows)
	engine.GapFillL2(aggs, in.allPolicy)

	return &model.AnalyticsSnapshot{
		Year:         year,
		Matrix:       engine.BuildMatrix(perfL2, capL2, uc.maxMatrixCells),
		Health:       engine.ComputeDualLayerHealth(perfL1, capL2),
		Flow:         engine.BuildLevelFlow(in.objectives, in.performance, in.capability, in.policyTools),
		Alerts:       engine.GenerateJeopardyAlerts(in.performance, in.capability),
		RiskByL1:     aggs,
		CategoryRisk: uc.classifier.CategoryRisk(aggs),
		PolicyCounts: uc.classifier.CountByCategory(in.policyTools),
	}, nil
}

// Matrix computes the integration matrix for one year
func (uc *AnalyticsUseCase) Matrix(ctx context.Context, year int) (*model.IntegrationMatrix, error) {
	in, err := uc.loadInputs(ctx, year)
	if err != nil {
		return nil, err
	}
	return engine.BuildMatrix(filterPerformance(in.performance, types.LevelL2), filterCapability(in.capability, types.LevelL2), uc.maxMatrixCells), nil
}

// Health computes the dual-layer health rollup for one year
func (uc *AnalyticsUseCase) Health(ctx context.Context, year int) (*model.DualLayerHealth, error) {
	in, err := uc.loadInputs(ctx, year)
	if err != nil {
		return nil, err
	}
	return engine.ComputeDualLayerHealth(filterPerformance(in.performance, types.LevelL1), filterCapability(in.capability, types.LevelL2)), nil
}

// Flow computes the level-flow structure for one year
func (uc *AnalyticsUseCase) Flow(ctx context.Context, year int) (*model.LevelFlow, error) {
	in, err := uc.loadInputs(ctx, year)
	if err != nil {
		return nil, err
	}
	return engine.BuildLevelFlow(in.objectives, in.performance, in.capability, in.policyTools), nil
}

// Alerts computes the jeopardy alerts for one year
func (uc *AnalyticsUseCase) Alerts(ctx context.Context, year int) ([]*model.JeopardyAlert, error) {
	in, err := uc.loadInputs(ctx, year)
	if err != nil {
		return nil, err
	}
	return engine.GenerateJeopardyAlerts(in.performance, in.capability), nil
}

// RiskByL1 computes the per-L1 risk aggregation for one year
func (uc *AnalyticsUseCase) RiskByL1(ctx context.Context, year int) (map[types.HierarchyID]*model.L1RiskAggregation, error) {
	snapshot, err := uc.Snapshot(ctx, year)
	if err != nil {
		return nil, err
	}
	return snapshot.RiskByL1, nil
}

// PolicyCategories computes classified policy tool counts and the per
// category worst risk band for one year.
func (uc *AnalyticsUseCase) PolicyCategories(ctx context.Context, year int) (*model.PolicyToolCounts, map[types.PolicyCategory]types.Band, error) {
	snapshot, err := uc.Snapshot(ctx, year)
	if err != nil {
		return nil, nil, err
	}
	return snapshot.PolicyCounts, snapshot.CategoryRisk, nil
}

func filterPerformance(records []*model.PerformanceRecord, level types.Level) []*model.PerformanceRecord {
	var out []*model.PerformanceRecord
	for _, r := range records {
		if r != nil && r.Level == level {
			out = append(out, r)
		}
	}
	return out
}

func filterCapability(records []*model.CapabilityRecord, level types.Level) []*model.CapabilityRecord {
	var out []*model.CapabilityRecord
	for _, r := range records {
		if r != nil && r.Level == level {
			out = append(out, r)
		}
	}
	return out
}
