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

func testDataset() *model.Dataset {
	return &model.Dataset{
		Performance: []*model.PerformanceRecord{
			{ID: "1", Name: "Water Security", Level: types.LevelL1, Year: 2025, Actual: 30, Target: 100},
			{ID: "1.1", Name: "Supply Coverage", Level: types.LevelL2, Year: 2025, ParentID: "1", Actual: 45, Target: 50},
			{ID: "1.2", Name: "Quality Index", Level: types.LevelL2, Year: 2025, ParentID: "1", Actual: 40, Target: 100},
		},
		Capabilities: []*model.CapabilityRecord{
			{ID: "6.1", Name: "Asset Management", Level: types.LevelL2, Year: 2025, Maturity: 2, TargetMaturity: 5},
			{ID: "6.2", Name: "Network Operations", Level: types.LevelL2, Year: 2025, Maturity: 4},
		},
		PolicyTools: []*model.PolicyToolRecord{
			{ID: "3", Name: "Water Digital Platforms", Level: types.LevelL1, Year: 2025},
			{ID: "3.1", Name: "Portal", Level: types.LevelL2, Year: 2025, ParentID: "3"},
			{ID: "3.2", Name: "API Gateway", Level: types.LevelL2, Year: 2025, ParentID: "3.0"},
		},
		Objectives: []*model.ObjectiveRecord{
			{ID: "9", Name: "Universal Access", Level: types.LevelL1, Year: 2025},
		},
		Chains: []*model.ChainGraph{
			{
				Kind: types.ChainBuild,
				Nodes: []*model.ChainNode{
					{ElementID: "n-pol1", Labels: []string{model.LabelSectorPolicyTool}, ID: "3", Name: "Water Digital Platforms", Level: types.LevelL1},
					{ElementID: "n-pol2", Labels: []string{model.LabelSectorPolicyTool}, ID: "3.1", Name: "Portal", Level: types.LevelL2},
					{ElementID: "n-risk", Labels: []string{model.LabelEntityRisk}, ID: "r1", Name: "Delivery Delay", BuildBand: types.BandRed},
					{ElementID: "n-cap", Labels: []string{model.LabelEntityCapability}, ID: "6.1", Name: "Asset Management", Level: types.LevelL2},
				},
				Links: []*model.ChainLink{
					{Type: model.EdgeInforms, SourceElementID: "n-risk", TargetElementID: "n-pol2"},
					{Type: model.EdgeParentOf, SourceElementID: "n-pol1", TargetElementID: "n-pol2"},
					{Type: model.EdgeMonitoredBy, SourceElementID: "n-cap", TargetElementID: "n-risk"},
				},
			},
		},
		DirectLinks: []*model.DirectLink{
			{PolicyID: "3.1", CapabilityID: "6.2", CapabilityName: "Network Operations", CapabilityLevel: types.LevelL2},
		},
	}
}

func TestAnalyticsUseCase_Snapshot(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)
	ctx := context.Background()

	gt.NoError(t, uc.Dataset.Ingest(ctx, testDataset())).Required()

	snapshot, err := uc.Analytics.Snapshot(ctx, 2025)
	gt.NoError(t, err).Required()
	gt.Number(t, snapshot.Year).Equal(2025)

	t.Run("matrix", func(t *testing.T) {
		gt.Number(t, len(snapshot.Matrix.PerfL2)).Equal(2)
		gt.Number(t, len(snapshot.Matrix.CapL2)).Equal(2)
		gt.Number(t, snapshot.Matrix.Summary.TotalConnections).Equal(4)
	})

	t.Run("health layers", func(t *testing.T) {
		gt.Number(t, snapshot.Health.Sector.Total).Equal(1)
		gt.Number(t, snapshot.Health.Sector.Red).Equal(1)
		gt.Number(t, snapshot.Health.Entity.Total).Equal(2)
	})

	t.Run("risk aggregation from build chain", func(t *testing.T) {
		gt.Map(t, snapshot.RiskByL1).HasKey("3.0")

		agg := snapshot.RiskByL1["3.0"]
		gt.Value(t, agg.WorstBand).Equal(types.BandRed)

		detail := agg.FindL2("3.1")
		gt.Value(t, detail).NotNil()
		gt.Value(t, detail.WorstBand).Equal(types.BandRed)
		gt.Number(t, len(detail.Caps)).Equal(2) // chain cap plus direct link cap

		// gap-fill inserts the uncovered sibling as no-data
		placeholder := agg.FindL2("3.2")
		gt.Value(t, placeholder).NotNil()
		gt.Value(t, placeholder.WorstBand).Equal(types.BandNone)
	})

	t.Run("category risk and counts", func(t *testing.T) {
		gt.Value(t, snapshot.CategoryRisk[types.CategoryServices]).Equal(types.BandRed)
		gt.Value(t, snapshot.CategoryRisk[types.CategoryEnforce]).Equal(types.BandGreen)
		// one L1 weighted by its two L2 children
		gt.Number(t, snapshot.PolicyCounts.Services).Equal(2)
		gt.Number(t, snapshot.PolicyCounts.Total).Equal(2)
	})

	t.Run("jeopardy alerts", func(t *testing.T) {
		// one low-maturity capability behind each of the two failing child KPIs
		gt.Array(t, snapshot.Alerts).Length(2)
		gt.Value(t, snapshot.Alerts[0].ObjectiveL1).Equal("Water Security")
	})

	t.Run("flow", func(t *testing.T) {
		gt.Number(t, len(snapshot.Flow.Nodes)).Equal(5)
		gt.Number(t, len(snapshot.Flow.Links)).Equal(6)
	})
}

func TestAnalyticsUseCase_MissingChainsDegrade(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)
	ctx := context.Background()

	ds := testDataset()
	ds.Chains = nil
	ds.DirectLinks = nil
	gt.NoError(t, uc.Dataset.Ingest(ctx, ds)).Required()

	snapshot, err := uc.Analytics.Snapshot(ctx, 2025)
	gt.NoError(t, err).Required()

	// no chain data means no risk entries, but the rest still computes
	gt.Number(t, len(snapshot.RiskByL1)).Equal(0)
	gt.Number(t, snapshot.Matrix.Summary.TotalConnections).Equal(4)
	gt.Value(t, snapshot.CategoryRisk[types.CategoryServices]).Equal(types.BandGreen)
}

func TestAnalyticsUseCase_EmptyYear(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)
	ctx := context.Background()

	gt.NoError(t, uc.Dataset.Ingest(ctx, testDataset())).Required()

	snapshot, err := uc.Analytics.Snapshot(ctx, 1999)
	gt.NoError(t, err).Required()

	gt.Number(t, snapshot.Matrix.Summary.TotalConnections).Equal(0)
	gt.Number(t, snapshot.Health.Overall).Equal(0)
	gt.Number(t, len(snapshot.Alerts)).Equal(0)
}
