package engine_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
	"github.com/josoor-lab/sectorlens/pkg/engine"
)

func row(l1, l2, capID string, band types.Band) *model.RiskRow {
	r := &model.RiskRow{
		L1:            &model.RiskRef{ID: types.HierarchyID(l1), Name: "L1 " + l1},
		EffectiveBand: band,
	}
	if l2 != "" {
		r.L2 = &model.RiskRef{ID: types.HierarchyID(l2), Name: "L2 " + l2}
	}
	if capID != "" {
		r.Capability = &model.RiskRef{ID: types.HierarchyID(capID), Name: "Cap " + capID}
	}
	return r
}

func TestAggregateByL1(t *testing.T) {
	t.Run("worst band wins", func(t *testing.T) {
		aggs := engine.AggregateByL1([]*model.RiskRow{
			row("3.1", "", "", types.BandAmber),
			row("3.1", "", "", types.BandRed),
		})
		gt.Map(t, aggs).HasKey("3.1")
		gt.Value(t, aggs["3.1"].WorstBand).Equal(types.BandRed)
	})

	t.Run("no rows means no entry", func(t *testing.T) {
		aggs := engine.AggregateByL1(nil)
		gt.Number(t, len(aggs)).Equal(0)
	})

	t.Run("mixed id forms group together", func(t *testing.T) {
		aggs := engine.AggregateByL1([]*model.RiskRow{
			row("8", "", "", types.BandGreen),
			row("8.0", "", "", types.BandRed),
		})
		gt.Number(t, len(aggs)).Equal(1)
		gt.Value(t, aggs["8.0"].WorstBand).Equal(types.BandRed)
	})

	t.Run("l2 detail records worst band and caps", func(t *testing.T) {
		aggs := engine.AggregateByL1([]*model.RiskRow{
			row("1.0", "1.1", "c1", types.BandGreen),
			row("1.0", "1.1", "c2", types.BandRed),
			row("1.0", "1.2", "c3", types.BandAmber),
		})
		agg := aggs["1.0"]
		gt.Value(t, agg.WorstBand).Equal(types.BandRed)
		gt.Number(t, len(agg.L2Details)).Equal(2)

		d := agg.FindL2("1.1")
		gt.Value(t, d).NotNil()
		gt.Value(t, d.WorstBand).Equal(types.BandRed)
		gt.Number(t, len(d.Caps)).Equal(2)
	})

	t.Run("duplicate cap keeps worst band", func(t *testing.T) {
		aggs := engine.AggregateByL1([]*model.RiskRow{
			row("1.0", "1.1", "c1", types.BandGreen),
			row("1.0", "1.1", "c1", types.BandRed),
		})
		d := aggs["1.0"].FindL2("1.1")
		gt.Number(t, len(d.Caps)).Equal(1)
		gt.Value(t, d.Caps[0].Band).Equal(types.BandRed)
	})

	t.Run("adding a red row never lowers severity", func(t *testing.T) {
		base := []*model.RiskRow{
			row("2.0", "", "", types.BandRed),
			row("2.0", "", "", types.BandGreen),
		}
		before := engine.AggregateByL1(base)["2.0"].WorstBand

		after := engine.AggregateByL1(append(base, row("2.0", "", "", types.BandRed)))["2.0"].WorstBand
		gt.False(t, before.WorseThan(after))
	})

	t.Run("rows without l1 are skipped", func(t *testing.T) {
		aggs := engine.AggregateByL1([]*model.RiskRow{
			{EffectiveBand: types.BandRed},
			nil,
		})
		gt.Number(t, len(aggs)).Equal(0)
	})
}

func TestGapFillL2(t *testing.T) {
	catalog := []*model.PolicyToolRecord{
		{ID: "1.0", Name: "Tool One", Level: types.LevelL1},
		{ID: "1.1", Name: "Sub A", Level: types.LevelL2, ParentID: "1"},
		{ID: "1.2", Name: "Sub B", Level: types.LevelL2, ParentID: "1.0"},
		{ID: "9.1", Name: "Orphanage", Level: types.LevelL2, ParentID: "9.0"},
	}

	t.Run("fills missing l2 under existing l1 only", func(t *testing.T) {
		aggs := engine.AggregateByL1([]*model.RiskRow{
			row("1.0", "1.1", "c1", types.BandRed),
		})
		engine.GapFillL2(aggs, catalog)

		agg := aggs["1.0"]
		gt.Number(t, len(agg.L2Details)).Equal(2)

		placeholder := agg.FindL2("1.2")
		gt.Value(t, placeholder).NotNil()
		gt.Value(t, placeholder.WorstBand).Equal(types.BandNone)
		gt.Number(t, len(placeholder.Caps)).Equal(0)

		// no new L1 entry for the orphan L2
		gt.Number(t, len(aggs)).Equal(1)
	})

	t.Run("never changes existing bands", func(t *testing.T) {
		aggs := engine.AggregateByL1([]*model.RiskRow{
			row("1.0", "1.1", "c1", types.BandGreen),
		})
		engine.GapFillL2(aggs, catalog)
		gt.Value(t, aggs["1.0"].WorstBand).Equal(types.BandGreen)
		gt.Value(t, aggs["1.0"].FindL2("1.1").WorstBand).Equal(types.BandGreen)
	})

	t.Run("idempotent", func(t *testing.T) {
		aggs := engine.AggregateByL1([]*model.RiskRow{
			row("1.0", "1.1", "c1", types.BandRed),
		})
		engine.GapFillL2(aggs, catalog)
		n := len(aggs["1.0"].L2Details)

		engine.GapFillL2(aggs, catalog)
		gt.Number(t, len(aggs["1.0"].L2Details)).Equal(n)
	})
}
