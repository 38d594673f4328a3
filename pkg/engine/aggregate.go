package engine

import (
	"sort"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

// AggregateByL1 folds normalized risk rows into one entry per L1 policy tool
// group: the worst band across all rows of the group, plus per-L2 detail so
// a consumer can explain why the L1 carries its band. A group with zero rows
// has no entry at all. Severity never dilutes on the way up: one red leaf
// makes the whole L1 red.
func AggregateByL1(rows []*model.RiskRow) map[types.HierarchyID]*model.L1RiskAggregation {
	aggs := make(map[types.HierarchyID]*model.L1RiskAggregation)

	for _, row := range rows {
		if row == nil || row.L1 == nil || row.L1.ID.IsEmpty() {
			continue
		}
		l1ID := types.NormalizeHierarchyID(string(row.L1.ID))

		agg := aggs[l1ID]
		if agg == nil {
			agg = &model.L1RiskAggregation{
				L1Name:    row.L1.Name,
				WorstBand: types.BandNone,
			}
			aggs[l1ID] = agg
		}
		agg.WorstBand = types.WorstBand(agg.WorstBand, row.EffectiveBand)

		if row.L2 == nil || row.L2.ID.IsEmpty() {
			continue
		}
		l2ID := types.NormalizeHierarchyID(string(row.L2.ID))

		detail := agg.FindL2(l2ID)
		if detail == nil {
			detail = &model.L2RiskDetail{
				L2ID:      l2ID,
				L2Name:    row.L2.Name,
				WorstBand: types.BandNone,
			}
			agg.L2Details = append(agg.L2Details, detail)
		}
		detail.WorstBand = types.WorstBand(detail.WorstBand, row.EffectiveBand)

		if row.Capability != nil && !row.Capability.ID.IsEmpty() {
			capID := types.NormalizeHierarchyID(string(row.Capability.ID))
			if existing := findCap(detail.Caps, capID); existing != nil {
				existing.Band = types.WorstBand(existing.Band, row.EffectiveBand)
			} else {
				detail.Caps = append(detail.Caps, &model.L2RiskCap{
					CapID:    capID,
					CapName:  row.Capability.Name,
					CapLevel: row.Capability.Level,
					Band:     row.EffectiveBand,
				})
			}
		}
	}

	return aggs
}

// GapFillL2 inserts "no data" placeholder entries for known L2 policy tools
// missing from their L1 parent's detail list. Only L1s that already carry a
// real risk signal are filled; the pass never creates L1 entries and never
// changes an existing band, so running it twice is a no-op.
func GapFillL2(aggs map[types.HierarchyID]*model.L1RiskAggregation, policyTools []*model.PolicyToolRecord) {
	l2s := make([]*model.PolicyToolRecord, 0, len(policyTools))
	for _, pt := range policyTools {
		if pt != nil && pt.Level == types.LevelL2 && !pt.ParentID.IsEmpty() {
			l2s = append(l2s, pt)
		}
	}
	sort.Slice(l2s, func(i, j int) bool {
		return types.NormalizeHierarchyID(string(l2s[i].ID)) < types.NormalizeHierarchyID(string(l2s[j].ID))
	})

	for _, pt := range l2s {
		agg := aggs[types.NormalizeHierarchyID(string(pt.ParentID))]
		if agg == nil {
			continue
		}
		l2ID := types.NormalizeHierarchyID(string(pt.ID))
		if agg.FindL2(l2ID) != nil {
			continue
		}
		agg.L2Details = append(agg.L2Details, &model.L2RiskDetail{
			L2ID:      l2ID,
			L2Name:    pt.Name,
			WorstBand: types.BandNone,
			Caps:      []*model.L2RiskCap{},
		})
	}
}

func findCap(caps []*model.L2RiskCap, id types.HierarchyID) *model.L2RiskCap {
	for _, c := range caps {
		if c.CapID == id {
			return c
		}
	}
	return nil
}
