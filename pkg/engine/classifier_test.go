package engine_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
	"github.com/josoor-lab/sectorlens/pkg/engine"
)

func TestClassifier_Classify(t *testing.T) {
	c := engine.NewClassifier(nil)

	tests := []struct {
		name string
		want types.PolicyCategory
	}{
		{name: "Water Digital Platforms", want: types.CategoryServices},
		{name: "Water Monitoring & Regulation", want: types.CategoryRegulate},
		{name: "Water Inspection & Compliance", want: types.CategoryLicense},
		{name: "Water Human Capital Program", want: types.CategoryIncentive},
		{name: "Policy Tool for Compliance Rate", want: types.CategoryEnforce},
		{name: "Policy Tool for Waste Reduction", want: types.CategoryAwareness},
		{name: "Unknown Future Tool", want: types.CategoryServices},
		{name: "", want: types.CategoryServices},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.name)
			gt.Value(t, got).Equal(tt.want)
			gt.True(t, got.IsValid())
		})
	}
}

func TestClassifier_Overrides(t *testing.T) {
	c := engine.NewClassifier(map[string]types.PolicyCategory{
		"Water Digital Platforms": types.CategoryRegulate,
		"Brand New Tool":          types.CategoryEnforce,
	})

	gt.Value(t, c.Classify("Water Digital Platforms")).Equal(types.CategoryRegulate)
	gt.Value(t, c.Classify("Brand New Tool")).Equal(types.CategoryEnforce)
	// untouched entries keep their default
	gt.Value(t, c.Classify("Water Inspection & Compliance")).Equal(types.CategoryLicense)
	// fallback survives overriding
	gt.Value(t, c.Classify("Still Unknown")).Equal(types.CategoryServices)
}

func TestClassifier_CountByCategory(t *testing.T) {
	c := engine.NewClassifier(nil)

	policyTools := []*model.PolicyToolRecord{
		{ID: "1", Name: "Water Digital Platforms", Level: types.LevelL1, Year: 2025},
		{ID: "1.1", Name: "Portal", Level: types.LevelL2, Year: 2025, ParentID: "1.0"},
		{ID: "1.2", Name: "API Gateway", Level: types.LevelL2, Year: 2025, ParentID: "1"},
		{ID: "2.0", Name: "Water Monitoring & Regulation", Level: types.LevelL1, Year: 2025},
		{ID: "3.0", Name: "Unknown Future Tool", Level: types.LevelL1, Year: 2025},
	}

	counts := c.CountByCategory(policyTools)

	// L1 "1" counts for its two L2 children despite mixed id forms
	gt.Number(t, counts.Services).Equal(3) // 2 children + unknown leaf
	gt.Number(t, counts.Regulate).Equal(1) // leaf L1 counts as one
	gt.Number(t, counts.Total).Equal(4)
}

func TestClassifier_CategoryRisk(t *testing.T) {
	c := engine.NewClassifier(nil)

	t.Run("empty aggregation defaults all categories green", func(t *testing.T) {
		risk := c.CategoryRisk(nil)
		gt.Number(t, len(risk)).Equal(6)
		for _, cat := range types.AllPolicyCategories() {
			gt.Value(t, risk[cat]).Equal(types.BandGreen)
		}
	})

	t.Run("worst band wins per category", func(t *testing.T) {
		aggs := map[types.HierarchyID]*model.L1RiskAggregation{
			"1.0": {L1Name: "Water Digital Platforms", WorstBand: types.BandAmber},
			"2.0": {L1Name: "Policy Tool for Service Reliability", WorstBand: types.BandRed},
			"3.0": {L1Name: "Water Monitoring & Regulation", WorstBand: types.BandGreen},
		}
		risk := c.CategoryRisk(aggs)
		gt.Value(t, risk[types.CategoryServices]).Equal(types.BandRed)
		gt.Value(t, risk[types.CategoryRegulate]).Equal(types.BandGreen)
		gt.Value(t, risk[types.CategoryEnforce]).Equal(types.BandGreen)
	})

	t.Run("bandless aggregations are ignored", func(t *testing.T) {
		aggs := map[types.HierarchyID]*model.L1RiskAggregation{
			"1.0": {L1Name: "Water Digital Platforms", WorstBand: types.BandNone},
		}
		risk := c.CategoryRisk(aggs)
		gt.Value(t, risk[types.CategoryServices]).Equal(types.BandGreen)
	})
}
