package engine

import (
	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

// defaultCategoryTable maps L1 policy tool display names to their functional
// category, derived from analysis of the 22 L1 water sector tools. Names not
// in the table classify as Services so new tools never disappear from counts.
var defaultCategoryTable = map[string]types.PolicyCategory{
	// Enforce
	"Policy Tool for Compliance Rate":               types.CategoryEnforce,
	"Policy Tool for Environmental Compliance Rate": types.CategoryEnforce,
	"Policy Tool for Resource Efficiency":           types.CategoryEnforce,

	// Incentive
	"Water Human Capital Program":                 types.CategoryIncentive,
	"Water Innovation & R&D":                      types.CategoryIncentive,
	"Water Innovation Ecosystem":                  types.CategoryIncentive,
	"Policy Tool for Employment Generation":       types.CategoryIncentive,
	"Policy Tool for Investment Agreement Value":  types.CategoryIncentive,

	// License
	"Water Inspection & Compliance":      types.CategoryLicense,
	"Policy Tool for Licensing Coverage": types.CategoryLicense,

	// Services
	"Water Digital Platforms":                      types.CategoryServices,
	"Water Logistics & Service Delivery":           types.CategoryServices,
	"Policy Tool for Processing Time Reduction":    types.CategoryServices,
	"Policy Tool for Service Reliability":          types.CategoryServices,
	"Policy Tool for Customer Satisfaction Rate":   types.CategoryServices,
	"Policy Tool for Complaint Resolution Rate":    types.CategoryServices,

	// Regulate
	"Water Monitoring & Regulation":         types.CategoryRegulate,
	"Policy Tool for GDP Contribution Rate": types.CategoryRegulate,
	"Policy Tool for Sustainability Index":  types.CategoryRegulate,

	// Awareness
	"Policy Tool for Waste Reduction":              types.CategoryAwareness,
	"Policy Tool for Water Loss Reduction":         types.CategoryAwareness,
	"Policy Tool for Stakeholder Engagement Rate":  types.CategoryAwareness,
}

// Classifier maps policy tool display names to functional categories. The
// lookup table is immutable after construction.
type Classifier struct {
	table map[string]types.PolicyCategory
}

// NewClassifier builds a classifier from the default table merged with the
// given overrides. Overrides extend or replace individual entries; they never
// remove the fallback behavior.
func NewClassifier(overrides map[string]types.PolicyCategory) *Classifier {
	table := make(map[string]types.PolicyCategory, len(defaultCategoryTable)+len(overrides))
	for name, cat := range defaultCategoryTable {
		table[name] = cat
	}
	for name, cat := range overrides {
		table[name] = cat
	}
	return &Classifier{table: table}
}

// Classify returns the category for a policy tool display name. Unknown
// names return CategoryServices; classification never fails.
func (c *Classifier) Classify(name string) types.PolicyCategory {
	if cat, ok := c.table[name]; ok {
		return cat
	}
	return types.CategoryServices
}

// CountByCategory classifies the L1 policy tools of one year slice and
// counts them per category. Each L1 counts for its number of L2 children in
// the same slice, minimum one.
func (c *Classifier) CountByCategory(policyTools []*model.PolicyToolRecord) *model.PolicyToolCounts {
	childCount := make(map[types.HierarchyID]int)
	for _, pt := range policyTools {
		if pt == nil || pt.Level != types.LevelL2 || pt.ParentID.IsEmpty() {
			continue
		}
		childCount[types.NormalizeHierarchyID(string(pt.ParentID))]++
	}

	counts := &model.PolicyToolCounts{}
	for _, pt := range policyTools {
		if pt == nil || pt.Level != types.LevelL1 {
			continue
		}
		n := childCount[types.NormalizeHierarchyID(string(pt.ID))]
		if n == 0 {
			n = 1
		}
		counts.Add(c.Classify(pt.Name), n)
	}
	return counts
}

// CategoryRisk folds an L1 risk aggregation map into a worst band per
// category. Categories without any risk evidence default to green: absence
// of a signal is not a detected risk.
func (c *Classifier) CategoryRisk(aggs map[types.HierarchyID]*model.L1RiskAggregation) map[types.PolicyCategory]types.Band {
	result := make(map[types.PolicyCategory]types.Band, 6)
	for _, cat := range types.AllPolicyCategories() {
		result[cat] = types.BandGreen
	}

	for _, agg := range aggs {
		if agg == nil || agg.WorstBand == types.BandNone {
			continue
		}
		cat := c.Classify(agg.L1Name)
		result[cat] = types.WorstBand(result[cat], agg.WorstBand)
	}
	return result
}
