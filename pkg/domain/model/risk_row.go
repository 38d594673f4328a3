package model

import (
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

// RiskRef is a normalized reference to a policy tool or capability node
// inside a RiskRow.
type RiskRef struct {
	ID       types.HierarchyID `json:"id"`
	Name     string            `json:"name"`
	Year     int               `json:"year,omitempty"`
	Level    types.Level       `json:"level,omitempty"`
	ParentID types.HierarchyID `json:"parent_id,omitempty"`
}

// RiskRow is one normalized risk signal projected out of a chain source or a
// direct link. L1 is the policy tool group the signal rolls up to; L2 and
// Capability are optional detail. EffectiveBand is resolved at extraction
// time: the band matching the row's source chain, falling back to the other
// chain's band, BandNone when the source carries no severity at all.
type RiskRow struct {
	L1         *RiskRef        `json:"l1"`
	L2         *RiskRef        `json:"l2,omitempty"`
	Capability *RiskRef        `json:"capability,omitempty"`
	Source     types.ChainKind `json:"source,omitempty"`

	BuildBand     types.Band `json:"build_band,omitempty"`
	OperateBand   types.Band `json:"operate_band,omitempty"`
	EffectiveBand types.Band `json:"band"`
}

// L2RiskCap is a capability contributing to an L2 group's band
type L2RiskCap struct {
	CapID    types.HierarchyID `json:"cap_id"`
	CapName  string            `json:"cap_name"`
	CapLevel types.Level       `json:"cap_level,omitempty"`
	Band     types.Band        `json:"band"`
}

// L2RiskDetail records one L2 child's worst observed band and the
// capabilities behind it, so a consumer can explain why an L2 is red.
// A placeholder entry inserted by the gap-fill pass has WorstBand BandNone
// and no caps: "no data", distinct from known-good.
type L2RiskDetail struct {
	L2ID      types.HierarchyID `json:"l2_id"`
	L2Name    string            `json:"l2_name"`
	WorstBand types.Band        `json:"worst_band"`
	Caps      []*L2RiskCap      `json:"caps"`
}

// L1RiskAggregation holds the worst observed band for one L1 policy tool
// group and the per-L2 detail. Severity never dilutes on the way up: one red
// leaf makes the whole L1 red.
type L1RiskAggregation struct {
	L1Name    string          `json:"l1_name"`
	WorstBand types.Band      `json:"worst_band"`
	L2Details []*L2RiskDetail `json:"l2_details"`
}

// FindL2 returns the detail entry for the given normalized L2 id, or nil
func (a *L1RiskAggregation) FindL2(id types.HierarchyID) *L2RiskDetail {
	for _, d := range a.L2Details {
		if types.NormalizeHierarchyID(string(d.L2ID)) == id {
			return d
		}
	}
	return nil
}
