package engine

import (
	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

// Flow node names. Sources and targets in FlowLink reference these.
const (
	FlowObjectivesL1   = "Objectives L1"
	FlowPerformanceL1  = "Performance L1"
	FlowPerformanceL2  = "Performance L2"
	FlowCapabilitiesL2 = "Capabilities L2"
	FlowPolicyToolsL1  = "PolicyTools L1"
)

// BuildLevelFlow counts records per level into the Sankey-ready node/link
// structure. Three integration paths: strategy-to-execution (objectives
// through performance to capabilities), policy-to-execution (objectives
// through policy tools to capabilities), and direct reporting (capabilities
// back to performance). All inputs must already be sliced to one year.
func BuildLevelFlow(objectives []*model.ObjectiveRecord, performance []*model.PerformanceRecord, capabilities []*model.CapabilityRecord, policyTools []*model.PolicyToolRecord) *model.LevelFlow {
	var objL1, perfL1, perfL2, capL2, policyL1 int
	for _, o := range objectives {
		if o != nil && o.Level == types.LevelL1 {
			objL1++
		}
	}
	for _, p := range performance {
		if p == nil {
			continue
		}
		switch p.Level {
		case types.LevelL1:
			perfL1++
		case types.LevelL2:
			perfL2++
		}
	}
	for _, c := range capabilities {
		if c != nil && c.Level == types.LevelL2 {
			capL2++
		}
	}
	for _, pt := range policyTools {
		if pt != nil && pt.Level == types.LevelL1 {
			policyL1++
		}
	}

	return &model.LevelFlow{
		Nodes: []*model.FlowNode{
			{Name: FlowObjectivesL1, Value: objL1, Layer: model.FlowLayerSector},
			{Name: FlowPerformanceL1, Value: perfL1, Layer: model.FlowLayerSector},
			{Name: FlowPerformanceL2, Value: perfL2, Layer: model.FlowLayerSector},
			{Name: FlowCapabilitiesL2, Value: capL2, Layer: model.FlowLayerEntity},
			{Name: FlowPolicyToolsL1, Value: policyL1, Layer: model.FlowLayerSector},
		},
		Links: []*model.FlowLink{
			{Source: FlowObjectivesL1, Target: FlowPerformanceL1, Value: objL1, Path: 1},
			{Source: FlowPerformanceL1, Target: FlowPerformanceL2, Value: perfL2, Path: 1},
			{Source: FlowPerformanceL2, Target: FlowCapabilitiesL2, Value: min(perfL2, capL2), Path: 1},

			{Source: FlowObjectivesL1, Target: FlowPolicyToolsL1, Value: min(objL1, policyL1), Path: 2},
			{Source: FlowPolicyToolsL1, Target: FlowCapabilitiesL2, Value: min(policyL1, capL2), Path: 2},

			{Source: FlowCapabilitiesL2, Target: FlowPerformanceL2, Value: capL2, Path: 3},
		},
	}
}
