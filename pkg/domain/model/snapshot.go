package model

import (
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

// AnalyticsSnapshot bundles every derived structure the engine produces for
// one year. Snapshots are recomputed per request and never mutated.
type AnalyticsSnapshot struct {
	Year int `json:"year"`

	Matrix       *IntegrationMatrix                       `json:"matrix"`
	Health       *DualLayerHealth                         `json:"health"`
	Flow         *LevelFlow                               `json:"flow"`
	Alerts       []*JeopardyAlert                         `json:"alerts"`
	RiskByL1     map[types.HierarchyID]*L1RiskAggregation `json:"risk_by_l1"`
	CategoryRisk map[types.PolicyCategory]types.Band      `json:"category_risk"`
	PolicyCounts *PolicyToolCounts                        `json:"policy_counts"`
}

// Dataset is the ingestion payload standing in for the external fetch layer:
// the full record sets plus the chain-graph payloads and direct links.
type Dataset struct {
	Performance  []*PerformanceRecord `json:"performance"`
	Capabilities []*CapabilityRecord  `json:"capabilities"`
	PolicyTools  []*PolicyToolRecord  `json:"policy_tools"`
	Objectives   []*ObjectiveRecord   `json:"objectives"`
	Chains       []*ChainGraph        `json:"chains"`
	DirectLinks  []*DirectLink        `json:"direct_links"`
}
