package model

import (
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

// HealthItem is one record's contribution to a layer health rollup
type HealthItem struct {
	ID     types.HierarchyID `json:"id"`
	Name   string            `json:"name"`
	Status types.Status      `json:"status"`
}

// HealthLayer is the rollup of one layer (sector performance or entity
// capability). Percentage weights amber as half-credit: amber is "at risk
// but not failing".
type HealthLayer struct {
	Percentage int           `json:"percentage"`
	Green      int           `json:"green"`
	Amber      int           `json:"amber"`
	Red        int           `json:"red"`
	Total      int           `json:"total"`
	Items      []*HealthItem `json:"items"`
}

// Anomaly is a cross-layer contradiction between sector and entity health
type Anomaly struct {
	Type     types.Archetype `json:"type"`
	Severity types.Severity  `json:"severity"`
	Message  string          `json:"message"`
	Detail   string          `json:"detail"`
}

// DualLayerHealth combines the sector and entity layer rollups. Overall is
// the simple average of the two layer percentages.
type DualLayerHealth struct {
	Sector     *HealthLayer `json:"sector"`
	Entity     *HealthLayer `json:"entity"`
	Indicators []*Anomaly   `json:"indicators"`
	Overall    int          `json:"overall"`
}
