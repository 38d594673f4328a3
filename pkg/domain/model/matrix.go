package model

import (
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

// MatrixPerf is a performance record projected into the integration matrix
type MatrixPerf struct {
	ID          types.HierarchyID `json:"id"`
	Name        string            `json:"name"`
	Actual      float64           `json:"actual"`
	Target      float64           `json:"target"`
	Achievement int               `json:"achievement"`
	Status      types.Status      `json:"status"`
}

// MatrixCap is a capability record projected into the integration matrix
type MatrixCap struct {
	ID          types.HierarchyID `json:"id"`
	Name        string            `json:"name"`
	Maturity    float64           `json:"maturity"`
	Target      float64           `json:"target"`
	MaturityPct int               `json:"maturity_pct"`
	Status      types.Status      `json:"status"`
}

// CellRisk classifies one matrix cell into a failure archetype
type CellRisk struct {
	Level   types.Severity  `json:"level"`
	Type    types.Archetype `json:"type"`
	Message string          `json:"message"`
}

// IntegrationCell is one (performance, capability) cell of the matrix
type IntegrationCell struct {
	Cap       *MatrixCap `json:"cap"`
	Strength  int        `json:"strength"`
	Connected bool       `json:"connected"`
	Color     string     `json:"color"`
	Risk      *CellRisk  `json:"risk"`
}

// MatrixRow is one performance record's row of cells
type MatrixRow struct {
	Perf  *MatrixPerf        `json:"perf"`
	Cells []*IntegrationCell `json:"cells"`
}

// MatrixSummary condenses the matrix into the single "integration health"
// number and its supporting counts. Only connected cells are counted.
type MatrixSummary struct {
	TotalConnections  int                     `json:"total_connections"`
	StrongConnections int                     `json:"strong_connections"`
	WeakConnections   int                     `json:"weak_connections"`
	Risks             map[types.Archetype]int `json:"risks"`
	Health            int                     `json:"health"`
	Truncated         bool                    `json:"truncated,omitempty"`
}

// IntegrationMatrix is the full cross-join of Performance L2 and Capability
// L2 records for one year.
type IntegrationMatrix struct {
	PerfL2  []*MatrixPerf  `json:"perf_l2"`
	CapL2   []*MatrixCap   `json:"cap_l2"`
	Rows    []*MatrixRow   `json:"matrix"`
	Summary *MatrixSummary `json:"summary"`
}
