package model

import (
	"math"

	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

// PerformanceRecord is a year-versioned KPI record. Actual and Target are
// already coerced to safe numbers at ingestion; a zero Target yields a zero
// achievement (no target means no demonstrated progress).
type PerformanceRecord struct {
	ID       types.HierarchyID `json:"id"`
	Name     string            `json:"name"`
	Level    types.Level       `json:"level"`
	Year     int               `json:"year"`
	ParentID types.HierarchyID `json:"parent_id,omitempty"`
	Actual   float64           `json:"actual"`
	Target   float64           `json:"target"`
}

// Achievement returns round(actual/target*100) clamped to [0,100]
func (r *PerformanceRecord) Achievement() int {
	return ratioPct(r.Actual, r.Target)
}

// Status returns the traffic-light state derived from Achievement
func (r *PerformanceRecord) Status() types.Status {
	return types.PerformanceStatus(r.Achievement())
}

// ratioPct computes round(value/target*100) clamped to [0,100], with 0 for a
// missing or zero target.
func ratioPct(value, target float64) int {
	if target == 0 || math.IsNaN(target) || math.IsNaN(value) {
		return 0
	}
	pct := int(math.Round(value / target * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
