package model

import (
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

// DefaultTargetMaturity is applied at ingestion when a capability record
// omits its target maturity level.
const DefaultTargetMaturity = 5

// CapabilityRecord is a year-versioned capability maturity record
type CapabilityRecord struct {
	ID             types.HierarchyID `json:"id"`
	Name           string            `json:"name"`
	Level          types.Level       `json:"level"`
	Year           int               `json:"year"`
	ParentID       types.HierarchyID `json:"parent_id,omitempty"`
	Maturity       float64           `json:"maturity_level"`
	TargetMaturity float64           `json:"target_maturity_level"`
}

// MaturityPct returns round(maturity/target*100) clamped to [0,100]
func (r *CapabilityRecord) MaturityPct() int {
	return ratioPct(r.Maturity, r.TargetMaturity)
}

// Status returns the traffic-light state derived from MaturityPct
func (r *CapabilityRecord) Status() types.Status {
	return types.CapabilityStatus(r.MaturityPct())
}
