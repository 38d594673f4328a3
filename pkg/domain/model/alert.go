package model

import (
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

// JeopardyAlert traces a failing top-level performance outcome down to the
// low-maturity capability behind it.
type JeopardyAlert struct {
	ID       string         `json:"id"`
	Severity types.Severity `json:"severity"`
	Type     string         `json:"type"`

	ObjectiveL1     string       `json:"objective_l1"`
	ObjectiveStatus types.Status `json:"objective_status"`

	PerformanceL2     string  `json:"performance_l2"`
	PerformanceActual float64 `json:"performance_actual"`
	PerformanceTarget float64 `json:"performance_target"`

	CapabilityL2       string  `json:"capability_l2"`
	CapabilityMaturity float64 `json:"capability_maturity"`
	CapabilityTarget   float64 `json:"capability_target"`

	RootCause      string `json:"root_cause"`
	Impact         string `json:"impact"`
	Recommendation string `json:"recommendation"`
}

// AlertTypeCapabilityGap is the root-cause class of jeopardy alerts
const AlertTypeCapabilityGap = "capability_gap"
