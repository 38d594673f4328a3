package engine

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

// MaxJeopardyAlerts caps the alert list at the top findings
const MaxJeopardyAlerts = 5

// jeopardyMaturityThreshold marks a connected capability as a root cause
const jeopardyMaturityThreshold = 60

// GenerateJeopardyAlerts traces red top-level performance outcomes to the
// low-maturity capabilities behind them. One alert per (red L1, child L2,
// low-maturity capability) triple, capped at MaxJeopardyAlerts in discovery
// order. Inputs are scanned in normalized-id order so the cap cuts the same
// alerts on every run.
func GenerateJeopardyAlerts(performance []*model.PerformanceRecord, capabilities []*model.CapabilityRecord) []*model.JeopardyAlert {
	var redL1 []*model.PerformanceRecord
	var perfL2 []*model.PerformanceRecord
	for _, p := range performance {
		if p == nil {
			continue
		}
		switch p.Level {
		case types.LevelL1:
			if p.Status() == types.StatusRed {
				redL1 = append(redL1, p)
			}
		case types.LevelL2:
			perfL2 = append(perfL2, p)
		}
	}
	sortByNormalizedID(redL1)
	sortByNormalizedID(perfL2)

	capL2 := make([]*model.CapabilityRecord, 0, len(capabilities))
	for _, c := range capabilities {
		if c != nil && c.Level == types.LevelL2 {
			capL2 = append(capL2, c)
		}
	}
	sort.Slice(capL2, func(i, j int) bool {
		return types.NormalizeHierarchyID(string(capL2[i].ID)) < types.NormalizeHierarchyID(string(capL2[j].ID))
	})

	var alerts []*model.JeopardyAlert
	for _, l1 := range redL1 {
		l1ID := types.NormalizeHierarchyID(string(l1.ID))
		for _, l2 := range perfL2 {
			if types.NormalizeHierarchyID(string(l2.ParentID)) != l1ID {
				continue
			}
			for _, c := range capL2 {
				if ConnectionStrength(l2.Achievement(), c.MaturityPct()) == 0 {
					continue
				}
				if c.MaturityPct() >= jeopardyMaturityThreshold {
					continue
				}
				alerts = append(alerts, &model.JeopardyAlert{
					ID:                uuid.NewString(),
					Severity:          types.SeverityCritical,
					Type:              model.AlertTypeCapabilityGap,
					ObjectiveL1:       l1.Name,
					ObjectiveStatus:   types.StatusRed,
					PerformanceL2:     l2.Name,
					PerformanceActual: l2.Actual,
					PerformanceTarget: l2.Target,

					CapabilityL2:       c.Name,
					CapabilityMaturity: c.Maturity,
					CapabilityTarget:   c.TargetMaturity,

					RootCause:      fmt.Sprintf("Low capability maturity (%v/%v)", c.Maturity, c.TargetMaturity),
					Impact:         fmt.Sprintf("Threatens %q strategic objective", l1.Name),
					Recommendation: fmt.Sprintf("Accelerate %q capability development", c.Name),
				})
				if len(alerts) >= MaxJeopardyAlerts {
					return alerts
				}
			}
		}
	}
	return alerts
}

func sortByNormalizedID(records []*model.PerformanceRecord) {
	sort.Slice(records, func(i, j int) bool {
		return types.NormalizeHierarchyID(string(records[i].ID)) < types.NormalizeHierarchyID(string(records[j].ID))
	})
}
