package engine

import (
	"math"
	"sort"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

// DefaultMaxMatrixCells bounds the cross-join size. Matrix construction is
// O(perf × cap) and dominates engine cost; past this cap rows are cut and
// the summary marks the result truncated.
const DefaultMaxMatrixCells = 10000

// ConnectionStrength is the average of a performance record's achievement
// and a capability record's maturity percentage, clamped to [0,100]. Every
// Performance-L2 connects to every Capability-L2 in this model; strength is
// the only topology signal.
func ConnectionStrength(achievement, maturityPct int) int {
	s := int(math.Round(float64(achievement+maturityPct) / 2))
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// StrengthColor bands a connection strength for rendering: >=75 green,
// >=50 amber, >0 red, 0 gray (disconnected).
func StrengthColor(strength int) string {
	switch {
	case strength >= 75:
		return "green"
	case strength >= 50:
		return "amber"
	case strength > 0:
		return "red"
	default:
		return "gray"
	}
}

// AssessCellRisk classifies one (perf, cap) cell into a failure archetype.
// Precedence: execution_failure, then hollow_victory, then weak_link.
func AssessCellRisk(perfStatus, capStatus types.Status, strength int) *model.CellRisk {
	if perfStatus == types.StatusRed && capStatus == types.StatusGreen && strength > 50 {
		return &model.CellRisk{
			Level:   types.SeverityHigh,
			Type:    types.ArchetypeExecutionFailure,
			Message: "Capable but not delivering",
		}
	}
	if perfStatus == types.StatusGreen && capStatus == types.StatusRed && strength > 50 {
		return &model.CellRisk{
			Level:   types.SeverityHigh,
			Type:    types.ArchetypeHollowVictory,
			Message: "Green KPI without capability support",
		}
	}
	if strength > 0 && strength < 50 {
		return &model.CellRisk{
			Level:   types.SeverityMedium,
			Type:    types.ArchetypeWeakLink,
			Message: "Weak connection needs strengthening",
		}
	}
	return &model.CellRisk{
		Level:   types.SeverityLow,
		Type:    types.ArchetypeNormal,
		Message: "Connection healthy",
	}
}

// BuildMatrix cross-joins the given Performance-L2 and Capability-L2 slices
// into the integration matrix. Callers must pass records of a single (level,
// year) slice. The cross-join is capped at maxCells; pass 0 for
// DefaultMaxMatrixCells.
func BuildMatrix(perfL2 []*model.PerformanceRecord, capL2 []*model.CapabilityRecord, maxCells int) *model.IntegrationMatrix {
	if maxCells <= 0 {
		maxCells = DefaultMaxMatrixCells
	}

	perfs := make([]*model.MatrixPerf, 0, len(perfL2))
	for _, p := range perfL2 {
		if p == nil {
			continue
		}
		perfs = append(perfs, &model.MatrixPerf{
			ID:          types.NormalizeHierarchyID(string(p.ID)),
			Name:        p.Name,
			Actual:      p.Actual,
			Target:      p.Target,
			Achievement: p.Achievement(),
			Status:      p.Status(),
		})
	}

	caps := make([]*model.MatrixCap, 0, len(capL2))
	for _, c := range capL2 {
		if c == nil {
			continue
		}
		caps = append(caps, &model.MatrixCap{
			ID:          types.NormalizeHierarchyID(string(c.ID)),
			Name:        c.Name,
			Maturity:    c.Maturity,
			Target:      c.TargetMaturity,
			MaturityPct: c.MaturityPct(),
			Status:      c.Status(),
		})
	}

	// Repositories return slices in storage order; sort so row order and the
	// truncation cut are the same on every run.
	sort.Slice(perfs, func(i, j int) bool { return perfs[i].ID < perfs[j].ID })
	sort.Slice(caps, func(i, j int) bool { return caps[i].ID < caps[j].ID })

	truncated := false
	rows := make([]*model.MatrixRow, 0, len(perfs))
	cells := 0
	for _, perf := range perfs {
		if len(caps) > 0 && cells+len(caps) > maxCells {
			truncated = true
			break
		}
		row := &model.MatrixRow{
			Perf:  perf,
			Cells: make([]*model.IntegrationCell, 0, len(caps)),
		}
		for _, cap := range caps {
			strength := ConnectionStrength(perf.Achievement, cap.MaturityPct)
			row.Cells = append(row.Cells, &model.IntegrationCell{
				Cap:       cap,
				Strength:  strength,
				Connected: strength > 0,
				Color:     StrengthColor(strength),
				Risk:      AssessCellRisk(perf.Status, cap.Status, strength),
			})
		}
		cells += len(caps)
		rows = append(rows, row)
	}

	summary := summarizeMatrix(rows)
	summary.Truncated = truncated

	return &model.IntegrationMatrix{
		PerfL2:  perfs,
		CapL2:   caps,
		Rows:    rows,
		Summary: summary,
	}
}

// summarizeMatrix condenses the matrix into the integration-health number.
// Only connected cells count; only high-severity archetypes accumulate into
// the risk counts.
func summarizeMatrix(rows []*model.MatrixRow) *model.MatrixSummary {
	s := &model.MatrixSummary{
		Risks: map[types.Archetype]int{
			types.ArchetypeHollowVictory:    0,
			types.ArchetypeExecutionFailure: 0,
			types.ArchetypeWeakLink:         0,
		},
	}

	for _, row := range rows {
		for _, cell := range row.Cells {
			if !cell.Connected {
				continue
			}
			s.TotalConnections++
			if cell.Strength >= 75 {
				s.StrongConnections++
			}
			if cell.Strength < 50 {
				s.WeakConnections++
			}
			if cell.Risk != nil && cell.Risk.Level == types.SeverityHigh {
				s.Risks[cell.Risk.Type]++
			}
		}
	}

	if s.TotalConnections > 0 {
		s.Health = int(math.Round(float64(s.StrongConnections) / float64(s.TotalConnections) * 100))
	}
	return s
}
