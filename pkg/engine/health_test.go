package engine_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
	"github.com/josoor-lab/sectorlens/pkg/engine"
)

func perfRec(id string, actual, target float64) *model.PerformanceRecord {
	return &model.PerformanceRecord{ID: types.HierarchyID(id), Name: "KPI " + id, Level: types.LevelL1, Actual: actual, Target: target}
}

func capRec(id string, maturity, target float64) *model.CapabilityRecord {
	return &model.CapabilityRecord{ID: types.HierarchyID(id), Name: "Cap " + id, Level: types.LevelL2, Maturity: maturity, TargetMaturity: target}
}

func TestPerformanceLayerHealth(t *testing.T) {
	t.Run("half credit weighting", func(t *testing.T) {
		// 2 green + 2 amber out of 4 -> 75
		layer := engine.PerformanceLayerHealth([]*model.PerformanceRecord{
			perfRec("1.0", 95, 100),
			perfRec("2.0", 90, 100),
			perfRec("3.0", 75, 100),
			perfRec("4.0", 70, 100),
		})
		gt.Number(t, layer.Green).Equal(2)
		gt.Number(t, layer.Amber).Equal(2)
		gt.Number(t, layer.Red).Equal(0)
		gt.Number(t, layer.Percentage).Equal(75)
		gt.Number(t, len(layer.Items)).Equal(4)
	})

	t.Run("empty layer is all zero", func(t *testing.T) {
		layer := engine.PerformanceLayerHealth(nil)
		gt.Number(t, layer.Percentage).Equal(0)
		gt.Number(t, layer.Total).Equal(0)
	})

	t.Run("status thresholds are inclusive on the upper side", func(t *testing.T) {
		layer := engine.PerformanceLayerHealth([]*model.PerformanceRecord{
			perfRec("1.0", 90, 100),
			perfRec("2.0", 89, 100),
			perfRec("3.0", 69, 100),
		})
		gt.Value(t, layer.Items[0].Status).Equal(types.StatusGreen)
		gt.Value(t, layer.Items[1].Status).Equal(types.StatusAmber)
		gt.Value(t, layer.Items[2].Status).Equal(types.StatusRed)
	})
}

func TestDetectAnomalies(t *testing.T) {
	t.Run("hollow victory message counts items", func(t *testing.T) {
		sector := engine.PerformanceLayerHealth([]*model.PerformanceRecord{
			perfRec("1.0", 100, 100),
			perfRec("2.0", 100, 100),
			perfRec("3.0", 100, 100),
			perfRec("4.0", 75, 100),
			perfRec("5.0", 70, 100),
		})
		entity := engine.CapabilityLayerHealth([]*model.CapabilityRecord{
			capRec("1.1", 1, 5),
			capRec("1.2", 2, 5),
			capRec("1.3", 4, 5),
			capRec("1.4", 3.5, 5),
		})

		anomalies := engine.DetectAnomalies(sector, entity)
		gt.Number(t, len(anomalies)).Equal(1)
		gt.Value(t, anomalies[0].Type).Equal(types.ArchetypeHollowVictory)
		gt.Value(t, anomalies[0].Severity).Equal(types.SeverityHigh)
		gt.True(t, strings.Contains(anomalies[0].Message, "3 strategic KPIs are green but 2 capabilities are red"))
	})

	t.Run("both anomalies can fire together", func(t *testing.T) {
		sector := engine.PerformanceLayerHealth([]*model.PerformanceRecord{
			perfRec("1.0", 100, 100),
			perfRec("2.0", 10, 100),
		})
		entity := engine.CapabilityLayerHealth([]*model.CapabilityRecord{
			capRec("1.1", 5, 5),
			capRec("1.2", 1, 5),
		})

		anomalies := engine.DetectAnomalies(sector, entity)
		gt.Number(t, len(anomalies)).Equal(2)
	})

	t.Run("healthy pair yields nothing", func(t *testing.T) {
		sector := engine.PerformanceLayerHealth([]*model.PerformanceRecord{perfRec("1.0", 80, 100)})
		entity := engine.CapabilityLayerHealth([]*model.CapabilityRecord{capRec("1.1", 3.5, 5)})
		gt.Number(t, len(engine.DetectAnomalies(sector, entity))).Equal(0)
	})
}

func TestComputeDualLayerHealth(t *testing.T) {
	health := engine.ComputeDualLayerHealth(
		[]*model.PerformanceRecord{
			perfRec("1.0", 100, 100), // green
			perfRec("2.0", 50, 100),  // red
		},
		[]*model.CapabilityRecord{
			capRec("1.1", 5, 5), // green
			capRec("1.2", 3, 5), // amber
		},
	)

	gt.Number(t, health.Sector.Percentage).Equal(50)
	gt.Number(t, health.Entity.Percentage).Equal(75)
	gt.Number(t, health.Overall).Equal(63) // round(62.5)
	gt.Number(t, len(health.Indicators)).Equal(1)
	gt.Value(t, health.Indicators[0].Type).Equal(types.ArchetypeExecutionFailure)
}
