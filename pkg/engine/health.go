package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

// PerformanceLayerHealth rolls up a single (level, year) performance slice
// into a layer health result.
func PerformanceLayerHealth(records []*model.PerformanceRecord) *model.HealthLayer {
	items := make([]*model.HealthItem, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		items = append(items, &model.HealthItem{
			ID:     types.NormalizeHierarchyID(string(r.ID)),
			Name:   r.Name,
			Status: r.Status(),
		})
	}
	return rollupLayer(items)
}

// CapabilityLayerHealth rolls up a single (level, year) capability slice
// into a layer health result.
func CapabilityLayerHealth(records []*model.CapabilityRecord) *model.HealthLayer {
	items := make([]*model.HealthItem, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		items = append(items, &model.HealthItem{
			ID:     types.NormalizeHierarchyID(string(r.ID)),
			Name:   r.Name,
			Status: r.Status(),
		})
	}
	return rollupLayer(items)
}

// rollupLayer computes the half-credit health percentage: amber counts 0.5,
// red counts nothing. An empty slice yields an all-zero layer.
func rollupLayer(items []*model.HealthItem) *model.HealthLayer {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	layer := &model.HealthLayer{Items: items}
	for _, item := range items {
		switch item.Status {
		case types.StatusGreen:
			layer.Green++
		case types.StatusAmber:
			layer.Amber++
		default:
			layer.Red++
		}
	}
	layer.Total = len(items)
	if layer.Total > 0 {
		layer.Percentage = int(math.Round((float64(layer.Green) + float64(layer.Amber)*0.5) / float64(layer.Total) * 100))
	}
	return layer
}

// DetectAnomalies scans a sector/entity layer pair for cross-layer
// contradictions. Both conditions are independent and can fire together.
func DetectAnomalies(sector, entity *model.HealthLayer) []*model.Anomaly {
	var anomalies []*model.Anomaly
	if sector == nil || entity == nil {
		return anomalies
	}

	if sector.Green > 0 && entity.Red > 0 {
		anomalies = append(anomalies, &model.Anomaly{
			Type:     types.ArchetypeHollowVictory,
			Severity: types.SeverityHigh,
			Message:  fmt.Sprintf("%d strategic KPIs are green but %d capabilities are red", sector.Green, entity.Red),
			Detail:   "Performance may not be sustainable without capability foundation",
		})
	}

	if sector.Red > 0 && entity.Green > 0 {
		anomalies = append(anomalies, &model.Anomaly{
			Type:     types.ArchetypeExecutionFailure,
			Severity: types.SeverityHigh,
			Message:  fmt.Sprintf("%d strategic KPIs are red despite %d mature capabilities", sector.Red, entity.Green),
			Detail:   "Check policy tool execution or external factors blocking delivery",
		})
	}

	return anomalies
}

// ComputeDualLayerHealth combines the Performance-L1 sector layer and the
// Capability-L2 entity layer for one year. Overall is the unweighted average
// of the two layer percentages.
func ComputeDualLayerHealth(perfL1 []*model.PerformanceRecord, capL2 []*model.CapabilityRecord) *model.DualLayerHealth {
	sector := PerformanceLayerHealth(perfL1)
	entity := CapabilityLayerHealth(capL2)
	return &model.DualLayerHealth{
		Sector:     sector,
		Entity:     entity,
		Indicators: DetectAnomalies(sector, entity),
		Overall:    int(math.Round(float64(sector.Percentage+entity.Percentage) / 2)),
	}
}
