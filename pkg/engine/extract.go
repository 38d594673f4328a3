package engine

import (
	"sort"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

// effectiveBand resolves a risk node's band for a given source chain: the
// band matching the chain wins, the other chain's band is the fallback.
// Operate severity derives from KPI shortfall, build severity from project
// delay, so the preference matters.
func effectiveBand(kind types.ChainKind, buildBand, operateBand types.Band) types.Band {
	// Source payloads leave absent bands empty; fold both empty and "none"
	// into BandNone here so rows always carry a valid band.
	b := types.ParseBand(string(buildBand))
	o := types.ParseBand(string(operateBand))
	if kind == types.ChainOperate {
		if o != types.BandNone {
			return o
		}
		return b
	}
	if b != types.BandNone {
		return b
	}
	return o
}

func riskRefFromNode(n *model.ChainNode) *model.RiskRef {
	if n == nil {
		return nil
	}
	return &model.RiskRef{
		ID:    n.CanonicalID(),
		Name:  n.Name,
		Year:  n.Year,
		Level: n.Level,
	}
}

// ExtractChainRisk projects a build or operate oversight chain into
// normalized risk rows.
//
// Chain path:
//
//	EntityCapability →MONITORED_BY→ EntityRisk
//	EntityRisk(L2) →PARENT_OF→ EntityRisk(L3)
//	EntityRisk →INFORMS→ SectorPolicyTool(L2)
//	SectorPolicyTool(L1) →PARENT_OF→ SectorPolicyTool(L2)
//
// Malformed nodes and unresolvable links are skipped; a single corrupt
// record never aborts extraction.
func ExtractChainRisk(chain *model.ChainGraph) []*model.RiskRow {
	if chain == nil {
		return nil
	}

	nodeByElem := chain.NodesByElementID()

	informs := chain.NormalizedLinks(model.EdgeInforms)
	monitoredBy := chain.NormalizedLinks(model.EdgeMonitoredBy)
	parentOf := chain.NormalizedLinks(model.EdgeParentOf)

	// Risk → policy tool L2 (INFORMS targets that are policy tools; the
	// operate chain also INFORMS performance nodes, which are not ours here)
	polL2ToRisks := make(map[string][]string)
	var polL2Order []string
	for _, l := range informs {
		tgt := nodeByElem[l.TargetElementID]
		if tgt == nil || !tgt.HasLabel(model.LabelSectorPolicyTool) {
			continue
		}
		if _, ok := polL2ToRisks[l.TargetElementID]; !ok {
			polL2Order = append(polL2Order, l.TargetElementID)
		}
		polL2ToRisks[l.TargetElementID] = append(polL2ToRisks[l.TargetElementID], l.SourceElementID)
	}

	// Risk L2 → risk L3 children
	riskL2ToL3 := make(map[string][]string)
	for _, l := range parentOf {
		src, tgt := nodeByElem[l.SourceElementID], nodeByElem[l.TargetElementID]
		if src != nil && tgt != nil && src.HasLabel(model.LabelEntityRisk) && tgt.HasLabel(model.LabelEntityRisk) {
			riskL2ToL3[l.SourceElementID] = append(riskL2ToL3[l.SourceElementID], l.TargetElementID)
		}
	}

	// Risk → monitoring capabilities (MONITORED_BY points cap → risk)
	riskToCaps := make(map[string][]string)
	for _, l := range monitoredBy {
		riskToCaps[l.TargetElementID] = append(riskToCaps[l.TargetElementID], l.SourceElementID)
	}

	// Policy tool L2 → L1 parent
	polL2ToL1 := make(map[string]string)
	for _, l := range parentOf {
		src, tgt := nodeByElem[l.SourceElementID], nodeByElem[l.TargetElementID]
		if src != nil && tgt != nil && src.HasLabel(model.LabelSectorPolicyTool) && tgt.HasLabel(model.LabelSectorPolicyTool) {
			polL2ToL1[l.TargetElementID] = l.SourceElementID
		}
	}

	var rows []*model.RiskRow
	for _, polL2Elem := range polL2Order {
		polL2 := nodeByElem[polL2Elem]
		if polL2 == nil {
			continue
		}

		polL1 := nodeByElem[polL2ToL1[polL2Elem]]

		// If an L1 has no L2 children, the L1 is its own effective L2
		isL1ActingAsL2 := polL1 == nil && polL2.HasLabel(model.LabelSectorPolicyTool) && polL2.Level == types.LevelL1
		effectiveL1 := polL1
		if effectiveL1 == nil && isL1ActingAsL2 {
			effectiveL1 = polL2
		}

		l2Ref := riskRefFromNode(polL2)
		if !polL2.ParentID.IsEmpty() {
			l2Ref.ParentID = types.NormalizeHierarchyID(string(polL2.ParentID))
		} else if effectiveL1 != nil {
			l2Ref.ParentID = effectiveL1.CanonicalID()
		}

		for _, riskElem := range polL2ToRisks[polL2Elem] {
			riskNode := nodeByElem[riskElem]
			if riskNode == nil {
				continue
			}

			band := effectiveBand(chain.Kind, riskNode.BuildBand, riskNode.OperateBand)

			// Capabilities monitored directly plus via L3 child risks
			capElems := append([]string{}, riskToCaps[riskElem]...)
			for _, childRisk := range riskL2ToL3[riskElem] {
				capElems = append(capElems, riskToCaps[childRisk]...)
			}
			capElems = dedupe(capElems)

			if len(capElems) == 0 {
				rows = append(rows, &model.RiskRow{
					L1:            riskRefFromNode(effectiveL1),
					L2:            l2Ref,
					Source:        chain.Kind,
					BuildBand:     riskNode.BuildBand,
					OperateBand:   riskNode.OperateBand,
					EffectiveBand: band,
				})
				continue
			}

			for _, capElem := range capElems {
				rows = append(rows, &model.RiskRow{
					L1:            riskRefFromNode(effectiveL1),
					L2:            l2Ref,
					Capability:    riskRefFromNode(nodeByElem[capElem]),
					Source:        chain.Kind,
					BuildBand:     riskNode.BuildBand,
					OperateBand:   riskNode.OperateBand,
					EffectiveBand: band,
				})
			}
		}
	}

	return rows
}

// ExtractOperateForPolicyTools maps operate-chain risk onto policy tools via
// the service chain. The operate chain never references policy tools
// directly, so the join is indirect:
//
//	operate: EntityRisk →INFORMS→ SectorPerformance(L2) →PARENT_OF⁻¹→
//	         SectorPerformance(L1) →AGGREGATES_TO→ SectorObjective
//	service: SectorObjective →REALIZED_VIA→ SectorPolicyTool
//
// joined on the objective's normalized id (year-agnostic). Each hit emits an
// L1 row plus one row per known L2 child from the policy tool catalog.
func ExtractOperateForPolicyTools(operate, service *model.ChainGraph, policyTools []*model.PolicyToolRecord) []*model.RiskRow {
	if operate == nil || service == nil {
		return nil
	}

	opNodeByElem := operate.NodesByElementID()

	// INFORMS: risk → performance
	var riskToPerf []*model.ChainLink
	for _, l := range operate.NormalizedLinks(model.EdgeInforms) {
		tgt := opNodeByElem[l.TargetElementID]
		if tgt != nil && tgt.HasLabel(model.LabelSectorPerformance) {
			riskToPerf = append(riskToPerf, l)
		}
	}

	// PARENT_OF reversed: performance L2 → L1
	perfL2ToL1 := make(map[string]string)
	for _, l := range operate.NormalizedLinks(model.EdgeParentOf) {
		src, tgt := opNodeByElem[l.SourceElementID], opNodeByElem[l.TargetElementID]
		if src != nil && tgt != nil && src.HasLabel(model.LabelSectorPerformance) && tgt.HasLabel(model.LabelSectorPerformance) {
			perfL2ToL1[l.TargetElementID] = l.SourceElementID
		}
	}

	// AGGREGATES_TO: performance L1 → objectives
	perfL1ToObj := make(map[string][]string)
	for _, l := range operate.NormalizedLinks(model.EdgeAggregatesTo) {
		src, tgt := opNodeByElem[l.SourceElementID], opNodeByElem[l.TargetElementID]
		if src != nil && tgt != nil && src.HasLabel(model.LabelSectorPerformance) && tgt.HasLabel(model.LabelSectorObjective) {
			perfL1ToObj[l.SourceElementID] = append(perfL1ToObj[l.SourceElementID], l.TargetElementID)
		}
	}

	// Service chain: objective id → realized policy tools
	svcNodeByElem := service.NodesByElementID()
	objToPolicyTools := make(map[types.HierarchyID][]*model.ChainNode)
	for _, l := range service.NormalizedLinks(model.EdgeRealizedVia) {
		src, tgt := svcNodeByElem[l.SourceElementID], svcNodeByElem[l.TargetElementID]
		if src != nil && tgt != nil && src.HasLabel(model.LabelSectorObjective) && tgt.HasLabel(model.LabelSectorPolicyTool) {
			objID := src.CanonicalID()
			objToPolicyTools[objID] = append(objToPolicyTools[objID], tgt)
		}
	}

	// L1 → L2 children from the full policy tool catalog, not just chain
	// nodes: the operate chain has no policy tool structure at all
	l1Children := l1ToL2Children(policyTools)

	var rows []*model.RiskRow
	for _, rl := range riskToPerf {
		riskNode := opNodeByElem[rl.SourceElementID]
		if riskNode == nil {
			continue
		}

		band := effectiveBand(types.ChainOperate, riskNode.BuildBand, riskNode.OperateBand)
		if band == types.BandNone {
			continue
		}

		perfNode := opNodeByElem[rl.TargetElementID]
		if perfNode == nil {
			continue
		}

		perfL1Elem := rl.TargetElementID
		if perfNode.Level == types.LevelL2 {
			parent, ok := perfL2ToL1[rl.TargetElementID]
			if !ok {
				continue // orphan L2
			}
			perfL1Elem = parent
		}

		for _, objElem := range perfL1ToObj[perfL1Elem] {
			objNode := opNodeByElem[objElem]
			if objNode == nil {
				continue
			}

			for _, pt := range objToPolicyTools[objNode.CanonicalID()] {
				l1ID := pt.CanonicalID()
				l1Level := pt.Level
				if l1Level == "" {
					l1Level = types.LevelL1
				}
				l1Ref := &model.RiskRef{ID: l1ID, Name: pt.Name, Year: pt.Year, Level: l1Level}

				rows = append(rows, &model.RiskRow{
					L1:            l1Ref,
					Source:        types.ChainOperate,
					OperateBand:   band,
					EffectiveBand: band,
				})

				for _, l2 := range l1Children[l1ID] {
					rows = append(rows, &model.RiskRow{
						L1: l1Ref,
						L2: &model.RiskRef{
							ID:       types.NormalizeHierarchyID(string(l2.ID)),
							Name:     l2.Name,
							Year:     l2.Year,
							Level:    types.LevelL2,
							ParentID: l1ID,
						},
						Source:        types.ChainOperate,
						OperateBand:   band,
						EffectiveBand: band,
					})
				}
			}
		}
	}

	return rows
}

// AppendDirectPolicyCapRows adds rows for explicit policy-capability links
// that carry no chain-derived severity. Such rows keep BandNone: the link's
// existence must be visible even absent risk data. Links referencing unknown
// policy tools are skipped.
func AppendDirectPolicyCapRows(rows []*model.RiskRow, links []*model.DirectLink, policyTools []*model.PolicyToolRecord) []*model.RiskRow {
	byID := make(map[types.HierarchyID]*model.PolicyToolRecord, len(policyTools))
	for _, pt := range policyTools {
		if pt != nil {
			byID[types.NormalizeHierarchyID(string(pt.ID))] = pt
		}
	}

	for _, link := range links {
		if link == nil || link.CapabilityID.IsEmpty() {
			continue
		}
		pt := byID[types.NormalizeHierarchyID(string(link.PolicyID))]
		if pt == nil {
			continue
		}

		row := &model.RiskRow{
			Capability: &model.RiskRef{
				ID:       types.NormalizeHierarchyID(string(link.CapabilityID)),
				Name:     link.CapabilityName,
				Level:    link.CapabilityLevel,
				ParentID: types.NormalizeHierarchyID(string(link.CapabilityParentID)),
			},
			EffectiveBand: types.BandNone,
		}

		ptRef := &model.RiskRef{
			ID:       types.NormalizeHierarchyID(string(pt.ID)),
			Name:     pt.Name,
			Year:     pt.Year,
			Level:    pt.Level,
			ParentID: types.NormalizeHierarchyID(string(pt.ParentID)),
		}

		if pt.Level == types.LevelL2 && !pt.ParentID.IsEmpty() {
			parent := byID[types.NormalizeHierarchyID(string(pt.ParentID))]
			if parent == nil {
				continue
			}
			row.L1 = &model.RiskRef{
				ID:    types.NormalizeHierarchyID(string(parent.ID)),
				Name:  parent.Name,
				Year:  parent.Year,
				Level: parent.Level,
			}
			row.L2 = ptRef
		} else {
			row.L1 = ptRef
		}

		rows = append(rows, row)
	}
	return rows
}

// l1ToL2Children groups L2 policy tool records under their normalized L1
// parent id.
func l1ToL2Children(policyTools []*model.PolicyToolRecord) map[types.HierarchyID][]*model.PolicyToolRecord {
	children := make(map[types.HierarchyID][]*model.PolicyToolRecord)
	for _, pt := range policyTools {
		if pt == nil || pt.Level != types.LevelL2 || pt.ParentID.IsEmpty() {
			continue
		}
		key := types.NormalizeHierarchyID(string(pt.ParentID))
		children[key] = append(children[key], pt)
	}
	for _, l2s := range children {
		sort.Slice(l2s, func(i, j int) bool {
			return types.NormalizeHierarchyID(string(l2s[i].ID)) < types.NormalizeHierarchyID(string(l2s[j].ID))
		})
	}
	return children
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
