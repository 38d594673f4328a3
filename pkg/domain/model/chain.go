package model

import (
	"strings"

	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

// Node labels and edge types used by the chain-graph sources
const (
	LabelSectorPolicyTool  = "SectorPolicyTool"
	LabelSectorPerformance = "SectorPerformance"
	LabelSectorObjective   = "SectorObjective"
	LabelEntityRisk        = "EntityRisk"
	LabelEntityCapability  = "EntityCapability"

	EdgeInforms      = "INFORMS"
	EdgeMonitoredBy  = "MONITORED_BY"
	EdgeParentOf     = "PARENT_OF"
	EdgeAggregatesTo = "AGGREGATES_TO"
	EdgeRealizedVia  = "REALIZED_VIA"
)

// ChainNode is one node of a chain-graph payload. Properties are flattened
// from the source graph; absent values stay zero.
type ChainNode struct {
	ElementID string   `json:"elementId"`
	Labels    []string `json:"labels"`

	ID       types.HierarchyID `json:"id"`
	DomainID types.HierarchyID `json:"domain_id,omitempty"`
	Name     string            `json:"name"`
	Year     int               `json:"year,omitempty"`
	Level    types.Level       `json:"level,omitempty"`
	ParentID types.HierarchyID `json:"parent_id,omitempty"`

	// Risk node properties (EntityRisk only)
	BuildBand         types.Band `json:"build_band,omitempty"`
	OperateBand       types.Band `json:"operate_band,omitempty"`
	BuildExposurePct  float64    `json:"build_exposure_pct,omitempty"`
	ExpectedDelayDays float64    `json:"expected_delay_days,omitempty"`
	LikelihoodOfDelay float64    `json:"likelihood_of_delay,omitempty"`
}

// HasLabel reports whether the node carries the given label
func (n *ChainNode) HasLabel(label string) bool {
	for _, l := range n.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// CanonicalID returns the node's normalized short id, preferring domain_id
// over the composite id.
func (n *ChainNode) CanonicalID() types.HierarchyID {
	if !n.DomainID.IsEmpty() {
		return types.NormalizeHierarchyID(string(n.DomainID))
	}
	return types.NormalizeHierarchyID(string(n.ID))
}

// ChainLink is one edge of a chain-graph payload. Source payloads encode the
// endpoint element ids in the composite link id ("{src}-{TYPE}-{tgt}");
// Normalize resolves them once so extraction never re-parses.
type ChainLink struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	SourceElementID string `json:"sourceElementId,omitempty"`
	TargetElementID string `json:"targetElementId,omitempty"`
}

// Normalize fills SourceElementID/TargetElementID from the composite id when
// they are absent. It returns false for links it cannot resolve; such links
// are skipped, not fatal.
func (l *ChainLink) Normalize() bool {
	if l.SourceElementID != "" && l.TargetElementID != "" {
		return true
	}
	if l.ID == "" || l.Type == "" {
		return false
	}
	parts := strings.SplitN(l.ID, "-"+l.Type+"-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	l.SourceElementID = parts[0]
	l.TargetElementID = parts[1]
	return true
}

// ChainGraph is one tagged chain-graph payload
type ChainGraph struct {
	Kind  types.ChainKind `json:"kind"`
	Nodes []*ChainNode    `json:"nodes"`
	Links []*ChainLink    `json:"links"`
}

// NodesByElementID indexes the graph's nodes, dropping nodes without an
// element id.
func (g *ChainGraph) NodesByElementID() map[string]*ChainNode {
	m := make(map[string]*ChainNode, len(g.Nodes))
	for _, n := range g.Nodes {
		if n == nil || n.ElementID == "" {
			continue
		}
		m[n.ElementID] = n
	}
	return m
}

// NormalizedLinks returns the graph's resolvable links of the given types,
// in payload order.
func (g *ChainGraph) NormalizedLinks(edgeTypes ...string) []*ChainLink {
	var out []*ChainLink
	for _, l := range g.Links {
		if l == nil || !l.Normalize() {
			continue
		}
		if len(edgeTypes) == 0 {
			out = append(out, l)
			continue
		}
		for _, t := range edgeTypes {
			if l.Type == t {
				out = append(out, l)
				break
			}
		}
	}
	return out
}

// DirectLink is an explicit policy-tool to capability link that carries no
// chain-derived severity.
type DirectLink struct {
	PolicyID           types.HierarchyID `json:"policy_id"`
	PolicyYear         int               `json:"policy_year"`
	CapabilityID       types.HierarchyID `json:"capability_id"`
	CapabilityName     string            `json:"capability_name"`
	CapabilityLevel    types.Level       `json:"capability_level"`
	CapabilityParentID types.HierarchyID `json:"capability_parent_id,omitempty"`
}
