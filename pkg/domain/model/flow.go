package model

// FlowNode is one node of the Sankey-ready level-flow structure
type FlowNode struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Layer string `json:"layer"`
}

// FlowLink is one weighted edge of the level-flow structure. Path tags the
// integration path the link belongs to.
type FlowLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Value  int    `json:"value"`
	Path   int    `json:"path"`
}

// LevelFlow counts records per level per integration path for flow-diagram
// rendering.
type LevelFlow struct {
	Nodes []*FlowNode `json:"nodes"`
	Links []*FlowLink `json:"links"`
}

// Flow node layers
const (
	FlowLayerSector = "sector"
	FlowLayerEntity = "entity"
)
