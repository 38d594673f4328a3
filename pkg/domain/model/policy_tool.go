package model

import (
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

// PolicyToolRecord is a year-versioned policy tool record. Each record is
// classified into exactly one PolicyCategory by its display name.
type PolicyToolRecord struct {
	ID       types.HierarchyID `json:"id"`
	Name     string            `json:"name"`
	Level    types.Level       `json:"level"`
	Year     int               `json:"year"`
	ParentID types.HierarchyID `json:"parent_id,omitempty"`
	DomainID types.HierarchyID `json:"domain_id,omitempty"`
}

// ObjectiveRecord is a year-versioned strategic objective. Objectives carry
// no derived business logic; they size flow-diagram nodes and anchor the
// operate-chain join.
type ObjectiveRecord struct {
	ID       types.HierarchyID `json:"id"`
	Name     string            `json:"name"`
	Level    types.Level       `json:"level"`
	Year     int               `json:"year"`
	ParentID types.HierarchyID `json:"parent_id,omitempty"`
}

// PolicyToolCounts aggregates classified L1 policy tools per category. Each
// L1 counts for its number of L2 children, minimum one, so leaf tools do not
// vanish from the totals.
type PolicyToolCounts struct {
	Enforce   int `json:"enforce"`
	Incentive int `json:"incentive"`
	License   int `json:"license"`
	Services  int `json:"services"`
	Regulate  int `json:"regulate"`
	Awareness int `json:"awareness"`
	Total     int `json:"total"`
}

// Add increments the count for the given category by n
func (c *PolicyToolCounts) Add(category types.PolicyCategory, n int) {
	switch category {
	case types.CategoryEnforce:
		c.Enforce += n
	case types.CategoryIncentive:
		c.Incentive += n
	case types.CategoryLicense:
		c.License += n
	case types.CategoryServices:
		c.Services += n
	case types.CategoryRegulate:
		c.Regulate += n
	case types.CategoryAwareness:
		c.Awareness += n
	}
	c.Total += n
}
