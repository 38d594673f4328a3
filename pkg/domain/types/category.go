package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// PolicyCategory is one of the six functional categories a policy tool is
// classified into. Classification is total: unmatched names fall back to
// CategoryServices.
type PolicyCategory string

const (
	CategoryEnforce   PolicyCategory = "Enforce"
	CategoryIncentive PolicyCategory = "Incentive"
	CategoryLicense   PolicyCategory = "License"
	CategoryServices  PolicyCategory = "Services"
	CategoryRegulate  PolicyCategory = "Regulate"
	CategoryAwareness PolicyCategory = "Awareness"
)

// AllPolicyCategories returns all valid policy categories
func AllPolicyCategories() []PolicyCategory {
	return []PolicyCategory{
		CategoryEnforce,
		CategoryIncentive,
		CategoryLicense,
		CategoryServices,
		CategoryRegulate,
		CategoryAwareness,
	}
}

// IsValid checks if the policy category is valid
func (c PolicyCategory) IsValid() bool {
	switch c {
	case CategoryEnforce, CategoryIncentive, CategoryLicense,
		CategoryServices, CategoryRegulate, CategoryAwareness:
		return true
	default:
		return false
	}
}

// String returns the string representation of the policy category
func (c PolicyCategory) String() string {
	return string(c)
}

// ParsePolicyCategory parses a string into a PolicyCategory. Matching is
// case-insensitive so config files can use lowercase values.
func ParsePolicyCategory(s string) (PolicyCategory, error) {
	for _, c := range AllPolicyCategories() {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", goerr.New("invalid policy category", goerr.V("category", s))
}
