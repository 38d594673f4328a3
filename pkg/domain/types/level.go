package types

import "strings"

// Level is the hierarchy level of a domain entity. L1 is a top-level
// objective/tool/performance group, L2 its direct children, L3 further
// subdivisions.
type Level string

const (
	LevelL1 Level = "L1"
	LevelL2 Level = "L2"
	LevelL3 Level = "L3"
)

// IsValid checks if the level is valid
func (l Level) IsValid() bool {
	switch l {
	case LevelL1, LevelL2, LevelL3:
		return true
	default:
		return false
	}
}

// String returns the string representation of the level
func (l Level) String() string {
	return string(l)
}

// ParseLevel parses a raw level value case-insensitively. Unknown values
// return an empty Level rather than an error: a record with a malformed
// level is excluded from level slices instead of failing ingestion.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L1":
		return LevelL1
	case "L2":
		return LevelL2
	case "L3":
		return LevelL3
	default:
		return ""
	}
}
