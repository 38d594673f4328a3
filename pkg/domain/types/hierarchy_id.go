package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// HierarchyID identifies a node in the shallow L1/L2/L3 tree in canonical
// "X.Y" string form. Source datasets mix integer-like and decimal forms for
// the same node (8 vs "8.0" vs "3.1"); every grouping and join operation
// must route through NormalizeHierarchyID or joins silently fail.
type HierarchyID string

// String returns the string representation of the HierarchyID
func (h HierarchyID) String() string {
	return string(h)
}

// IsEmpty reports whether the id carries no value
func (h HierarchyID) IsEmpty() bool {
	return h == ""
}

// UnmarshalJSON accepts both string and bare numeric ids. Source exports
// encode the same node as "3.1" in one file and 3.1 in another.
func (h *HierarchyID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*h = HierarchyID(s)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*h = HierarchyID(strconv.FormatFloat(n, 'f', -1, 64))
	return nil
}

// NormalizeHierarchyID converts a raw id into the canonical "X.Y" form:
// "8" and 8 become "8.0", "3.1" stays "3.1". Non-numeric ids pass through
// unchanged so string-keyed datasets keep working.
func NormalizeHierarchyID(raw string) HierarchyID {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return HierarchyID(s)
	}
	if strings.Contains(s, ".") {
		return HierarchyID(s)
	}
	return HierarchyID(strconv.FormatFloat(n, 'f', 1, 64))
}
