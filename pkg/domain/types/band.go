package types

import "strings"

// Band is a three-value risk severity rating. BandNone marks the absence of
// risk evidence and is only valid at the leaf/placeholder level.
type Band string

const (
	BandRed   Band = "red"
	BandAmber Band = "amber"
	BandGreen Band = "green"
	BandNone  Band = "none"
)

// AllBands returns all valid bands in descending severity order
func AllBands() []Band {
	return []Band{BandRed, BandAmber, BandGreen, BandNone}
}

// Severity returns the numeric severity of the band: red > amber > green > none
func (b Band) Severity() int {
	switch b {
	case BandRed:
		return 3
	case BandAmber:
		return 2
	case BandGreen:
		return 1
	default:
		return 0
	}
}

// WorseThan reports whether b is strictly more severe than other
func (b Band) WorseThan(other Band) bool {
	return b.Severity() > other.Severity()
}

// IsValid checks if the band is one of the known values
func (b Band) IsValid() bool {
	switch b {
	case BandRed, BandAmber, BandGreen, BandNone:
		return true
	default:
		return false
	}
}

// String returns the string representation of the band
func (b Band) String() string {
	return string(b)
}

// ParseBand parses a raw band value case-insensitively. Unknown or empty
// values map to BandNone: a malformed band on a source record must not abort
// extraction.
func ParseBand(s string) Band {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red":
		return BandRed
	case "amber":
		return BandAmber
	case "green":
		return BandGreen
	default:
		return BandNone
	}
}

// WorstBand returns the more severe of the two bands
func WorstBand(a, b Band) Band {
	if b.WorseThan(a) {
		return b
	}
	return a
}
