package types

// Status is the traffic-light state of a performance or capability record,
// derived from its achievement or maturity percentage.
type Status string

const (
	StatusGreen Status = "green"
	StatusAmber Status = "amber"
	StatusRed   Status = "red"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusGreen, StatusAmber, StatusRed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// PerformanceStatus derives the status from an achievement percentage.
// Boundaries are inclusive on the upper side: >=90 green, >=70 amber.
func PerformanceStatus(achievement int) Status {
	switch {
	case achievement >= 90:
		return StatusGreen
	case achievement >= 70:
		return StatusAmber
	default:
		return StatusRed
	}
}

// CapabilityStatus derives the status from a maturity percentage:
// >=80 green, >=60 amber, else red.
func CapabilityStatus(maturityPct int) Status {
	switch {
	case maturityPct >= 80:
		return StatusGreen
	case maturityPct >= 60:
		return StatusAmber
	default:
		return StatusRed
	}
}
