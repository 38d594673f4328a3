package types

// Archetype is a named failure pattern detected from the combination of two
// linked entities' statuses and their connection strength.
type Archetype string

const (
	// ArchetypeExecutionFailure: capability is mature but performance is not delivering
	ArchetypeExecutionFailure Archetype = "execution_failure"
	// ArchetypeHollowVictory: performance looks good without capability support underneath
	ArchetypeHollowVictory Archetype = "hollow_victory"
	// ArchetypeWeakLink: a connection exists but is structurally weak
	ArchetypeWeakLink Archetype = "weak_link"
	// ArchetypeNormal: no failure pattern detected
	ArchetypeNormal Archetype = "normal"
)

// IsValid checks if the archetype is valid
func (a Archetype) IsValid() bool {
	switch a {
	case ArchetypeExecutionFailure, ArchetypeHollowVictory, ArchetypeWeakLink, ArchetypeNormal:
		return true
	default:
		return false
	}
}

// String returns the string representation of the archetype
func (a Archetype) String() string {
	return string(a)
}
