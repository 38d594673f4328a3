package interfaces

// Repository defines the interface for record-set persistence
type Repository interface {
	Performance() PerformanceRepository
	Capability() CapabilityRepository
	PolicyTool() PolicyToolRepository
	Objective() ObjectiveRepository
	Chain() ChainRepository

	Close() error
}
