package memory

import (
	"github.com/josoor-lab/sectorlens/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	performance *performanceRepository
	capability  *capabilityRepository
	policyTool  *policyToolRepository
	objective   *objectiveRepository
	chain       *chainRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		performance: newPerformanceRepository(),
		capability:  newCapabilityRepository(),
		policyTool:  newPolicyToolRepository(),
		objective:   newObjectiveRepository(),
		chain:       newChainRepository(),
	}
}

func (m *Memory) Performance() interfaces.PerformanceRepository {
	return m.performance
}

func (m *Memory) Capability() interfaces.CapabilityRepository {
	return m.capability
}

func (m *Memory) PolicyTool() interfaces.PolicyToolRepository {
	return m.policyTool
}

func (m *Memory) Objective() interfaces.ObjectiveRepository {
	return m.objective
}

func (m *Memory) Chain() interfaces.ChainRepository {
	return m.chain
}

func (m *Memory) Close() error {
	return nil
}
