package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// ChainKind tags the three independently structured chain-graph sources.
// Their node/edge vocabularies are not interchangeable: operate severity
// derives from KPI shortfall while build severity derives from project
// delay/status, so each kind has its own extraction path.
type ChainKind string

const (
	ChainBuild   ChainKind = "build"
	ChainOperate ChainKind = "operate"
	ChainService ChainKind = "service"
)

// AllChainKinds returns all valid chain kinds
func AllChainKinds() []ChainKind {
	return []ChainKind{ChainBuild, ChainOperate, ChainService}
}

// IsValid checks if the chain kind is valid
func (k ChainKind) IsValid() bool {
	switch k {
	case ChainBuild, ChainOperate, ChainService:
		return true
	default:
		return false
	}
}

// String returns the string representation of the chain kind
func (k ChainKind) String() string {
	return string(k)
}

// ParseChainKind parses a string into a ChainKind
func ParseChainKind(s string) (ChainKind, error) {
	k := ChainKind(s)
	if !k.IsValid() {
		return "", goerr.New("invalid chain kind", goerr.V("kind", s))
	}
	return k, nil
}
