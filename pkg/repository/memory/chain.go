package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

type chainRepository struct {
	mu          sync.RWMutex
	chains      map[types.ChainKind]*model.ChainGraph
	directLinks []*model.DirectLink
}

func newChainRepository() *chainRepository {
	return &chainRepository{
		chains: make(map[types.ChainKind]*model.ChainGraph),
	}
}

func (r *chainRepository) PutChain(ctx context.Context, chain *model.ChainGraph) error {
	if chain == nil {
		return goerr.New("chain must not be nil")
	}
	if !chain.Kind.IsValid() {
		return goerr.New("invalid chain kind", goerr.V("kind", chain.Kind))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.chains[chain.Kind] = copyChain(chain)
	return nil
}

func (r *chainRepository) GetChain(ctx context.Context, kind types.ChainKind) (*model.ChainGraph, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chain, exists := r.chains[kind]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "chain not found", goerr.V("kind", kind))
	}
	return copyChain(chain), nil
}

func (r *chainRepository) PutDirectLinks(ctx context.Context, links []*model.DirectLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.directLinks = copyLinks(links)
	return nil
}

func (r *chainRepository) ListDirectLinks(ctx context.Context) ([]*model.DirectLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return copyLinks(r.directLinks), nil
}

func copyChain(chain *model.ChainGraph) *model.ChainGraph {
	copied := &model.ChainGraph{
		Kind:  chain.Kind,
		Nodes: make([]*model.ChainNode, 0, len(chain.Nodes)),
		Links: make([]*model.ChainLink, 0, len(chain.Links)),
	}
	for _, n := range chain.Nodes {
		if n == nil {
			continue
		}
		node := *n
		node.Labels = append([]string{}, n.Labels...)
		copied.Nodes = append(copied.Nodes, &node)
	}
	for _, l := range chain.Links {
		if l == nil {
			continue
		}
		link := *l
		copied.Links = append(copied.Links, &link)
	}
	return copied
}

func copyLinks(links []*model.DirectLink) []*model.DirectLink {
	out := make([]*model.DirectLink, 0, len(links))
	for _, l := range links {
		if l == nil {
			continue
		}
		link := *l
		out = append(out, &link)
	}
	return out
}
