package firestore

import (
	"context"
	"encoding/json"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/josoor-lab/sectorlens/pkg/domain/model"
	"github.com/josoor-lab/sectorlens/pkg/domain/types"
)

// chainDocument stores a whole chain-graph payload as opaque JSON. Chains
// are replaced as a unit and never queried by field, so there is no reason
// to map the graph onto firestore's document model.
type chainDocument struct {
	Kind    string `firestore:"kind"`
	Payload []byte `firestore:"payload"`
}

type directLinksDocument struct {
	Payload []byte `firestore:"payload"`
}

type chainRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newChainRepository(client *firestore.Client) *chainRepository {
	return &chainRepository{client: client}
}

func (r *chainRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_chains"
	}
	return "chains"
}

const directLinksDocID = "direct_links"

func (r *chainRepository) PutChain(ctx context.Context, chain *model.ChainGraph) error {
	if chain == nil {
		return goerr.New("chain must not be nil")
	}
	if !chain.Kind.IsValid() {
		return goerr.New("invalid chain kind", goerr.V("kind", chain.Kind))
	}

	payload, err := json.Marshal(chain)
	if err != nil {
		return goerr.Wrap(err, "failed to encode chain", goerr.V("kind", chain.Kind))
	}

	ref := r.client.Collection(r.collection()).Doc(chain.Kind.String())
	if _, err := ref.Set(ctx, &chainDocument{Kind: chain.Kind.String(), Payload: payload}); err != nil {
		return goerr.Wrap(err, "failed to store chain", goerr.V("kind", chain.Kind))
	}
	return nil
}

func (r *chainRepository) GetChain(ctx context.Context, kind types.ChainKind) (*model.ChainGraph, error) {
	snap, err := r.client.Collection(r.collection()).Doc(kind.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "chain not found", goerr.V("kind", kind))
		}
		return nil, goerr.Wrap(err, "failed to get chain", goerr.V("kind", kind))
	}

	var doc chainDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode chain document", goerr.V("kind", kind))
	}

	var chain model.ChainGraph
	if err := json.Unmarshal(doc.Payload, &chain); err != nil {
		return nil, goerr.Wrap(err, "failed to decode chain payload", goerr.V("kind", kind))
	}
	return &chain, nil
}

func (r *chainRepository) PutDirectLinks(ctx context.Context, links []*model.DirectLink) error {
	payload, err := json.Marshal(links)
	if err != nil {
		return goerr.Wrap(err, "failed to encode direct links")
	}

	ref := r.client.Collection(r.collection()).Doc(directLinksDocID)
	if _, err := ref.Set(ctx, &directLinksDocument{Payload: payload}); err != nil {
		return goerr.Wrap(err, "failed to store direct links")
	}
	return nil
}

func (r *chainRepository) ListDirectLinks(ctx context.Context) ([]*model.DirectLink, error) {
	snap, err := r.client.Collection(r.collection()).Doc(directLinksDocID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get direct links")
	}

	var doc directLinksDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode direct links document")
	}

	var links []*model.DirectLink
	if err := json.Unmarshal(doc.Payload, &links); err != nil {
		return nil, goerr.Wrap(err, "failed to decode direct links payload")
	}
	return links, nil
}
