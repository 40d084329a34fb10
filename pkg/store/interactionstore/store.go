package interactionstore

import (
	"errors"
	"sort"

	"github.com/covenscan/nft-indexer/pkg/entity"
	"github.com/covenscan/nft-indexer/pkg/infra"
	"github.com/covenscan/nft-indexer/pkg/marketplace"
)

const keyPrefix = "interactions"

func interactionKey(id entity.InteractionID) string {
	return keyPrefix + "/" + id.String()
}

// Store persists per-(account, marketplace) interaction counters and backs
// the marketplace query surface.
type Store interface {
	Get(id entity.InteractionID) (*entity.MarketplaceInteraction, bool, error)
	Save(interaction *entity.MarketplaceInteraction) error
	ListByAccount(accountID string) ([]*entity.MarketplaceInteraction, error)
	// ListByMarketplace returns interactions for one tag with at least
	// minTxCount trades, busiest first.
	ListByMarketplace(tag marketplace.Tag, minTxCount uint64) ([]*entity.MarketplaceInteraction, error)
	List() ([]*entity.MarketplaceInteraction, error)
	Close() error
}

type interactionStore struct {
	store infra.KVStore
}

func New(store infra.KVStore) Store {
	return &interactionStore{store: store}
}

func (s *interactionStore) Get(id entity.InteractionID) (*entity.MarketplaceInteraction, bool, error) {
	if id.Account == "" {
		return nil, false, errors.New("account id is required")
	}
	var interaction entity.MarketplaceInteraction
	found, err := s.store.GetAny(interactionKey(id), &interaction)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	return &interaction, true, nil
}

func (s *interactionStore) Save(interaction *entity.MarketplaceInteraction) error {
	if interaction == nil || interaction.ID == "" {
		return errors.New("interaction id is required")
	}
	return s.store.SetAny(keyPrefix+"/"+interaction.ID, interaction)
}

func (s *interactionStore) ListByAccount(accountID string) ([]*entity.MarketplaceInteraction, error) {
	if accountID == "" {
		return nil, errors.New("account id is required")
	}
	// Account ids are the leading key segment, so a narrower prefix works.
	kvs, err := s.store.List(keyPrefix + "/" + accountID + "-")
	if err != nil {
		return nil, err
	}
	return decodeAll(kvs)
}

func (s *interactionStore) ListByMarketplace(tag marketplace.Tag, minTxCount uint64) ([]*entity.MarketplaceInteraction, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}

	filtered := make([]*entity.MarketplaceInteraction, 0, len(all))
	for _, it := range all {
		if it.Marketplace == tag.String() && it.TransactionCount >= minTxCount {
			filtered = append(filtered, it)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].TransactionCount != filtered[j].TransactionCount {
			return filtered[i].TransactionCount > filtered[j].TransactionCount
		}
		return filtered[i].ID < filtered[j].ID
	})
	return filtered, nil
}

func (s *interactionStore) List() ([]*entity.MarketplaceInteraction, error) {
	kvs, err := s.store.List(keyPrefix + "/")
	if err != nil {
		return nil, err
	}
	return decodeAll(kvs)
}

func (s *interactionStore) Close() error {
	return s.store.Close()
}

func decodeAll(kvs []*infra.KVPair) ([]*entity.MarketplaceInteraction, error) {
	interactions := make([]*entity.MarketplaceInteraction, 0, len(kvs))
	for _, kv := range kvs {
		var interaction entity.MarketplaceInteraction
		if err := infra.JSON.Unmarshal(kv.Value, &interaction); err != nil {
			return nil, err
		}
		interactions = append(interactions, &interaction)
	}
	return interactions, nil
}
