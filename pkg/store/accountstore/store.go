package accountstore

import (
	"errors"
	"sort"

	"github.com/covenscan/nft-indexer/pkg/entity"
	"github.com/covenscan/nft-indexer/pkg/infra"
)

const keyPrefix = "accounts"

func accountKey(id string) string {
	return keyPrefix + "/" + id
}

// Store persists Account aggregates and backs the per-account query surface.
type Store interface {
	Get(id string) (*entity.Account, bool, error)
	Save(account *entity.Account) error
	List() ([]*entity.Account, error)
	// ListByUniqueMarketplaces returns accounts with at least min distinct
	// marketplace interactions, most active first.
	ListByUniqueMarketplaces(min uint64) ([]*entity.Account, error)
	Close() error
}

type accountStore struct {
	store infra.KVStore
}

func New(store infra.KVStore) Store {
	return &accountStore{store: store}
}

func (s *accountStore) Get(id string) (*entity.Account, bool, error) {
	if id == "" {
		return nil, false, errors.New("account id is required")
	}
	var account entity.Account
	found, err := s.store.GetAny(accountKey(id), &account)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	return &account, true, nil
}

func (s *accountStore) Save(account *entity.Account) error {
	if account == nil || account.ID == "" {
		return errors.New("account id is required")
	}
	return s.store.SetAny(accountKey(account.ID), account)
}

func (s *accountStore) List() ([]*entity.Account, error) {
	kvs, err := s.store.List(keyPrefix + "/")
	if err != nil {
		return nil, err
	}

	accounts := make([]*entity.Account, 0, len(kvs))
	for _, kv := range kvs {
		var account entity.Account
		if err := infra.JSON.Unmarshal(kv.Value, &account); err != nil {
			return nil, err
		}
		accounts = append(accounts, &account)
	}
	return accounts, nil
}

func (s *accountStore) ListByUniqueMarketplaces(min uint64) ([]*entity.Account, error) {
	accounts, err := s.List()
	if err != nil {
		return nil, err
	}

	filtered := make([]*entity.Account, 0, len(accounts))
	for _, a := range accounts {
		if a.UniqueMarketplacesCount >= min {
			filtered = append(filtered, a)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].UniqueMarketplacesCount != filtered[j].UniqueMarketplacesCount {
			return filtered[i].UniqueMarketplacesCount > filtered[j].UniqueMarketplacesCount
		}
		return filtered[i].ID < filtered[j].ID
	})
	return filtered, nil
}

func (s *accountStore) Close() error {
	return s.store.Close()
}
