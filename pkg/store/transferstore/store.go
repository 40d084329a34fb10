package transferstore

import (
	"errors"

	"github.com/covenscan/nft-indexer/pkg/entity"
	"github.com/covenscan/nft-indexer/pkg/infra"
)

const keyPrefix = "transfers"

func transferKey(id entity.TransferID) string {
	return keyPrefix + "/" + id.String()
}

// Store persists immutable Transfer records keyed by (tx hash, log index).
type Store interface {
	Get(id entity.TransferID) (*entity.Transfer, bool, error)
	Save(transfer *entity.Transfer) error
	List() ([]*entity.Transfer, error)
	Close() error
}

type transferStore struct {
	store infra.KVStore
}

func New(store infra.KVStore) Store {
	return &transferStore{store: store}
}

func (s *transferStore) Get(id entity.TransferID) (*entity.Transfer, bool, error) {
	if id.TxHash == "" {
		return nil, false, errors.New("tx hash is required")
	}
	var transfer entity.Transfer
	found, err := s.store.GetAny(transferKey(id), &transfer)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	return &transfer, true, nil
}

func (s *transferStore) Save(transfer *entity.Transfer) error {
	if transfer == nil || transfer.TxHash == "" {
		return errors.New("tx hash is required")
	}
	id := entity.TransferID{TxHash: transfer.TxHash, LogIndex: transfer.LogIndex}
	return s.store.SetAny(transferKey(id), transfer)
}

func (s *transferStore) List() ([]*entity.Transfer, error) {
	kvs, err := s.store.List(keyPrefix + "/")
	if err != nil {
		return nil, err
	}

	transfers := make([]*entity.Transfer, 0, len(kvs))
	for _, kv := range kvs {
		var transfer entity.Transfer
		if err := infra.JSON.Unmarshal(kv.Value, &transfer); err != nil {
			return nil, err
		}
		transfers = append(transfers, &transfer)
	}
	return transfers, nil
}

func (s *transferStore) Close() error {
	return s.store.Close()
}
