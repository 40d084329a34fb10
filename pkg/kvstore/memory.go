package kvstore

import (
	"sort"
	"strings"
	"sync"

	"github.com/covenscan/nft-indexer/pkg/infra"
)

// MemoryStore is an in-process infra.KVStore used by tests and local tooling.
// Semantics mirror BadgerStore, including prefix handling and sentinel errors.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	prefix string
	codec  infra.Codec
}

func NewMemoryStore(prefix string, codec infra.Codec) *MemoryStore {
	return &MemoryStore{
		data:   make(map[string][]byte),
		prefix: prefix,
		codec:  codec,
	}
}

func (m *MemoryStore) fullKey(k string) (string, error) {
	if k == "" {
		return "", ErrKeyEmpty
	}
	if m.prefix != "" {
		return m.prefix + "/" + k, nil
	}
	return k, nil
}

func (m *MemoryStore) GetName() string {
	return "memory"
}

func (m *MemoryStore) Get(key string) (string, error) {
	k, err := m.fullKey(key)
	if err != nil {
		return "", err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[k]
	if !ok {
		return "", ErrKeyNotFound
	}
	return string(v), nil
}

func (m *MemoryStore) Set(key string, value string) error {
	k, err := m.fullKey(key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[k] = []byte(value)
	return nil
}

func (m *MemoryStore) SetAny(key string, value any) error {
	if err := checkKeyAndValue(key, value); err != nil {
		return err
	}
	k, err := m.fullKey(key)
	if err != nil {
		return err
	}

	data, err := m.codec.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[k] = data
	return nil
}

func (m *MemoryStore) GetAny(key string, value any) (bool, error) {
	if err := checkKeyAndValue(key, value); err != nil {
		return false, err
	}
	k, err := m.fullKey(key)
	if err != nil {
		return false, err
	}

	m.mu.RLock()
	data, ok := m.data[k]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return true, m.codec.Unmarshal(data, value)
}

func (m *MemoryStore) List(prefix string) ([]*infra.KVPair, error) {
	if prefix == "" {
		return nil, ErrKeyEmpty
	}
	searchPrefix := prefix
	if m.prefix != "" {
		searchPrefix = m.prefix + "/" + prefix
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*infra.KVPair, 0)
	for k, v := range m.data {
		if strings.HasPrefix(k, searchPrefix) {
			valCopy := make([]byte, len(v))
			copy(valCopy, v)
			result = append(result, &infra.KVPair{Key: k, Value: valCopy})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Key < result[j].Key })
	return result, nil
}

func (m *MemoryStore) Delete(key string) error {
	k, err := m.fullKey(key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, k)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
