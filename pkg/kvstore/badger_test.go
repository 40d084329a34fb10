package kvstore

import (
	"os"
	"testing"

	"github.com/covenscan/nft-indexer/pkg/infra"
)

func TestBadgerStore_BasicOperations(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "badger_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	store, err := NewBadgerStore(tempDir, "test", infra.JSON)
	if err != nil {
		t.Fatalf("Failed to create BadgerStore: %v", err)
	}
	defer store.Close()

	key := "test_key"
	value := "test_value"

	err = store.Set(key, value)
	if err != nil {
		t.Errorf("Failed to set key: %v", err)
	}

	retrieved, err := store.Get(key)
	if err != nil {
		t.Errorf("Failed to get key: %v", err)
	}

	if retrieved != value {
		t.Errorf("Expected value %s, got %s", value, retrieved)
	}
}

func TestBadgerStore_GetNonExistentKey(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "badger_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	store, err := NewBadgerStore(tempDir, "test", infra.JSON)
	if err != nil {
		t.Fatalf("Failed to create BadgerStore: %v", err)
	}
	defer store.Close()

	_, err = store.Get("non_existent_key")
	if err != ErrKeyNotFound {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
}

func TestBadgerStore_SetAnyGetAny(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "badger_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	store, err := NewBadgerStore(tempDir, "test", infra.JSON)
	if err != nil {
		t.Fatalf("Failed to create BadgerStore: %v", err)
	}
	defer store.Close()

	type record struct {
		Name  string `json:"name"`
		Count uint64 `json:"count"`
	}

	in := record{Name: "acc", Count: 3}
	if err := store.SetAny("records/acc", in); err != nil {
		t.Fatalf("Failed to set struct: %v", err)
	}

	var out record
	found, err := store.GetAny("records/acc", &out)
	if err != nil {
		t.Fatalf("Failed to get struct: %v", err)
	}
	if !found {
		t.Fatal("Expected record to be found")
	}
	if out != in {
		t.Errorf("Expected %+v, got %+v", in, out)
	}

	var missing record
	found, err = store.GetAny("records/missing", &missing)
	if err != nil {
		t.Errorf("Unexpected error for missing record: %v", err)
	}
	if found {
		t.Error("Expected missing record to report not found")
	}
}

func TestBadgerStore_ListByPrefix(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "badger_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	store, err := NewBadgerStore(tempDir, "test", infra.JSON)
	if err != nil {
		t.Fatalf("Failed to create BadgerStore: %v", err)
	}
	defer store.Close()

	pairs := map[string]string{
		"accounts/0xa": "1",
		"accounts/0xb": "2",
		"transfers/tx": "3",
	}
	for k, v := range pairs {
		if err := store.Set(k, v); err != nil {
			t.Fatalf("Failed to set %s: %v", k, err)
		}
	}

	kvs, err := store.List("accounts/")
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(kvs) != 2 {
		t.Errorf("Expected 2 entries, got %d", len(kvs))
	}
}

func TestBadgerStore_Delete(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "badger_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	store, err := NewBadgerStore(tempDir, "test", infra.JSON)
	if err != nil {
		t.Fatalf("Failed to create BadgerStore: %v", err)
	}
	defer store.Close()

	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Failed to set key: %v", err)
	}
	if err := store.Delete("k"); err != nil {
		t.Errorf("Failed to delete key: %v", err)
	}
	if _, err := store.Get("k"); err != ErrKeyNotFound {
		t.Errorf("Expected ErrKeyNotFound after delete, got %v", err)
	}
}

func TestBadgerStore_EmptyKey(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "badger_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	store, err := NewBadgerStore(tempDir, "test", infra.JSON)
	if err != nil {
		t.Fatalf("Failed to create BadgerStore: %v", err)
	}
	defer store.Close()

	if err := store.Set("", "v"); err != ErrKeyEmpty {
		t.Errorf("Expected ErrKeyEmpty, got %v", err)
	}
	if _, err := store.Get(""); err != ErrKeyEmpty {
		t.Errorf("Expected ErrKeyEmpty, got %v", err)
	}
}
