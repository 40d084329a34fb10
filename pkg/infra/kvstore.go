package infra

import (
	"encoding/json"
)

// KVStore is the persistence contract for derived entities. Records are
// addressed by string id; Save semantics are durable upserts. The indexer
// only ever needs load/save plus prefix listing for the query surface.

type KVPair struct {
	Key   string
	Value []byte
}

type KVStore interface {
	GetName() string
	Set(k string, v string) error
	Get(k string) (v string, err error)
	// This method if you want to set v as struct or map
	SetAny(k string, v any) error
	GetAny(k string, v any) (found bool, err error)

	List(prefix string) ([]*KVPair, error)
	Delete(k string) error
	Close() error
}

// Codec encodes/decodes Go values to/from slices of bytes.
type Codec interface {
	// Marshal encodes a Go value to a slice of bytes.
	Marshal(v any) ([]byte, error)
	// Unmarshal decodes a slice of bytes into a Go value.
	Unmarshal(data []byte, v any) error
}

// JSON is a JSONCodec that encodes/decodes Go values to/from JSON.
var JSON = JSONCodec{}

// JSONCodec encodes/decodes Go values to/from JSON.
type JSONCodec struct{}

// Marshal encodes a Go value to JSON.
func (c JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes a JSON value into a Go value.
func (c JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
