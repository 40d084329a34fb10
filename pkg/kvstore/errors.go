package kvstore

import "errors"

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrKeyEmpty    = errors.New("key is empty")
)

func checkKeyAndValue(key string, value any) error {
	if key == "" {
		return ErrKeyEmpty
	}
	if value == nil {
		return errors.New("value is nil")
	}
	return nil
}
