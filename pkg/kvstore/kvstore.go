package kvstore

import (
	"errors"
	"time"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrKeyEmpty    = errors.New("key is empty")
	ErrNilValue    = errors.New("value is nil")
)

// Store is a small JSON key/value cache
type Store interface {
	// GetAny decodes the value at key into value. found is false when the
	// key is absent or expired.
	GetAny(key string, value any) (found bool, err error)
	// SetAny encodes value at key. A zero ttl never expires.
	SetAny(key string, value any, ttl time.Duration) error
	Delete(key string) error
	Close() error
}

func checkKeyAndValue(key string, value any) error {
	if key == "" {
		return ErrKeyEmpty
	}
	if value == nil {
		return ErrNilValue
	}
	return nil
}
