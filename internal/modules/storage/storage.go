package storage

import "time"

// Store is the blob-store boundary. Writes are additive (unique keys), the
// pipeline never reads back what it wrote within the same call.
type Store interface {
	Put(path string, data []byte) error
	Delete(path string) error
	Exists(path string) (bool, error)
}

// URLProvider is implemented by backends that can hand out read URLs.
type URLProvider interface {
	URL(path string, expire time.Duration) (string, error)
}
