package inmemdb

import "sync"

type (
	// DB keeps every collection in memory; nothing survives a restart.
	DB struct {
		collection *collectionTable
	}

	collectionKey struct {
		profile   string
		namespace string
	}

	collectionTable struct {
		t     map[collectionKey][]byte // JSON payloads, like the profile_collection table
		mutex sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		collection: &collectionTable{t: make(map[collectionKey][]byte)},
	}
}
