// Package handledb implements a LevelDB-backed store for block-entity
// handles, so that voxel positions resolve to the same entity handle across
// restarts.
package handledb

import (
	"encoding/binary"
	"fmt"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/dm-vev/rubble/cube"
	"github.com/google/uuid"
)

// DB is a persistent handle store. It implements world.Store.
type DB struct {
	ldb *leveldb.DB
}

// Open opens or creates a handle database in the directory passed.
func Open(dir string) (*DB, error) {
	ldb, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("open handle db: %w", err)
	}
	return &DB{ldb: ldb}, nil
}

// Put persists the handle of the position passed. An existing handle at the
// same position is overwritten.
func (db *DB) Put(pos cube.Pos, id uuid.UUID) error {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], uint64(pos.Pack()))
	if err := db.ldb.Put(key[:], id[:], nil); err != nil {
		return fmt.Errorf("put handle %v: %w", pos, err)
	}
	return nil
}

// All calls f for every handle stored. Entries with malformed values are
// skipped.
func (db *DB) All(f func(pos cube.Pos, id uuid.UUID)) error {
	it := db.ldb.NewIterator(nil, nil)
	defer it.Release()
	for it.Next() {
		key, val := it.Key(), it.Value()
		if len(key) != 8 || len(val) != 16 {
			continue
		}
		pos := cube.UnpackPos(int64(binary.BigEndian.Uint64(key)))
		id, err := uuid.FromBytes(val)
		if err != nil {
			continue
		}
		f(pos, id)
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("iterate handles: %w", err)
	}
	return nil
}

// Close closes the underlying database. The DB may not be used after a call
// to Close.
func (db *DB) Close() error {
	return db.ldb.Close()
}
