// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package ethdb

import (
	"time"

	"github.com/golang/glog"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/ethereumproject/forkrules/logger"
	"github.com/ethereumproject/forkrules/metrics"
)

const minCache, minHandles = 16, 16

// LDBDatabase is a Database kept in a LevelDB directory.
type LDBDatabase struct {
	path string
	db   *leveldb.DB
}

// NewLDBDatabase opens the LevelDB directory at path, creating it if needed.
// The cache is in megabytes, half of it going to the block cache.
func NewLDBDatabase(path string, cache int, handles int) (*LDBDatabase, error) {
	if cache < minCache {
		cache = minCache
	}
	if handles < minHandles {
		handles = minHandles
	}
	glog.V(logger.Info).Infof("Allotted %dMB cache and %d file handles to %s", cache, handles, path)

	db, err := leveldb.OpenFile(path, &opt.Options{
		OpenFilesCacheCapacity: handles,
		BlockCacheCapacity:     cache / 2 * opt.MiB,
		WriteBuffer:            cache / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	})
	if _, corrupted := err.(*errors.ErrCorrupted); corrupted {
		glog.V(logger.Warn).Infof("recovering corrupted database %s", path)
		db, err = leveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return nil, err
	}
	return &LDBDatabase{path: path, db: db}, nil
}

// Path returns the directory of the database.
func (db *LDBDatabase) Path() string { return db.path }

func (db *LDBDatabase) Put(key []byte, value []byte) error {
	defer metrics.DBPutTimer.UpdateSince(time.Now())
	return db.db.Put(key, value, nil)
}

// Get returns the value stored under key, or ErrNotFound.
func (db *LDBDatabase) Get(key []byte) ([]byte, error) {
	defer metrics.DBGetTimer.UpdateSince(time.Now())
	value, err := db.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		metrics.DBMiss.Mark(1)
		return nil, ErrNotFound
	}
	return value, err
}

func (db *LDBDatabase) Has(key []byte) (bool, error) {
	return db.db.Has(key, nil)
}

func (db *LDBDatabase) Delete(key []byte) error {
	return db.db.Delete(key, nil)
}

// Close flushes and closes the database, logging its compaction statistics
// at debug level.
func (db *LDBDatabase) Close() {
	if glog.V(logger.Debug) {
		if stats, err := db.db.GetProperty("leveldb.stats"); err == nil {
			glog.Infof("%s:\n%s", db.path, stats)
		}
	}
	if err := db.db.Close(); err != nil {
		glog.Errorf("ethdb: close %s: %v", db.path, err)
	}
}

func (db *LDBDatabase) NewBatch() Batch {
	return &ldbBatch{db: db.db, b: new(leveldb.Batch)}
}

type ldbBatch struct {
	db *leveldb.DB
	b  *leveldb.Batch
}

func (b *ldbBatch) Put(key, value []byte) error {
	b.b.Put(key, value)
	return nil
}

func (b *ldbBatch) Write() error {
	defer metrics.DBPutTimer.UpdateSince(time.Now())
	return b.db.Write(b.b, nil)
}
