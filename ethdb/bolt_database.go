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
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/glog"

	"github.com/ethereumproject/forkrules/logger"
	"github.com/ethereumproject/forkrules/metrics"
)

var dataBucketName = []byte("data")

// BoltDatabase stores all keys in a single bucket of a bolt file.
type BoltDatabase struct {
	file string
	db   *bolt.DB
}

// NewBoltDatabase opens, creating if needed, the bolt database at file.
func NewBoltDatabase(file string) (*BoltDatabase, error) {
	if err := os.MkdirAll(filepath.Dir(file), os.ModePerm); err != nil {
		return nil, err
	}
	bdb, err := bolt.Open(file, 0600, nil)
	if err != nil {
		return nil, err
	}
	if err := bdb.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(dataBucketName)
		return err
	}); err != nil {
		bdb.Close()
		return nil, err
	}
	glog.V(logger.Info).Infof("Opened bolt database %s", file)
	return &BoltDatabase{file: file, db: bdb}, nil
}

func (db *BoltDatabase) Put(key []byte, value []byte) error {
	defer metrics.DBPutTimer.UpdateSince(time.Now())
	return db.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(dataBucketName).Put(key, value)
	})
}

// Get returns a copy of the value stored at key; bolt values are only valid
// for the life of the transaction.
func (db *BoltDatabase) Get(key []byte) ([]byte, error) {
	defer metrics.DBGetTimer.UpdateSince(time.Now())
	var dat []byte
	err := db.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(dataBucketName).Get(key)
		if v == nil {
			metrics.DBMiss.Mark(1)
			return ErrNotFound
		}
		dat = common.CopyBytes(v)
		return nil
	})
	return dat, err
}

func (db *BoltDatabase) Has(key []byte) (bool, error) {
	_, err := db.Get(key)
	if err == ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (db *BoltDatabase) Delete(key []byte) error {
	return db.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(dataBucketName).Delete(key)
	})
}

func (db *BoltDatabase) Close() {
	if err := db.db.Close(); err != nil {
		glog.Errorf("ethdb: DB %s: %s", db.file, err)
	}
}

func (db *BoltDatabase) NewBatch() Batch {
	return &boltBatch{db: db.db}
}

type boltBatch struct {
	db     *bolt.DB
	writes []kv
}

type kv struct{ k, v []byte }

func (b *boltBatch) Put(key, value []byte) error {
	b.writes = append(b.writes, kv{common.CopyBytes(key), common.CopyBytes(value)})
	return nil
}

// Write commits all puts in a single bolt transaction.
func (b *boltBatch) Write() error {
	defer metrics.DBPutTimer.UpdateSince(time.Now())
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(dataBucketName)
		for _, w := range b.writes {
			if err := bucket.Put(w.k, w.v); err != nil {
				return err
			}
		}
		return nil
	})
}
