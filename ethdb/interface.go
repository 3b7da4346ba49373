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

// Package ethdb provides the key-value stores headers and receipts are
// persisted to.
package ethdb

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get for keys that are not stored.
var ErrNotFound = errors.New("not found")

// Supported database backends.
const (
	BackendLevelDB = "leveldb"
	BackendBolt    = "bolt"
	BackendMemory  = "memory"
)

// Database wraps all database operations. All methods are safe for concurrent use.
type Database interface {
	Put(key []byte, value []byte) error
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Delete(key []byte) error
	Close()
	NewBatch() Batch
}

// Batch is a write-only database that commits changes to its host database
// when Write is called. Batch cannot be used concurrently.
type Batch interface {
	Put(key, value []byte) error
	Write() error
}

// Open opens the database of the given backend at path. The memory backend
// ignores the path.
func Open(backend, path string, cache, handles int) (Database, error) {
	switch backend {
	case BackendLevelDB, "":
		return NewLDBDatabase(path, cache, handles)
	case BackendBolt:
		return NewBoltDatabase(path)
	case BackendMemory:
		return NewMemDatabase(), nil
	}
	return nil, fmt.Errorf("unknown database backend %q", backend)
}
