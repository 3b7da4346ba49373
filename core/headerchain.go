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

package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/glog"
	lru "github.com/hashicorp/golang-lru"

	"github.com/ethereumproject/forkrules/core/types"
	"github.com/ethereumproject/forkrules/ethdb"
	"github.com/ethereumproject/forkrules/logger"
	"github.com/ethereumproject/forkrules/metrics"
)

const headerCacheLimit = 512

var (
	// ErrUnknownAncestor is returned when a header's parent is not stored.
	ErrUnknownAncestor = errors.New("unknown ancestor")

	// ErrNonContiguous is returned when a header's number does not follow
	// its parent's.
	ErrNonContiguous = errors.New("non contiguous header")
)

// HeaderReader supplies parent headers to the fork rules.
type HeaderReader interface {
	// CurrentHeader retrieves the head header of the canonical chain.
	CurrentHeader() *types.Header
	// GetHeader retrieves a header by its hash.
	GetHeader(hash common.Hash) *types.Header
	// GetHeaderByNumber retrieves a canonical header by number.
	GetHeaderByNumber(number uint64) *types.Header
}

// HeaderStore persists a canonical chain of headers and their receipts,
// keeping the most recently used headers decoded in memory. Headers are
// returned as copies.
type HeaderStore struct {
	db          ethdb.Database
	headerCache *lru.Cache // Cache for the most recent block headers

	mu   sync.RWMutex // guards head
	head common.Hash
}

// NewHeaderStore returns a store over db, resuming from its stored head.
func NewHeaderStore(db ethdb.Database) (*HeaderStore, error) {
	headerCache, err := lru.New(headerCacheLimit)
	if err != nil {
		return nil, err
	}
	hs := &HeaderStore{
		db:          db,
		headerCache: headerCache,
		head:        GetHeadHeaderHash(db),
	}
	if hs.head != (common.Hash{}) && hs.GetHeader(hs.head) == nil {
		glog.V(logger.Warn).Infof("head header %x missing, starting empty", hs.head[:4])
		hs.head = common.Hash{}
	}
	return hs, nil
}

// GetHeader retrieves a block header from the database by hash, caching it if
// found.
func (hs *HeaderStore) GetHeader(hash common.Hash) *types.Header {
	if header, ok := hs.headerCache.Get(hash); ok {
		metrics.HeaderCacheHit.Mark(1)
		return types.CopyHeader(header.(*types.Header))
	}
	metrics.HeaderCacheMiss.Mark(1)
	header := GetHeader(hs.db, hash)
	if header == nil {
		return nil
	}
	hs.headerCache.Add(hash, header)
	return types.CopyHeader(header)
}

// GetHeaderByNumber retrieves a block header from the database by number,
// caching it (associated with its hash) if found.
func (hs *HeaderStore) GetHeaderByNumber(number uint64) *types.Header {
	hash := GetCanonicalHash(hs.db, number)
	if hash == (common.Hash{}) {
		return nil
	}
	return hs.GetHeader(hash)
}

// CurrentHeader retrieves the current head header of the canonical chain, or
// nil if the store is empty.
func (hs *HeaderStore) CurrentHeader() *types.Header {
	hs.mu.RLock()
	head := hs.head
	hs.mu.RUnlock()

	if head == (common.Hash{}) {
		return nil
	}
	return hs.GetHeader(head)
}

// InsertHeader stores header and makes it the canonical head. Apart from the
// genesis, the parent must already be stored. Validating the header against
// the fork rules is the caller's job.
func (hs *HeaderStore) InsertHeader(header *types.Header) error {
	hs.mu.Lock()
	defer hs.mu.Unlock()

	if header.Number > 0 {
		parent := hs.GetHeader(header.ParentHash)
		if parent == nil {
			return fmt.Errorf("%w: %x of #%d", ErrUnknownAncestor, header.ParentHash[:4], header.Number)
		}
		if parent.Number+1 != header.Number {
			return fmt.Errorf("%w: #%d on parent #%d", ErrNonContiguous, header.Number, parent.Number)
		}
	}
	hash := header.Hash()
	if err := WriteHeader(hs.db, header); err != nil {
		return err
	}
	if err := WriteCanonicalHash(hs.db, hash, header.Number); err != nil {
		return err
	}
	if err := WriteHeadHeaderHash(hs.db, hash); err != nil {
		return err
	}
	hs.headerCache.Add(hash, types.CopyHeader(header))
	hs.head = hash
	glog.V(logger.Debug).Infof("inserted header #%d [%x…]", header.Number, hash[:4])
	return nil
}

// WriteReceipts stores the receipts of the block with the given hash.
func (hs *HeaderStore) WriteReceipts(hash common.Hash, receipts types.Receipts) error {
	return WriteBlockReceipts(hs.db, hash, receipts)
}

// GetReceipts retrieves the receipts of the block with the given hash.
func (hs *HeaderStore) GetReceipts(hash common.Hash) types.Receipts {
	return GetBlockReceipts(hs.db, hash)
}

var _ HeaderReader = (*HeaderStore)(nil)
