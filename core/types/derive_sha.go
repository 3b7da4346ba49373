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

package types

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/ethereum/go-ethereum/trie"
)

// EncodeIndex writes the consensus encoding of the i'th receipt to w.
func (r Receipts) EncodeIndex(i int, w *bytes.Buffer) {
	if err := rlp.Encode(w, r[i]); err != nil {
		panic(err)
	}
}

// DeriveSha computes the root of the trie keyed by the RLP encoded index of
// every receipt. An empty list yields EmptyRootHash.
func (r Receipts) DeriveSha() common.Hash {
	return gethtypes.DeriveSha(r, trie.NewStackTrie(nil))
}
