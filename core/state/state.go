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

// Package state defines the view of the world state that the fork rules need:
// the root of the state after a transaction has been applied. The state trie
// itself lives outside this module.
package state

import "github.com/ethereum/go-ethereum/common"

// Reader exposes the post-execution state root.
type Reader interface {
	// IntermediateRoot computes the current root hash of the state trie.
	IntermediateRoot() common.Hash
}

// StaticRoot is a Reader over an already computed root.
type StaticRoot common.Hash

func (r StaticRoot) IntermediateRoot() common.Hash { return common.Hash(r) }
