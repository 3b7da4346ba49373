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
	"fmt"
	"hash"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/crypto/sha3"

	"github.com/ethereumproject/forkrules/core/vm"
)

const (
	// BloomByteLength represents the number of bytes used in a header log bloom.
	BloomByteLength = 256

	// BloomBitLength represents the number of bits used in a header log bloom.
	BloomBitLength = 8 * BloomByteLength
)

var hasherPool = sync.Pool{
	New: func() interface{} { return sha3.NewLegacyKeccak256() },
}

// Bloom represents a 2048 bit bloom filter.
type Bloom [BloomByteLength]byte

// BytesToBloom converts a byte slice to a bloom filter.
// It panics if b is not of suitable size.
func BytesToBloom(b []byte) Bloom {
	var bloom Bloom
	bloom.SetBytes(b)
	return bloom
}

// SetBytes sets the content of b to the given bytes.
// It panics if d is not of suitable size.
func (b *Bloom) SetBytes(d []byte) {
	if len(b) < len(d) {
		panic(fmt.Sprintf("bloom bytes too big %d %d", len(b), len(d)))
	}
	copy(b[BloomByteLength-len(d):], d)
}

// Add adds d to the filter. Future calls of Test(d) will return true.
func (b *Bloom) Add(d []byte) {
	i1, v1, i2, v2, i3, v3 := bloomValues(d)
	b[i1] |= v1
	b[i2] |= v2
	b[i3] |= v3
}

// Test checks if the given topic is present in the bloom filter.
func (b Bloom) Test(topic []byte) bool {
	i1, v1, i2, v2, i3, v3 := bloomValues(topic)
	return v1 == v1&b[i1] &&
		v2 == v2&b[i2] &&
		v3 == v3&b[i3]
}

// Or returns the union of b and o. Neither operand is modified.
func (b Bloom) Or(o Bloom) Bloom {
	for i := range b {
		b[i] |= o[i]
	}
	return b
}

// Big converts b to a big integer.
func (b Bloom) Big() *big.Int {
	return new(big.Int).SetBytes(b[:])
}

// Bytes returns the backing byte slice of the bloom.
func (b Bloom) Bytes() []byte {
	return b[:]
}

// MarshalText encodes b as a hex string with 0x prefix.
func (b Bloom) MarshalText() ([]byte, error) {
	return hexutil.Bytes(b[:]).MarshalText()
}

// UnmarshalText b as a hex string with 0x prefix.
func (b *Bloom) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("Bloom", input, b[:])
}

// LogsBloom returns the bloom of the addresses and topics of logs.
func LogsBloom(logs vm.Logs) Bloom {
	var bin Bloom
	for _, log := range logs {
		bin.Add(log.Address.Bytes())
		for _, topic := range log.Topics {
			bin.Add(topic.Bytes())
		}
	}
	return bin
}

// CreateBloom aggregates the blooms of receipts.
func CreateBloom(receipts Receipts) Bloom {
	var bin Bloom
	for _, receipt := range receipts {
		bin = bin.Or(receipt.Bloom)
	}
	return bin
}

// bloomValues returns the bytes (index-value pairs) to set for the given data.
// Each of the three indexes is taken from an 11 bit slice of keccak256(data).
func bloomValues(data []byte) (uint, byte, uint, byte, uint, byte) {
	sha := hasherPool.Get().(hash.Hash)
	sha.Reset()
	sha.Write(data)
	var buf [32]byte
	hashbuf := sha.Sum(buf[:0])
	hasherPool.Put(sha)

	// The actual bits to flip
	v1 := byte(1 << (hashbuf[1] & 0x7))
	v2 := byte(1 << (hashbuf[3] & 0x7))
	v3 := byte(1 << (hashbuf[5] & 0x7))
	// The indices for the bytes to OR in
	i1 := BloomByteLength - uint((uint16(hashbuf[0])<<8|uint16(hashbuf[1]))&0x7ff)>>3 - 1
	i2 := BloomByteLength - uint((uint16(hashbuf[2])<<8|uint16(hashbuf[3]))&0x7ff)>>3 - 1
	i3 := BloomByteLength - uint((uint16(hashbuf[4])<<8|uint16(hashbuf[5]))&0x7ff)>>3 - 1

	return i1, v1, i2, v2, i3, v3
}
