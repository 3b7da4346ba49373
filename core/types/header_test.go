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
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyUncleHash(t *testing.T) {
	assert.Equal(t, common.HexToHash("1dcc4de8dec75d7aab85b567b6ccd41ad312451b948a7413f0a142fd40d49347"), EmptyUncleHash)
}

func TestHeaderJSON(t *testing.T) {
	h := &Header{
		ParentHash: common.HexToHash("0x01"),
		UncleHash:  EmptyUncleHash,
		Coinbase:   common.HexToAddress("0x02"),
		Difficulty: big.NewInt(131072),
		Number:     9069000,
		GasLimit:   10000000,
		GasUsed:    21000,
		Time:       1575764709,
		Extra:      []byte("extra"),
		Nonce:      EncodeNonce(42),
	}
	h.Bloom.Add([]byte("json"))

	enc, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Contains(t, string(enc), `"number":"0x8a61c8"`)
	assert.Contains(t, string(enc), `"hash":"`+h.Hash().Hex()+`"`)

	dec := new(Header)
	require.NoError(t, json.Unmarshal(enc, dec))
	assert.Equal(t, h.Hash(), dec.Hash())
	assert.Equal(t, uint64(42), dec.Nonce.Uint64())

	assert.Error(t, json.Unmarshal([]byte(`{"number":"0x1"}`), new(Header)))
}

func TestCopyHeader(t *testing.T) {
	h := &Header{Difficulty: big.NewInt(10), Extra: []byte{1, 2}, Number: 5}
	cpy := CopyHeader(h)
	require.Equal(t, h.Hash(), cpy.Hash())

	cpy.Difficulty.SetInt64(11)
	cpy.Extra[0] = 9
	cpy.Number = 6
	assert.Equal(t, int64(10), h.Difficulty.Int64())
	assert.Equal(t, byte(1), h.Extra[0])
	assert.Equal(t, uint64(5), h.Number)

	// a missing difficulty copies as zero
	assert.Equal(t, 0, CopyHeader(&Header{}).Difficulty.Sign())
}
