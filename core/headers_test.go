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
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethereumproject/forkrules/consensus"
	"github.com/ethereumproject/forkrules/core/state"
	"github.com/ethereumproject/forkrules/core/types"
	"github.com/ethereumproject/forkrules/params"
)

// timeDifficulty is a difficulty function exposing its inputs.
func timeDifficulty(parent *types.Header, time uint64) *big.Int {
	return new(big.Int).SetUint64(parent.Number*1000 + time)
}

func testParent() *types.Header {
	return &types.Header{
		Root:       common.HexToHash("0xaa"),
		UncleHash:  types.EmptyUncleHash,
		Difficulty: big.NewInt(131072),
		Number:     10,
		GasLimit:   8000000,
		GasUsed:    8000000,
		Time:       100,
	}
}

func TestCreateHeaderFromParent(t *testing.T) {
	parent := testParent()
	coinbase := common.HexToAddress("0xc0ffee")

	header, err := CreateHeaderFromParent(parent, HeaderParams{Coinbase: coinbase, Extra: []byte("x")}, timeDifficulty)
	require.NoError(t, err)

	assert.Equal(t, uint64(11), header.Number)
	assert.Equal(t, parent.Hash(), header.ParentHash)
	assert.Equal(t, parent.Root, header.Root)
	assert.Equal(t, types.EmptyUncleHash, header.UncleHash)
	assert.Equal(t, types.EmptyRootHash, header.TxHash)
	assert.Equal(t, types.EmptyRootHash, header.ReceiptHash)
	assert.Equal(t, coinbase, header.Coinbase)
	assert.Equal(t, uint64(101), header.Time)
	assert.Equal(t, int64(10101), header.Difficulty.Int64())
	assert.Equal(t, uint64(8003907), header.GasLimit)
	assert.Equal(t, uint64(0), header.GasUsed)
	assert.Equal(t, types.Bloom{}, header.Bloom)
	assert.Equal(t, []byte("x"), header.Extra)
}

func TestCreateHeaderFromParentExplicit(t *testing.T) {
	header, err := CreateHeaderFromParent(testParent(), HeaderParams{Time: 150, GasLimit: 6000000}, timeDifficulty)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), header.Time)
	assert.Equal(t, int64(10150), header.Difficulty.Int64())
	assert.Equal(t, uint64(6000000), header.GasLimit)
}

func TestCreateHeaderOlderTime(t *testing.T) {
	for _, ts := range []uint64{99, 100} {
		_, err := CreateHeaderFromParent(testParent(), HeaderParams{Time: ts}, timeDifficulty)
		assert.True(t, errors.Is(err, consensus.ErrOlderBlockTime), "time %d: %v", ts, err)
	}
}

func TestCreateHeaderExtraTooLong(t *testing.T) {
	_, err := CreateHeaderFromParent(testParent(), HeaderParams{Extra: make([]byte, params.MaximumExtraDataSize+1)}, timeDifficulty)
	assert.Error(t, err)
}

func TestConfigureHeader(t *testing.T) {
	parent := testParent()
	header, err := CreateHeaderFromParent(parent, HeaderParams{}, timeDifficulty)
	require.NoError(t, err)

	moved, err := ConfigureHeader(header, parent, HeaderParams{Time: 200}, timeDifficulty)
	require.NoError(t, err)
	assert.Equal(t, uint64(200), moved.Time)
	assert.Equal(t, int64(10200), moved.Difficulty.Int64())
	assert.Equal(t, header.GasLimit, moved.GasLimit)

	// the input header is untouched
	assert.Equal(t, uint64(101), header.Time)
	assert.Equal(t, int64(10101), header.Difficulty.Int64())

	_, err = ConfigureHeader(header, header, HeaderParams{}, timeDifficulty)
	assert.Error(t, err)
}

func TestCalcGasLimit(t *testing.T) {
	tests := []struct {
		limit, used, want uint64
	}{
		{8000000, 8000000, 8003907},
		{8000000, 0, 7992189},
		{params.TargetGasLimit, 0, params.TargetGasLimit},
		{params.MinGasLimit, 0, params.MinGasLimit + params.MinGasLimit/params.GasLimitBoundDivisor - 1},
	}
	for _, tt := range tests {
		got := CalcGasLimit(&types.Header{GasLimit: tt.limit, GasUsed: tt.used})
		assert.Equal(t, tt.want, got, "limit %d used %d", tt.limit, tt.used)
	}
}

func saturatedBloom() types.Bloom {
	var b types.Bloom
	for i := range b {
		b[i] = 0xff
	}
	return b
}

func TestAddReceiptToHeader(t *testing.T) {
	header := &types.Header{Difficulty: big.NewInt(1), Number: 1}
	receipt := &types.Receipt{PostStateOrStatus: types.ReceiptStatusSuccessful, CumulativeGasUsed: 21000, Bloom: saturatedBloom()}

	folded := AddReceiptToHeader(header, receipt)
	assert.Equal(t, saturatedBloom(), folded.Bloom)
	assert.Equal(t, uint64(21000), folded.GasUsed)

	assert.Equal(t, types.Bloom{}, header.Bloom)
	assert.Equal(t, uint64(0), header.GasUsed)
}

func TestAddReceiptToHeaderCommutes(t *testing.T) {
	header := &types.Header{Difficulty: big.NewInt(1)}
	r1 := &types.Receipt{CumulativeGasUsed: 21000}
	r1.Bloom.Add([]byte("r1"))
	r2 := &types.Receipt{CumulativeGasUsed: 42000}
	r2.Bloom.Add([]byte("r2"))

	a := AddReceiptToHeader(AddReceiptToHeader(header, r1), r2)
	b := AddReceiptToHeader(AddReceiptToHeader(header, r2), r1)
	assert.Equal(t, a.Bloom, b.Bloom)
	assert.True(t, a.Bloom.Test([]byte("r1")))
	assert.True(t, a.Bloom.Test([]byte("r2")))
	// the gas used is the last receipt's
	assert.Equal(t, uint64(42000), a.GasUsed)
	assert.Equal(t, uint64(21000), b.GasUsed)
}

func TestAddReceiptToHeaderWithRoot(t *testing.T) {
	root := common.HexToHash("0xbeef")
	header := &types.Header{Difficulty: big.NewInt(1), Root: common.HexToHash("0x01")}
	receipt := &types.Receipt{PostStateOrStatus: root.Bytes(), CumulativeGasUsed: 21000, Bloom: saturatedBloom()}

	folded := AddReceiptToHeaderWithRoot(header, receipt, state.StaticRoot(root))
	assert.Equal(t, root, folded.Root)
	assert.Equal(t, saturatedBloom(), folded.Bloom)
	assert.Equal(t, uint64(21000), folded.GasUsed)
	assert.Equal(t, common.HexToHash("0x01"), header.Root)

	// the cheap fold leaves the root alone
	assert.Equal(t, header.Root, FoldReceipt(header, receipt, state.StaticRoot(root)).Root)
}
