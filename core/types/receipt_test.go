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
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethereumproject/forkrules/core/vm"
)

func TestEIP658RLPRoundTrip(t *testing.T) {
	for _, status := range [][]byte{ReceiptStatusSuccessful, ReceiptStatusFailed} {
		r1 := NewReceipt(status, 4095)
		enc, err := rlp.EncodeToBytes(r1)
		require.NoError(t, err)

		var r2 Receipt
		require.NoError(t, rlp.DecodeBytes(enc, &r2))
		assert.Equal(t, r1.Status(), r2.Status())
		assert.Equal(t, uint64(4095), r2.CumulativeGasUsed)
		_, ok := r2.PostState()
		assert.False(t, ok)
	}
}

func TestPostStateRLPRoundTrip(t *testing.T) {
	root := make([]byte, common.HashLength)
	for i := range root {
		root[i] = byte(i)
	}
	r1 := NewReceipt(root, 21000)
	r1.Logs = vm.Logs{vm.NewLog(common.HexToAddress("0x01"), []common.Hash{common.HexToHash("0x02")}, []byte{3})}
	r1.Bloom = LogsBloom(r1.Logs)

	enc, err := rlp.EncodeToBytes(r1)
	require.NoError(t, err)

	var r2 Receipt
	require.NoError(t, rlp.DecodeBytes(enc, &r2))

	got, ok := r2.PostState()
	require.True(t, ok)
	assert.Equal(t, common.BytesToHash(root), got)
	assert.Equal(t, TxStatusUnknown, r2.Status())
	assert.Equal(t, r1.Bloom, r2.Bloom)
	require.Len(t, r2.Logs, 1)
	assert.Equal(t, r1.Logs[0].Address, r2.Logs[0].Address)
}

func TestReceiptStatusEncoding(t *testing.T) {
	// The failure code is the RLP empty string, the success code a single 0x01.
	enc, err := rlp.EncodeToBytes(ReceiptStatusFailed)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80}, enc)

	enc, err = rlp.EncodeToBytes(ReceiptStatusSuccessful)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, enc)
}

func TestReceiptStatus(t *testing.T) {
	tests := []struct {
		status []byte
		want   ReceiptStatus
	}{
		{nil, TxFailure},
		{[]byte{}, TxFailure},
		{[]byte{0x01}, TxSuccess},
		{[]byte{0x00}, TxStatusUnknown},
		{[]byte{0x02}, TxStatusUnknown},
		{common.Hash{}.Bytes(), TxStatusUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewReceipt(tt.status, 0).Status(), "status %x", tt.status)
	}
}

func TestReceiptWithStatus(t *testing.T) {
	r := NewReceipt(common.Hash{1}.Bytes(), 100)
	r.Logs = vm.Logs{vm.NewLog(common.Address{}, nil, nil)}

	cpy := r.WithStatus(ReceiptStatusSuccessful)
	assert.Equal(t, TxSuccess, cpy.Status())
	assert.Equal(t, r.CumulativeGasUsed, cpy.CumulativeGasUsed)

	// the original is left untouched
	_, ok := r.PostState()
	assert.True(t, ok)
	cpy.Logs[0] = nil
	assert.NotNil(t, r.Logs[0])
}

func TestReceiptsGetRlp(t *testing.T) {
	receipts := Receipts{NewReceipt(ReceiptStatusSuccessful, 1), NewReceipt(ReceiptStatusFailed, 2)}
	assert.Equal(t, 2, receipts.Len())
	enc, err := rlp.EncodeToBytes(receipts[1])
	require.NoError(t, err)
	assert.True(t, bytes.Equal(enc, receipts.GetRlp(1)))
}

func TestReceiptsDeriveSha(t *testing.T) {
	assert.Equal(t, EmptyRootHash, Receipts{}.DeriveSha())
	assert.Equal(t, EmptyRootHash, Receipts(nil).DeriveSha())

	r1 := NewReceipt(ReceiptStatusSuccessful, 21000)
	r2 := NewReceipt(ReceiptStatusFailed, 42000)
	root := Receipts{r1, r2}.DeriveSha()
	assert.NotEqual(t, EmptyRootHash, root)
	assert.Equal(t, root, Receipts{r1.Copy(), r2.Copy()}.DeriveSha())
	// the trie is keyed by position
	assert.NotEqual(t, root, Receipts{r2, r1}.DeriveSha())
}
