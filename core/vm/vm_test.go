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

package vm

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogCopies(t *testing.T) {
	topics := []common.Hash{common.HexToHash("0x01")}
	data := []byte{1, 2, 3}
	l := NewLog(common.HexToAddress("0xaa"), topics, data)

	topics[0] = common.Hash{}
	data[0] = 9
	assert.Equal(t, common.HexToHash("0x01"), l.Topics[0])
	assert.Equal(t, []byte{1, 2, 3}, l.Data)
}

func TestLogRLP(t *testing.T) {
	l := NewLog(common.HexToAddress("0xaa"), []common.Hash{common.HexToHash("0xbb")}, []byte{1})
	enc, err := rlp.EncodeToBytes(l)
	require.NoError(t, err)

	var dec Log
	require.NoError(t, rlp.DecodeBytes(enc, &dec))
	assert.Equal(t, *l, dec)
}

func TestExecutionResult(t *testing.T) {
	logs := Logs{NewLog(common.Address{}, nil, nil)}

	ok := &ExecutionResult{Emitted: logs, Remaining: 10, Refund: 2}
	assert.False(t, ok.IsError())
	assert.Equal(t, logs, ok.Logs())
	assert.Equal(t, uint64(10), ok.GasRemaining())
	assert.Equal(t, uint64(2), ok.GasRefund())

	// a failed execution reverts its logs
	failed := &ExecutionResult{Err: errors.New("out of gas"), Emitted: logs}
	assert.True(t, failed.IsError())
	assert.Nil(t, failed.Logs())

	var _ Computation = ok
}
