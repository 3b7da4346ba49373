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
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Log represents a contract log event. The consensus fields are the only ones
// carried; they are the fields that are RLP encoded into receipts.
type Log struct {
	// address of the contract that generated the event
	Address common.Address
	// list of topics provided by the contract.
	Topics []common.Hash
	// supplied by the contract, usually ABI-encoded
	Data []byte
}

// NewLog returns a new log entry, copying its topics and data.
func NewLog(address common.Address, topics []common.Hash, data []byte) *Log {
	return &Log{
		Address: address,
		Topics:  append([]common.Hash(nil), topics...),
		Data:    common.CopyBytes(data),
	}
}

func (l *Log) String() string {
	return fmt.Sprintf(`log: %x %x %x`, l.Address, l.Topics, l.Data)
}

// Logs is a list of log entries.
type Logs []*Log
