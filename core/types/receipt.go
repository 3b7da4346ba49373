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
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/ethereumproject/forkrules/core/vm"
)

// EIP-658 status codes. The failure code is the empty string, the RLP zero.
// Neither is 32 bytes long so a status never collides with a post-state root.
var (
	ReceiptStatusFailed     = []byte{}
	ReceiptStatusSuccessful = []byte{0x01}
)

type ReceiptStatus byte

const (
	TxFailure       ReceiptStatus = 0
	TxSuccess       ReceiptStatus = 1
	TxStatusUnknown ReceiptStatus = 0xFF
)

// Receipt represents the results of a transaction.
type Receipt struct {
	// PostStateOrStatus is either the 32 byte state root after the
	// transaction (legacy rule sets) or an EIP-658 status code.
	PostStateOrStatus []byte
	CumulativeGasUsed uint64
	Bloom             Bloom
	Logs              vm.Logs
}

type receiptRLP struct {
	PostStateOrStatus []byte
	CumulativeGasUsed uint64
	Bloom             Bloom
	Logs              vm.Logs
}

// NewReceipt creates a barebone transaction receipt, copying the init fields.
func NewReceipt(postStateOrStatus []byte, cumulativeGasUsed uint64) *Receipt {
	return &Receipt{PostStateOrStatus: common.CopyBytes(postStateOrStatus), CumulativeGasUsed: cumulativeGasUsed}
}

// EncodeRLP implements rlp.Encoder, and flattens the consensus fields of a receipt
// into an RLP stream.
func (r *Receipt) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &receiptRLP{r.PostStateOrStatus, r.CumulativeGasUsed, r.Bloom, r.Logs})
}

// DecodeRLP implements rlp.Decoder, and loads the consensus fields of a receipt
// from an RLP stream. The status field is kept verbatim; deciding whether it
// is acceptable belongs to the active rule set's validator.
func (r *Receipt) DecodeRLP(s *rlp.Stream) error {
	var dec receiptRLP
	if err := s.Decode(&dec); err != nil {
		return err
	}
	r.PostStateOrStatus, r.CumulativeGasUsed, r.Bloom, r.Logs = dec.PostStateOrStatus, dec.CumulativeGasUsed, dec.Bloom, dec.Logs
	return nil
}

// Status interprets the status field as an EIP-658 code.
func (r *Receipt) Status() ReceiptStatus {
	switch {
	case bytes.Equal(r.PostStateOrStatus, ReceiptStatusSuccessful):
		return TxSuccess
	case bytes.Equal(r.PostStateOrStatus, ReceiptStatusFailed):
		return TxFailure
	}
	return TxStatusUnknown
}

// PostState returns the post-transaction state root of a legacy receipt.
func (r *Receipt) PostState() (common.Hash, bool) {
	if len(r.PostStateOrStatus) != common.HashLength {
		return common.Hash{}, false
	}
	return common.BytesToHash(r.PostStateOrStatus), true
}

// Copy returns a copy of the receipt. Logs are shared.
func (r *Receipt) Copy() *Receipt {
	cpy := *r
	cpy.PostStateOrStatus = common.CopyBytes(r.PostStateOrStatus)
	if r.Logs != nil {
		cpy.Logs = append(vm.Logs(nil), r.Logs...)
	}
	return &cpy
}

// WithStatus returns a copy of the receipt carrying the given status field.
func (r *Receipt) WithStatus(postStateOrStatus []byte) *Receipt {
	cpy := r.Copy()
	cpy.PostStateOrStatus = common.CopyBytes(postStateOrStatus)
	return cpy
}

// String implements the Stringer interface.
func (r *Receipt) String() string {
	return fmt.Sprintf("receipt{med=%x cgas=%v bloom=%x logs=%v}", r.PostStateOrStatus, r.CumulativeGasUsed, r.Bloom, r.Logs)
}

// Receipts is a wrapper around a Receipt array.
type Receipts []*Receipt

// Len returns the number of receipts in this list.
func (r Receipts) Len() int { return len(r) }

// GetRlp returns the RLP encoding of one receipt from the list.
func (r Receipts) GetRlp(i int) []byte {
	bytes, err := rlp.EncodeToBytes(r[i])
	if err != nil {
		panic(err)
	}
	return bytes
}
