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

	"github.com/ethereumproject/forkrules/core/types"
)

var (
	// ErrGasUsedMismatch is returned when a header's gas used differs from
	// the cumulative gas of its last receipt.
	ErrGasUsedMismatch = errors.New("gas used mismatch")

	// ErrBloomMismatch is returned when a header's bloom differs from the
	// union of its receipts' blooms.
	ErrBloomMismatch = errors.New("bloom mismatch")

	// ErrReceiptRootMismatch is returned when a header's receipt root is not
	// the root of its receipts.
	ErrReceiptRootMismatch = errors.New("receipt root mismatch")

	// ErrCumulativeGasDecrease is returned when a receipt reports less
	// cumulative gas than the receipt before it.
	ErrCumulativeGasDecrease = errors.New("cumulative gas used decreases")
)

// ValidateBlockReceipts validates the receipts of a block against its header:
// every receipt must pass validate, the cumulative gas must never decrease and
// must end at the header's gas used, the header bloom must be the union of
// the receipt blooms and the receipt root must match.
func ValidateBlockReceipts(header *types.Header, receipts types.Receipts, validate ReceiptValidator) error {
	var usedGas uint64
	for i, receipt := range receipts {
		if err := validate(receipt); err != nil {
			return fmt.Errorf("receipt %d: %w", i, err)
		}
		if receipt.CumulativeGasUsed < usedGas {
			return fmt.Errorf("receipt %d: %w (%v < %v)", i, ErrCumulativeGasDecrease, receipt.CumulativeGasUsed, usedGas)
		}
		usedGas = receipt.CumulativeGasUsed
	}
	if header.GasUsed != usedGas {
		return fmt.Errorf("%w (%v / %v)", ErrGasUsedMismatch, header.GasUsed, usedGas)
	}
	// Validate the received block's bloom with the one derived from the generated receipts.
	// For valid blocks this should always validate to true.
	if rbloom := types.CreateBloom(receipts); rbloom != header.Bloom {
		return fmt.Errorf("%w: block's bloom=%x vs calculated bloom=%x", ErrBloomMismatch, header.Bloom, rbloom)
	}
	if root := receipts.DeriveSha(); root != header.ReceiptHash {
		return fmt.Errorf("%w (remote: %x local: %x)", ErrReceiptRootMismatch, header.ReceiptHash, root)
	}
	return nil
}
