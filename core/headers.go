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
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/glog"

	"github.com/ethereumproject/forkrules/consensus"
	"github.com/ethereumproject/forkrules/consensus/ethash"
	"github.com/ethereumproject/forkrules/core/state"
	"github.com/ethereumproject/forkrules/core/types"
	"github.com/ethereumproject/forkrules/logger"
	"github.com/ethereumproject/forkrules/metrics"
	"github.com/ethereumproject/forkrules/params"
)

// HeaderParams holds the block specific fields of a header to create. Zero
// values are filled in from the parent.
type HeaderParams struct {
	Coinbase common.Address
	Time     uint64 // defaults to parent.Time + 1
	GasLimit uint64 // defaults to CalcGasLimit(parent)
	Extra    []byte
}

// HeaderCreator builds the shell of the header following parent, using the
// given difficulty function.
type HeaderCreator func(parent *types.Header, opts HeaderParams, difficulty ethash.DifficultyFunc) (*types.Header, error)

// ReceiptFolder returns a new header with the effects of receipt folded in.
// The state is the one the receipt was produced against.
type ReceiptFolder func(header *types.Header, receipt *types.Receipt, st state.Reader) *types.Header

// CreateHeaderFromParent builds the next header on top of parent. The roots
// of the new header are those of an empty block carrying parent's state; the
// bloom and gas used start empty and grow as receipts are folded in.
func CreateHeaderFromParent(parent *types.Header, opts HeaderParams, difficulty ethash.DifficultyFunc) (*types.Header, error) {
	header := &types.Header{
		ParentHash:  parent.Hash(),
		UncleHash:   types.EmptyUncleHash,
		Coinbase:    opts.Coinbase,
		Root:        parent.Root,
		TxHash:      types.EmptyRootHash,
		ReceiptHash: types.EmptyRootHash,
		Number:      parent.Number + 1,
	}
	if err := configure(header, parent, opts, difficulty); err != nil {
		return nil, err
	}
	metrics.HeaderCreate.Mark(1)
	glog.V(logger.Detail).Infof("created header #%d on %x (difficulty %v, gas limit %d)", header.Number, header.ParentHash[:4], header.Difficulty, header.GasLimit)
	return header, nil
}

// ConfigureHeader returns a copy of header with the non-zero opts applied.
// A change of timestamp recomputes the difficulty against parent.
func ConfigureHeader(header, parent *types.Header, opts HeaderParams, difficulty ethash.DifficultyFunc) (*types.Header, error) {
	if header.Number != parent.Number+1 {
		return nil, fmt.Errorf("header #%d does not follow parent #%d", header.Number, parent.Number)
	}
	cpy := types.CopyHeader(header)
	if opts.Coinbase != (common.Address{}) {
		cpy.Coinbase = opts.Coinbase
	}
	if opts.Time == 0 {
		opts.Time = header.Time
	}
	if opts.GasLimit == 0 {
		opts.GasLimit = header.GasLimit
	}
	if opts.Extra == nil {
		opts.Extra = header.Extra
	}
	if err := configure(cpy, parent, opts, difficulty); err != nil {
		return nil, err
	}
	return cpy, nil
}

func configure(header, parent *types.Header, opts HeaderParams, difficulty ethash.DifficultyFunc) error {
	t := opts.Time
	if t == 0 {
		t = parent.Time + 1
	}
	if t <= parent.Time {
		return fmt.Errorf("%w: %d <= parent %d", consensus.ErrOlderBlockTime, t, parent.Time)
	}
	if uint64(len(opts.Extra)) > params.MaximumExtraDataSize {
		return fmt.Errorf("extra-data too long: %d > %d", len(opts.Extra), params.MaximumExtraDataSize)
	}
	header.Time = t
	header.Difficulty = difficulty(parent, t)
	header.GasLimit = opts.GasLimit
	if header.GasLimit == 0 {
		header.GasLimit = CalcGasLimit(parent)
	}
	header.Extra = common.CopyBytes(opts.Extra)
	return nil
}

// CalcGasLimit computes the gas limit of the next block after parent.
// This is miner strategy, not consensus protocol.
func CalcGasLimit(parent *types.Header) uint64 {
	// contrib = (parentGasUsed * 3 / 2) / 1024
	contrib := (parent.GasUsed + parent.GasUsed/2) / params.GasLimitBoundDivisor

	// decay = parentGasLimit / 1024 -1
	decay := parent.GasLimit/params.GasLimitBoundDivisor - 1

	/*
		strategy: gasLimit of block-to-mine is set based on parent's
		gasUsed value.  if parentGasUsed > parentGasLimit * (2/3) then we
		increase it, otherwise lower it (or leave it unchanged if it's right
		at that usage) the amount increased/decreased depends on how far away
		from parentGasLimit * (2/3) parentGasUsed is.
	*/
	limit := parent.GasLimit - decay + contrib
	if limit < params.MinGasLimit {
		limit = params.MinGasLimit
	}
	// however, if we're now below the target (TargetGasLimit) we increase the
	// limit as much as we can (parentGasLimit / 1024 -1)
	if limit < params.TargetGasLimit {
		limit = parent.GasLimit + decay
		if limit > params.TargetGasLimit {
			limit = params.TargetGasLimit
		}
	}
	return limit
}

// AddReceiptToHeader folds receipt into a copy of header: the blooms are
// OR-ed together and the gas used becomes the receipt's cumulative gas. No
// state is merkelized, the receipt does not carry a state root.
func AddReceiptToHeader(header *types.Header, receipt *types.Receipt) *types.Header {
	cpy := types.CopyHeader(header)
	cpy.Bloom = header.Bloom.Or(receipt.Bloom)
	cpy.GasUsed = receipt.CumulativeGasUsed
	metrics.HeaderFold.Mark(1)
	return cpy
}

// AddReceiptToHeaderWithRoot is the fold of the rule sets whose receipts carry
// the post-transaction state root: on top of AddReceiptToHeader, the state
// is merkelized into the header after every transaction.
func AddReceiptToHeaderWithRoot(header *types.Header, receipt *types.Receipt, st state.Reader) *types.Header {
	cpy := AddReceiptToHeader(header, receipt)
	cpy.Root = st.IntermediateRoot()
	return cpy
}

// FoldReceipt is AddReceiptToHeader as a ReceiptFolder.
func FoldReceipt(header *types.Header, receipt *types.Receipt, _ state.Reader) *types.Header {
	return AddReceiptToHeader(header, receipt)
}

var (
	_ ReceiptFolder = FoldReceipt
	_ ReceiptFolder = AddReceiptToHeaderWithRoot
	_ HeaderCreator = CreateHeaderFromParent
)
