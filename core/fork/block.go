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

package fork

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/ethereumproject/forkrules/core"
	"github.com/ethereumproject/forkrules/core/state"
	"github.com/ethereumproject/forkrules/core/types"
	"github.com/ethereumproject/forkrules/core/vm"
	"github.com/ethereumproject/forkrules/logger"
	"github.com/ethereumproject/forkrules/metrics"
)

// ErrGasLimitReached is returned when a transaction does not fit in the gas
// left in the block.
var ErrGasLimitReached = errors.New("gas limit reached")

// ExecutedTx is a transaction along with the interpreter's outcome and the
// state right after it.
type ExecutedTx struct {
	Tx     core.Transaction
	Result vm.Computation
	State  state.Reader
}

// Block is an assembled block header with its receipts and the rules it was
// assembled under.
type Block struct {
	Header   *types.Header
	Receipts types.Receipts
	Rules    *RuleSet
}

// BuildBlock assembles the block following parent from already executed
// transactions, under the rules in effect at the new block's number. Every
// receipt is built, validated and folded into the header in turn, then the
// receipt root is derived. The transaction root is left to the caller.
func (r *Registry) BuildBlock(parent *types.Header, opts core.HeaderParams, txs []ExecutedTx) (*Block, error) {
	defer metrics.BlockTimer.UpdateSince(time.Now())

	rules := r.At(parent.Number + 1)
	header, err := rules.CreateHeader(parent, opts)
	if err != nil {
		return nil, err
	}
	receipts := make(types.Receipts, 0, len(txs))
	for i, tx := range txs {
		if header.GasUsed+tx.Tx.Gas() > header.GasLimit {
			return nil, fmt.Errorf("tx %d: %w (%d + %d > %d)", i, ErrGasLimitReached, header.GasUsed, tx.Tx.Gas(), header.GasLimit)
		}
		receipt, err := rules.MakeReceipt(header, tx.Tx, tx.Result, tx.State)
		if err != nil {
			return nil, fmt.Errorf("tx %d: %w", i, err)
		}
		if err := rules.ValidateReceipt(receipt); err != nil {
			return nil, fmt.Errorf("tx %d: %w", i, err)
		}
		header = rules.FoldReceipt(header, receipt, tx.State)
		receipts = append(receipts, receipt)
	}
	header.ReceiptHash = receipts.DeriveSha()
	glog.V(logger.Detail).Infof("assembled block #%d under %v: %d txs, %d gas", header.Number, rules, len(receipts), header.GasUsed)
	return &Block{Header: header, Receipts: receipts, Rules: rules}, nil
}

// VerifyHeader checks header against parent under the rules in effect at
// header's number.
func (r *Registry) VerifyHeader(header, parent *types.Header) error {
	return r.ForHeader(header).VerifyHeader(header, parent)
}
