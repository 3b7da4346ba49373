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
	"bytes"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/glog"
	"gopkg.in/fatih/set.v0"

	"github.com/ethereumproject/forkrules/consensus"
	"github.com/ethereumproject/forkrules/core/state"
	"github.com/ethereumproject/forkrules/core/types"
	"github.com/ethereumproject/forkrules/core/vm"
	"github.com/ethereumproject/forkrules/logger"
	"github.com/ethereumproject/forkrules/metrics"
)

// ErrGasRemaining is returned when a computation reports more gas left than
// its transaction was given.
var ErrGasRemaining = errors.New("gas remaining exceeds transaction gas")

// Transaction is the part of a transaction receipt construction depends on.
type Transaction interface {
	// Gas is the gas limit the transaction was executed with.
	Gas() uint64
}

// Message is a Transaction known by its hash and gas limit.
type Message struct {
	Hash     common.Hash
	GasLimit uint64
}

func (m Message) Gas() uint64 { return m.GasLimit }

// StatusCodes are the EIP-658 receipt status values of a rule set.
type StatusCodes struct {
	Success []byte
	Failure []byte
}

// EIP658StatusCodes are the status codes introduced by Byzantium.
var EIP658StatusCodes = &StatusCodes{
	Success: types.ReceiptStatusSuccessful,
	Failure: types.ReceiptStatusFailed,
}

// Valid reports whether status is one of the codes.
func (c *StatusCodes) Valid(status []byte) bool {
	return bytes.Equal(status, c.Success) || bytes.Equal(status, c.Failure)
}

// ReceiptBuilder builds the receipt of tx, executed on top of a block whose
// header so far is base.
type ReceiptBuilder func(base *types.Header, tx Transaction, c vm.Computation, st state.Reader) (*types.Receipt, error)

// ReceiptValidator checks the structure of a single receipt.
type ReceiptValidator func(receipt *types.Receipt) error

// MakeFrontierReceipt fills in the fields of a receipt every rule set shares:
// logs, their bloom and the cumulative gas used. The status field is left
// empty for the active rule set to fill in.
func MakeFrontierReceipt(base *types.Header, tx Transaction, c vm.Computation) (*types.Receipt, error) {
	remaining := c.GasRemaining()
	if remaining > tx.Gas() {
		return nil, fmt.Errorf("%w: %d > %d", ErrGasRemaining, remaining, tx.Gas())
	}
	used := tx.Gas() - remaining
	refund := c.GasRefund()
	if limit := used / 2; refund > limit {
		refund = limit
	}
	logs := c.Logs()
	receipt := &types.Receipt{
		CumulativeGasUsed: base.GasUsed + used - refund,
		Bloom:             types.LogsBloom(logs),
		Logs:              logs,
	}
	metrics.ReceiptMake.Mark(1)
	return receipt, nil
}

// BuildLegacyReceipt is the receipt builder of the rule sets whose receipts
// carry the post-transaction state root.
func BuildLegacyReceipt(base *types.Header, tx Transaction, c vm.Computation, st state.Reader) (*types.Receipt, error) {
	receipt, err := MakeFrontierReceipt(base, tx, c)
	if err != nil {
		return nil, err
	}
	receipt.PostStateOrStatus = st.IntermediateRoot().Bytes()
	return receipt, nil
}

// MakeStatusReceiptBuilder returns a receipt builder recording the outcome of
// the computation as one of codes. The state is not consulted.
func MakeStatusReceiptBuilder(codes *StatusCodes) ReceiptBuilder {
	success, failure := common.CopyBytes(codes.Success), common.CopyBytes(codes.Failure)
	return func(base *types.Header, tx Transaction, c vm.Computation, _ state.Reader) (*types.Receipt, error) {
		receipt, err := MakeFrontierReceipt(base, tx, c)
		if err != nil {
			return nil, err
		}
		if c.IsError() {
			return receipt.WithStatus(failure), nil
		}
		return receipt.WithStatus(success), nil
	}
}

// ValidateLegacyReceipt checks that every log address and topic of receipt is
// present in its bloom.
func ValidateLegacyReceipt(receipt *types.Receipt) error {
	checked := set.New()
	for _, log := range receipt.Logs {
		if !checked.Has(log.Address) {
			if !receipt.Bloom.Test(log.Address.Bytes()) {
				return invalidReceipt(metrics.ReceiptInvalidBloom, fmt.Errorf("%w: address %x", consensus.ErrLogNotInBloom, log.Address))
			}
			checked.Add(log.Address)
		}
		for _, topic := range log.Topics {
			if checked.Has(topic) {
				continue
			}
			if !receipt.Bloom.Test(topic.Bytes()) {
				return invalidReceipt(metrics.ReceiptInvalidBloom, fmt.Errorf("%w: topic %x", consensus.ErrLogNotInBloom, topic))
			}
			checked.Add(topic)
		}
	}
	return nil
}

// MakeStatusReceiptValidator returns a validator running inherited first, then
// requiring the receipt's status to be exactly one of codes.
func MakeStatusReceiptValidator(codes *StatusCodes, inherited ReceiptValidator) ReceiptValidator {
	success, failure := common.CopyBytes(codes.Success), common.CopyBytes(codes.Failure)
	return func(receipt *types.Receipt) error {
		if inherited != nil {
			if err := inherited(receipt); err != nil {
				return err
			}
		}
		if bytes.Equal(receipt.PostStateOrStatus, success) || bytes.Equal(receipt.PostStateOrStatus, failure) {
			return nil
		}
		return invalidReceipt(metrics.ReceiptInvalidStatus, &consensus.InvalidReceiptStatusError{
			Status:  common.CopyBytes(receipt.PostStateOrStatus),
			Success: success,
			Failure: failure,
		})
	}
}

func invalidReceipt(m interface{ Mark(int64) }, err error) error {
	m.Mark(1)
	metrics.ReceiptInvalid.Mark(1)
	glog.V(logger.Debug).Infof("invalid receipt: %v", err)
	return err
}

var (
	_ ReceiptBuilder   = BuildLegacyReceipt
	_ ReceiptValidator = ValidateLegacyReceipt
)
