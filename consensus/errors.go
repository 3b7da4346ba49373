// Copyright 2017 The go-ethereum Authors
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

// Package consensus holds the validation errors shared by the fork rules.
// All of them are deterministic functions of consensus data: a caller either
// rejects the block or aborts, it never retries.
package consensus

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	// ErrDepthExceeded is returned when an uncle is included further away from
	// its nephew than the active rules allow.
	ErrDepthExceeded = errors.New("uncle inclusion depth exceeded")

	// ErrUncleAhead is returned when an uncle's number is above the number of
	// the block including it.
	ErrUncleAhead = errors.New("uncle number above including block")

	// ErrInvalidReceiptStatus is returned when a receipt's status field is not
	// one of the status codes of the active rules.
	ErrInvalidReceiptStatus = errors.New("invalid receipt status")

	// ErrLogNotInBloom is returned when a receipt log's address or topic is
	// missing from the receipt's bloom filter.
	ErrLogNotInBloom = errors.New("log entry not present in receipt bloom")

	// ErrOlderBlockTime is returned when a header's timestamp is not after its
	// parent's.
	ErrOlderBlockTime = errors.New("timestamp older than parent")

	// ErrInvalidDifficulty is returned when a header's difficulty is not the
	// one the active rules compute from its parent.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrTooManyUncles is returned when a block includes more uncles than
	// allowed.
	ErrTooManyUncles = errors.New("too many uncles")

	// ErrDuplicateUncle is returned when a block includes the same uncle
	// more than once.
	ErrDuplicateUncle = errors.New("duplicate uncle")
)

// DepthExceededError describes an uncle included too deep.
type DepthExceededError struct {
	Number   uint64 // Number of the including block
	Uncle    uint64 // Number of the uncle
	MaxDepth uint64
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("%v: uncle #%d in block #%d has depth %d, max %d",
		ErrDepthExceeded, e.Uncle, e.Number, e.Number-e.Uncle, e.MaxDepth)
}

func (e *DepthExceededError) Unwrap() error { return ErrDepthExceeded }

// InvalidReceiptStatusError names both allowed status codes and the value that
// was found instead.
type InvalidReceiptStatusError struct {
	Status  []byte
	Success []byte
	Failure []byte
}

func (e *InvalidReceiptStatusError) Error() string {
	return fmt.Sprintf("the receipt's status must be one of [%s, %s]. Got: %s",
		hexutil.Encode(e.Success), hexutil.Encode(e.Failure), hexutil.Encode(e.Status))
}

func (e *InvalidReceiptStatusError) Unwrap() error { return ErrInvalidReceiptStatus }
