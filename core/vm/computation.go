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

// Computation is the read-only outcome of executing a single transaction, as
// reported by the interpreter. Receipt construction depends on nothing else
// from the execution.
type Computation interface {
	// IsError reports whether execution ended in an error (revert, out of
	// gas, invalid opcode, ...).
	IsError() bool
	// Logs returns the logs emitted during a successful execution.
	Logs() Logs
	// GasRemaining is the gas left unused out of the transaction's gas limit.
	GasRemaining() uint64
	// GasRefund is the refund counter accumulated during execution.
	GasRefund() uint64
}

// ExecutionResult is a plain Computation, used wherever the interpreter's
// outcome has already been captured (tests, replays, the command line tool).
type ExecutionResult struct {
	Err       error
	Emitted   Logs
	Remaining uint64
	Refund    uint64
}

func (r *ExecutionResult) IsError() bool        { return r.Err != nil }
func (r *ExecutionResult) GasRemaining() uint64 { return r.Remaining }
func (r *ExecutionResult) GasRefund() uint64    { return r.Refund }

// Logs returns the emitted logs. A failed execution reverts its logs.
func (r *ExecutionResult) Logs() Logs {
	if r.IsError() {
		return nil
	}
	return r.Emitted
}
