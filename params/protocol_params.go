// Copyright 2015 The go-ethereum Authors
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

package params

const (
	MaxUncleDepth uint64 = 8 // Maximum distance between a block and an uncle it may include.
	MaxUncles     int    = 2 // Maximum number of uncles allowed in a single block.

	GasLimitBoundDivisor uint64 = 1024    // The bound divisor of the gas limit, used in update calculations.
	MinGasLimit          uint64 = 5000    // Minimum the gas limit may ever be.
	TargetGasLimit       uint64 = 4712388 // The artificial target
	MaximumExtraDataSize uint64 = 32      // Maximum size extra data may be after Genesis.

	MinimumDifficulty      uint64 = 131072 // The minimum that the difficulty may ever be.
	DifficultyBoundDivisor uint64 = 2048   // The bound divisor of the difficulty, used in the update calculations.
	DurationLimit          uint64 = 13     // The decision boundary on the blocktime duration used to determine whether difficulty should go up or not.
	ExpDiffPeriod          uint64 = 100000 // Number of blocks per step of the exponential "bomb" factor.
)
