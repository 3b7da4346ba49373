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

package ethash

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/ethereumproject/forkrules/core/types"
	"github.com/ethereumproject/forkrules/params"
)

// difficultyBoundDivisorBitShift is the bound divisor of the difficulty (2048),
// expressed as the right shift used for the division.
const difficultyBoundDivisorBitShift = 11

// DifficultyFunc computes the difficulty of a block created at time on top of
// parent. Implementations are pure.
type DifficultyFunc func(parent *types.Header, time uint64) *big.Int

// timeDelta is time - parentTime, or zero when the block is not after its parent.
func timeDelta(time, parentTime uint64) uint64 {
	if time <= parentTime {
		return 0
	}
	return time - parentTime
}

func parentDifficulty(parent *types.Header) *uint256.Int {
	if parent.Difficulty == nil {
		return new(uint256.Int)
	}
	d, overflow := uint256.FromBig(parent.Difficulty)
	if overflow {
		d = new(uint256.Int).SetAllOne()
	}
	return d
}

// CalcDifficultyFrontier is the difficulty adjustment algorithm. It returns the
// difficulty that a new block should have when created at time given the parent
// block's time and difficulty. The calculation uses the Frontier rules.
func CalcDifficultyFrontier(parent *types.Header, time uint64) *big.Int {
	/*
		Algorithm
		block_diff = pdiff + pdiff / 2048 * (1 if time - ptime < 13 else -1) + int(2^((num // 100000) - 2))
	*/
	pDiff := parentDifficulty(parent)
	adjust := pDiff.Clone()
	adjust.Rsh(adjust, difficultyBoundDivisorBitShift) // adjust: pDiff / 2048

	if timeDelta(time, parent.Time) < params.DurationLimit {
		pDiff.Add(pDiff, adjust)
	} else {
		pDiff.Sub(pDiff, adjust)
	}
	if pDiff.LtUint64(params.MinimumDifficulty) {
		pDiff.SetUint64(params.MinimumDifficulty)
	}

	if periodCount := (parent.Number + 1) / params.ExpDiffPeriod; periodCount > 1 {
		// diff = diff + 2^(periodCount - 2)
		expDiff := adjust.SetOne()
		expDiff.Lsh(expDiff, uint(periodCount-2))
		pDiff.Add(pDiff, expDiff)
	}
	return pDiff.ToBig()
}

// CalcDifficultyHomestead is the difficulty adjustment algorithm of EIP-2. It
// returns the difficulty that a new block should have when created at time
// given the parent block's time and difficulty.
func CalcDifficultyHomestead(parent *types.Header, time uint64) *big.Int {
	/*
		Algorithm:
		block_diff = pdiff + pdiff / 2048 * max(1 - (time - ptime) / 10, -99) + 2 ^ int((num / 100000) - 2))

		Using unsigned ints:
		block_diff = pdiff - pdiff / 2048 * max((time - ptime) / 10 - 1, 99) + 2 ^ int((num / 100000) - 2))
	*/
	pDiff := parentDifficulty(parent)
	adjust := pDiff.Clone()
	adjust.Rsh(adjust, difficultyBoundDivisorBitShift) // adjust: pDiff / 2048

	x := timeDelta(time, parent.Time) / 10
	neg := true
	if x == 0 {
		x = 1
		neg = false
	} else if x >= 100 {
		x = 99
	} else {
		x = x - 1
	}
	adjust.Mul(adjust, uint256.NewInt(x))
	if neg {
		pDiff.Sub(pDiff, adjust)
	} else {
		pDiff.Add(pDiff, adjust)
	}
	if pDiff.LtUint64(params.MinimumDifficulty) {
		pDiff.SetUint64(params.MinimumDifficulty)
	}
	// the exponential factor, a.k.a "the bomb"
	if periodCount := (parent.Number + 1) / params.ExpDiffPeriod; periodCount > 1 {
		expFactor := adjust.Lsh(adjust.SetOne(), uint(periodCount-2))
		pDiff.Add(pDiff, expFactor)
	}
	return pDiff.ToBig()
}

// MakeDifficultyCalculator returns the EIP-100 difficulty function, whose
// adjustment accounts for the parent's uncles, with the exponential factor
// computed on a fake block number bombDelay blocks behind the real one
// (EIP-649, EIP-1234, EIP-2384).
func MakeDifficultyCalculator(bombDelay uint64) DifficultyFunc {
	// The calculations below look at the parent number, which is 1 below
	// the block number. Thus we remove one from the delay given.
	var bombDelayFromParent uint64
	if bombDelay > 0 {
		bombDelayFromParent = bombDelay - 1
	}
	return func(parent *types.Header, time uint64) *big.Int {
		/*
			https://github.com/ethereum/EIPs/issues/100
			child_diff = max(pdiff + (pdiff // 2048) * max((2 if len(parent.uncles) else 1) - ((timestamp - parent.timestamp) // 9), -99), MIN_DIFF)
		*/
		x := timeDelta(time, parent.Time) / 9
		c := uint64(1)
		if parent.UncleHash != types.EmptyUncleHash {
			c = 2
		}
		xNeg := x >= c
		if xNeg {
			x = x - c
		} else {
			x = c - x
		}
		if x > 99 {
			x = 99
		}
		pDiff := parentDifficulty(parent)
		y := pDiff.Clone()
		y.Rsh(y, difficultyBoundDivisorBitShift) // y: pdiff / 2048
		z := new(uint256.Int).Mul(y, uint256.NewInt(x))

		if xNeg {
			y.Sub(pDiff, z)
		} else {
			y.Add(pDiff, z)
		}
		if y.LtUint64(params.MinimumDifficulty) {
			y.SetUint64(params.MinimumDifficulty)
		}
		// calculate a fake block number for the ice-age delay
		if parent.Number >= bombDelayFromParent {
			if fakeBlockNumber := parent.Number - bombDelayFromParent; fakeBlockNumber >= 2*params.ExpDiffPeriod {
				z.SetOne()
				z.Lsh(z, uint(fakeBlockNumber/params.ExpDiffPeriod-2))
				y.Add(z, y)
			}
		}
		return y.ToBig()
	}
}
