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
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ethereumproject/forkrules/consensus"
	"github.com/ethereumproject/forkrules/core/types"
	"github.com/ethereumproject/forkrules/params"
)

// Ethash proof-of-work protocol constants.
var (
	FrontierBlockReward       = uint256.NewInt(5e+18) // Block reward in wei for successfully mining a block
	ByzantiumBlockReward      = uint256.NewInt(3e+18) // Block reward in wei for successfully mining a block upward from Byzantium
	ConstantinopleBlockReward = uint256.NewInt(2e+18) // Block reward in wei for successfully mining a block upward from Constantinople
)

// Difficulty bomb delays, in blocks.
const (
	ByzantiumBombDelay      uint64 = 3000000 // EIP-649
	ConstantinopleBombDelay uint64 = 5000000 // EIP-1234
	MuirGlacierBombDelay    uint64 = 9000000 // EIP-2384
)

const (
	uncleRewardDivisor  = 8
	nephewRewardDivisor = 32
)

// UncleRewardFunc computes the reward of an uncle included in block number.
type UncleRewardFunc func(number uint64, uncle *types.Header) (*uint256.Int, error)

// MakeUncleRewardFunc returns the uncle reward curve scaled by blockReward:
// an uncle at depth d earns (8-d)*blockReward/8. Depths beyond maxDepth are
// rejected, not clamped. The reward is copied so later changes to the
// argument are not observed.
func MakeUncleRewardFunc(blockReward *uint256.Int, maxDepth uint64) UncleRewardFunc {
	reward := blockReward.Clone()
	if maxDepth > params.MaxUncleDepth {
		panic(fmt.Sprintf("uncle depth %d exceeds the reward curve (%d)", maxDepth, params.MaxUncleDepth))
	}
	return func(number uint64, uncle *types.Header) (*uint256.Int, error) {
		if uncle.Number > number {
			return nil, fmt.Errorf("%w: uncle #%d, block #%d", consensus.ErrUncleAhead, uncle.Number, number)
		}
		depth := number - uncle.Number
		if depth > maxDepth {
			return nil, &consensus.DepthExceededError{Number: number, Uncle: uncle.Number, MaxDepth: maxDepth}
		}
		r := uint256.NewInt(uncleRewardDivisor - depth)
		r.Mul(r, reward)
		return r.Div(r, uint256.NewInt(uncleRewardDivisor)), nil
	}
}

// NephewReward is the bonus a miner earns per included uncle.
func NephewReward(blockReward *uint256.Int) *uint256.Int {
	return new(uint256.Int).Div(blockReward, uint256.NewInt(nephewRewardDivisor))
}
