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
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethereumproject/forkrules/consensus/ethash"
	"github.com/ethereumproject/forkrules/core"
	"github.com/ethereumproject/forkrules/core/types"
	"github.com/ethereumproject/forkrules/params"
)

func TestCanonicalConstants(t *testing.T) {
	r := Mainnet()
	tests := []struct {
		fork      string
		reward    *uint256.Int
		bombDelay uint64
		status    bool
	}{
		{params.Frontier, ethash.FrontierBlockReward, 0, false},
		{params.Homestead, ethash.FrontierBlockReward, 0, false},
		{params.TangerineWhistle, ethash.FrontierBlockReward, 0, false},
		{params.SpuriousDragon, ethash.FrontierBlockReward, 0, false},
		{params.Byzantium, ethash.ByzantiumBlockReward, ethash.ByzantiumBombDelay, true},
		{params.Constantinople, ethash.ConstantinopleBlockReward, ethash.ConstantinopleBombDelay, true},
		{params.Petersburg, ethash.ConstantinopleBlockReward, ethash.ConstantinopleBombDelay, true},
		{params.Istanbul, ethash.ConstantinopleBlockReward, ethash.ConstantinopleBombDelay, true},
		{params.MuirGlacier, ethash.ConstantinopleBlockReward, ethash.MuirGlacierBombDelay, true},
	}
	for _, tt := range tests {
		rs, ok := r.ByName(tt.fork)
		require.True(t, ok, tt.fork)
		c := rs.Constants()
		assert.Equal(t, tt.reward, c.BlockReward, tt.fork)
		assert.Equal(t, tt.bombDelay, c.BombDelay, tt.fork)
		assert.Equal(t, params.MaxUncleDepth, c.MaxUncleDepth, tt.fork)
		assert.Equal(t, tt.status, c.StatusCodes != nil, tt.fork)
	}
}

func TestCanonicalDefinedBy(t *testing.T) {
	r := Mainnet()
	muir, _ := r.ByName(params.MuirGlacier)
	assert.Equal(t, params.Byzantium, muir.DefinedBy(Difficulty))
	assert.Equal(t, params.Frontier, muir.DefinedBy(UncleReward))
	assert.Equal(t, params.Frontier, muir.DefinedBy(CreateHeader))
	assert.Equal(t, params.Byzantium, muir.DefinedBy(FoldReceipt))
	assert.Equal(t, params.Byzantium, muir.DefinedBy(MakeReceipt))
	assert.Equal(t, params.Byzantium, muir.DefinedBy(ValidateReceipt))

	spurious, _ := r.ByName(params.SpuriousDragon)
	assert.Equal(t, params.Homestead, spurious.DefinedBy(Difficulty))
	assert.Equal(t, params.Frontier, spurious.DefinedBy(MakeReceipt))
}

// The bomb delay is a constant of the rule set, the block number only feeds
// the formula.
func TestCanonicalDifficulty(t *testing.T) {
	r := Mainnet()
	parent := &types.Header{
		Number:     9199999,
		Time:       100,
		Difficulty: big.NewInt(2000000000000000),
		UncleHash:  types.EmptyUncleHash,
	}

	tests := []struct {
		fork string
		fn   ethash.DifficultyFunc
	}{
		{params.Frontier, ethash.CalcDifficultyFrontier},
		{params.Homestead, ethash.CalcDifficultyHomestead},
		{params.Byzantium, ethash.MakeDifficultyCalculator(ethash.ByzantiumBombDelay)},
		{params.Petersburg, ethash.MakeDifficultyCalculator(ethash.ConstantinopleBombDelay)},
		{params.MuirGlacier, ethash.MakeDifficultyCalculator(ethash.MuirGlacierBombDelay)},
	}
	for _, tt := range tests {
		rs, _ := r.ByName(tt.fork)
		assert.Equal(t, tt.fn(parent, 130), rs.Difficulty(parent, 130), tt.fork)
	}
	assert.Equal(t, "1998046875000001", r.At(9200000).Difficulty(parent, 130).String())
	assert.Equal(t, "1999146386627776", r.At(7280000).Difficulty(parent, 130).String())
}

func TestRopsten(t *testing.T) {
	r := Ropsten()
	assert.Equal(t, params.TangerineWhistle, r.At(0).Name())
	assert.Equal(t, params.TangerineWhistle, r.At(9).Name())
	assert.Equal(t, params.SpuriousDragon, r.At(10).Name())
	assert.Equal(t, params.Byzantium, r.At(1700000).Name())
	assert.Equal(t, params.Constantinople, r.At(4230000).Name())
	assert.Equal(t, params.Petersburg, r.At(4939394).Name())
	assert.Equal(t, params.MuirGlacier, r.At(7117117).Name())
}

func TestChainRulesSkippedFork(t *testing.T) {
	config := &params.ChainConfig{
		Identity: "skip",
		ChainID:  big.NewInt(1337),
		Forks: params.Forks{
			{Name: params.Frontier, Block: big.NewInt(0)},
			{Name: params.Byzantium},
			{Name: params.Constantinople, Block: big.NewInt(10)},
		},
	}
	r, err := NewChainRules(config)
	require.NoError(t, err)
	require.Len(t, r.Activations(), 2)

	_, ok := r.ByName(params.Byzantium)
	assert.False(t, ok)

	// byzantium's changes carry over even though it is never scheduled
	rs := r.At(10)
	assert.Equal(t, params.Constantinople, rs.Name())
	assert.Equal(t, params.Byzantium, rs.DefinedBy(MakeReceipt))
	assert.Equal(t, core.EIP658StatusCodes, rs.Constants().StatusCodes)
	assert.Equal(t, ethash.ConstantinopleBlockReward, rs.BlockReward())
	assert.Equal(t, params.Frontier, r.At(9).Name())
}

func TestChainRulesFeatures(t *testing.T) {
	delay := uint64(7000000)
	depth := uint64(4)
	config := &params.ChainConfig{
		Identity: "tuned",
		ChainID:  big.NewInt(1337),
		Forks: params.Forks{
			{Name: params.Frontier, Block: big.NewInt(0), Features: []*params.ForkFeature{
				{ID: "uncles", Options: &params.FeatureOptions{MaxUncleDepth: &depth}},
			}},
			{Name: params.Byzantium, Block: big.NewInt(5)},
			{Name: params.Constantinople, Block: big.NewInt(10), Features: []*params.ForkFeature{
				{ID: "reward", Options: &params.FeatureOptions{BlockReward: big.NewInt(1e18)}},
				{ID: "eip1234", Options: &params.FeatureOptions{BombDelay: &delay}},
			}},
			{Name: params.Petersburg, Block: big.NewInt(20)},
		},
	}
	r, err := NewChainRules(config)
	require.NoError(t, err)

	assert.Equal(t, uint64(4), r.At(0).Constants().MaxUncleDepth)
	assert.Equal(t, uint64(4), r.At(20).Constants().MaxUncleDepth)
	assert.Equal(t, ethash.ByzantiumBlockReward, r.At(5).BlockReward())
	assert.Equal(t, uint256.NewInt(1e18), r.At(10).BlockReward())
	assert.Equal(t, uint256.NewInt(1e18), r.At(20).BlockReward())
	assert.Equal(t, delay, r.At(20).Constants().BombDelay)

	// the reward curve is rebuilt with the tuned depth
	_, err = r.At(0).UncleReward(10, uncleAt(5))
	assert.Error(t, err)
}

func TestChainRulesInvalidConfig(t *testing.T) {
	config := &params.ChainConfig{
		ChainID: big.NewInt(1337),
		Forks: params.Forks{
			{Name: params.Homestead, Block: big.NewInt(0)},
			{Name: params.Frontier, Block: big.NewInt(0)},
		},
	}
	_, err := NewChainRules(config)
	assert.True(t, errors.Is(err, params.ErrForkOrder), "%v", err)

	// nothing scheduled
	_, err = NewChainRules(&params.ChainConfig{ChainID: big.NewInt(1337), Forks: params.Forks{{Name: params.Frontier}}})
	assert.True(t, errors.Is(err, ErrRegistryOrder), "%v", err)

	huge := new(big.Int).Lsh(big.NewInt(1), 256)
	_, err = NewChainRules(&params.ChainConfig{ChainID: big.NewInt(1337), Forks: params.Forks{
		{Name: params.Frontier, Block: big.NewInt(0), Features: []*params.ForkFeature{
			{ID: "reward", Options: &params.FeatureOptions{BlockReward: huge}},
		}},
	}})
	assert.Error(t, err)
}

func TestDeriveChain(t *testing.T) {
	chain, err := DeriveChain(Canonical, nil)
	require.NoError(t, err)
	require.Len(t, chain, len(params.ForkOrder))
	for i, rs := range chain {
		assert.Equal(t, params.ForkOrder[i], rs.Name())
		if i > 0 {
			assert.Same(t, chain[i-1], rs.Parent())
		}
	}

	_, err = DeriveChain(Canonical[1:], nil)
	assert.True(t, errors.Is(err, ErrIncompleteRuleSet), "%v", err)
}
