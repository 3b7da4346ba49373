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
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/ethereumproject/forkrules/consensus/ethash"
	"github.com/ethereumproject/forkrules/core"
	"github.com/ethereumproject/forkrules/params"
)

// Definition is a named set of overrides, one link of the canonical chain.
type Definition struct {
	Name      string
	Overrides Overrides
}

func uncleRewardFactory(c Constants, _ ethash.UncleRewardFunc) ethash.UncleRewardFunc {
	return ethash.MakeUncleRewardFunc(c.BlockReward, c.MaxUncleDepth)
}

func bombDifficultyFactory(c Constants, _ ethash.DifficultyFunc) ethash.DifficultyFunc {
	return ethash.MakeDifficultyCalculator(c.BombDelay)
}

func statusReceiptFactory(c Constants, super core.ReceiptBuilder) core.ReceiptBuilder {
	if c.StatusCodes == nil {
		return super
	}
	return core.MakeStatusReceiptBuilder(c.StatusCodes)
}

func statusValidatorFactory(c Constants, super core.ReceiptValidator) core.ReceiptValidator {
	if c.StatusCodes == nil {
		return super
	}
	return core.MakeStatusReceiptValidator(c.StatusCodes, super)
}

// Canonical is the chain of Ethereum forks, each definition applying to the
// rule set of the one before it.
var Canonical = []Definition{
	{params.Frontier, Overrides{
		UncleReward:     uncleRewardFactory,
		Difficulty:      Static[ethash.DifficultyFunc](ethash.CalcDifficultyFrontier),
		CreateHeader:    Static[core.HeaderCreator](core.CreateHeaderFromParent),
		FoldReceipt:     Static[core.ReceiptFolder](core.AddReceiptToHeaderWithRoot),
		MakeReceipt:     Static[core.ReceiptBuilder](core.BuildLegacyReceipt),
		ValidateReceipt: Static[core.ReceiptValidator](core.ValidateLegacyReceipt),
		Constants: Constants{
			BlockReward:   ethash.FrontierBlockReward,
			MaxUncleDepth: params.MaxUncleDepth,
		},
	}},
	{params.Homestead, Overrides{
		Difficulty: Static[ethash.DifficultyFunc](ethash.CalcDifficultyHomestead),
	}},
	{params.TangerineWhistle, Overrides{}},
	{params.SpuriousDragon, Overrides{}},
	// EIP-100, EIP-649, EIP-658
	{params.Byzantium, Overrides{
		Difficulty:      bombDifficultyFactory,
		FoldReceipt:     Static[core.ReceiptFolder](core.FoldReceipt),
		MakeReceipt:     statusReceiptFactory,
		ValidateReceipt: statusValidatorFactory,
		Constants: Constants{
			BlockReward: ethash.ByzantiumBlockReward,
			BombDelay:   ethash.ByzantiumBombDelay,
			StatusCodes: core.EIP658StatusCodes,
		},
	}},
	// EIP-1234
	{params.Constantinople, Overrides{
		Constants: Constants{
			BlockReward: ethash.ConstantinopleBlockReward,
			BombDelay:   ethash.ConstantinopleBombDelay,
		},
	}},
	{params.Petersburg, Overrides{}},
	{params.Istanbul, Overrides{}},
	// EIP-2384
	{params.MuirGlacier, Overrides{
		Constants: Constants{BombDelay: ethash.MuirGlacierBombDelay},
	}},
}

// DeriveChain builds the rule sets of defs in order, the first one being the
// root. The constants of a definition are amended by tune, if not nil.
func DeriveChain(defs []Definition, tune func(name string) (Constants, error)) ([]*RuleSet, error) {
	var (
		chain []*RuleSet
		prev  *RuleSet
	)
	for _, def := range defs {
		o := def.Overrides
		if tune != nil {
			c, err := tune(def.Name)
			if err != nil {
				return nil, err
			}
			o.Constants = o.Constants.merge(c)
		}
		rs, err := prev.derive(def.Name, o)
		if err != nil {
			return nil, err
		}
		chain = append(chain, rs)
		prev = rs
	}
	return chain, nil
}

// NewChainRules builds the registry of a chain configuration. The whole
// canonical chain is derived, so that a fork missing from the configuration
// still passes its changes on to its descendants, but only the scheduled
// forks are registered. Feature options of a scheduled fork tune its
// constants.
func NewChainRules(config *params.ChainConfig) (*Registry, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	chain, err := DeriveChain(Canonical, func(name string) (Constants, error) {
		return configConstants(config, name)
	})
	if err != nil {
		return nil, err
	}
	var activations []Activation
	for _, rs := range chain {
		f := config.Fork(rs.Name())
		if f == nil || f.Block == nil {
			continue
		}
		activations = append(activations, Activation{Block: f.Block.Uint64(), Rules: rs})
	}
	return NewRegistry(activations...)
}

// MustNewChainRules is like NewChainRules but panics on error.
func MustNewChainRules(config *params.ChainConfig) *Registry {
	r, err := NewChainRules(config)
	if err != nil {
		panic(err)
	}
	return r
}

func configConstants(config *params.ChainConfig, name string) (Constants, error) {
	var c Constants
	f := config.Fork(name)
	if f == nil {
		return c, nil
	}
	opts := f.CollectOptions()
	if opts.BlockReward != nil {
		reward, overflow := uint256.FromBig(opts.BlockReward)
		if overflow {
			return c, fmt.Errorf("%s: block reward %v overflows 256 bits", name, opts.BlockReward)
		}
		c.BlockReward = reward
	}
	if opts.BombDelay != nil {
		c.BombDelay = *opts.BombDelay
	}
	if opts.MaxUncleDepth != nil {
		c.MaxUncleDepth = *opts.MaxUncleDepth
	}
	return c, nil
}

var (
	mainnetOnce, ropstenOnce sync.Once
	mainnet, ropsten         *Registry
)

// Mainnet returns the rules of the Ethereum main network.
func Mainnet() *Registry {
	mainnetOnce.Do(func() { mainnet = MustNewChainRules(params.MainnetChainConfig) })
	return mainnet
}

// Ropsten returns the rules of the Ropsten test network.
func Ropsten() *Registry {
	ropstenOnce.Do(func() { ropsten = MustNewChainRules(params.RopstenChainConfig) })
	return ropsten
}
