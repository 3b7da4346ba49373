// Copyright 2016 The go-ethereum Authors
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

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/spf13/afero"
)

// validateError signals a chain configuration validation failure.
type validateError string

func (err validateError) Error() string {
	return string(err)
}

// IsValidateError returns whether err is a validation error.
func IsValidateError(err error) bool {
	var v validateError
	return errors.As(err, &v)
}

var (
	ErrChainConfigNotFound = errors.New("chain config not found")

	ErrUnknownFork    = validateError("unknown fork")
	ErrDuplicateFork  = validateError("duplicate fork")
	ErrForkOrder      = validateError("forks out of order")
	ErrFrontierBlock  = validateError("frontier must activate at genesis")
	ErrUncleDepth     = validateError("max uncle depth out of range")
	ErrNegativeReward = validateError("negative block reward")
)

// ChainConfig is the configuration of a network's fork schedule. Each network,
// identified by its chain id, has its own set of activation blocks and may
// tune the versioned constants of a fork through features.
type ChainConfig struct {
	Identity string   `json:"identity"`
	Name     string   `json:"name,omitempty"`
	ChainID  *big.Int `json:"chainId"`

	// Forks holds the fork activations, in canonical order.
	Forks Forks `json:"forks"`
}

// Fork is a single scheduled activation of a named rule set.
type Fork struct {
	Name string `json:"name"`
	// Block is the block number where the hard-fork commences on
	// the network. A nil block leaves the fork unscheduled.
	Block *big.Int `json:"block"`
	// Configurable features.
	Features []*ForkFeature `json:"features,omitempty"`
}

// Forks is the ordered fork schedule of a chain.
type Forks []*Fork

// ForkFeatures tune the versioned constants of the fork they belong to. Their
// `id` is informative, eg. "eip649" or "reward", and the options are applied in
// order, so the last feature to set a given option wins.
type ForkFeature struct {
	ID      string          `json:"id"`
	Options *FeatureOptions `json:"options"`
}

// FeatureOptions uses concrete fields instead of arbitrary key-value pairs so
// the set of tunable constants is transparent. Nil values are ignored and the
// value inherited from the previous fork remains in effect.
type FeatureOptions struct {
	BlockReward   *big.Int `json:"blockReward,omitempty"`   // Block reward in wei
	BombDelay     *uint64  `json:"bombDelay,omitempty"`     // Difficulty bomb delay in blocks
	MaxUncleDepth *uint64  `json:"maxUncleDepth,omitempty"` // Maximum uncle inclusion depth
}

// CollectOptions aggregates and returns a flat set of FeatureOptions for a given Fork.
// In the case that multiple ForkFeatures specify the same key, the latest-specified will be used.
func (f *Fork) CollectOptions() *FeatureOptions {
	opts := &FeatureOptions{}

	for _, feature := range f.Features {
		if feature == nil || feature.Options == nil {
			continue
		}
		if feature.Options.BlockReward != nil {
			opts.BlockReward = feature.Options.BlockReward
		}
		if feature.Options.BombDelay != nil {
			opts.BombDelay = feature.Options.BombDelay
		}
		if feature.Options.MaxUncleDepth != nil {
			opts.MaxUncleDepth = feature.Options.MaxUncleDepth
		}
	}
	return opts
}

// IsEmpty reports whether no option is set.
func (o *FeatureOptions) IsEmpty() bool {
	return o == nil || (o.BlockReward == nil && o.BombDelay == nil && o.MaxUncleDepth == nil)
}

// Fork returns the scheduled fork with the given name, or nil.
func (c *ChainConfig) Fork(name string) *Fork {
	for _, f := range c.Forks {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// IsActive returns whether the named fork is scheduled at or before num.
func (c *ChainConfig) IsActive(name string, num uint64) bool {
	f := c.Fork(name)
	if f == nil || f.Block == nil {
		return false
	}
	return f.Block.Cmp(new(big.Int).SetUint64(num)) <= 0
}

// IsHomestead returns whether num is either equal to the homestead block or greater.
func (c *ChainConfig) IsHomestead(num uint64) bool { return c.IsActive(Homestead, num) }

// IsByzantium returns whether num is either equal to the byzantium block or greater.
func (c *ChainConfig) IsByzantium(num uint64) bool { return c.IsActive(Byzantium, num) }

// IsPetersburg returns whether num is either equal to the petersburg block or greater.
func (c *ChainConfig) IsPetersburg(num uint64) bool { return c.IsActive(Petersburg, num) }

// Validate checks the fork schedule: only known forks, each at most once,
// listed in canonical order with non-decreasing blocks, frontier at genesis,
// and sane feature options.
func (c *ChainConfig) Validate() error {
	var (
		seen      = make(map[string]bool)
		lastIndex = -1
		lastBlock *big.Int
	)
	for _, f := range c.Forks {
		idx := ForkIndex(f.Name)
		if idx < 0 {
			return fmt.Errorf("%w: %q", ErrUnknownFork, f.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateFork, f.Name)
		}
		seen[f.Name] = true
		if idx < lastIndex {
			return fmt.Errorf("%w: %q listed after %q", ErrForkOrder, f.Name, ForkOrder[lastIndex])
		}
		lastIndex = idx

		if f.Name == Frontier && f.Block != nil && f.Block.Sign() != 0 {
			return ErrFrontierBlock
		}
		if f.Block != nil {
			if f.Block.Sign() < 0 || !f.Block.IsUint64() {
				return fmt.Errorf("%w: %q block %v", ErrForkOrder, f.Name, f.Block)
			}
			if lastBlock != nil && f.Block.Cmp(lastBlock) < 0 {
				return fmt.Errorf("%w: %q at %v before %v", ErrForkOrder, f.Name, f.Block, lastBlock)
			}
			lastBlock = f.Block
		}

		opts := f.CollectOptions()
		if opts.MaxUncleDepth != nil && (*opts.MaxUncleDepth == 0 || *opts.MaxUncleDepth > MaxUncleDepth) {
			return fmt.Errorf("%w: %q depth %d", ErrUncleDepth, f.Name, *opts.MaxUncleDepth)
		}
		if opts.BlockReward != nil && opts.BlockReward.Sign() < 0 {
			return fmt.Errorf("%w: %q", ErrNegativeReward, f.Name)
		}
	}
	return nil
}

// ReadChainConfig reads a JSON chain configuration from path and validates it.
// No checks are made on the file path.
func ReadChainConfig(fs afero.Fs, path string) (*ChainConfig, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain configuration file: %w", err)
	}
	defer f.Close()

	config := new(ChainConfig)
	if err := json.NewDecoder(f).Decode(config); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// WriteChainConfig writes config to path as indented JSON.
func WriteChainConfig(fs afero.Fs, path string, config *ChainConfig) error {
	data, err := json.MarshalIndent(config, "", "    ")
	if err != nil {
		return fmt.Errorf("could not marshal chain config: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("could not write chain config file: %w", err)
	}
	return nil
}

// LoadChainConfig resolves a chain identity ("mainnet", "ropsten", ...) to a
// built-in configuration, falling back to reading the identity as a path.
func LoadChainConfig(fs afero.Fs, identity string) (*ChainConfig, error) {
	if c, ok := builtinConfigs[identity]; ok {
		return c, nil
	}
	exists, err := afero.Exists(fs, identity)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrChainConfigNotFound, identity)
	}
	return ReadChainConfig(fs, identity)
}
