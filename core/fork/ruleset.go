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

// Package fork composes the consensus rules of successive protocol upgrades.
//
// A RuleSet is derived from its predecessor by overriding individual rules
// (difficulty, uncle reward, header and receipt handling) and versioned
// constants. Every rule is bound once, when the rule set is built, so calling
// a rule never walks the chain of ancestors. Rule sets are immutable and safe
// for concurrent use.
package fork

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"gopkg.in/fatih/set.v0"

	"github.com/ethereumproject/forkrules/consensus"
	"github.com/ethereumproject/forkrules/consensus/ethash"
	"github.com/ethereumproject/forkrules/core"
	"github.com/ethereumproject/forkrules/core/state"
	"github.com/ethereumproject/forkrules/core/types"
	"github.com/ethereumproject/forkrules/core/vm"
	"github.com/ethereumproject/forkrules/metrics"
	"github.com/ethereumproject/forkrules/params"
)

// ErrIncompleteRuleSet is returned when a root rule set leaves a rule or a
// required constant undefined.
var ErrIncompleteRuleSet = errors.New("incomplete rule set")

// Constants are the versioned values a rule set closes its rules over. In
// overrides, zero values inherit from the predecessor.
type Constants struct {
	BlockReward   *uint256.Int      // Base block reward in wei
	MaxUncleDepth uint64            // Maximum uncle inclusion depth, at most params.MaxUncleDepth
	BombDelay     uint64            // Difficulty bomb delay in blocks
	StatusCodes   *core.StatusCodes // EIP-658 status codes, nil while receipts carry state roots
}

// merge returns c with the set fields of o applied.
func (c Constants) merge(o Constants) Constants {
	if o.BlockReward != nil {
		c.BlockReward = o.BlockReward.Clone()
	}
	if o.MaxUncleDepth != 0 {
		c.MaxUncleDepth = o.MaxUncleDepth
	}
	if o.BombDelay != 0 {
		c.BombDelay = o.BombDelay
	}
	if o.StatusCodes != nil {
		c.StatusCodes = o.StatusCodes
	}
	return c
}

// Factory builds a rule from the constants of the rule set being constructed
// and the rule its predecessor resolved to (super, nil for a root).
type Factory[T any] func(c Constants, super T) T

// Static is a Factory always returning fn.
func Static[T any](fn T) Factory[T] {
	return func(Constants, T) T { return fn }
}

// Field identifies an overridable rule.
type Field int

const (
	UncleReward Field = iota
	Difficulty
	CreateHeader
	FoldReceipt
	MakeReceipt
	ValidateReceipt
)

var fieldNames = [...]string{"uncle_reward", "difficulty", "create_header", "fold_receipt", "make_receipt", "validate_receipt"}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// Overrides are the changes a rule set makes to its predecessor. Nil
// factories inherit.
type Overrides struct {
	UncleReward     Factory[ethash.UncleRewardFunc]
	Difficulty      Factory[ethash.DifficultyFunc]
	CreateHeader    Factory[core.HeaderCreator]
	FoldReceipt     Factory[core.ReceiptFolder]
	MakeReceipt     Factory[core.ReceiptBuilder]
	ValidateReceipt Factory[core.ReceiptValidator]

	Constants Constants
}

type layer[T any] struct {
	fork    string
	factory Factory[T]
}

// rule is a resolved rule along with the factories it was built from, oldest
// first, so a descendant can rebuild it against its own constants.
type rule[T any] struct {
	layers []layer[T]
	fn     T
}

func (r rule[T]) extend(fork string, factory Factory[T]) rule[T] {
	layers := r.layers[:len(r.layers):len(r.layers)]
	if factory != nil {
		layers = append(layers, layer[T]{fork, factory})
	}
	return rule[T]{layers: layers}
}

func (r *rule[T]) bind(c Constants) {
	var fn T
	for _, l := range r.layers {
		fn = l.factory(c, fn)
	}
	r.fn = fn
}

func (r *rule[T]) definedBy() string {
	if len(r.layers) == 0 {
		return ""
	}
	return r.layers[len(r.layers)-1].fork
}

// RuleSet is the composed bundle of consensus rules of a fork.
type RuleSet struct {
	name      string
	parent    *RuleSet
	constants Constants

	uncleReward     rule[ethash.UncleRewardFunc]
	difficulty      rule[ethash.DifficultyFunc]
	createHeader    rule[core.HeaderCreator]
	foldReceipt     rule[core.ReceiptFolder]
	makeReceipt     rule[core.ReceiptBuilder]
	validateReceipt rule[core.ReceiptValidator]
}

// New builds a root rule set. Every rule and the block reward and uncle depth
// constants must be defined.
func New(name string, o Overrides) (*RuleSet, error) {
	return (*RuleSet)(nil).derive(name, o)
}

// MustNew is like New but panics on error.
func MustNew(name string, o Overrides) *RuleSet {
	rs, err := New(name, o)
	if err != nil {
		panic(err)
	}
	return rs
}

// Derive builds the rule set of a fork following rs: constants merge field
// by field, rules without an override resolve to rs's, and all rules are
// rebuilt against the merged constants.
func (rs *RuleSet) Derive(name string, o Overrides) (*RuleSet, error) {
	if rs == nil {
		return nil, fmt.Errorf("%w: %s derived from nothing", ErrIncompleteRuleSet, name)
	}
	return rs.derive(name, o)
}

// MustDerive is like Derive but panics on error.
func (rs *RuleSet) MustDerive(name string, o Overrides) *RuleSet {
	child, err := rs.Derive(name, o)
	if err != nil {
		panic(err)
	}
	return child
}

func (rs *RuleSet) derive(name string, o Overrides) (*RuleSet, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: unnamed rule set", ErrIncompleteRuleSet)
	}
	child := &RuleSet{name: name, parent: rs}
	if rs != nil {
		child.constants = rs.constants
		child.uncleReward, child.difficulty = rs.uncleReward, rs.difficulty
		child.createHeader, child.foldReceipt = rs.createHeader, rs.foldReceipt
		child.makeReceipt, child.validateReceipt = rs.makeReceipt, rs.validateReceipt
	}
	c := child.constants.merge(o.Constants)
	if err := checkConstants(name, c); err != nil {
		metrics.RulesIncomplete.Mark(1)
		return nil, err
	}
	child.constants = c

	child.uncleReward = child.uncleReward.extend(name, o.UncleReward)
	child.difficulty = child.difficulty.extend(name, o.Difficulty)
	child.createHeader = child.createHeader.extend(name, o.CreateHeader)
	child.foldReceipt = child.foldReceipt.extend(name, o.FoldReceipt)
	child.makeReceipt = child.makeReceipt.extend(name, o.MakeReceipt)
	child.validateReceipt = child.validateReceipt.extend(name, o.ValidateReceipt)

	child.uncleReward.bind(c)
	child.difficulty.bind(c)
	child.createHeader.bind(c)
	child.foldReceipt.bind(c)
	child.makeReceipt.bind(c)
	child.validateReceipt.bind(c)

	defined := [...]bool{
		UncleReward:     child.uncleReward.fn != nil,
		Difficulty:      child.difficulty.fn != nil,
		CreateHeader:    child.createHeader.fn != nil,
		FoldReceipt:     child.foldReceipt.fn != nil,
		MakeReceipt:     child.makeReceipt.fn != nil,
		ValidateReceipt: child.validateReceipt.fn != nil,
	}
	for f, ok := range defined {
		if !ok {
			metrics.RulesIncomplete.Mark(1)
			return nil, fmt.Errorf("%w: %s leaves %v undefined", ErrIncompleteRuleSet, name, Field(f))
		}
	}
	return child, nil
}

func checkConstants(name string, c Constants) error {
	if c.BlockReward == nil {
		return fmt.Errorf("%w: %s has no block reward", ErrIncompleteRuleSet, name)
	}
	if c.MaxUncleDepth == 0 {
		return fmt.Errorf("%w: %s has no uncle depth", ErrIncompleteRuleSet, name)
	}
	if c.MaxUncleDepth > params.MaxUncleDepth {
		return fmt.Errorf("%w: %s depth %d", params.ErrUncleDepth, name, c.MaxUncleDepth)
	}
	return nil
}

// Name returns the fork identifier of the rule set.
func (rs *RuleSet) Name() string { return rs.name }

// Parent returns the rule set rs was derived from, nil for a root.
func (rs *RuleSet) Parent() *RuleSet { return rs.parent }

// Constants returns a copy of the resolved constants.
func (rs *RuleSet) Constants() Constants {
	c := rs.constants
	c.BlockReward = c.BlockReward.Clone()
	return c
}

// DefinedBy names the fork whose override supplied the rule f.
func (rs *RuleSet) DefinedBy(f Field) string {
	switch f {
	case UncleReward:
		return rs.uncleReward.definedBy()
	case Difficulty:
		return rs.difficulty.definedBy()
	case CreateHeader:
		return rs.createHeader.definedBy()
	case FoldReceipt:
		return rs.foldReceipt.definedBy()
	case MakeReceipt:
		return rs.makeReceipt.definedBy()
	case ValidateReceipt:
		return rs.validateReceipt.definedBy()
	}
	return ""
}

// Fields lists the overridable rules.
func Fields() []Field {
	return []Field{UncleReward, Difficulty, CreateHeader, FoldReceipt, MakeReceipt, ValidateReceipt}
}

// BlockReward returns the base block reward of the fork.
func (rs *RuleSet) BlockReward() *uint256.Int { return rs.constants.BlockReward.Clone() }

// NephewReward returns the bonus a miner earns for each included uncle.
func (rs *RuleSet) NephewReward() *uint256.Int { return ethash.NephewReward(rs.constants.BlockReward) }

// UncleReward returns the reward of uncle included in block number.
func (rs *RuleSet) UncleReward(number uint64, uncle *types.Header) (*uint256.Int, error) {
	reward, err := rs.uncleReward.fn(number, uncle)
	if errors.Is(err, consensus.ErrDepthExceeded) {
		metrics.RewardDepthExceeded.Mark(1)
	} else if err == nil {
		metrics.RewardUncle.Mark(1)
	}
	return reward, err
}

// BlockRewards are the rewards granted by a block.
type BlockRewards struct {
	Miner  *uint256.Int   // block reward plus the nephew rewards
	Uncles []*uint256.Int // reward of each uncle's coinbase, in inclusion order
}

// Rewards computes the rewards of the miner of header and of each of its
// uncles. Every uncle may be included once and at most params.MaxUncles.
func (rs *RuleSet) Rewards(header *types.Header, uncles []*types.Header) (*BlockRewards, error) {
	if len(uncles) > params.MaxUncles {
		return nil, fmt.Errorf("%w: %d > %d", consensus.ErrTooManyUncles, len(uncles), params.MaxUncles)
	}
	var (
		seen    = set.New()
		nephew  = rs.NephewReward()
		rewards = &BlockRewards{Miner: rs.BlockReward(), Uncles: make([]*uint256.Int, len(uncles))}
	)
	for i, uncle := range uncles {
		hash := uncle.Hash()
		if seen.Has(hash) {
			return nil, fmt.Errorf("%w: %x", consensus.ErrDuplicateUncle, hash[:4])
		}
		seen.Add(hash)

		r, err := rs.UncleReward(header.Number, uncle)
		if err != nil {
			return nil, err
		}
		rewards.Uncles[i] = r
		rewards.Miner.Add(rewards.Miner, nephew)
	}
	return rewards, nil
}

// Difficulty computes the difficulty of a block created at time on top of parent.
func (rs *RuleSet) Difficulty(parent *types.Header, time uint64) *big.Int {
	return rs.difficulty.fn(parent, time)
}

// CreateHeader builds the header following parent.
func (rs *RuleSet) CreateHeader(parent *types.Header, opts core.HeaderParams) (*types.Header, error) {
	return rs.createHeader.fn(parent, opts, rs.difficulty.fn)
}

// ConfigureHeader returns a copy of header with opts applied, recomputing the
// difficulty under these rules.
func (rs *RuleSet) ConfigureHeader(header, parent *types.Header, opts core.HeaderParams) (*types.Header, error) {
	return core.ConfigureHeader(header, parent, opts, rs.difficulty.fn)
}

// FoldReceipt folds receipt, produced against st, into a copy of header.
func (rs *RuleSet) FoldReceipt(header *types.Header, receipt *types.Receipt, st state.Reader) *types.Header {
	return rs.foldReceipt.fn(header, receipt, st)
}

// MakeReceipt builds the receipt of tx executed on top of base.
func (rs *RuleSet) MakeReceipt(base *types.Header, tx core.Transaction, c vm.Computation, st state.Reader) (*types.Receipt, error) {
	return rs.makeReceipt.fn(base, tx, c, st)
}

// ValidateReceipt checks a single receipt.
func (rs *RuleSet) ValidateReceipt(receipt *types.Receipt) error {
	return rs.validateReceipt.fn(receipt)
}

// ValidateReceipts checks the receipts of the block with the given header.
func (rs *RuleSet) ValidateReceipts(header *types.Header, receipts types.Receipts) error {
	return core.ValidateBlockReceipts(header, receipts, rs.validateReceipt.fn)
}

// VerifyHeader checks that header is a valid successor of parent under these
// rules: contiguous, later, with a sane extra-data size and the expected
// difficulty.
func (rs *RuleSet) VerifyHeader(header, parent *types.Header) error {
	if header.Number != parent.Number+1 || header.ParentHash != parent.Hash() {
		return fmt.Errorf("%w: #%d on parent #%d", core.ErrNonContiguous, header.Number, parent.Number)
	}
	if uint64(len(header.Extra)) > params.MaximumExtraDataSize {
		return fmt.Errorf("extra-data too long: %d > %d", len(header.Extra), params.MaximumExtraDataSize)
	}
	if header.Time <= parent.Time {
		return fmt.Errorf("%w: %d <= parent %d", consensus.ErrOlderBlockTime, header.Time, parent.Time)
	}
	expected := rs.Difficulty(parent, header.Time)
	if header.Difficulty == nil || expected.Cmp(header.Difficulty) != 0 {
		return fmt.Errorf("%w: have %v, want %v", consensus.ErrInvalidDifficulty, header.Difficulty, expected)
	}
	return nil
}

func (rs *RuleSet) String() string {
	return rs.name
}
