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
	"fmt"
	"sort"

	"github.com/golang/glog"

	"github.com/ethereumproject/forkrules/core/types"
	"github.com/ethereumproject/forkrules/logger"
	"github.com/ethereumproject/forkrules/metrics"
)

// ErrRegistryOrder is returned when activations are not a valid schedule.
var ErrRegistryOrder = errors.New("invalid fork schedule")

// Activation schedules a rule set from a block number on.
type Activation struct {
	Block uint64
	Rules *RuleSet
}

// Registry is an immutable schedule of rule sets keyed by activation block.
type Registry struct {
	activations []Activation
	byName      map[string]int
}

// NewRegistry validates and freezes a schedule. The first activation must be
// at genesis and blocks must not decrease; of several rule sets activating at
// the same block, the last one listed is the one in effect.
func NewRegistry(activations ...Activation) (*Registry, error) {
	if len(activations) == 0 {
		return nil, fmt.Errorf("%w: no activations", ErrRegistryOrder)
	}
	if activations[0].Block != 0 {
		return nil, fmt.Errorf("%w: first fork %v activates at %d, not genesis", ErrRegistryOrder, activations[0].Rules, activations[0].Block)
	}
	r := &Registry{
		activations: make([]Activation, len(activations)),
		byName:      make(map[string]int, len(activations)),
	}
	for i, a := range activations {
		if a.Rules == nil {
			return nil, fmt.Errorf("%w: activation %d at block %d has no rules", ErrRegistryOrder, i, a.Block)
		}
		if i > 0 && a.Block < activations[i-1].Block {
			return nil, fmt.Errorf("%w: %v at %d before %v at %d", ErrRegistryOrder, a.Rules, a.Block, activations[i-1].Rules, activations[i-1].Block)
		}
		if _, dup := r.byName[a.Rules.Name()]; dup {
			return nil, fmt.Errorf("%w: %v scheduled twice", ErrRegistryOrder, a.Rules)
		}
		r.activations[i] = a
		r.byName[a.Rules.Name()] = i
	}
	metrics.RulesRegistry.Inc(1)
	if glog.V(logger.Info) {
		for _, a := range r.activations {
			glog.Infof("fork %-18s activates at block %d", a.Rules.Name(), a.Block)
		}
	}
	return r, nil
}

// Extend returns a new registry with activations appended to r's.
func (r *Registry) Extend(activations ...Activation) (*Registry, error) {
	all := make([]Activation, 0, len(r.activations)+len(activations))
	all = append(all, r.activations...)
	return NewRegistry(append(all, activations...)...)
}

// At returns the rule set in effect at block number: the last one activating
// at or before it.
func (r *Registry) At(number uint64) *RuleSet {
	metrics.RulesResolve.Mark(1)
	i := sort.Search(len(r.activations), func(i int) bool {
		return r.activations[i].Block > number
	})
	// the first activation is at genesis so i > 0
	return r.activations[i-1].Rules
}

// ForHeader returns the rule set in effect for header.
func (r *Registry) ForHeader(header *types.Header) *RuleSet {
	return r.At(header.Number)
}

// ByName returns the scheduled rule set with the given fork name.
func (r *Registry) ByName(name string) (*RuleSet, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.activations[i].Rules, true
}

// ActivationOf returns the activation block of the named fork.
func (r *Registry) ActivationOf(name string) (uint64, bool) {
	i, ok := r.byName[name]
	if !ok {
		return 0, false
	}
	return r.activations[i].Block, true
}

// Activations returns a copy of the schedule.
func (r *Registry) Activations() []Activation {
	return append([]Activation(nil), r.activations...)
}

// Latest returns the last scheduled rule set.
func (r *Registry) Latest() *RuleSet {
	return r.activations[len(r.activations)-1].Rules
}
